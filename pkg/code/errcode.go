package code

// 通用状态码
var (
	Success             = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	ErrorInvalidParams  = NewError(400, lang{en: "Invalid request parameters", zh_cn: "请求参数错误"})
	ErrorNotFound       = NewError(404, lang{en: "Resource not found", zh_cn: "资源不存在"})
	ErrorTooManyRequests = NewError(429, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorServerInternal = NewError(500, lang{en: "Internal server error", zh_cn: "服务内部错误"})
	ErrorDBQuery        = NewError(501, lang{en: "Storage query failed", zh_cn: "数据库查询错误"})
	// ErrorTreeSyncAborted 整树同步因存储错误回滚，客户端可重新提交完整树
	ErrorTreeSyncAborted = NewError(502, lang{en: "Tree sync aborted, storage rolled back, resubmit the full tree", zh_cn: "链接树同步失败已回滚，请重新提交完整树"})
)

// 认证相关状态码
var (
	ErrorNotUserAuthToken     = NewError(4101, lang{en: "Missing auth token", zh_cn: "缺少认证Token"})
	ErrorInvalidUserAuthToken = NewError(4102, lang{en: "Invalid auth token", zh_cn: "认证Token无效"})
	ErrorUserGenerateToken    = NewError(4103, lang{en: "Failed to generate token", zh_cn: "生成Token失败"})
)

// 用户相关状态码
var (
	ErrorUserNotFound       = NewError(4201, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserExists         = NewError(4202, lang{en: "Username or email already registered", zh_cn: "用户名或邮箱已注册"})
	ErrorUserPassword       = NewError(4203, lang{en: "Incorrect username or password", zh_cn: "用户名或密码错误"})
	ErrorUserRegisterClosed = NewError(4204, lang{en: "Registration is disabled", zh_cn: "注册已关闭"})
)

// 链接树相关状态码
var (
	ErrorLinkNotFound = NewError(4301, lang{en: "Link not found or not owned by you", zh_cn: "链接不存在或不属于当前用户"})
	// ErrorLinkTreeTooDeep 链接树最多两层：根节点和它的直接子节点
	ErrorLinkTreeTooDeep    = NewError(4302, lang{en: "Link tree exceeds maximum depth of two levels", zh_cn: "链接树超过两层嵌套限制"})
	ErrorLinkKindChildren   = NewError(4303, lang{en: "Only collection links can contain children", zh_cn: "只有集合类型的链接可以包含子链接"})
	ErrorLinkKindFields     = NewError(4304, lang{en: "Field not allowed for this link kind", zh_cn: "该链接类型不允许此字段"})
	ErrorLinkSchedule       = NewError(4305, lang{en: "Schedule end must not be before schedule start", zh_cn: "定时结束时间不能早于开始时间"})
	ErrorLinkTitleRequired  = NewError(4306, lang{en: "Title and url are required for plain links", zh_cn: "普通链接必须包含标题和地址"})
)

// 日程事件相关状态码
var (
	ErrorCollectionNotFound = NewError(4401, lang{en: "Agenda collection not found or not owned by you", zh_cn: "日程集合不存在或不属于当前用户"})
	ErrorCollectionKind     = NewError(4402, lang{en: "Events can only belong to an agenda link", zh_cn: "日程事件只能属于日程类型链接"})
	ErrorEventNotFound      = NewError(4403, lang{en: "Event not found", zh_cn: "日程事件不存在"})
)
