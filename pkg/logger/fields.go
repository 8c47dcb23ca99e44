package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldLinkID 链接 ID 字段
	FieldLinkID = "linkId"

	// FieldCollectionID 日程集合 ID 字段
	FieldCollectionID = "collectionId"

	// FieldUsername 用户名字段
	FieldUsername = "username"

	// FieldKind 链接类型字段
	FieldKind = "kind"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"
)
