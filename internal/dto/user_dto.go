package dto

import "github.com/linkgrove/link-page-service/pkg/timex"

// UserCreateRequest User registration request parameters
// 用户注册请求参数
type UserCreateRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`               // User email // 用户邮件
	Username        string `json:"username" form:"username" binding:"required,alphanum"`      // Profile handle // 用户名，即公开页路径
	Password        string `json:"password" form:"password" binding:"required,min=8"`         // User password // 用户密码
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"` // Confirm password // 校验密码
	Nickname        string `json:"nickname" form:"nickname"`                                  // Display name // 昵称
}

// UserLoginRequest User login request parameters
// 用户登录请求参数
type UserLoginRequest struct {
	Credentials string `json:"credentials" form:"credentials" binding:"required"` // Username or Email // 登录凭证（用户名或邮件）
	Password    string `json:"password" form:"password" binding:"required"`       // Password // 密码
}

// UserChangePasswordRequest Request parameters for changing password
// 修改密码请求参数
type UserChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" form:"oldPassword" binding:"required"`         // Old password // 旧密码
	Password        string `json:"password" form:"password" binding:"required,min=8"`         // New password // 新密码
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"` // Confirm password // 校验密码
}

// ---------------- DTO / Response ----------------

// UserDTO User data transfer object
// UserDTO 用户数据传输对象
type UserDTO struct {
	UID       int64      `json:"uid"`       // User ID (primary key) // 用户唯一标识（主键）
	Email     string     `json:"email"`     // Email address // 邮件地址
	Username  string     `json:"username"`  // Profile handle // 用户名
	Nickname  string     `json:"nickname"`  // Display name // 昵称
	Token     string     `json:"token,omitempty"` // Authentication Token // 认证 Token
	Avatar    string     `json:"avatar"`    // Avatar URL // 头像地址
	UpdatedAt timex.Time `json:"updatedAt"` // Last updated time // 最后更新时间
	CreatedAt timex.Time `json:"createdAt"` // Account created time // 账号创建时间
}

// ProfileDTO Public profile page payload
// 公开主页响应载荷
type ProfileDTO struct {
	Username string         `json:"username"`
	Nickname string         `json:"nickname"`
	Avatar   string         `json:"avatar"`
	Links    []*LinkNodeDTO `json:"links"`
}
