// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User  UserServiceConfig  // User related config // 用户相关配置
	Click ClickServiceConfig // Click tracking config // 点击跟踪配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // Whether registration is enabled // 注册是否启用
}

// ClickServiceConfig click tracking configuration
// ClickServiceConfig 点击跟踪配置
type ClickServiceConfig struct {
	RetentionTime string // Click rows retention (e.g., 90d, 24h, 0/empty for keep forever) // 点击记录保留时间（支持 90d、24h，0 或空表示永久保留）
}
