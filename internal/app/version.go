// Package app 提供应用容器，封装所有依赖和服务
package app

// 编译期通过 -ldflags 注入
var (
	Name      = "link-page-service"
	Version   = "dev"
	GitTag    = ""
	BuildTime = ""
)
