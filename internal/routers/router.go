// Package routers 组装 HTTP 路由与中间件
package routers

import (
	"time"

	"github.com/linkgrove/link-page-service/internal/app"
	"github.com/linkgrove/link-page-service/internal/middleware"
	"github.com/linkgrove/link-page-service/internal/routers/api_router"
	"github.com/linkgrove/link-page-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// 认证和点击接口单独限流，避免公开接口被刷
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
	limiter.BucketRule{
		Key:          "/api/click",
		FillInterval: time.Second,
		Capacity:     100,
		Quantum:      100,
	},
)

// NewRouter 创建公开 HTTP 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		if cfg.Tracer.Enabled {
			api.Use(middleware.TraceMiddleware(cfg.Tracer.Header))
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		linkHandler := api_router.NewLinkHandler(appContainer)
		eventHandler := api_router.NewEventHandler(appContainer)
		profileHandler := api_router.NewProfileHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		// 公开接口（无需认证）
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/profile/:username", profileHandler.Profile)
		api.POST("/click", profileHandler.Click)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		// 所有者接口（需要认证）
		auth := api.Group("")
		auth.Use(middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			auth.POST("/user/change_password", userHandler.UserChangePassword)
			auth.GET("/user/info", userHandler.UserInfo)

			auth.GET("/links", linkHandler.Tree)
			auth.POST("/links", linkHandler.SaveTree)
			auth.POST("/link", linkHandler.Create)
			auth.PUT("/link", linkHandler.Update)
			auth.DELETE("/link", linkHandler.Delete)
			auth.PUT("/link/archive", linkHandler.Archive)

			auth.GET("/events", eventHandler.List)
			auth.POST("/events", eventHandler.Replace)
			auth.POST("/event", eventHandler.Create)
			auth.PUT("/event", eventHandler.Update)
			auth.DELETE("/event", eventHandler.Delete)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
