// Package routers assembles the gin engine
package routers

import (
	"time"

	"github.com/webmarks/webmarks-service/internal/app"
	"github.com/webmarks/webmarks-service/internal/middleware"
	"github.com/webmarks/webmarks-service/internal/routers/api_router"
	"github.com/webmarks/webmarks-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api",
		FillInterval: time.Second,
		Capacity:     100,
		Quantum:      100,
	},
)

// NewRouter builds the HTTP router with the full middleware chain
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(middleware.TraceMiddleware())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		entryHandler := api_router.NewEntryHandler(appContainer)
		tagHandler := api_router.NewTagHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/version", versionHandler.ServerVersion)

		auth := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		auth.GET("/entries", entryHandler.List)
		auth.GET("/entry", entryHandler.Get)
		auth.POST("/entry", entryHandler.Save)
		auth.DELETE("/entry", entryHandler.Delete)

		auth.GET("/tags", tagHandler.List)
		auth.GET("/tags/cloud", tagHandler.Cloud)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
