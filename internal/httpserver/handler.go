package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Registers the OpenAPI document served under /swagger.
	_ "github.com/HaokunYang123/routine-craft-bot-sub002/docs"

	channelHTTP "github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel/delivery/http"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/middleware"
	reconcileHTTP "github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile/delivery/http"
	surfaceHTTP "github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface/delivery/http"
	visibilityHTTP "github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility/delivery/http"
)

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(srv.cors))

	// Health & metrics (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Surface bridge authenticates the upgrade itself.
	surfaceHTTP.New(srv.logger, srv.hub, srv.jwtMgr, srv.sessionUserID, srv.wsConfig).
		RegisterRoutes(srv.gin.Group(""))

	mw := middleware.New(srv.logger, srv.jwtMgr)
	api := srv.gin.Group(Api)
	api.Use(mw.Auth())

	channelHTTP.New(srv.logger, srv.scheme).RegisterRoutes(api)
	visibilityHTTP.New(srv.logger, srv.visSource, srv.visReporter).RegisterRoutes(api)
	reconcileHTTP.New(srv.logger, srv.reconcileUC).RegisterRoutes(api)
}
