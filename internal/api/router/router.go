package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/api/handler"
	"event-dashboard/backend/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	writeLimit := middleware.RateLimit(limiter, cfg.Server.UpdateLimit, cfg.Server.UpdateWindow, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 场地模块
		venues := v1.Group("/venues")
		{
			venues.GET("", h.Venue.ListVenues)
			venues.GET("/update", h.Venue.ListStoredVenues)
			venues.POST("/update", writeLimit, h.Venue.UpdateStatus)
			venues.POST("/update-multiple", writeLimit, h.Venue.UpdateStatuses)
			venues.POST("/init", writeLimit, h.Venue.Initialize)
		}

		// 记分板
		v1.GET("/scoreboard", h.Scoreboard.GetScoreboard)

		// 日程与目录类只读数据
		v1.GET("/schedule", h.Schedule.ListSchedule)
		v1.GET("/teams", h.Team.ListTeams)
		v1.GET("/contacts", h.Contact.ListContacts)
		v1.GET("/props", h.Prop.ListProps)
		v1.GET("/alerts", h.Alert.ListAlerts)

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/scoreboard.xlsx", h.Export.ExportScoreboard)
			export.GET("/schedule.ics", h.Export.ExportSchedule)
		}
	}

	return r
}
