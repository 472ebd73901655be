package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lavtracker/backend/config"
	"lavtracker/backend/internal/api/handler"
	"lavtracker/backend/internal/api/middleware"
	"lavtracker/backend/pkg/jwt"
	"lavtracker/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：此时不检查 Token 黑名单，清洁码接口不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Health)

	// ── 巡检照片 ──
	if cfg.Storage.InspectionDir != "" && cfg.Storage.PublicPath != "" {
		r.Static(cfg.Storage.PublicPath, cfg.Storage.InspectionDir)
	}

	auth := middleware.JWTAuth(jwtMgr, blacklist)
	admin := middleware.RequireAdmin()
	codeLimit := middleware.RateLimit(limiter, cfg.RateLimit.CodeAttempts, cfg.RateLimit.CodeWindow)

	api := r.Group("/api")
	{
		// 认证模块
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", auth, h.Auth.Logout)
		api.GET("/auth/me", auth, h.Auth.Me)

		// 分支模块
		api.GET("/branches", h.Branch.ListBranches)
		api.POST("/branches", auth, h.Branch.CreateBranch)
		api.PATCH("/branches", auth, h.Branch.UpdateBranch)
		api.DELETE("/branches", auth, h.Branch.DeleteBranch)

		// 区域模块
		api.GET("/locations", h.Location.ListLocations)
		api.POST("/locations", auth, h.Location.CreateLocation)
		api.PATCH("/locations", auth, h.Location.UpdateLocation)
		api.DELETE("/locations", auth, h.Location.DeleteLocation)

		// 卫生间模块
		api.GET("/bathrooms", h.Bathroom.ListBathrooms)
		api.POST("/bathrooms", auth, h.Bathroom.CreateBathroom)
		api.PATCH("/bathrooms", auth, h.Bathroom.UpdateBathroom)
		api.DELETE("/bathrooms", auth, h.Bathroom.DeleteBathroom)

		// 任务目录
		api.GET("/tasks", h.Task.ListTasks)
		api.POST("/tasks", auth, admin, h.Task.CreateTask)
		api.PATCH("/tasks", auth, admin, h.Task.UpdateTask)
		api.DELETE("/tasks", auth, admin, h.Task.DeleteTask)

		// 用户模块（创建接口在尚无用户时允许匿名，Service 层鉴权）
		api.GET("/users", auth, h.User.ListUsers)
		api.POST("/users", middleware.OptionalJWTAuth(jwtMgr, blacklist), h.User.CreateUser)
		api.PATCH("/users", auth, admin, h.User.UpdateUser)
		api.DELETE("/users", auth, admin, h.User.DeleteUser)

		// 清洁签到
		api.POST("/clean", codeLimit, h.Clean.Clean)
		api.POST("/validate", codeLimit, h.Clean.ValidateCode)

		// 巡检
		inspection := api.Group("/inspection")
		{
			inspection.POST("", h.Inspection.Inspect)
			inspection.POST("/clear", h.Inspection.Clear)
			inspection.POST("/remind", h.Inspection.Remind)
		}

		// 应用设置
		api.GET("/settings", h.Settings.GetSettings)
		api.PATCH("/settings", auth, admin, h.Settings.UpdateSettings)
		api.GET("/theme", h.Settings.GetTheme)
		api.PATCH("/theme", auth, admin, h.Settings.UpdateTheme)

		// 导出
		export := api.Group("/export", auth, admin)
		{
			export.GET("/cleanings", h.Export.ExportCleanings)
			export.GET("/inspections.ics", h.Export.ExportInspections)
		}
	}

	return r
}
