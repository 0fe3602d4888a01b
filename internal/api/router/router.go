package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intern-hub/backend/config"
	"intern-hub/backend/internal/api/handler"
	"intern-hub/backend/internal/api/middleware"
	"intern-hub/backend/internal/model"
	"intern-hub/backend/pkg/jwt"
	"intern-hub/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Upload.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录注册限流防爆破）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.PUT("/me", h.User.UpdateProfile)
				users.GET("", middleware.RoleAuth(model.RoleAdmin), h.User.ListUsers)
				users.PUT("/:id/toggle-active", middleware.RoleAuth(model.RoleAdmin), h.User.ToggleActive)
			}

			// 基础数据模块
			campuses := authorized.Group("/campuses")
			{
				campuses.GET("", h.Reference.ListCampuses)
				campuses.POST("", middleware.RoleAuth(model.RoleAdmin), h.Reference.CreateCampus)
			}
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Reference.ListDepartments)
				departments.POST("", middleware.RoleAuth(model.RoleAdmin), h.Reference.CreateDepartment)
			}
			tags := authorized.Group("/tags")
			{
				tags.GET("", h.Reference.ListTags)
				tags.POST("", middleware.RoleAuth(model.RoleAdmin), h.Reference.CreateTag)
			}

			// 实习岗位模块（学生只能看到 active 岗位，过滤在 Service 层）
			internships := authorized.Group("/internships")
			{
				internships.GET("", h.Internship.ListInternships)
				internships.GET("/:id", h.Internship.GetInternship)
				internships.POST("", middleware.RoleAuth(model.RoleAdmin), h.Internship.CreateInternship)
				internships.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Internship.UpdateInternship)
				internships.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Internship.DeleteInternship)
			}

			// 申请模块
			applications := authorized.Group("/applications")
			{
				applications.POST("", middleware.RoleAuth(model.RoleStudent), h.Application.Apply)
				applications.GET("/me", h.Application.ListMyApplications)
				applications.GET("/me/stats", h.Application.MyApplicationStats)
				applications.GET("", middleware.RoleAuth(model.RoleAdmin), h.Application.ListApplications)
				applications.GET("/:id", h.Application.GetApplication)
				applications.PUT("/:id", h.Application.UpdateApplication)
				applications.DELETE("/:id", h.Application.WithdrawApplication)
				applications.PUT("/:id/status", middleware.RoleAuth(model.RoleAdmin), h.Application.ReviewApplication)
				applications.GET("/:id/interview.ics", h.Application.InterviewCalendar)

				// 附件挂在申请下
				applications.POST("/:id/attachments", h.Attachment.Upload)
				applications.GET("/:id/attachments", h.Attachment.List)
			}

			// 附件模块（细粒度鉴权在 Service 层）
			attachments := authorized.Group("/attachments")
			{
				attachments.GET("/:id", h.Attachment.Download)
				attachments.DELETE("/:id", h.Attachment.Delete)
			}

			// 管理模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/stats", h.Admin.DashboardStats)
				admin.GET("/applications/stats", h.Admin.ApplicationStats)
				admin.GET("/applications/export", h.Admin.ExportApplications)
			}
		}
	}

	return r
}
