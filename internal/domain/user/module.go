package user

import (
	"blog_platform/internal/domain/user/handler"
	"blog_platform/internal/domain/user/repository"
	"blog_platform/internal/domain/user/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/internal/pkg/registry"
	"blog_platform/internal/pkg/roles"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，其他模块依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(userService)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler, adminHandler)

	return nil
}

func setupRoutes(r *gin.Engine, uh *handler.UserHandler, ah *handler.AdminHandler) {
	// 公开路由
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", uh.Register)
		authGroup.POST("/login", uh.Login)
	}
	authGroup.GET("/me", middleware.AuthMiddleware(), uh.Me)

	// 管理路由，仅限 Admin
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.RequireRole(roles.RoleAdmin))
	{
		adminGroup.GET("/users", ah.GetUsers)
		adminGroup.GET("/users/:id", ah.GetUser)
		adminGroup.PUT("/users/:id/role", ah.UpdateRole)
		adminGroup.DELETE("/users/:id", ah.DeleteUser)
		adminGroup.GET("/stats", ah.Stats)
	}
}
