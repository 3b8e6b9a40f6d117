package notification

import (
	"context"
	"time"

	"blog_platform/internal/domain/notification/handler"
	"blog_platform/internal/domain/notification/repository"
	"blog_platform/internal/domain/notification/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/internal/pkg/registry"
	"blog_platform/pkg/cache"

	"github.com/gin-gonic/gin"
)

// NotificationModule 通知模块
type NotificationModule struct{}

func init() {
	registry.Register(&NotificationModule{})
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) Priority() int {
	return 40
}

func (m *NotificationModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewNotificationRepository(ctx.DB)

	var cacheService cache.CacheService
	if ctx.Redis != nil {
		cacheService = cache.NewRedisCache(ctx.Redis)
	}

	svc := service.NewNotificationService(repo, cacheService)
	h := handler.NewNotificationHandler(svc)

	// 2. 订阅领域事件，作为持久化消费者（与实时广播互相独立）
	ctx.Bus.Subscribe("notifications", svc.HandleEvent)

	// 3. 启动保留期清理协程
	svc.StartRetentionSweeper(context.Background(), time.Hour)

	// 4. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.NotificationHandler) {
	g := r.Group("/api/notifications")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.GetList)
		g.GET("/unread-count", h.UnreadCount)
		g.PUT("/read-all", h.MarkAllRead)
		g.PUT("/:id/read", h.MarkRead)
		g.DELETE("/:id", h.Delete)
		g.DELETE("", h.DeleteAll)
	}
}
