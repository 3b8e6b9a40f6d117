package like

import (
	articlerepo "blog_platform/internal/domain/article/repository"
	"blog_platform/internal/domain/like/handler"
	"blog_platform/internal/domain/like/repository"
	"blog_platform/internal/domain/like/service"
	userrepo "blog_platform/internal/domain/user/repository"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// LikeModule 点赞模块
type LikeModule struct{}

func init() {
	registry.Register(&LikeModule{})
}

func (m *LikeModule) Name() string {
	return "like"
}

func (m *LikeModule) Priority() int {
	return 30
}

func (m *LikeModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewLikeRepository(ctx.DB)
	articles := articlerepo.NewArticleRepository(ctx.DB)
	users := userrepo.NewUserRepository(ctx.DB)
	svc := service.NewLikeService(repo, articles, users, ctx.Bus)
	h := handler.NewLikeHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.LikeHandler) {
	g := r.Group("/api/likes")

	// Public
	g.GET("/article/:articleId", h.GetByArticle)
	g.GET("/user/:userId", h.GetByUser)

	// Authenticated
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.Toggle)
		auth.GET("/article/:articleId/check", h.Check)
	}
}
