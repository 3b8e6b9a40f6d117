package article

import (
	"blog_platform/internal/domain/article/handler"
	"blog_platform/internal/domain/article/repository"
	"blog_platform/internal/domain/article/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ArticleModule 文章模块
type ArticleModule struct{}

func init() {
	registry.Register(&ArticleModule{})
}

func (m *ArticleModule) Name() string {
	return "article"
}

func (m *ArticleModule) Priority() int {
	return 10
}

func (m *ArticleModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewArticleRepository(ctx.DB)
	svc := service.NewArticleService(repo)
	h := handler.NewArticleHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Router, h, repo)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ArticleHandler, repo repository.ArticleRepository) {
	g := r.Group("/api/articles")

	// Public
	g.GET("", h.GetList)
	g.GET("/:id", h.Get)

	// Authenticated
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		// 创建文章仅要求认证，不设最低角色
		auth.POST("", h.Create)
		auth.PUT("/:id", middleware.CanUpdateArticle(repo), h.Update)
		auth.DELETE("/:id", middleware.CanDeleteArticle(repo), h.Delete)
	}
}
