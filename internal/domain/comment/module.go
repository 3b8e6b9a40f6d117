package comment

import (
	articlerepo "blog_platform/internal/domain/article/repository"
	"blog_platform/internal/domain/comment/handler"
	"blog_platform/internal/domain/comment/repository"
	"blog_platform/internal/domain/comment/service"
	userrepo "blog_platform/internal/domain/user/repository"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommentModule 评论模块
type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 20
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewCommentRepository(ctx.DB)
	articles := articlerepo.NewArticleRepository(ctx.DB)
	users := userrepo.NewUserRepository(ctx.DB)
	svc := service.NewCommentService(repo, articles, users, ctx.Bus)
	h := handler.NewCommentHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CommentHandler) {
	g := r.Group("/api/comments")

	// Public
	g.GET("/article/:articleId", h.GetByArticle)

	// Authenticated
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.Create)
		auth.DELETE("/:id", h.Delete)
	}
}
