package middleware

import (
	"errors"
	"fmt"
	"net/http"

	articlemodel "blog_platform/internal/domain/article/model"
	"blog_platform/internal/pkg/roles"
	"blog_platform/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ArticleKey 权限中间件加载的文章，供后续 handler 复用
const ArticleKey = "article"

// ArticleGetter 文章读取接口，由 article 仓储实现
type ArticleGetter interface {
	GetByID(id string) (*articlemodel.Article, error)
}

func loadArticle(c *gin.Context, getter ArticleGetter) (*articlemodel.Article, bool) {
	article, err := getter.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Article not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "Error checking permissions")
		}
		c.Abort()
		return nil, false
	}
	return article, true
}

// CanUpdateArticle 文章更新权限
// Admin/Editor 可更新任意文章，Writer 仅限自己的文章，其余拒绝
func CanUpdateArticle(getter ArticleGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		article, ok := loadArticle(c, getter)
		if !ok {
			return
		}

		actor := MustGetActor(c)
		isAuthor := article.AuthorID == actor.ID

		if actor.Role == roles.RoleAdmin || actor.Role == roles.RoleEditor ||
			(actor.Role == roles.RoleWriter && isAuthor) {
			c.Set(ArticleKey, article)
			c.Next()
			return
		}

		response.Forbidden(c, "You do not have permission to update this article", gin.H{
			"yourRole": actor.Role,
			"isAuthor": isAuthor,
			"required": fmt.Sprintf("%s, %s, or be the article author (%s)",
				roles.RoleAdmin, roles.RoleEditor, roles.RoleWriter),
		})
		c.Abort()
	}
}

// CanDeleteArticle 文章删除权限，仅限 Admin，比更新更严格
func CanDeleteArticle(getter ArticleGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		article, ok := loadArticle(c, getter)
		if !ok {
			return
		}

		actor := MustGetActor(c)
		if actor.Role == roles.RoleAdmin {
			c.Set(ArticleKey, article)
			c.Next()
			return
		}

		response.Forbidden(c, "Only Admins can delete articles", gin.H{
			"yourRole": actor.Role,
			"required": roles.RoleAdmin,
		})
		c.Abort()
	}
}
