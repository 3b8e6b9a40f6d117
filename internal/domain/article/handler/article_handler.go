package handler

import (
	articlemodel "blog_platform/internal/domain/article/model"
	"blog_platform/internal/domain/article/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/pkg/response"
	"blog_platform/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	service service.ArticleService
}

func NewArticleHandler(s service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: s}
}

// CreateInput 创建文章输入
type CreateInput struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
	Image   string   `json:"image"`
}

// UpdateInput 更新文章输入
type UpdateInput struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
	Image   *string  `json:"image"`
}

// Create 创建文章
func (h *ArticleHandler) Create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, []string{err.Error()})
		return
	}

	actor := middleware.MustGetActor(c)
	article, err := h.service.Create(actor.ID, service.CreateInput{
		Title:   input.Title,
		Content: input.Content,
		Tags:    input.Tags,
		Image:   input.Image,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, "Article created successfully", article)
}

// Get 获取单篇文章
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, article)
}

// GetList 文章列表，按创建时间倒序
func (h *ArticleHandler) GetList(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset() // 归一化 page/limit

	articles, total, err := h.service.GetList(p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{
		List:  articles,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// Update 更新文章，权限由 CanUpdateArticle 中间件保证
func (h *ArticleHandler) Update(c *gin.Context) {
	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, []string{err.Error()})
		return
	}

	article := c.MustGet(middleware.ArticleKey).(*articlemodel.Article)
	updated, err := h.service.Update(article, service.UpdateInput{
		Title:   input.Title,
		Content: input.Content,
		Tags:    input.Tags,
		Image:   input.Image,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, "Article updated successfully", updated)
}

// Delete 删除文章，权限由 CanDeleteArticle 中间件保证（仅 Admin）
func (h *ArticleHandler) Delete(c *gin.Context) {
	article := c.MustGet(middleware.ArticleKey).(*articlemodel.Article)
	if err := h.service.Delete(article); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, "Article deleted successfully", nil)
}
