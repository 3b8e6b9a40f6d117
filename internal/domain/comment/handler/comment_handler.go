package handler

import (
	"blog_platform/internal/domain/comment/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// CreateInput 创建评论输入
type CreateInput struct {
	Content         string  `json:"content" binding:"required"`
	ArticleID       string  `json:"articleId" binding:"required"`
	ParentCommentID *string `json:"parentCommentId"`
}

// Create 创建评论或回复
func (h *CommentHandler) Create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, []string{err.Error()})
		return
	}

	actor := middleware.MustGetActor(c)
	comment, err := h.service.Create(actor.ID, input.ArticleID, input.Content, input.ParentCommentID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, "Comment created successfully", comment)
}

// GetByArticle 获取文章评论树
func (h *CommentHandler) GetByArticle(c *gin.Context) {
	result, err := h.service.GetByArticle(c.Param("articleId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除评论及其回复子树（作者或 Admin）
func (h *CommentHandler) Delete(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	if _, err := h.service.Delete(actor.ID, actor.Role, c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, "Comment and its replies deleted successfully", nil)
}
