package handler

import (
	"blog_platform/internal/domain/like/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/pkg/response"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	service service.LikeService
}

func NewLikeHandler(s service.LikeService) *LikeHandler {
	return &LikeHandler{service: s}
}

// ToggleInput 点赞输入
type ToggleInput struct {
	ArticleID string `json:"articleId" binding:"required"`
}

// Toggle 点赞/取消点赞
func (h *LikeHandler) Toggle(c *gin.Context) {
	var input ToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, []string{err.Error()})
		return
	}

	actor := middleware.MustGetActor(c)
	result, err := h.service.Toggle(actor.ID, input.ArticleID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if result.Liked {
		response.Created(c, "Article liked successfully", result)
	} else {
		response.Message(c, "Article unliked successfully", result)
	}
}

// GetByArticle 获取文章点赞列表
func (h *LikeHandler) GetByArticle(c *gin.Context) {
	result, err := h.service.GetByArticle(c.Param("articleId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// Check 查询当前用户是否已点赞
func (h *LikeHandler) Check(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	liked, likeID, err := h.service.CheckUserLike(actor.ID, c.Param("articleId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	data := gin.H{"liked": liked}
	if liked {
		data["likeId"] = likeID
	}
	response.Success(c, data)
}

// GetByUser 获取用户点赞过的文章
func (h *LikeHandler) GetByUser(c *gin.Context) {
	likes, err := h.service.GetByUser(c.Param("userId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"userId": c.Param("userId"),
		"count":  len(likes),
		"likes":  likes,
	})
}
