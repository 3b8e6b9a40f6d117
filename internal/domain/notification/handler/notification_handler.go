package handler

import (
	"fmt"
	"strconv"

	"blog_platform/internal/domain/notification/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

// GetList 当前用户的通知列表
func (h *NotificationHandler) GetList(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unreadOnly := c.Query("unreadOnly") == "true"

	result, err := h.service.List(actor.ID, unreadOnly, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// UnreadCount 未读通知数
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	count, err := h.service.UnreadCount(actor.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	n, err := h.service.MarkRead(actor.ID, c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, n)
}

// MarkAllRead 全部标记已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	count, err := h.service.MarkAllRead(actor.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, fmt.Sprintf("%d notifications marked as read", count), gin.H{"modifiedCount": count})
}

// Delete 删除单条通知
func (h *NotificationHandler) Delete(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	if err := h.service.Delete(actor.ID, c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, "Notification deleted", nil)
}

// DeleteAll 删除全部通知
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	count, err := h.service.DeleteAll(actor.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, fmt.Sprintf("%d notifications deleted", count), gin.H{"deletedCount": count})
}
