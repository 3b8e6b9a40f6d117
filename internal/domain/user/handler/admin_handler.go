package handler

import (
	"fmt"

	"blog_platform/internal/domain/user/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/pkg/response"
	"blog_platform/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 用户管理接口，路由层已限定 Admin
type AdminHandler struct {
	service service.UserService
}

func NewAdminHandler(s service.UserService) *AdminHandler {
	return &AdminHandler{service: s}
}

// UpdateRoleInput 修改角色输入
type UpdateRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// GetUsers 用户列表
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	users, total, err := h.service.GetList(p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{
		List:  users,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// GetUser 获取单个用户
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user.Public())
}

// UpdateRole 修改用户角色，不允许修改自己
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, []string{err.Error()})
		return
	}

	actor := middleware.MustGetActor(c)
	profile, oldRole, err := h.service.UpdateRole(actor.ID, c.Param("id"), input.Role)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, fmt.Sprintf("User role updated from %s to %s", oldRole, input.Role), profile)
}

// DeleteUser 删除用户，不允许删除自己
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	if err := h.service.DeleteUser(actor.ID, c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, "User deleted successfully", nil)
}

// Stats 系统统计
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, stats)
}
