package handler

import (
	"blog_platform/internal/domain/user/service"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册新用户，默认角色 Reader
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, []string{err.Error()})
		return
	}

	result, err := h.service.Register(input.Username, input.Email, input.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, "User registered successfully", result)
}

// Login 登录
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, []string{err.Error()})
		return
	}

	result, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, "Login successful", result)
}

// Me 当前用户信息
func (h *UserHandler) Me(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	user, err := h.service.GetByID(actor.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user.Public())
}
