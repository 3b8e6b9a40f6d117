package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// 客户端必须以 success 字段判断业务结果，不能只看 HTTP 状态码
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created 创建成功响应 (201)
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Message 携带提示信息的成功响应
func Message(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, msg string) {
	c.JSON(httpCode, Response{
		Success: false,
		Message: msg,
	})
}

// ValidationErrors 参数校验失败响应 (400, errors 数组)
func ValidationErrors(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Errors:  errs,
	})
}

// Forbidden 权限不足响应，details 说明所需角色/归属关系
func Forbidden(c *gin.Context, msg string, details interface{}) {
	c.JSON(http.StatusForbidden, Response{
		Success: false,
		Message: msg,
		Details: details,
	})
}
