package middleware

import (
	"net/http"
	"strings"

	"blog_platform/internal/pkg/roles"
	"blog_platform/pkg/response"
	"blog_platform/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ActorKey 请求上下文中的操作者键
const ActorKey = "actor"

// Actor 经过认证的操作者，一次请求内不可变
type Actor struct {
	ID       string
	Username string
	Role     roles.Role
}

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		// 检查格式 "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ActorKey, &Actor{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     roles.Role(claims.Role),
		})

		c.Next()
	}
}

// GetActor 从上下文获取操作者
func GetActor(c *gin.Context) (*Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return nil, false
	}
	actor, ok := v.(*Actor)
	return actor, ok
}

// MustGetActor 获取操作者，仅在认证中间件之后使用
func MustGetActor(c *gin.Context) *Actor {
	return c.MustGet(ActorKey).(*Actor)
}

// RequireRole 角色检查中间件，操作者角色必须在允许列表中
func RequireRole(allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, r := range allowed {
			if actor.Role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Access denied. Insufficient permissions.", gin.H{
			"requiredRoles": allowed,
			"userRole":      actor.Role,
		})
		c.Abort()
	}
}

// RequireMinimumRole 最低角色等级检查中间件
func RequireMinimumRole(minimum roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if !roles.HasMinimumRole(actor.Role, minimum) {
			response.Forbidden(c, "Access denied. Insufficient permissions.", gin.H{
				"requiredRole": minimum,
				"userRole":     actor.Role,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
