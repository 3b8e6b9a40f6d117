package realtime

import (
	"net/http"
	"strings"

	"blog_platform/pkg/logger"
	"blog_platform/pkg/response"
	"blog_platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域校验交给网关层的 CORS 配置
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS websocket 握手入口
// 凭证可以放在 token 查询参数或 Authorization 头，校验失败在升级前返回 401
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			if logger.Log != nil {
				logger.Log.Warn("websocket upgrade failed", zap.Error(err))
			}
			return
		}

		client := newClient(hub, conn, claims.UserID, claims.Username)
		hub.register(client)

		go client.writePump()
		go client.readPump()
	}
}
