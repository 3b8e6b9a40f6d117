package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"blog_platform/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client 单个 websocket 连接
type Client struct {
	ID       string
	UserID   string
	Username string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// sendMu 串行化 trySend 与 closeSend，保证不会向已关闭的通道写入
	sendMu sync.Mutex
	closed bool

	// 已加入的文章房间，仅 hub 持锁访问
	rooms map[string]struct{}
}

// trySend 非阻塞投递；连接已关闭或发送缓冲满则丢弃
func (c *Client) trySend(payload []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// closeSend 关闭发送通道，幂等
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func newClient(hub *Hub, conn *websocket.Conn, userID, username string) *Client {
	return &Client{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		rooms:    make(map[string]struct{}),
	}
}

// inbound 上行消息帧
type inbound struct {
	Event string `json:"event"`
	Data  struct {
		ArticleID string `json:"articleId"`
	} `json:"data"`
}

// readPump 读取客户端上行指令直至连接关闭
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				if logger.Log != nil {
					logger.Log.Warn("websocket read error",
						zap.String("user_id", c.UserID), zap.Error(err))
				}
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			// 无法解析的帧直接忽略
			continue
		}

		switch msg.Event {
		case "joinArticle":
			c.hub.JoinArticle(c, msg.Data.ArticleID)
		case "leaveArticle":
			c.hub.LeaveArticle(c, msg.Data.ArticleID)
		case "typing":
			c.hub.broadcastToArticleExcept(msg.Data.ArticleID, c, "userTyping", map[string]interface{}{
				"userId":    c.UserID,
				"username":  c.Username,
				"articleId": msg.Data.ArticleID,
			})
		case "stopTyping":
			c.hub.broadcastToArticleExcept(msg.Data.ArticleID, c, "userStoppedTyping", map[string]interface{}{
				"userId":    c.UserID,
				"articleId": msg.Data.ArticleID,
			})
		}
	}
}

// writePump 串行写出下行消息并维持心跳
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
