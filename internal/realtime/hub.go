package realtime

import (
	"encoding/json"
	"sync"

	"blog_platform/internal/pkg/events"
	"blog_platform/pkg/logger"

	"go.uber.org/zap"
)

// Message 下行消息帧
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub 连接中枢
// 维护两类房间：按文章的广播房间（显式加入/离开）和按用户的个人房间（连接即隐式加入）
// 房间成员关系是纯运行时状态，连接断开即清除，不做任何持久化
type Hub struct {
	mu sync.RWMutex

	clients      map[*Client]struct{}
	userRooms    map[string]map[*Client]struct{} // userID -> connections
	articleRooms map[string]map[*Client]struct{} // articleID -> connections
}

// NewHub 创建连接中枢
func NewHub() *Hub {
	return &Hub{
		clients:      make(map[*Client]struct{}),
		userRooms:    make(map[string]map[*Client]struct{}),
		articleRooms: make(map[string]map[*Client]struct{}),
	}
}

// register 登记连接并加入个人房间
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	if h.userRooms[c.UserID] == nil {
		h.userRooms[c.UserID] = make(map[*Client]struct{})
	}
	h.userRooms[c.UserID][c] = struct{}{}

	connectedClients.Set(float64(len(h.clients)))
	if logger.Log != nil {
		logger.Log.Info("websocket connected",
			zap.String("user_id", c.UserID),
			zap.String("connection_id", c.ID),
		)
	}
}

// unregister 注销连接，清除全部房间成员关系
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.closeSend()

	if room, ok := h.userRooms[c.UserID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.userRooms, c.UserID)
		}
	}
	for articleID := range c.rooms {
		h.removeFromArticleRoomLocked(c, articleID)
	}

	connectedClients.Set(float64(len(h.clients)))
	articleRoomCount.Set(float64(len(h.articleRooms)))
	if logger.Log != nil {
		logger.Log.Info("websocket disconnected",
			zap.String("user_id", c.UserID),
			zap.String("connection_id", c.ID),
		)
	}
}

// JoinArticle 加入文章房间
func (h *Hub) JoinArticle(c *Client, articleID string) {
	if articleID == "" {
		return
	}

	h.mu.Lock()
	if h.articleRooms[articleID] == nil {
		h.articleRooms[articleID] = make(map[*Client]struct{})
	}
	h.articleRooms[articleID][c] = struct{}{}
	c.rooms[articleID] = struct{}{}
	articleRoomCount.Set(float64(len(h.articleRooms)))
	h.mu.Unlock()

	// 通知房间内其他成员
	h.broadcastToArticleExcept(articleID, c, "userJoined", map[string]interface{}{
		"userId":    c.UserID,
		"articleId": articleID,
	})
}

// LeaveArticle 离开文章房间
func (h *Hub) LeaveArticle(c *Client, articleID string) {
	h.mu.Lock()
	h.removeFromArticleRoomLocked(c, articleID)
	articleRoomCount.Set(float64(len(h.articleRooms)))
	h.mu.Unlock()

	h.broadcastToArticleExcept(articleID, c, "userLeft", map[string]interface{}{
		"userId":    c.UserID,
		"articleId": articleID,
	})
}

func (h *Hub) removeFromArticleRoomLocked(c *Client, articleID string) {
	if room, ok := h.articleRooms[articleID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.articleRooms, articleID)
		}
	}
	delete(c.rooms, articleID)
}

// BroadcastToArticle 向文章房间内所有连接投递事件
// 投递语义：仅到达发射时刻已在房间内的连接；空房间是空操作，不是错误
func (h *Hub) BroadcastToArticle(articleID, event string, data interface{}) {
	h.mu.RLock()
	room := h.articleRooms[articleID]
	targets := make([]*Client, 0, len(room))
	for c := range room {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	h.deliver(targets, event, data)
}

// broadcastToArticleExcept 向文章房间内除 except 外的连接投递事件
func (h *Hub) broadcastToArticleExcept(articleID string, except *Client, event string, data interface{}) {
	h.mu.RLock()
	room := h.articleRooms[articleID]
	targets := make([]*Client, 0, len(room))
	for c := range room {
		if c != except {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	h.deliver(targets, event, data)
}

// BroadcastToUser 向某用户的全部在线连接投递事件
// 用户离线时事件在实时通道丢失，由通知引擎的持久化记录兜底
func (h *Hub) BroadcastToUser(userID, event string, data interface{}) {
	h.mu.RLock()
	room := h.userRooms[userID]
	targets := make([]*Client, 0, len(room))
	for c := range room {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	h.deliver(targets, event, data)
}

// deliver 序列化并投递；慢连接（发送缓冲满）直接丢弃该条消息
func (h *Hub) deliver(targets []*Client, event string, data interface{}) {
	if len(targets) == 0 {
		return
	}

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		if logger.Log != nil {
			logger.Log.Error("failed to marshal realtime message",
				zap.String("event", event), zap.Error(err))
		}
		return
	}

	for _, c := range targets {
		// 目标在快照后、投递前断开时 trySend 直接失败，不会写入已关闭的通道
		if !c.trySend(payload) {
			if logger.Log != nil {
				logger.Log.Warn("dropping message, client gone or send buffer full",
					zap.String("user_id", c.UserID),
					zap.String("event", event),
				)
			}
		}
	}
	messagesBroadcast.WithLabelValues(event).Add(float64(len(targets)))
}

// HandleEvent 事件总线消费入口，与通知引擎互相独立
// 外部事件名是与前端的既有契约，不可改动
func (h *Hub) HandleEvent(e events.Event) {
	switch e.Type {
	case events.TypeNewComment, events.TypeNewReply:
		if e.Comment == nil {
			return
		}
		comment := map[string]interface{}{
			"id":              e.Comment.ID,
			"content":         e.Comment.Content,
			"articleId":       e.Article.ID,
			"parentCommentId": e.Comment.ParentID,
			"createdAt":       e.Comment.CreatedAt,
			"author":          e.Actor,
			"article": map[string]interface{}{
				"id":    e.Article.ID,
				"title": e.Article.Title,
			},
		}
		h.BroadcastToArticle(e.Article.ID, "newComment", comment)

		article := map[string]interface{}{"id": e.Article.ID, "title": e.Article.Title}
		if e.Type == events.TypeNewComment && e.Article.AuthorID != e.Actor.ID {
			h.BroadcastToUser(e.Article.AuthorID, "commentNotification", map[string]interface{}{
				"message": "New comment on your article: " + e.Article.Title,
				"comment": comment,
				"article": article,
			})
		}
		if e.Type == events.TypeNewReply && e.ParentAuthorID != "" && e.ParentAuthorID != e.Actor.ID {
			h.BroadcastToUser(e.ParentAuthorID, "replyNotification", map[string]interface{}{
				"message": e.Actor.Username + " replied to your comment on: " + e.Article.Title,
				"comment": comment,
				"article": article,
			})
		}

	case events.TypeNewLike:
		h.BroadcastToArticle(e.Article.ID, "likeArticle", map[string]interface{}{
			"articleId": e.Article.ID,
			"userId":    e.Actor.ID,
			"likeId":    e.LikeID,
			"user":      e.Actor,
		})
		if e.Article.AuthorID != e.Actor.ID {
			h.BroadcastToUser(e.Article.AuthorID, "likeNotification", map[string]interface{}{
				"message": e.Actor.Username + " liked your article: " + e.Article.Title,
				"like": map[string]interface{}{
					"id":        e.LikeID,
					"articleId": e.Article.ID,
					"userId":    e.Actor.ID,
				},
				"article": map[string]interface{}{"id": e.Article.ID, "title": e.Article.Title},
			})
		}

	case events.TypeUnlike:
		// 取消点赞只广播，不产生用户通知
		h.BroadcastToArticle(e.Article.ID, "unlikeArticle", map[string]interface{}{
			"articleId": e.Article.ID,
			"userId":    e.Actor.ID,
			"likeId":    e.LikeID,
		})

	case events.TypeCommentDeleted:
		if e.Comment == nil {
			return
		}
		h.BroadcastToArticle(e.Article.ID, "commentDeleted", map[string]interface{}{
			"commentId": e.Comment.ID,
			"articleId": e.Article.ID,
		})
	}
}
