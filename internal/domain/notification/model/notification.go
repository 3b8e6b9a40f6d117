package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType 通知类型
type NotificationType string

const (
	TypeComment NotificationType = "comment"
	TypeReply   NotificationType = "reply"
	TypeLike    NotificationType = "like"
)

// RetentionPeriod 通知保留期限，超期自动清除（无论已读与否）
const RetentionPeriod = 30 * 24 * time.Hour

// Notification 通知模型
// 只由通知引擎在评论/回复/点赞事件发生时创建，客户端不能直接写入
// ArticleTitle 为创建时的标题快照
type Notification struct {
	ID           string           `gorm:"primaryKey;type:uuid" json:"id"`
	Recipient    string           `gorm:"type:uuid;not null;index" json:"recipient"`
	Type         NotificationType `gorm:"type:varchar(10);not null" json:"type"`
	Title        string           `gorm:"size:100;not null" json:"title"`
	Message      string           `gorm:"type:text;not null" json:"message"`
	ArticleID    string           `gorm:"type:uuid;not null" json:"article"`
	ArticleTitle string           `gorm:"size:200;not null" json:"articleTitle"`
	CommentID    *string          `gorm:"type:uuid" json:"comment,omitempty"`
	Read         bool             `gorm:"default:false;index" json:"read"`
	CreatedAt    time.Time        `gorm:"index" json:"createdAt"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate 钩子：生成 UUID
func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
