package model

import (
	"time"

	usermodel "blog_platform/internal/domain/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxContentLength 评论内容上限
const MaxContentLength = 1000

// Comment 评论模型
// ParentID 为空表示顶层评论；父评论必须属于同一篇文章
// 评论树通过 parent 反向引用构成，删除时级联清除整个回复子树
type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	ArticleID string    `gorm:"type:uuid;not null;index" json:"articleId"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"authorId"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parentCommentId"`
	CreatedAt time.Time `json:"createdAt"`

	// 关联
	Author *usermodel.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Replies 仅在组装评论树时填充，不持久化
	Replies []*Comment `gorm:"-" json:"replies,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate 钩子：生成 UUID
func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
