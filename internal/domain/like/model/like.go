package model

import (
	"time"

	usermodel "blog_platform/internal/domain/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like 点赞模型
// (user_id, article_id) 唯一约束由数据库保证，并发重复请求不会产生重复记录
type Like struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_article" json:"userId"`
	ArticleID string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_article;index" json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`

	// 关联
	User *usermodel.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Like) TableName() string {
	return "likes"
}

// BeforeCreate 钩子：生成 UUID
func (l *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}
