package model

import (
	"encoding/json"

	usermodel "blog_platform/internal/domain/user/model"
	basemodel "blog_platform/pkg/model"
)

// Article 文章模型
// 作者在创建后不可变更，删除仅限 Admin
type Article struct {
	basemodel.BaseModel
	Title    string          `gorm:"size:200;not null" json:"title"`
	Content  string          `gorm:"type:text;not null" json:"content"`
	Tags     json.RawMessage `gorm:"type:jsonb" json:"tags"`
	Image    string          `gorm:"size:500" json:"image,omitempty"`
	AuthorID string          `gorm:"type:uuid;not null;index" json:"authorId"`

	// 关联
	Author *usermodel.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}
