package model

import (
	"blog_platform/internal/pkg/roles"
	basemodel "blog_platform/pkg/model"
)

// User 用户模型
type User struct {
	basemodel.BaseModel
	Username string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email    string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string     `gorm:"not null" json:"-"` // 密码不返回给前端
	Role     roles.Role `gorm:"type:varchar(10);not null;default:'Reader'" json:"role"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// PublicProfile 对外公开的用户信息
type PublicProfile struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     roles.Role `json:"role"`
}

// Public 返回公开信息
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
