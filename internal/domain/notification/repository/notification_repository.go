package repository

import (
	"time"

	"blog_platform/internal/domain/notification/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	GetList(recipient string, unreadOnly bool, limit int) ([]model.Notification, error)
	UnreadCount(recipient string) (int64, error)
	GetByIDAndRecipient(id, recipient string) (*model.Notification, error)
	Update(n *model.Notification) error
	MarkAllRead(recipient string) (int64, error)
	Delete(n *model.Notification) error
	DeleteAll(recipient string) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) GetList(recipient string, unreadOnly bool, limit int) ([]model.Notification, error) {
	query := r.db.Where("recipient = ?", recipient)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []model.Notification
	err := query.Order("created_at desc").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) UnreadCount(recipient string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("recipient = ? AND read = ?", recipient, false).
		Count(&count).Error
	return count, err
}

// GetByIDAndRecipient 按 ID + 接收者查询
// 接收者不匹配与记录不存在返回同样的 ErrRecordNotFound，避免泄露他人通知的存在性
func (r *notificationRepository) GetByIDAndRecipient(id, recipient string) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.Where("id = ? AND recipient = ?", id, recipient).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Update(n *model.Notification) error {
	return r.db.Save(n).Error
}

func (r *notificationRepository) MarkAllRead(recipient string) (int64, error) {
	result := r.db.Model(&model.Notification{}).
		Where("recipient = ? AND read = ?", recipient, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) Delete(n *model.Notification) error {
	return r.db.Delete(n).Error
}

func (r *notificationRepository) DeleteAll(recipient string) (int64, error) {
	result := r.db.Where("recipient = ?", recipient).Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

// DeleteOlderThan 清除早于 cutoff 的通知，保留期策略由后台清理协程执行
func (r *notificationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
