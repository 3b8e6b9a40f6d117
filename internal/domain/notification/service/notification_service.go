package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog_platform/internal/domain/notification/model"
	"blog_platform/internal/domain/notification/repository"
	"blog_platform/internal/pkg/events"
	"blog_platform/pkg/apperrors"
	"blog_platform/pkg/cache"
	"blog_platform/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultListLimit 通知列表默认条数
const DefaultListLimit = 50

// 未读数缓存
const (
	unreadCacheKeyPrefix = "notifications:unread:"
	unreadCacheTTL       = time.Minute * 5
)

// ListResult 通知列表与未读数
type ListResult struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unreadCount"`
}

type NotificationService interface {
	HandleEvent(e events.Event)
	List(recipient string, unreadOnly bool, limit int) (*ListResult, error)
	UnreadCount(recipient string) (int64, error)
	MarkRead(recipient, id string) (*model.Notification, error)
	MarkAllRead(recipient string) (int64, error)
	Delete(recipient, id string) error
	DeleteAll(recipient string) (int64, error)
	StartRetentionSweeper(ctx context.Context, interval time.Duration)
}

type notificationService struct {
	repo  repository.NotificationRepository
	cache cache.CacheService
}

func NewNotificationService(repo repository.NotificationRepository, c cache.CacheService) NotificationService {
	return &notificationService{repo: repo, cache: c}
}

func (s *notificationService) unreadCacheKey(recipient string) string {
	return unreadCacheKeyPrefix + recipient
}

func (s *notificationService) invalidateUnreadCache(recipient string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, s.unreadCacheKey(recipient)); err != nil && logger.Log != nil {
		logger.Log.Warn("failed to invalidate unread cache",
			zap.String("recipient", recipient), zap.Error(err))
	}
}

// HandleEvent 事件总线消费入口
// 通知创建是 fire-and-forget：失败只记日志，绝不影响触发它的领域操作
func (s *notificationService) HandleEvent(e events.Event) {
	var n *model.Notification

	switch e.Type {
	case events.TypeNewComment:
		// 顶层评论通知文章作者；自己评论自己的文章不通知
		if e.Article.AuthorID == e.Actor.ID {
			return
		}
		n = &model.Notification{
			Recipient:    e.Article.AuthorID,
			Type:         model.TypeComment,
			Title:        "New Comment",
			Message:      fmt.Sprintf("New comment on your article: %s", e.Article.Title),
			ArticleID:    e.Article.ID,
			ArticleTitle: e.Article.Title,
		}
		if e.Comment != nil {
			n.CommentID = &e.Comment.ID
		}

	case events.TypeNewReply:
		// 回复只通知父评论作者，不通知文章作者；回复自己不通知
		if e.ParentAuthorID == "" || e.ParentAuthorID == e.Actor.ID {
			return
		}
		n = &model.Notification{
			Recipient:    e.ParentAuthorID,
			Type:         model.TypeReply,
			Title:        "New Reply",
			Message:      fmt.Sprintf("%s replied to your comment on: %s", e.Actor.Username, e.Article.Title),
			ArticleID:    e.Article.ID,
			ArticleTitle: e.Article.Title,
		}
		if e.Comment != nil {
			n.CommentID = &e.Comment.ID
		}

	case events.TypeNewLike:
		// 点赞通知文章作者；自己点赞自己的文章不通知
		if e.Article.AuthorID == e.Actor.ID {
			return
		}
		n = &model.Notification{
			Recipient:    e.Article.AuthorID,
			Type:         model.TypeLike,
			Title:        "New Like",
			Message:      fmt.Sprintf("%s liked your article: %s", e.Actor.Username, e.Article.Title),
			ArticleID:    e.Article.ID,
			ArticleTitle: e.Article.Title,
		}

	default:
		// 取消点赞、删除评论不产生通知
		return
	}

	if err := s.repo.Create(n); err != nil {
		if logger.Log != nil {
			logger.Log.Error("failed to create notification",
				zap.String("recipient", n.Recipient),
				zap.String("type", string(n.Type)),
				zap.Error(err),
			)
		}
		return
	}

	s.invalidateUnreadCache(n.Recipient)
}

// List 通知列表，按创建时间倒序，附带未读数
func (s *notificationService) List(recipient string, unreadOnly bool, limit int) (*ListResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	notifications, err := s.repo.GetList(recipient, unreadOnly, limit)
	if err != nil {
		return nil, apperrors.Internal("Error fetching notifications", err)
	}

	unread, err := s.UnreadCount(recipient)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}
	return &ListResult{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// UnreadCount 未读数，短期缓存
func (s *notificationService) UnreadCount(recipient string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := s.unreadCacheKey(recipient)
	if s.cache != nil {
		var cached int64
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	count, err := s.repo.UnreadCount(recipient)
	if err != nil {
		return 0, apperrors.Internal("Error fetching unread count", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, count, unreadCacheTTL)
	}
	return count, nil
}

// MarkRead 标记单条已读，严格限定接收者
// 接收者不匹配与 ID 不存在返回同样的 NotFound
func (s *notificationService) MarkRead(recipient, id string) (*model.Notification, error) {
	n, err := s.repo.GetByIDAndRecipient(id, recipient)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Notification not found")
		}
		return nil, apperrors.Internal("Error fetching notification", err)
	}

	if !n.Read {
		n.Read = true
		if err := s.repo.Update(n); err != nil {
			return nil, apperrors.Internal("Error updating notification", err)
		}
		s.invalidateUnreadCache(recipient)
	}
	return n, nil
}

// MarkAllRead 全部标记已读，返回受影响条数
func (s *notificationService) MarkAllRead(recipient string) (int64, error) {
	count, err := s.repo.MarkAllRead(recipient)
	if err != nil {
		return 0, apperrors.Internal("Error updating notifications", err)
	}
	s.invalidateUnreadCache(recipient)
	return count, nil
}

// Delete 删除单条，严格限定接收者
func (s *notificationService) Delete(recipient, id string) error {
	n, err := s.repo.GetByIDAndRecipient(id, recipient)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Notification not found")
		}
		return apperrors.Internal("Error fetching notification", err)
	}

	if err := s.repo.Delete(n); err != nil {
		return apperrors.Internal("Error deleting notification", err)
	}
	s.invalidateUnreadCache(recipient)
	return nil
}

// DeleteAll 删除接收者的全部通知，返回删除条数
func (s *notificationService) DeleteAll(recipient string) (int64, error) {
	count, err := s.repo.DeleteAll(recipient)
	if err != nil {
		return 0, apperrors.Internal("Error deleting notifications", err)
	}
	s.invalidateUnreadCache(recipient)
	return count, nil
}

// StartRetentionSweeper 启动后台清理协程
// 定期删除超过保留期（30 天）的通知，无论已读与否
func (s *notificationService) StartRetentionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-model.RetentionPeriod)
				deleted, err := s.repo.DeleteOlderThan(cutoff)
				if err != nil {
					if logger.Log != nil {
						logger.Log.Error("notification retention sweep failed", zap.Error(err))
					}
					continue
				}
				if deleted > 0 && logger.Log != nil {
					logger.Log.Info("notification retention sweep",
						zap.Int64("deleted", deleted),
						zap.Time("cutoff", cutoff),
					)
				}
			}
		}
	}()
}
