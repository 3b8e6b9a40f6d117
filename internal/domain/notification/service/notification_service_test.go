package service

import (
	"errors"
	"testing"
	"time"

	"blog_platform/internal/domain/notification/model"
	"blog_platform/internal/pkg/events"
	"blog_platform/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockNotificationRepository is a mock of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetList(recipient string, unreadOnly bool, limit int) ([]model.Notification, error) {
	args := m.Called(recipient, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) UnreadCount(recipient string) (int64, error) {
	args := m.Called(recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) GetByIDAndRecipient(id, recipient string) (*model.Notification, error) {
	args := m.Called(id, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(recipient string) (int64, error) {
	args := m.Called(recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteAll(recipient string) (int64, error) {
	args := m.Called(recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func commentEvent(actorID, articleAuthorID string) events.Event {
	return events.Event{
		Type:    events.TypeNewComment,
		Article: events.ArticleRef{ID: "article-1", Title: "Go Tips", AuthorID: articleAuthorID},
		Actor:   events.UserRef{ID: actorID, Username: "bob"},
		Comment: &events.CommentRef{ID: "comment-1", Content: "nice"},
	}
}

func TestHandleEvent(t *testing.T) {
	t.Run("Comment on another user's article creates a notification", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		mockRepo.On("Create", mock.AnythingOfType("*model.Notification")).Run(func(args mock.Arguments) {
			n := args.Get(0).(*model.Notification)
			assert.Equal(t, "author-1", n.Recipient)
			assert.Equal(t, model.TypeComment, n.Type)
			assert.Equal(t, "New Comment", n.Title)
			assert.Equal(t, "New comment on your article: Go Tips", n.Message)
			assert.Equal(t, "article-1", n.ArticleID)
			assert.Equal(t, "comment-1", *n.CommentID)
			assert.False(t, n.Read)
		}).Return(nil)

		svc.HandleEvent(commentEvent("reader-1", "author-1"))

		mockRepo.AssertExpectations(t)
	})

	t.Run("Comment on own article is skipped", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		svc.HandleEvent(commentEvent("author-1", "author-1"))

		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Reply notifies the parent comment author, not the article author", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		mockRepo.On("Create", mock.AnythingOfType("*model.Notification")).Run(func(args mock.Arguments) {
			n := args.Get(0).(*model.Notification)
			assert.Equal(t, "parent-author", n.Recipient)
			assert.Equal(t, model.TypeReply, n.Type)
			assert.Equal(t, "bob replied to your comment on: Go Tips", n.Message)
		}).Return(nil)

		e := commentEvent("reader-1", "article-author")
		e.Type = events.TypeNewReply
		e.ParentAuthorID = "parent-author"
		svc.HandleEvent(e)

		mockRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Reply to own comment is skipped", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		e := commentEvent("reader-1", "article-author")
		e.Type = events.TypeNewReply
		e.ParentAuthorID = "reader-1"
		svc.HandleEvent(e)

		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Like notifies the article author", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		mockRepo.On("Create", mock.AnythingOfType("*model.Notification")).Run(func(args mock.Arguments) {
			n := args.Get(0).(*model.Notification)
			assert.Equal(t, "author-1", n.Recipient)
			assert.Equal(t, model.TypeLike, n.Type)
			assert.Equal(t, "bob liked your article: Go Tips", n.Message)
			assert.Nil(t, n.CommentID)
		}).Return(nil)

		svc.HandleEvent(events.Event{
			Type:    events.TypeNewLike,
			Article: events.ArticleRef{ID: "article-1", Title: "Go Tips", AuthorID: "author-1"},
			Actor:   events.UserRef{ID: "reader-1", Username: "bob"},
			LikeID:  "like-1",
		})

		mockRepo.AssertExpectations(t)
	})

	t.Run("Unlike and comment deletion never create notifications", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		svc.HandleEvent(events.Event{
			Type:    events.TypeUnlike,
			Article: events.ArticleRef{ID: "article-1", AuthorID: "author-1"},
			Actor:   events.UserRef{ID: "reader-1"},
		})
		svc.HandleEvent(events.Event{
			Type:    events.TypeCommentDeleted,
			Article: events.ArticleRef{ID: "article-1", AuthorID: "author-1"},
			Comment: &events.CommentRef{ID: "comment-1"},
		})

		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Storage failure is swallowed", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		mockRepo.On("Create", mock.AnythingOfType("*model.Notification")).Return(errors.New("connection refused"))

		// must not panic or propagate
		svc.HandleEvent(commentEvent("reader-1", "author-1"))
	})
}

func TestListNotifications(t *testing.T) {
	t.Run("Defaults the limit and includes the unread count", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		items := []model.Notification{{ID: "n1", Recipient: "user-1"}}
		mockRepo.On("GetList", "user-1", false, DefaultListLimit).Return(items, nil)
		mockRepo.On("UnreadCount", "user-1").Return(int64(1), nil)

		result, err := svc.List("user-1", false, 0)

		assert.NoError(t, err)
		assert.Len(t, result.Notifications, 1)
		assert.Equal(t, int64(1), result.UnreadCount)
	})

	t.Run("Empty list is a list, not null", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		mockRepo.On("GetList", "user-1", true, 10).Return([]model.Notification(nil), nil)
		mockRepo.On("UnreadCount", "user-1").Return(int64(0), nil)

		result, err := svc.List("user-1", true, 10)

		assert.NoError(t, err)
		assert.NotNil(t, result.Notifications)
		assert.Len(t, result.Notifications, 0)
	})
}

func TestMarkRead(t *testing.T) {
	t.Run("Marks an unread notification read", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		n := &model.Notification{ID: "n1", Recipient: "user-1", Read: false}
		mockRepo.On("GetByIDAndRecipient", "n1", "user-1").Return(n, nil)
		mockRepo.On("Update", n).Return(nil)

		result, err := svc.MarkRead("user-1", "n1")

		assert.NoError(t, err)
		assert.True(t, result.Read)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Already read is idempotent", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		n := &model.Notification{ID: "n1", Recipient: "user-1", Read: true}
		mockRepo.On("GetByIDAndRecipient", "n1", "user-1").Return(n, nil)

		result, err := svc.MarkRead("user-1", "n1")

		assert.NoError(t, err)
		assert.True(t, result.Read)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("Another user's notification reads as not found", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		mockRepo.On("GetByIDAndRecipient", "n1", "intruder").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.MarkRead("intruder", "n1")

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Contains(t, err.Error(), "Notification not found")
	})
}

func TestMarkAllRead(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	mockRepo.On("MarkAllRead", "user-1").Return(int64(5), nil)

	count, err := svc.MarkAllRead("user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestDeleteNotification(t *testing.T) {
	t.Run("Deletes own notification", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		n := &model.Notification{ID: "n1", Recipient: "user-1"}
		mockRepo.On("GetByIDAndRecipient", "n1", "user-1").Return(n, nil)
		mockRepo.On("Delete", n).Return(nil)

		assert.NoError(t, svc.Delete("user-1", "n1"))
	})

	t.Run("Another user's notification reads as not found", func(t *testing.T) {
		mockRepo := new(MockNotificationRepository)
		svc := NewNotificationService(mockRepo, nil)

		mockRepo.On("GetByIDAndRecipient", "n1", "intruder").Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete("intruder", "n1")

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestDeleteAllNotifications(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	mockRepo.On("DeleteAll", "user-1").Return(int64(7), nil)

	count, err := svc.DeleteAll("user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
