package service

import (
	"testing"
	"time"

	articlemodel "blog_platform/internal/domain/article/model"
	"blog_platform/internal/domain/comment/model"
	usermodel "blog_platform/internal/domain/user/model"
	"blog_platform/internal/pkg/events"
	"blog_platform/internal/pkg/roles"
	"blog_platform/pkg/apperrors"
	basemodel "blog_platform/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByIDWithAuthor(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByArticle(articleID string) ([]model.Comment, error) {
	args := m.Called(articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetChildIDs(parentIDs []string) ([]string, error) {
	args := m.Called(parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCommentRepository) DeleteSubtree(rootID string) (int64, error) {
	args := m.Called(rootID)
	return args.Get(0).(int64), args.Error(1)
}

// MockArticleReader is a mock of ArticleReader
type MockArticleReader struct {
	mock.Mock
}

func (m *MockArticleReader) GetByID(id string) (*articlemodel.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*articlemodel.Article), args.Error(1)
}

// MockUserReader is a mock of UserReader
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(id string) (*usermodel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usermodel.User), args.Error(1)
}

func testArticle(id, authorID string) *articlemodel.Article {
	a := &articlemodel.Article{
		Title:    "Test Article",
		Content:  "content",
		AuthorID: authorID,
	}
	a.ID = id
	return a
}

func testUser(id, username string) *usermodel.User {
	u := &usermodel.User{
		BaseModel: basemodel.BaseModel{ID: id},
		Username:  username,
		Email:     username + "@example.com",
		Role:      roles.RoleReader,
	}
	return u
}

// capturedEvents subscribes to the bus and collects published events.
func capturedEvents(bus *events.Bus) chan events.Event {
	ch := make(chan events.Event, 16)
	bus.Subscribe("test", func(e events.Event) {
		ch <- e
	})
	return ch
}

func waitEvent(t *testing.T, ch chan events.Event) events.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("expected an event but received none")
		return events.Event{}
	}
}

func assertNoEvent(t *testing.T, bus *events.Bus, ch chan events.Event) {
	t.Helper()
	bus.Close()
	select {
	case e := <-ch:
		t.Fatalf("expected no event, got %s", e.Type)
	default:
	}
}

func TestCreateComment(t *testing.T) {
	t.Run("Top level comment publishes new_comment event", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		mockArticles := new(MockArticleReader)
		mockUsers := new(MockUserReader)
		bus := events.NewBus(16)
		defer bus.Close()
		ch := capturedEvents(bus)
		svc := NewCommentService(mockRepo, mockArticles, mockUsers, bus)

		mockArticles.On("GetByID", "article-1").Return(testArticle("article-1", "author-1"), nil)
		mockUsers.On("GetByID", "reader-1").Return(testUser("reader-1", "bob"), nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Comment")).Return(nil)

		comment, err := svc.Create("reader-1", "article-1", "  great post  ", nil)

		assert.NoError(t, err)
		assert.Equal(t, "great post", comment.Content)
		assert.Nil(t, comment.ParentID)
		assert.Equal(t, "bob", comment.Author.Username)

		e := waitEvent(t, ch)
		assert.Equal(t, events.TypeNewComment, e.Type)
		assert.Equal(t, "author-1", e.Article.AuthorID)
		assert.Equal(t, "reader-1", e.Actor.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Reply publishes new_reply event with parent author", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		mockArticles := new(MockArticleReader)
		mockUsers := new(MockUserReader)
		bus := events.NewBus(16)
		defer bus.Close()
		ch := capturedEvents(bus)
		svc := NewCommentService(mockRepo, mockArticles, mockUsers, bus)

		parentID := "comment-parent"
		parent := &model.Comment{
			ID:        parentID,
			ArticleID: "article-1",
			AuthorID:  "parent-author",
		}
		mockArticles.On("GetByID", "article-1").Return(testArticle("article-1", "author-1"), nil)
		mockRepo.On("GetByID", parentID).Return(parent, nil)
		mockUsers.On("GetByID", "reader-1").Return(testUser("reader-1", "bob"), nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Comment")).Return(nil)

		comment, err := svc.Create("reader-1", "article-1", "agreed", &parentID)

		assert.NoError(t, err)
		assert.Equal(t, parentID, *comment.ParentID)

		e := waitEvent(t, ch)
		assert.Equal(t, events.TypeNewReply, e.Type)
		assert.Equal(t, "parent-author", e.ParentAuthorID)
	})

	t.Run("Empty content is rejected", func(t *testing.T) {
		svc := NewCommentService(new(MockCommentRepository), new(MockArticleReader), new(MockUserReader), events.NewBus(1))

		_, err := svc.Create("reader-1", "article-1", "   ", nil)

		assert.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "Comment content is required")
	})

	t.Run("Content over the limit is rejected", func(t *testing.T) {
		svc := NewCommentService(new(MockCommentRepository), new(MockArticleReader), new(MockUserReader), events.NewBus(1))

		long := make([]byte, model.MaxContentLength+1)
		for i := range long {
			long[i] = 'a'
		}

		_, err := svc.Create("reader-1", "article-1", string(long), nil)

		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "Comment must not exceed 1000 characters")
	})

	t.Run("Missing article returns not found", func(t *testing.T) {
		mockArticles := new(MockArticleReader)
		svc := NewCommentService(new(MockCommentRepository), mockArticles, new(MockUserReader), events.NewBus(1))

		mockArticles.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create("reader-1", "missing", "hello", nil)

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Contains(t, err.Error(), "Article not found")
	})

	t.Run("Missing parent returns not found", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		mockArticles := new(MockArticleReader)
		svc := NewCommentService(mockRepo, mockArticles, new(MockUserReader), events.NewBus(1))

		parentID := "missing-parent"
		mockArticles.On("GetByID", "article-1").Return(testArticle("article-1", "author-1"), nil)
		mockRepo.On("GetByID", parentID).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create("reader-1", "article-1", "hello", &parentID)

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Contains(t, err.Error(), "Parent comment not found")
	})

	t.Run("Deleted actor account fails authentication, not 500", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		mockArticles := new(MockArticleReader)
		mockUsers := new(MockUserReader)
		svc := NewCommentService(mockRepo, mockArticles, mockUsers, events.NewBus(1))

		mockArticles.On("GetByID", "article-1").Return(testArticle("article-1", "author-1"), nil)
		mockUsers.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create("ghost", "article-1", "hello", nil)

		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
		assert.Contains(t, err.Error(), "User account no longer exists")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Parent from another article is rejected", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		mockArticles := new(MockArticleReader)
		svc := NewCommentService(mockRepo, mockArticles, new(MockUserReader), events.NewBus(1))

		parentID := "comment-other"
		mockArticles.On("GetByID", "article-1").Return(testArticle("article-1", "author-1"), nil)
		mockRepo.On("GetByID", parentID).Return(&model.Comment{
			ID:        parentID,
			ArticleID: "article-2",
			AuthorID:  "someone",
		}, nil)

		_, err := svc.Create("reader-1", "article-1", "hello", &parentID)

		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "Parent comment does not belong to this article")
	})
}

func TestGetCommentsByArticle(t *testing.T) {
	t.Run("Builds the reply tree with newest roots first", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		mockArticles := new(MockArticleReader)
		svc := NewCommentService(mockRepo, mockArticles, new(MockUserReader), events.NewBus(1))

		base := time.Now().Add(-time.Hour)
		parentID := "root-old"
		flat := []model.Comment{
			{ID: "root-old", ArticleID: "article-1", Content: "first", CreatedAt: base},
			{ID: "reply-1", ArticleID: "article-1", Content: "reply one", ParentID: &parentID, CreatedAt: base.Add(time.Minute)},
			{ID: "root-new", ArticleID: "article-1", Content: "second", CreatedAt: base.Add(2 * time.Minute)},
			{ID: "reply-2", ArticleID: "article-1", Content: "reply two", ParentID: &parentID, CreatedAt: base.Add(3 * time.Minute)},
		}
		mockArticles.On("GetByID", "article-1").Return(testArticle("article-1", "author-1"), nil)
		mockRepo.On("GetByArticle", "article-1").Return(flat, nil)

		result, err := svc.GetByArticle("article-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Count)
		assert.Equal(t, "root-new", result.Comments[0].ID)
		assert.Equal(t, "root-old", result.Comments[1].ID)
		// replies stay in chronological order under their parent
		replies := result.Comments[1].Replies
		assert.Len(t, replies, 2)
		assert.Equal(t, "reply-1", replies[0].ID)
		assert.Equal(t, "reply-2", replies[1].ID)
	})

	t.Run("Missing article returns not found", func(t *testing.T) {
		mockArticles := new(MockArticleReader)
		svc := NewCommentService(new(MockCommentRepository), mockArticles, new(MockUserReader), events.NewBus(1))

		mockArticles.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByArticle("missing")

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestDeleteComment(t *testing.T) {
	stored := &model.Comment{
		ID:        "comment-1",
		ArticleID: "article-1",
		AuthorID:  "author-of-comment",
	}

	t.Run("Author can delete own comment subtree", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		bus := events.NewBus(16)
		defer bus.Close()
		ch := capturedEvents(bus)
		svc := NewCommentService(mockRepo, new(MockArticleReader), new(MockUserReader), bus)

		mockRepo.On("GetByID", "comment-1").Return(stored, nil)
		mockRepo.On("DeleteSubtree", "comment-1").Return(int64(3), nil)

		deleted, err := svc.Delete("author-of-comment", roles.RoleReader, "comment-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		e := waitEvent(t, ch)
		assert.Equal(t, events.TypeCommentDeleted, e.Type)
		assert.Equal(t, "comment-1", e.Comment.ID)
		assert.Equal(t, "article-1", e.Article.ID)
	})

	t.Run("Admin can delete any comment", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		svc := NewCommentService(mockRepo, new(MockArticleReader), new(MockUserReader), events.NewBus(16))

		mockRepo.On("GetByID", "comment-1").Return(stored, nil)
		mockRepo.On("DeleteSubtree", "comment-1").Return(int64(1), nil)

		_, err := svc.Delete("some-admin", roles.RoleAdmin, "comment-1")

		assert.NoError(t, err)
	})

	t.Run("Editor cannot delete another user's comment", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		bus := events.NewBus(16)
		ch := capturedEvents(bus)
		svc := NewCommentService(mockRepo, new(MockArticleReader), new(MockUserReader), bus)

		mockRepo.On("GetByID", "comment-1").Return(stored, nil)

		_, err := svc.Delete("some-editor", roles.RoleEditor, "comment-1")

		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
		assert.Contains(t, err.Error(), "You do not have permission to delete this comment")
		mockRepo.AssertNotCalled(t, "DeleteSubtree", mock.Anything)
		assertNoEvent(t, bus, ch)
	})

	t.Run("Missing comment returns not found", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		svc := NewCommentService(mockRepo, new(MockArticleReader), new(MockUserReader), events.NewBus(1))

		mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Delete("anyone", roles.RoleAdmin, "missing")

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Contains(t, err.Error(), "Comment not found")
	})
}
