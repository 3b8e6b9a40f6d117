package service

import (
	"encoding/json"
	"testing"

	"blog_platform/internal/domain/article/model"
	"blog_platform/pkg/apperrors"
	basemodel "blog_platform/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockArticleRepository is a mock of ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(article *model.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(id string) (*model.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleRepository) GetByIDWithAuthor(id string) (*model.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleRepository) GetList(offset, limit int) ([]model.Article, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]model.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) Update(article *model.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(article *model.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func TestCreateArticle(t *testing.T) {
	t.Run("Author is the acting user", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		svc := NewArticleService(mockRepo)

		mockRepo.On("Create", mock.AnythingOfType("*model.Article")).Run(func(args mock.Arguments) {
			article := args.Get(0).(*model.Article)
			assert.Equal(t, "writer-1", article.AuthorID)

			var tags []string
			assert.NoError(t, json.Unmarshal(article.Tags, &tags))
			assert.Equal(t, []string{"go", "testing"}, tags)
		}).Return(nil)

		article, err := svc.Create("writer-1", CreateInput{
			Title:   "  Go Tips  ",
			Content: "body",
			Tags:    []string{"go", "testing"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Go Tips", article.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Blank title is rejected", func(t *testing.T) {
		svc := NewArticleService(new(MockArticleRepository))

		_, err := svc.Create("writer-1", CreateInput{Title: "   ", Content: "body"})

		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestUpdateArticle(t *testing.T) {
	t.Run("Partial update leaves other fields alone", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		svc := NewArticleService(mockRepo)

		article := &model.Article{Title: "Old", Content: "old body", AuthorID: "writer-1"}
		article.BaseModel = basemodel.BaseModel{ID: "article-1"}

		mockRepo.On("Update", article).Return(nil)

		newTitle := "New Title"
		updated, err := svc.Update(article, UpdateInput{Title: &newTitle})

		assert.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "old body", updated.Content)
		assert.Equal(t, "writer-1", updated.AuthorID) // author never changes
	})

	t.Run("Blank title on update is rejected", func(t *testing.T) {
		svc := NewArticleService(new(MockArticleRepository))
		article := &model.Article{Title: "Old", Content: "body"}

		empty := " "
		_, err := svc.Update(article, UpdateInput{Title: &empty})

		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestGetArticle(t *testing.T) {
	t.Run("Missing article maps to not found", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		svc := NewArticleService(mockRepo)

		mockRepo.On("GetByIDWithAuthor", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID("missing")

		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Contains(t, err.Error(), "Article not found")
	})
}
