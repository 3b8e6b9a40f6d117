package service

import (
	"encoding/json"
	"errors"
	"strings"

	"blog_platform/internal/domain/article/model"
	"blog_platform/internal/domain/article/repository"
	"blog_platform/pkg/apperrors"

	"gorm.io/gorm"
)

// CreateInput 创建文章输入
type CreateInput struct {
	Title   string
	Content string
	Tags    []string
	Image   string
}

// UpdateInput 更新文章输入，nil 字段表示不修改
type UpdateInput struct {
	Title   *string
	Content *string
	Tags    []string
	Image   *string
}

type ArticleService interface {
	Create(authorID string, in CreateInput) (*model.Article, error)
	GetByID(id string) (*model.Article, error)
	GetList(page, limit int) ([]model.Article, int64, error)
	Update(article *model.Article, in UpdateInput) (*model.Article, error)
	Delete(article *model.Article) error
}

type articleService struct {
	repo repository.ArticleRepository
}

func NewArticleService(repo repository.ArticleRepository) ArticleService {
	return &articleService{repo: repo}
}

// Create 创建文章，作者为当前操作者，任何已认证用户均可创建
func (s *articleService) Create(authorID string, in CreateInput) (*model.Article, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, apperrors.Validation("Title and content are required")
	}

	tagsJSON, _ := json.Marshal(in.Tags)

	article := &model.Article{
		Title:    title,
		Content:  content,
		Tags:     tagsJSON,
		Image:    in.Image,
		AuthorID: authorID,
	}
	if err := s.repo.Create(article); err != nil {
		return nil, apperrors.Internal("Error creating article", err)
	}
	return article, nil
}

func (s *articleService) GetByID(id string) (*model.Article, error) {
	article, err := s.repo.GetByIDWithAuthor(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Article not found")
		}
		return nil, apperrors.Internal("Error fetching article", err)
	}
	return article, nil
}

func (s *articleService) GetList(page, limit int) ([]model.Article, int64, error) {
	offset := (page - 1) * limit
	articles, total, err := s.repo.GetList(offset, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("Error fetching articles", err)
	}
	return articles, total, nil
}

// Update 更新文章内容，权限已由中间件校验；作者不可变更
func (s *articleService) Update(article *model.Article, in UpdateInput) (*model.Article, error) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.Validation("Title cannot be empty")
		}
		article.Title = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, apperrors.Validation("Content cannot be empty")
		}
		article.Content = content
	}
	if in.Tags != nil {
		tagsJSON, _ := json.Marshal(in.Tags)
		article.Tags = tagsJSON
	}
	if in.Image != nil {
		article.Image = *in.Image
	}

	if err := s.repo.Update(article); err != nil {
		return nil, apperrors.Internal("Error updating article", err)
	}
	return article, nil
}

// Delete 删除文章及其评论、点赞，权限已由中间件校验
func (s *articleService) Delete(article *model.Article) error {
	if err := s.repo.Delete(article); err != nil {
		return apperrors.Internal("Error deleting article", err)
	}
	return nil
}
