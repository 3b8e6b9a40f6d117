package service

import (
	"errors"

	articlemodel "blog_platform/internal/domain/article/model"
	"blog_platform/internal/domain/like/model"
	"blog_platform/internal/domain/like/repository"
	usermodel "blog_platform/internal/domain/user/model"
	"blog_platform/internal/pkg/events"
	"blog_platform/pkg/apperrors"

	"gorm.io/gorm"
)

// ArticleReader 文章读取接口，由 article 仓储实现
type ArticleReader interface {
	GetByID(id string) (*articlemodel.Article, error)
}

// UserReader 用户读取接口，由 user 仓储实现
type UserReader interface {
	GetByID(id string) (*usermodel.User, error)
}

// ToggleResult 点赞切换结果
type ToggleResult struct {
	Liked     bool        `json:"liked"`
	Like      *model.Like `json:"like,omitempty"`
	ArticleID string      `json:"articleId"`
	UserID    string      `json:"userId"`
}

// ArticleLikes 文章点赞列表
type ArticleLikes struct {
	ArticleID string                    `json:"articleId"`
	Count     int                       `json:"count"`
	Likes     []model.Like              `json:"likes"`
	LikedBy   []usermodel.PublicProfile `json:"likedBy"`
}

type LikeService interface {
	Toggle(actorID, articleID string) (*ToggleResult, error)
	GetByArticle(articleID string) (*ArticleLikes, error)
	CheckUserLike(actorID, articleID string) (liked bool, likeID string, err error)
	GetByUser(userID string) ([]model.Like, error)
}

type likeService struct {
	repo     repository.LikeRepository
	articles ArticleReader
	users    UserReader
	bus      *events.Bus
}

func NewLikeService(repo repository.LikeRepository, articles ArticleReader, users UserReader, bus *events.Bus) LikeService {
	return &likeService{
		repo:     repo,
		articles: articles,
		users:    users,
		bus:      bus,
	}
}

// Toggle 点赞/取消点赞
// 已点赞则取消（发布 Unlike，不产生通知）；未点赞则创建（发布 NewLike）
// 两次切换后状态与零次切换相同；并发重复由唯一约束兜底
func (s *likeService) Toggle(actorID, articleID string) (*ToggleResult, error) {
	article, err := s.articles.GetByID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Article not found")
		}
		return nil, apperrors.Internal("Error fetching article", err)
	}

	existing, err := s.repo.GetByUserAndArticle(actorID, articleID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Error checking like", err)
	}

	if existing != nil {
		// 取消点赞
		if err := s.repo.Delete(existing); err != nil {
			return nil, apperrors.Internal("Error removing like", err)
		}

		s.bus.Publish(events.Event{
			Type: events.TypeUnlike,
			Article: events.ArticleRef{
				ID:       article.ID,
				Title:    article.Title,
				AuthorID: article.AuthorID,
			},
			Actor:  events.UserRef{ID: actorID},
			LikeID: existing.ID,
		})

		return &ToggleResult{
			Liked:     false,
			ArticleID: articleID,
			UserID:    actorID,
		}, nil
	}

	user, err := s.users.GetByID(actorID)
	if err != nil {
		// Token 签发后账号被删除
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Authentication("User account no longer exists")
		}
		return nil, apperrors.Internal("Error fetching user", err)
	}

	like := &model.Like{
		UserID:    actorID,
		ArticleID: articleID,
	}
	if err := s.repo.Create(like); err != nil {
		// 并发竞态：唯一约束兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("You have already liked this article")
		}
		return nil, apperrors.Internal("Error creating like", err)
	}
	like.User = user

	s.bus.Publish(events.Event{
		Type: events.TypeNewLike,
		Article: events.ArticleRef{
			ID:       article.ID,
			Title:    article.Title,
			AuthorID: article.AuthorID,
		},
		Actor: events.UserRef{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
		LikeID: like.ID,
	})

	return &ToggleResult{
		Liked:     true,
		Like:      like,
		ArticleID: articleID,
		UserID:    actorID,
	}, nil
}

func (s *likeService) GetByArticle(articleID string) (*ArticleLikes, error) {
	if _, err := s.articles.GetByID(articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Article not found")
		}
		return nil, apperrors.Internal("Error fetching article", err)
	}

	likes, err := s.repo.GetByArticle(articleID)
	if err != nil {
		return nil, apperrors.Internal("Error fetching likes", err)
	}

	likedBy := make([]usermodel.PublicProfile, 0, len(likes))
	for i := range likes {
		if likes[i].User != nil {
			likedBy = append(likedBy, likes[i].User.Public())
		}
	}

	return &ArticleLikes{
		ArticleID: articleID,
		Count:     len(likes),
		Likes:     likes,
		LikedBy:   likedBy,
	}, nil
}

func (s *likeService) CheckUserLike(actorID, articleID string) (bool, string, error) {
	if _, err := s.articles.GetByID(articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", apperrors.NotFound("Article not found")
		}
		return false, "", apperrors.Internal("Error fetching article", err)
	}

	like, err := s.repo.GetByUserAndArticle(actorID, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", nil
		}
		return false, "", apperrors.Internal("Error checking like status", err)
	}
	return true, like.ID, nil
}

func (s *likeService) GetByUser(userID string) ([]model.Like, error) {
	likes, err := s.repo.GetByUser(userID)
	if err != nil {
		return nil, apperrors.Internal("Error fetching user likes", err)
	}
	return likes, nil
}
