package repository

import (
	"blog_platform/internal/domain/like/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.Like) error
	GetByUserAndArticle(userID, articleID string) (*model.Like, error)
	Delete(like *model.Like) error
	GetByArticle(articleID string) ([]model.Like, error)
	GetByUser(userID string) ([]model.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) GetByUserAndArticle(userID, articleID string) (*model.Like, error) {
	var like model.Like
	if err := r.db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Delete(like *model.Like) error {
	return r.db.Delete(like).Error
}

func (r *likeRepository) GetByArticle(articleID string) ([]model.Like, error) {
	var likes []model.Like
	err := r.db.Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at desc").
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) GetByUser(userID string) ([]model.Like, error) {
	var likes []model.Like
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&likes).Error
	return likes, err
}
