package repository

import (
	"blog_platform/internal/domain/article/model"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *model.Article) error
	GetByID(id string) (*model.Article, error)
	GetByIDWithAuthor(id string) (*model.Article, error)
	GetList(offset, limit int) ([]model.Article, int64, error)
	Update(article *model.Article) error
	Delete(article *model.Article) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id string) (*model.Article, error) {
	var article model.Article
	if err := r.db.Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetByIDWithAuthor(id string) (*model.Article, error) {
	var article model.Article
	if err := r.db.Preload("Author").Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetList(offset, limit int) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64

	if err := r.db.Model(&model.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("Author").Order("created_at desc").
		Offset(offset).Limit(limit).Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) Update(article *model.Article) error {
	return r.db.Save(article).Error
}

// Delete 删除文章及其评论、点赞
func (r *articleRepository) Delete(article *model.Article) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM comments WHERE article_id = ?", article.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM likes WHERE article_id = ?", article.ID).Error; err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
}
