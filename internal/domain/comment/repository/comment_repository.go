package repository

import (
	"blog_platform/internal/domain/comment/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	GetByID(id string) (*model.Comment, error)
	GetByIDWithAuthor(id string) (*model.Comment, error)
	GetByArticle(articleID string) ([]model.Comment, error)
	GetChildIDs(parentIDs []string) ([]string, error)
	DeleteSubtree(rootID string) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetByIDWithAuthor(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Preload("Author").Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByArticle 返回文章的全部评论（含作者），按创建时间升序
// 评论树在服务层组装
func (r *commentRepository) GetByArticle(articleID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

// GetChildIDs 返回一批评论的直接子评论 ID
func (r *commentRepository) GetChildIDs(parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.Model(&model.Comment{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteSubtree 删除评论及其全部后代
// 用显式工作队列逐层收集后代 ID，避免深层评论树造成无界递归
// 删除按 ID 集合一次完成，子先于根无关紧要（同一事务内）
func (r *commentRepository) DeleteSubtree(rootID string) (int64, error) {
	toDelete := []string{rootID}
	frontier := []string{rootID}

	for len(frontier) > 0 {
		children, err := r.GetChildIDs(frontier)
		if err != nil {
			return 0, err
		}
		toDelete = append(toDelete, children...)
		frontier = children
	}

	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", toDelete).Delete(&model.Comment{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
