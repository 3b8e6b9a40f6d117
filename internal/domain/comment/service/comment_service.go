package service

import (
	"errors"
	"sort"
	"strings"

	articlemodel "blog_platform/internal/domain/article/model"
	"blog_platform/internal/domain/comment/model"
	"blog_platform/internal/domain/comment/repository"
	usermodel "blog_platform/internal/domain/user/model"
	"blog_platform/internal/pkg/events"
	"blog_platform/internal/pkg/roles"
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

// ArticleComments 文章评论树
type ArticleComments struct {
	ArticleID string           `json:"articleId"`
	Count     int              `json:"count"`
	Comments  []*model.Comment `json:"comments"`
}

type CommentService interface {
	Create(actorID, articleID, content string, parentID *string) (*model.Comment, error)
	GetByArticle(articleID string) (*ArticleComments, error)
	Delete(actorID string, actorRole roles.Role, commentID string) (int64, error)
}

type commentService struct {
	repo     repository.CommentRepository
	articles ArticleReader
	users    UserReader
	bus      *events.Bus
}

func NewCommentService(repo repository.CommentRepository, articles ArticleReader, users UserReader, bus *events.Bus) CommentService {
	return &commentService{
		repo:     repo,
		articles: articles,
		users:    users,
		bus:      bus,
	}
}

// Create 创建评论或回复
// 前置校验：文章存在；父评论（如有）存在且属于同一篇文章；内容非空且不超长
// 成功后发布 NewComment / NewReply 事件，通知与广播由订阅方处理
func (s *commentService) Create(actorID, articleID, content string, parentID *string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Comment content is required")
	}
	if len(content) > model.MaxContentLength {
		return nil, apperrors.Validation("Comment must not exceed 1000 characters")
	}

	article, err := s.articles.GetByID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Article not found")
		}
		return nil, apperrors.Internal("Error fetching article", err)
	}

	var parent *model.Comment
	if parentID != nil && *parentID != "" {
		parent, err = s.repo.GetByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Parent comment not found")
			}
			return nil, apperrors.Internal("Error fetching parent comment", err)
		}
		if parent.ArticleID != articleID {
			return nil, apperrors.Validation("Parent comment does not belong to this article")
		}
	} else {
		parentID = nil
	}

	author, err := s.users.GetByID(actorID)
	if err != nil {
		// Token 签发后账号被删除
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Authentication("User account no longer exists")
		}
		return nil, apperrors.Internal("Error fetching author", err)
	}

	comment := &model.Comment{
		Content:   content,
		ArticleID: articleID,
		AuthorID:  actorID,
		ParentID:  parentID,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, apperrors.Internal("Error creating comment", err)
	}
	comment.Author = author

	event := events.Event{
		Type: events.TypeNewComment,
		Article: events.ArticleRef{
			ID:       article.ID,
			Title:    article.Title,
			AuthorID: article.AuthorID,
		},
		Actor: events.UserRef{
			ID:       author.ID,
			Username: author.Username,
			Email:    author.Email,
			Role:     string(author.Role),
		},
		Comment: &events.CommentRef{
			ID:        comment.ID,
			Content:   comment.Content,
			ParentID:  comment.ParentID,
			CreatedAt: comment.CreatedAt,
		},
	}
	if parent != nil {
		// 回复只通知父评论作者，不再通知文章作者，避免重复通知
		event.Type = events.TypeNewReply
		event.ParentAuthorID = parent.AuthorID
	}
	s.bus.Publish(event)

	return comment, nil
}

// GetByArticle 返回文章的评论树
// 以 parent 索引的邻接表迭代组装，顶层按时间倒序，回复按时间升序
func (s *commentService) GetByArticle(articleID string) (*ArticleComments, error) {
	if _, err := s.articles.GetByID(articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Article not found")
		}
		return nil, apperrors.Internal("Error fetching article", err)
	}

	comments, err := s.repo.GetByArticle(articleID)
	if err != nil {
		return nil, apperrors.Internal("Error fetching comments", err)
	}

	byID := make(map[string]*model.Comment, len(comments))
	for i := range comments {
		byID[comments[i].ID] = &comments[i]
	}

	var roots []*model.Comment
	for i := range comments {
		c := &comments[i]
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	// 源数据按 created_at 升序，回复区块已有序；顶层倒序展示
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	return &ArticleComments{
		ArticleID: articleID,
		Count:     len(roots),
		Comments:  roots,
	}, nil
}

// Delete 删除评论及其整个回复子树
// 仅评论作者或 Admin 可删除；Editor 无此权限
func (s *commentService) Delete(actorID string, actorRole roles.Role, commentID string) (int64, error) {
	comment, err := s.repo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFound("Comment not found")
		}
		return 0, apperrors.Internal("Error fetching comment", err)
	}

	isAuthor := comment.AuthorID == actorID
	if !isAuthor && actorRole != roles.RoleAdmin {
		return 0, apperrors.Authorization("You do not have permission to delete this comment", nil)
	}

	deleted, err := s.repo.DeleteSubtree(commentID)
	if err != nil {
		return 0, apperrors.Internal("Error deleting comment", err)
	}

	s.bus.Publish(events.Event{
		Type:    events.TypeCommentDeleted,
		Article: events.ArticleRef{ID: comment.ArticleID},
		Comment: &events.CommentRef{
			ID:       comment.ID,
			ParentID: comment.ParentID,
		},
	})

	return deleted, nil
}
