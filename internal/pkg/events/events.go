package events

import "time"

// Type 领域事件类型
type Type string

const (
	TypeNewComment     Type = "new_comment"
	TypeNewReply       Type = "new_reply"
	TypeNewLike        Type = "new_like"
	TypeUnlike         Type = "unlike"
	TypeCommentDeleted Type = "comment_deleted"
)

// UserRef 事件中携带的用户快照
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ArticleRef 事件中携带的文章快照
type ArticleRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	AuthorID string `json:"-"`
}

// CommentRef 事件中携带的评论快照
type CommentRef struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parentCommentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event 领域事件，控制器在成功变更后发布
// 通知引擎和实时广播层作为两个独立消费者订阅
type Event struct {
	Type           Type
	Article        ArticleRef
	Actor          UserRef
	Comment        *CommentRef // 评论/回复/删除事件携带
	ParentAuthorID string      // 回复事件携带：父评论作者
	LikeID         string      // 点赞/取消点赞事件携带
}
