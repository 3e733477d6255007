package domain

import "time"

// MaxPostLength caps post and comment text
const MaxPostLength = 280

// Post represents a feed post
type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  uint      `gorm:"index" json:"authorId"`
	Content   string    `gorm:"size:280" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	Author   User        `gorm:"foreignKey:AuthorID" json:"-"`
	Media    []PostMedia `gorm:"foreignKey:PostID" json:"media"`
	Likes    []PostLike  `gorm:"foreignKey:PostID" json:"-"`
	Comments []Comment   `gorm:"foreignKey:PostID" json:"-"`
}

// TableName returns the table name
func (Post) TableName() string {
	return "posts"
}

// PostMedia is one uploaded image or video attached to a post
type PostMedia struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID uint   `gorm:"index" json:"-"`
	URL    string `gorm:"size:500" json:"url"`
	Type   string `gorm:"size:10" json:"type"` // "image" or "video"
}

// TableName returns the table name
func (PostMedia) TableName() string {
	return "post_media"
}

// PostLike is one like edge on a post
type PostLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_post_user,priority:1" json:"postId"`
	UserID    uint      `gorm:"uniqueIndex:idx_post_user,priority:2" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the table name
func (PostLike) TableName() string {
	return "post_likes"
}

// Comment is one comment on a post
type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"index" json:"postId"`
	UserID    uint      `gorm:"index" json:"userId"`
	Text      string    `gorm:"size:280" json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name
func (Comment) TableName() string {
	return "comments"
}

// CreatePostRequest represents a create post request
type CreatePostRequest struct {
	Content string `json:"content"`
}

// CreateCommentRequest represents an add comment request
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID           uint        `json:"id"`
	Author       UserRef     `json:"author"`
	Content      string      `json:"content"`
	Media        []PostMedia `json:"media"`
	LikeCount    int         `json:"likeCount"`
	CommentCount int         `json:"commentCount"`
	IsLiked      bool        `json:"isLiked"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ToResponse converts Post to PostResponse for the given viewer. Author,
// Media, Likes and Comments must be preloaded.
func (p *Post) ToResponse(viewerID uint) *PostResponse {
	resp := &PostResponse{
		ID:           p.ID,
		Author:       p.Author.Ref(),
		Content:      p.Content,
		Media:        p.Media,
		LikeCount:    len(p.Likes),
		CommentCount: len(p.Comments),
		CreatedAt:    p.CreatedAt,
	}
	if resp.Media == nil {
		resp.Media = []PostMedia{}
	}
	for _, l := range p.Likes {
		if l.UserID == viewerID {
			resp.IsLiked = true
			break
		}
	}
	return resp
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	User      UserRef   `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts Comment to CommentResponse. User must be preloaded.
func (c *Comment) ToResponse() *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		User:      c.User.Ref(),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

// LikeToggleResponse is returned by the like/unlike toggle
type LikeToggleResponse struct {
	IsLiked    bool  `json:"isLiked"`
	LikesCount int64 `json:"likesCount"`
}
