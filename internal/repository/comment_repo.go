package repository

import (
	"github.com/chirpnet/chirp-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository comment data access interface
type CommentRepository interface {
	Create(comment *domain.Comment) error
	FindByPost(postID uint) ([]*domain.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(comment, comment.ID).Error
}

func (r *commentRepository) FindByPost(postID uint) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
