package repository

import (
	"errors"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository post data access interface
type PostRepository interface {
	Create(post *domain.Post) error
	FindByID(id uint) (*domain.Post, error)
	FindAll(page, limit int) ([]*domain.Post, int64, error)
	FindByAuthors(authorIDs []uint, page, limit int) ([]*domain.Post, int64, error)
	FindByAuthor(authorID uint) ([]*domain.Post, error)
	Search(query string, limit int) ([]*domain.Post, error)
	Delete(id uint) error

	LikeExists(postID, userID uint) (bool, error)
	AddLike(postID, userID uint) error
	RemoveLike(postID, userID uint) error
	CountLikes(postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("Author").
		Preload("Media").
		Preload("Likes").
		Preload("Comments")
}

func (r *postRepository) Create(post *domain.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return err
	}
	return r.preloaded().First(post, post.ID).Error
}

func (r *postRepository) FindByID(id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.preloaded().First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAll(page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	if err := r.db.Model(&domain.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.preloaded().
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) FindByAuthors(authorIDs []uint, page, limit int) ([]*domain.Post, int64, error) {
	if len(authorIDs) == 0 {
		return nil, 0, nil
	}

	var posts []*domain.Post
	var total int64

	if err := r.db.Model(&domain.Post{}).
		Where("author_id IN ?", authorIDs).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.preloaded().
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) FindByAuthor(authorID uint) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.preloaded().
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// Search finds posts by content substring, newest first
func (r *postRepository) Search(query string, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.preloaded().
		Where("content LIKE ?", "%"+query+"%").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, id).Error
	})
}

func (r *postRepository) LikeExists(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) AddLike(postID, userID uint) error {
	return r.db.Create(&domain.PostLike{PostID: postID, UserID: userID}).Error
}

func (r *postRepository) RemoveLike(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&domain.PostLike{}).Error
}

func (r *postRepository) CountLikes(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
