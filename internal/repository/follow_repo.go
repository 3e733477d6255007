package repository

import (
	"github.com/chirpnet/chirp-backend/internal/domain"
	"gorm.io/gorm"
)

// FollowRepository follow-edge data access interface
type FollowRepository interface {
	Create(followerID, followeeID uint) error
	Delete(followerID, followeeID uint) error
	Exists(followerID, followeeID uint) (bool, error)
	CountFollowers(userID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)
	FindFollowers(userID uint) ([]*domain.User, error)
	FindFollowing(userID uint) ([]*domain.User, error)
	FindMutualIDs(userID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(followerID, followeeID uint) error {
	return r.db.Create(&domain.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).Error
}

func (r *followRepository) Delete(followerID, followeeID uint) error {
	return r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&domain.Follow{}).Error
}

func (r *followRepository) Exists(followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) FindFollowers(userID uint) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *followRepository) FindFollowing(userID uint) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

// FindMutualIDs returns ids of users who both follow and are followed by the
// user ("friends" for the friends feed).
func (r *followRepository) FindMutualIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&domain.Follow{}).
		Select("follows.followee_id").
		Joins("JOIN follows AS back ON back.follower_id = follows.followee_id AND back.followee_id = follows.follower_id").
		Where("follows.follower_id = ?", userID).
		Scan(&ids).Error
	return ids, err
}
