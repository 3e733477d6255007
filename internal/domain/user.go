package domain

import "time"

// User represents a registered account
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"size:30;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:120;uniqueIndex" json:"email"`
	Password       string    `gorm:"size:100" json:"-"`
	Bio            string    `gorm:"size:160" json:"bio"`
	ProfilePicture string    `gorm:"size:500" json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName returns the table name
func (User) TableName() string {
	return "users"
}

// UserRef is the denormalized user view embedded in live events and
// message/notification responses. Field names are part of the wire contract.
type UserRef struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// Ref returns the denormalized view of the user
func (u *User) Ref() UserRef {
	return UserRef{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserResponse is the public profile representation
type UserResponse struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
	IsFollowing    bool      `json:"isFollowing"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}

// UpdateProfileRequest represents a profile update request. ProfilePicture is
// a URL previously obtained from the media upload endpoint.
type UpdateProfileRequest struct {
	Username       string `json:"username"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`
}
