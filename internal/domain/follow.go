package domain

import "time"

// Follow is one directed follow edge. A mutual pair of edges makes the two
// users "friends" for the friends feed.
type Follow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"uniqueIndex:idx_follower_followee,priority:1;index" json:"followerId"`
	FolloweeID uint      `gorm:"uniqueIndex:idx_follower_followee,priority:2;index" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the table name
func (Follow) TableName() string {
	return "follows"
}

// FollowToggleResponse is returned by the follow/unfollow toggle
type FollowToggleResponse struct {
	IsFollowing    bool  `json:"isFollowing"`
	FollowersCount int64 `json:"followersCount"`
}
