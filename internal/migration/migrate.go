package migration

import (
	"github.com/chirpnet/chirp-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for every table the API touches.
// AutoMigrate creates missing tables and adds missing columns and
// indexes; it never drops anything.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Follow{},
		&domain.Post{},
		&domain.PostMedia{},
		&domain.PostLike{},
		&domain.Comment{},
		&domain.Message{},
		&domain.Notification{},
	)
}
