package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxContentLength is the storage limit for a post body, in characters.
const MaxContentLength = 140

// Post is a short message published by a user.
// User only declares the foreign key for migrations; it is never preloaded.
// Deleting a user who still has posts is refused by the database.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:140;not null" json:"content"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`
}

// BeforeCreate defaults the timestamp to the creation time.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	return nil
}
