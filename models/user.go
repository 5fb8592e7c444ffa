package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered member. Password holds whatever the configured
// credential verifier produced (a bcrypt hash unless the plain scheme is on).
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nickname  string    `gorm:"size:50;uniqueIndex;not null" json:"nickname"`
	Email     string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook ensures the creation timestamp is set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return nil
}
