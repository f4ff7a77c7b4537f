package model

import "time"

// User is an account resolved from an OAuth login.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:320;not null" json:"email"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
