package model

import "time"

// Machine is a rentable machine listed by its owner.
type Machine struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	PricePerDay float64   `gorm:"not null" json:"pricePerDay"`
	Available   bool      `gorm:"not null" json:"available"`
	CreatedByID uint      `gorm:"index;not null" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Associations
	CreatedBy *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"createdBy,omitempty"`
}
