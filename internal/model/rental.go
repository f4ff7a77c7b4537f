package model

import "time"

// RentalStatus is the lifecycle state of a rental request.
type RentalStatus string

// RentalStatusPending is assigned to every new request.
const RentalStatusPending RentalStatus = "pending"

// RentalRequest links a requester, a machine and a date range.
type RentalRequest struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	StartDate time.Time    `gorm:"not null" json:"startDate"`
	EndDate   time.Time    `gorm:"not null" json:"endDate"`
	Status    RentalStatus `gorm:"size:32;not null;default:pending" json:"status"`
	MachineID uint         `gorm:"index;not null" json:"-"`
	UserID    uint         `gorm:"index;not null" json:"-"`
	CreatedAt time.Time    `json:"createdAt"`

	// Associations
	Machine *Machine `gorm:"constraint:OnDelete:CASCADE" json:"machine,omitempty"`
	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
