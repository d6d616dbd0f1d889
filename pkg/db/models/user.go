package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a walk-in customer identified by the barcode handed out at
// registration. The barcode prefix is the natural key the rest of the
// system joins on.
type User struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Barcode     string     `gorm:"column:barcode;not null;uniqueIndex"`
	PhoneNumber string     `gorm:"column:phone_number;not null;index"`
	BranchID    uuid.UUID  `gorm:"column:branch_id;type:uuid;not null"`
	LastVisit   *time.Time `gorm:"column:last_visit"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// BarcodePrefix returns the customer-facing short code used across
// photos, orders and invoices.
func (u User) BarcodePrefix() string {
	if len(u.Barcode) < 8 {
		return u.Barcode
	}
	return u.Barcode[:8]
}
