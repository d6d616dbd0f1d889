package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// Staff is an employee account able to sign in to the back office.
type Staff struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Email        string          `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Role         enums.StaffRole `gorm:"column:role;type:text;not null;default:'staff'"`
	BranchID     uuid.UUID       `gorm:"column:branch_id;type:uuid;not null"`
	Active       bool            `gorm:"column:active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
