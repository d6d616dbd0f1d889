package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
)

// UserDTO exposes safe customer data in API responses.
type UserDTO struct {
	ID            uuid.UUID  `json:"id"`
	Barcode       string     `json:"barcode"`
	BarcodePrefix string     `json:"barcode_prefix"`
	PhoneNumber   string     `json:"phone_number"`
	BranchID      uuid.UUID  `json:"branch_id"`
	LastVisit     *time.Time `json:"last_visit,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateUserDTO holds creation-time data for a walk-in customer.
type CreateUserDTO struct {
	Barcode     string
	PhoneNumber string
	BranchID    uuid.UUID
}

// ToModel maps the creation payload onto a persistable row.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Barcode:     d.Barcode,
		PhoneNumber: d.PhoneNumber,
		BranchID:    d.BranchID,
	}
}

// FromModel maps a persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:            m.ID,
		Barcode:       m.Barcode,
		BarcodePrefix: m.BarcodePrefix(),
		PhoneNumber:   m.PhoneNumber,
		BranchID:      m.BranchID,
		LastVisit:     m.LastVisit,
		CreatedAt:     m.CreatedAt,
	}
}
