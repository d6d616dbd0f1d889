package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// PrintRequest aggregates a staged purchase of selected photos prior to
// invoicing. Photos attach through PrintRequestPhoto with per-item
// quantity and unit price.
type PrintRequest struct {
	ID            uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	BarcodePrefix string                   `gorm:"column:barcode_prefix;not null;index"`
	PackageID     *uuid.UUID               `gorm:"column:package_id;type:uuid"`
	Status        enums.PrintRequestStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentMethod enums.PaymentMethod      `gorm:"column:payment_method;type:text;not null;default:'cash'"`
	IsPaid        bool                     `gorm:"column:is_paid;not null;default:false"`
	Photos        []PrintRequestPhoto      `gorm:"foreignKey:PrintRequestID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// PrintRequestPhoto is the quantity-priced pivot between a print request
// and a photo. Quantity is always >= 1.
type PrintRequestPhoto struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PrintRequestID uuid.UUID       `gorm:"column:print_request_id;type:uuid;not null;index"`
	PhotoID        uuid.UUID       `gorm:"column:photo_id;type:uuid;not null"`
	Quantity       int             `gorm:"column:quantity;not null;default:1"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
