package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	"github.com/karimelbaz/photodesk-backend/pkg/types"
)

// MetadataPhotoIDs is the invoice metadata key recording the frozen set
// of photo ids the invoice covers.
const MetadataPhotoIDs = "photo_ids"

// Invoice is the immutable snapshot produced at print confirmation.
// The photos it references are flipped to printed in the same
// transaction that creates the row.
type Invoice struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	BarcodePrefix string              `gorm:"column:barcode_prefix;not null;index"`
	BranchID      uuid.UUID           `gorm:"column:branch_id;type:uuid;not null;index"`
	NumPhotos     int                 `gorm:"column:num_photos;not null"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	TaxRate       decimal.Decimal     `gorm:"column:tax_rate;type:numeric(6,4);not null"`
	TaxAmount     decimal.Decimal     `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	InvoiceMethod enums.InvoiceMethod `gorm:"column:invoice_method;type:text;not null"`
	Status        enums.InvoiceStatus `gorm:"column:status;type:text;not null;default:'active'"`
	Metadata      types.JSONMap       `gorm:"column:metadata;type:jsonb;serializer:json"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
