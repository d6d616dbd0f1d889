package models

import (
	"time"

	"github.com/google/uuid"
)

// PhotoSelection captures one chosen original photo and its quantity for
// a walk-in session. Rows are replaced wholesale on re-selection.
type PhotoSelection struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	BarcodePrefix string    `gorm:"column:barcode_prefix;not null;index"`
	PhotoID       uuid.UUID `gorm:"column:photo_id;type:uuid;not null"`
	Quantity      int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
