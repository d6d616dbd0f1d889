package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// Order is the alternate purchase representation created manually by
// staff or from the kiosk; items reference photo selections.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	BarcodePrefix string              `gorm:"column:barcode_prefix;not null;index"`
	BranchID      uuid.UUID           `gorm:"column:branch_id;type:uuid;not null;index"`
	Origin        enums.OrderOrigin   `gorm:"column:origin;type:text;not null;default:'manual'"`
	SendType      enums.OrderSendType `gorm:"column:send_type;type:text;not null;default:'print'"`
	PayAmount     decimal.Decimal     `gorm:"column:pay_amount;type:numeric(12,2);not null"`
	ShiftID       *uuid.UUID          `gorm:"column:shift_id;type:uuid"`
	ShiftName     *string             `gorm:"column:shift_name"`
	Completed     bool                `gorm:"column:completed;not null;default:false"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem links an order to one selected photo with its quantity.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	SelectionID uuid.UUID       `gorm:"column:selection_id;type:uuid;not null"`
	PhotoID     uuid.UUID       `gorm:"column:photo_id;type:uuid;not null"`
	Quantity    int             `gorm:"column:quantity;not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
