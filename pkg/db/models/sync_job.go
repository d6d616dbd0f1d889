package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// SyncJob is an outbound record queued for delivery to the external
// payroll/reporting API. Pending and failed rows are retried every
// dispatcher cycle until they sync.
type SyncJob struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Status          enums.SyncStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	EmployeeName    string           `gorm:"column:employee_name;not null"`
	PayAmount       decimal.Decimal  `gorm:"column:pay_amount;type:numeric(12,2);not null"`
	OrderPrefixCode string           `gorm:"column:order_prefix_code;not null"`
	ShiftName       string           `gorm:"column:shift_name;not null"`
	OrderPhone      string           `gorm:"column:order_phone;not null"`
	NumberOfPhotos  int              `gorm:"column:number_of_photos;not null"`
	Attempts        int              `gorm:"column:attempts;not null;default:0"`
	LastError       *string          `gorm:"column:last_error"`
	SyncedAt        *time.Time       `gorm:"column:synced_at"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
