package invoices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// Repository handles invoice persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to invoice operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads an invoice by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListForPrefix returns a session's invoices, newest first.
func (r *Repository) ListForPrefix(ctx context.Context, prefix string) ([]models.Invoice, error) {
	var rows []models.Invoice
	err := r.db.WithContext(ctx).
		Where("barcode_prefix = ?", prefix).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForBranch returns a branch's invoices, newest first.
func (r *Repository) ListForBranch(ctx context.Context, branchID uuid.UUID, limit int) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []models.Invoice
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWithTx inserts an invoice inside a transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, invoice *models.Invoice) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(invoice).Error
}

// UpdateStatus flips an invoice's lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InvoiceStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}
