package printrequests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// Repository handles print request persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to print request operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a print request with its pivot rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PrintRequest, error) {
	var req models.PrintRequest
	if err := r.db.WithContext(ctx).Preload("Photos").Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListForPrefix returns print requests for a barcode prefix, newest first.
func (r *Repository) ListForPrefix(ctx context.Context, prefix string) ([]models.PrintRequest, error) {
	var rows []models.PrintRequest
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Where("barcode_prefix = ?", prefix).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteUnpaidWithTx removes unpaid staged requests for a prefix inside
// a transaction, pivot rows first.
func (r *Repository) DeleteUnpaidWithTx(tx *gorm.DB, prefix string) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	var ids []uuid.UUID
	err := tx.Model(&models.PrintRequest{}).
		Where("barcode_prefix = ?", prefix).
		Where("is_paid = ?", false).
		Where("status IN ?", []enums.PrintRequestStatus{
			enums.PrintRequestStatusPending,
			enums.PrintRequestStatusReadyToPrint,
		}).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("print_request_id IN ?", ids).Delete(&models.PrintRequestPhoto{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.PrintRequest{}).Error
}

// CreateWithTx inserts a print request and its pivot rows inside a
// transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, req *models.PrintRequest) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(req).Error
}

// UpdateStatusWithTx flips a request's status inside a transaction.
func (r *Repository) UpdateStatusWithTx(tx *gorm.DB, id uuid.UUID, status enums.PrintRequestStatus) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Model(&models.PrintRequest{}).Where("id = ?", id).Update("status", status).Error
}

// MarkPaid records payment on a request.
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID, method enums.PaymentMethod) error {
	return r.db.WithContext(ctx).
		Model(&models.PrintRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_paid": true, "payment_method": method}).Error
}
