package selections

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// Repository handles selection persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to selection operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForUser returns the current selection rows for a (user, prefix) pair.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, prefix string) ([]models.PhotoSelection, error) {
	var rows []models.PhotoSelection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("barcode_prefix = ?", prefix).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByIDs loads selections by id restricted to a user.
func (r *Repository) ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.PhotoSelection, error) {
	var rows []models.PhotoSelection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteForUserWithTx clears a user's selection inside a transaction.
func (r *Repository) DeleteForUserWithTx(tx *gorm.DB, userID uuid.UUID, prefix string) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.
		Where("user_id = ?", userID).
		Where("barcode_prefix = ?", prefix).
		Delete(&models.PhotoSelection{}).Error
}

// CreateWithTx inserts selection rows inside a transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, rows []models.PhotoSelection) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// DeleteStaleBefore removes selection rows older than the cutoff along
// with the clone photos of abandoned sessions. Staged and printed
// copies belong to a print request or invoice and are left alone. Used
// by the retention job; abandoned kiosk sessions otherwise pile up.
func (r *Repository) DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("created_at < ?", cutoff).
			Delete(&models.PhotoSelection{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return tx.
			Where("created_at < ?", cutoff).
			Where("status = ?", enums.PhotoStatusPending).
			Where("metadata->>? IS NOT NULL", models.MetadataClonedFrom).
			Delete(&models.Photo{}).Error
	})
	return deleted, err
}
