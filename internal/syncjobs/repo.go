package syncjobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// Repository handles sync job persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to sync job operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create queues a new outbound record.
func (r *Repository) Create(ctx context.Context, job *models.SyncJob) error {
	if job == nil {
		return fmt.Errorf("sync job is required")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// CreateWithTx queues a record inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, job *models.SyncJob) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if job == nil {
		return fmt.Errorf("sync job is required")
	}
	return tx.Create(job).Error
}

// ListDispatchable returns every pending or failed job, oldest first.
// Failed jobs stay in the pool until they sync; there is no dead letter.
func (r *Repository) ListDispatchable(ctx context.Context) ([]models.SyncJob, error) {
	var rows []models.SyncJob
	err := r.db.WithContext(ctx).
		Where("status IN ?", []enums.SyncStatus{enums.SyncStatusPending, enums.SyncStatusFailed}).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkSynced stamps a successful delivery.
func (r *Repository) MarkSynced(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.SyncJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     enums.SyncStatusSynced,
			"synced_at":  at,
			"last_error": nil,
		}).Error
}

// MarkFailed records a delivery failure and bumps the attempt counter.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, cause string) error {
	return r.db.WithContext(ctx).
		Model(&models.SyncJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     enums.SyncStatusFailed,
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause,
		}).Error
}
