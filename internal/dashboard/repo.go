package dashboard

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/pagination"
)

// Repository runs the aggregate queries behind the branch dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to dashboard queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

// CountPhotosByStatus groups the branch's photos by status.
func (r *Repository) CountPhotosByStatus(ctx context.Context, branchID uuid.UUID) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Select("status, count(*) as count").
		Where("branch_id = ?", branchID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountSyncJobsByStatus groups queued payroll rows by status.
func (r *Repository) CountSyncJobsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.SyncJob{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListRecentInvoices returns the branch's newest invoices after the
// cursor, newest first.
func (r *Repository) ListRecentInvoices(ctx context.Context, branchID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	q = applyCursor(q, cursor)
	var rows []models.Invoice
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecentOrders returns the branch's newest orders after the cursor,
// newest first.
func (r *Repository) ListRecentOrders(ctx context.Context, branchID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	q = applyCursor(q, cursor)
	var rows []models.Order
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func applyCursor(q *gorm.DB, cursor *pagination.Cursor) *gorm.DB {
	if cursor == nil {
		return q
	}
	return q.Where(
		"created_at < ? OR (created_at = ? AND id < ?)",
		cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
	)
}
