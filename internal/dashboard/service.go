package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/pagination"
)

type dashboardRepository interface {
	CountPhotosByStatus(ctx context.Context, branchID uuid.UUID) (map[string]int64, error)
	CountSyncJobsByStatus(ctx context.Context) (map[string]int64, error)
	ListRecentInvoices(ctx context.Context, branchID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Invoice, error)
	ListRecentOrders(ctx context.Context, branchID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error)
}

// BranchStats aggregates the counters shown on the branch overview.
type BranchStats struct {
	PhotoCounts   map[string]int64 `json:"photo_counts"`
	SyncJobCounts map[string]int64 `json:"sync_job_counts"`
}

// Page wraps a listing with the cursor for the next request.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Service exposes the branch dashboard queries.
type Service interface {
	Stats(ctx context.Context, branchID uuid.UUID) (*BranchStats, error)
	Invoices(ctx context.Context, branchID uuid.UUID, params pagination.Params) (*Page[models.Invoice], error)
	Orders(ctx context.Context, branchID uuid.UUID, params pagination.Params) (*Page[models.Order], error)
}

type service struct {
	repo dashboardRepository
}

// NewService builds a dashboard service with the provided repository.
func NewService(repo dashboardRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Stats(ctx context.Context, branchID uuid.UUID) (*BranchStats, error) {
	photoCounts, err := s.repo.CountPhotosByStatus(ctx, branchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count photos")
	}
	syncCounts, err := s.repo.CountSyncJobsByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count sync jobs")
	}
	return &BranchStats{PhotoCounts: photoCounts, SyncJobCounts: syncCounts}, nil
}

func (s *service) Invoices(ctx context.Context, branchID uuid.UUID, params pagination.Params) (*Page[models.Invoice], error) {
	cursor, limit, err := decodeParams(params)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRecentInvoices(ctx, branchID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	page := &Page[models.Invoice]{}
	page.Items, page.NextCursor = trimPage(rows, limit, func(inv models.Invoice) (time.Time, uuid.UUID) {
		return inv.CreatedAt, inv.ID
	})
	return page, nil
}

func (s *service) Orders(ctx context.Context, branchID uuid.UUID, params pagination.Params) (*Page[models.Order], error) {
	cursor, limit, err := decodeParams(params)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRecentOrders(ctx, branchID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	page := &Page[models.Order]{}
	page.Items, page.NextCursor = trimPage(rows, limit, func(o models.Order) (time.Time, uuid.UUID) {
		return o.CreatedAt, o.ID
	})
	return page, nil
}

func decodeParams(params pagination.Params) (*pagination.Cursor, int, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	return cursor, pagination.NormalizeLimit(params.Limit), nil
}

// trimPage drops the look-ahead row and encodes the cursor pointing at
// the last returned item.
func trimPage[T any](rows []T, limit int, keyOf func(T) (time.Time, uuid.UUID)) ([]T, string) {
	if len(rows) <= limit {
		return rows, ""
	}
	rows = rows[:limit]
	createdAt, id := keyOf(rows[len(rows)-1])
	return rows, pagination.EncodeCursor(pagination.Cursor{CreatedAt: createdAt, ID: id})
}
