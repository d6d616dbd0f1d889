package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/pagination"
)

type stubDashboardRepo struct {
	photoCounts map[string]int64
	syncCounts  map[string]int64
	invoices    []models.Invoice
	orders      []models.Order
	lastCursor  *pagination.Cursor
	err         error
}

func (s *stubDashboardRepo) CountPhotosByStatus(context.Context, uuid.UUID) (map[string]int64, error) {
	return s.photoCounts, s.err
}

func (s *stubDashboardRepo) CountSyncJobsByStatus(context.Context) (map[string]int64, error) {
	return s.syncCounts, s.err
}

func (s *stubDashboardRepo) ListRecentInvoices(_ context.Context, _ uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Invoice, error) {
	s.lastCursor = cursor
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.invoices) {
		return s.invoices[:limit], nil
	}
	return s.invoices, nil
}

func (s *stubDashboardRepo) ListRecentOrders(_ context.Context, _ uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	s.lastCursor = cursor
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.orders) {
		return s.orders[:limit], nil
	}
	return s.orders, nil
}

func TestStatsAggregatesCounters(t *testing.T) {
	repo := &stubDashboardRepo{
		photoCounts: map[string]int64{"pending": 4, "printed": 2},
		syncCounts:  map[string]int64{"pending": 1, "failed": 1},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	stats, err := svc.Stats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.PhotoCounts["pending"] != 4 {
		t.Fatalf("expected 4 pending photos, got %d", stats.PhotoCounts["pending"])
	}
	if stats.SyncJobCounts["failed"] != 1 {
		t.Fatalf("expected 1 failed sync job, got %d", stats.SyncJobCounts["failed"])
	}
}

func TestStatsWrapsRepoError(t *testing.T) {
	svc, err := NewService(&stubDashboardRepo{err: errors.New("boom")})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	_, err = svc.Stats(context.Background(), uuid.New())
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestInvoicesSetsCursorOnFullPage(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var rows []models.Invoice
	for i := 0; i < 3; i++ {
		rows = append(rows, models.Invoice{
			ID:        uuid.New(),
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	repo := &stubDashboardRepo{invoices: rows}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	page, err := svc.Invoices(context.Background(), uuid.New(), pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("Invoices: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.NextCursor == "" {
		t.Fatal("expected cursor on full page")
	}
	cursor, err := pagination.ParseCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("ParseCursor: %v", err)
	}
	if cursor.ID != page.Items[1].ID {
		t.Fatalf("expected cursor at last item, got %s", cursor.ID)
	}

	page, err = svc.Invoices(context.Background(), uuid.New(), pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("Invoices: %v", err)
	}
	if page.NextCursor != "" {
		t.Fatalf("expected no cursor on short page, got %q", page.NextCursor)
	}
}

func TestInvoicesForwardsParsedCursor(t *testing.T) {
	repo := &stubDashboardRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	want := pagination.Cursor{CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), ID: uuid.New()}
	_, err = svc.Invoices(context.Background(), uuid.New(), pagination.Params{
		Cursor: pagination.EncodeCursor(want),
	})
	if err != nil {
		t.Fatalf("Invoices: %v", err)
	}
	if repo.lastCursor == nil || repo.lastCursor.ID != want.ID || !repo.lastCursor.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("cursor not forwarded: %+v", repo.lastCursor)
	}

	_, err = svc.Invoices(context.Background(), uuid.New(), pagination.Params{Cursor: "not-base64!"})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad cursor, got %v", err)
	}
}
