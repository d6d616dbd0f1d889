package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type stubUserFinder struct {
	user *models.User
	err  error
}

func (s stubUserFinder) FindByBarcodePrefix(context.Context, string, string) (*models.User, error) {
	return s.user, s.err
}

func (s stubUserFinder) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	return s.user, s.err
}

type stubSelectionFinder struct {
	rows []models.PhotoSelection
}

func (s stubSelectionFinder) ListForUser(context.Context, uuid.UUID, string) ([]models.PhotoSelection, error) {
	return s.rows, nil
}

type stubOrderRepo struct {
	order   *models.Order
	created []*models.Order
	done    []uuid.UUID
}

func (s *stubOrderRepo) FindByID(context.Context, uuid.UUID) (*models.Order, error) {
	if s.order == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) ListForBranch(context.Context, uuid.UUID, int) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) CreateWithTx(_ *gorm.DB, order *models.Order) error {
	order.ID = uuid.New()
	s.created = append(s.created, order)
	return nil
}

func (s *stubOrderRepo) MarkCompletedWithTx(_ *gorm.DB, id uuid.UUID) error {
	s.done = append(s.done, id)
	return nil
}

func (s *stubOrderRepo) FindByIDWithTx(*gorm.DB, uuid.UUID) (*models.Order, error) {
	if s.order == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

type stubSyncEnqueuer struct {
	jobs []*models.SyncJob
}

func (s *stubSyncEnqueuer) CreateWithTx(_ *gorm.DB, job *models.SyncJob) error {
	job.ID = uuid.New()
	s.jobs = append(s.jobs, job)
	return nil
}

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return d
}

func orderFixture() (*models.User, []models.PhotoSelection) {
	user := &models.User{ID: uuid.New(), Barcode: "123456789012", PhoneNumber: "01012345678", BranchID: uuid.New()}
	rows := []models.PhotoSelection{
		{ID: uuid.New(), UserID: user.ID, BarcodePrefix: "12345678", PhotoID: uuid.New(), Quantity: 2},
		{ID: uuid.New(), UserID: user.ID, BarcodePrefix: "12345678", PhotoID: uuid.New(), Quantity: 1},
	}
	return user, rows
}

func TestCreatePricesSelection(t *testing.T) {
	user, rows := orderFixture()
	repo := &stubOrderRepo{}
	svc, err := NewService(stubTxRunner{}, stubUserFinder{user: user}, stubSelectionFinder{rows: rows}, repo, &stubSyncEnqueuer{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	order, err := svc.Create(context.Background(), CreateInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		BranchID:    user.BranchID,
		Origin:      enums.OrderOriginUserInterface,
		SendType:    enums.OrderSendTypePrint,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.PayAmount.StringFixed(2) != "30.00" {
		t.Fatalf("expected 30.00 for 3 copies got %s", order.PayAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(order.Items))
	}
}

func TestCreateWithoutSelectionFails(t *testing.T) {
	user, _ := orderFixture()
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{user: user}, stubSelectionFinder{}, &stubOrderRepo{}, &stubSyncEnqueuer{})

	_, err := svc.Create(context.Background(), CreateInput{
		Barcode:  user.Barcode,
		Origin:   enums.OrderOriginManual,
		SendType: enums.OrderSendTypeSend,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCompleteQueuesSyncJob(t *testing.T) {
	user, _ := orderFixture()
	shift := "morning"
	order := &models.Order{
		ID:            uuid.New(),
		UserID:        user.ID,
		BarcodePrefix: "12345678",
		PayAmount:     mustDecimal(t, "30.00"),
		ShiftName:     &shift,
		Items: []models.OrderItem{
			{Quantity: 2},
			{Quantity: 1},
		},
	}
	repo := &stubOrderRepo{order: order}
	queue := &stubSyncEnqueuer{}
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{user: user}, stubSelectionFinder{}, repo, queue)

	completed, err := svc.Complete(context.Background(), CompleteInput{
		OrderID:      order.ID,
		EmployeeName: "Sara",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !completed.Completed {
		t.Fatal("expected order marked completed")
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("expected one sync job got %d", len(queue.jobs))
	}
	job := queue.jobs[0]
	if job.Status != enums.SyncStatusPending {
		t.Fatalf("expected pending job got %s", job.Status)
	}
	if job.EmployeeName != "Sara" || job.OrderPhone != user.PhoneNumber {
		t.Fatalf("unexpected job %+v", job)
	}
	if job.NumberOfPhotos != 3 {
		t.Fatalf("expected 3 photos got %d", job.NumberOfPhotos)
	}
	if job.ShiftName != shift {
		t.Fatalf("expected shift from order got %q", job.ShiftName)
	}
}

func TestCompleteRejectsCompletedOrder(t *testing.T) {
	user, _ := orderFixture()
	order := &models.Order{ID: uuid.New(), UserID: user.ID, Completed: true}
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{user: user}, stubSelectionFinder{}, &stubOrderRepo{order: order}, &stubSyncEnqueuer{})

	_, err := svc.Complete(context.Background(), CompleteInput{OrderID: order.ID, EmployeeName: "Sara"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}
