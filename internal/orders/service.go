package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/internal/pricing"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userFinder interface {
	FindByBarcodePrefix(ctx context.Context, prefix, phone string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type selectionFinder interface {
	ListForUser(ctx context.Context, userID uuid.UUID, prefix string) ([]models.PhotoSelection, error)
}

type orderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListForBranch(ctx context.Context, branchID uuid.UUID, limit int) ([]models.Order, error)
	CreateWithTx(tx *gorm.DB, order *models.Order) error
	MarkCompletedWithTx(tx *gorm.DB, id uuid.UUID) error
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Order, error)
}

type syncJobEnqueuer interface {
	CreateWithTx(tx *gorm.DB, job *models.SyncJob) error
}

// CreateInput builds an order from the session's current selection.
type CreateInput struct {
	Barcode     string
	PhoneNumber string
	BranchID    uuid.UUID
	Origin      enums.OrderOrigin
	SendType    enums.OrderSendType
	ShiftID     *uuid.UUID
	ShiftName   *string
}

// CompleteInput carries the staff context needed for the outbound
// payroll record.
type CompleteInput struct {
	OrderID      uuid.UUID
	EmployeeName string
	ShiftName    string
}

// Service exposes the order workflow.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Complete(ctx context.Context, input CompleteInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListForBranch(ctx context.Context, branchID uuid.UUID, limit int) ([]models.Order, error)
}

type service struct {
	tx         txRunner
	users      userFinder
	selections selectionFinder
	repo       orderRepository
	syncJobs   syncJobEnqueuer
}

// NewService builds an order service with the provided collaborators.
func NewService(tx txRunner, users userFinder, sels selectionFinder, repo orderRepository, syncJobs syncJobEnqueuer) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sels == nil {
		return nil, fmt.Errorf("selection repository required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if syncJobs == nil {
		return nil, fmt.Errorf("sync job repository required")
	}
	return &service{tx: tx, users: users, selections: sels, repo: repo, syncJobs: syncJobs}, nil
}

// Create materializes the session's current selection into an order.
// Pay amount is the flat unit price times total requested copies.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if !input.Origin.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order origin")
	}
	if !input.SendType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid send type")
	}

	prefix := input.Barcode
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}

	user, err := s.users.FindByBarcodePrefix(ctx, prefix, input.PhoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	rows, err := s.selections.ListForUser(ctx, user.ID, prefix)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load selection")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no selection to order")
	}

	totalCopies := 0
	order := &models.Order{
		UserID:        user.ID,
		BarcodePrefix: prefix,
		BranchID:      input.BranchID,
		Origin:        input.Origin,
		SendType:      input.SendType,
		ShiftID:       input.ShiftID,
		ShiftName:     input.ShiftName,
	}
	for _, sel := range rows {
		totalCopies += sel.Quantity
		order.Items = append(order.Items, models.OrderItem{
			SelectionID: sel.ID,
			PhotoID:     sel.PhotoID,
			Quantity:    sel.Quantity,
			UnitPrice:   pricing.PricePerPhoto,
		})
	}
	order.PayAmount = pricing.PricePerPhoto.Mul(decimal.NewFromInt(int64(totalCopies))).Round(2)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Complete marks the order done and queues the outbound payroll record
// in the same transaction, so a completed order is never lost to the
// sync pipeline.
func (s *service) Complete(ctx context.Context, input CompleteInput) (*models.Order, error) {
	if input.EmployeeName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee name is required")
	}

	var completed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDWithTx(tx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
		}
		if order.Completed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already completed")
		}

		if err := s.repo.MarkCompletedWithTx(tx, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete order")
		}

		user, err := s.users.FindByID(ctx, order.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find customer")
		}

		numPhotos := 0
		for _, item := range order.Items {
			numPhotos += item.Quantity
		}

		shiftName := input.ShiftName
		if shiftName == "" && order.ShiftName != nil {
			shiftName = *order.ShiftName
		}

		job := &models.SyncJob{
			Status:          enums.SyncStatusPending,
			EmployeeName:    input.EmployeeName,
			PayAmount:       order.PayAmount,
			OrderPrefixCode: order.BarcodePrefix,
			ShiftName:       shiftName,
			OrderPhone:      user.PhoneNumber,
			NumberOfPhotos:  numPhotos,
		}
		if err := s.syncJobs.CreateWithTx(tx, job); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue sync job")
		}

		order.Completed = true
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// Get loads an order with its items.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return order, nil
}

// ListForBranch returns a branch's recent orders.
func (s *service) ListForBranch(ctx context.Context, branchID uuid.UUID, limit int) ([]models.Order, error) {
	rows, err := s.repo.ListForBranch(ctx, branchID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}
