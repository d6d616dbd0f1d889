package printrequests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
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
}

type photoStager interface {
	ListOriginalsByIDsWithTx(tx *gorm.DB, prefix string, ids []uuid.UUID) ([]models.Photo, error)
	ListClonesByOriginsWithTx(tx *gorm.DB, userID uuid.UUID, prefix string, originIDs []uuid.UUID) ([]models.Photo, error)
	ResetReadyToPendingWithTx(tx *gorm.DB, userID uuid.UUID) error
	UpdateStatusWithTx(tx *gorm.DB, ids []uuid.UUID, status enums.PhotoStatus) error
}

type packageFinder interface {
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Package, error)
}

type printRequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PrintRequest, error)
	ListForPrefix(ctx context.Context, prefix string) ([]models.PrintRequest, error)
	DeleteUnpaidWithTx(tx *gorm.DB, prefix string) error
	CreateWithTx(tx *gorm.DB, req *models.PrintRequest) error
	MarkPaid(ctx context.Context, id uuid.UUID, method enums.PaymentMethod) error
}

// RequestItem is one photo with a print quantity.
type RequestItem struct {
	PhotoID  uuid.UUID
	Quantity int
}

// CreateInput carries a staged purchase for a walk-in session.
type CreateInput struct {
	Barcode       string
	PhoneNumber   string
	Items         []RequestItem
	PackageID     *uuid.UUID
	PaymentMethod enums.PaymentMethod
	BranchID      uuid.UUID
}

// Service exposes the print request workflow.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.PrintRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PrintRequest, error)
	ListForPrefix(ctx context.Context, prefix string) ([]models.PrintRequest, error)
	MarkPaid(ctx context.Context, id uuid.UUID, method enums.PaymentMethod) error
}

type service struct {
	tx       txRunner
	users    userFinder
	photos   photoStager
	packages packageFinder
	repo     printRequestRepository
}

// NewService builds a print request service with the provided collaborators.
func NewService(tx txRunner, users userFinder, photos photoStager, pkgs packageFinder, repo printRequestRepository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if photos == nil {
		return nil, fmt.Errorf("photo repository required")
	}
	if pkgs == nil {
		return nil, fmt.Errorf("package repository required")
	}
	if repo == nil {
		return nil, fmt.Errorf("print request repository required")
	}
	return &service{tx: tx, users: users, photos: photos, packages: pkgs, repo: repo}, nil
}

// Create stages a purchase. Any earlier uncommitted staging for the
// session is undone first: ready_to_print photos drop back to pending
// and unpaid requests are deleted with their pivots. The new request
// attaches the originals at the flat unit price and flips the clone
// copies the selection produced to ready_to_print, so each requested
// copy is counted once at invoicing, all in one transaction.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.PrintRequest, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one photo is required")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
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

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.PhotoID)
	}

	var created *models.PrintRequest
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.photos.ResetReadyToPendingWithTx(tx, user.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset staged photos")
		}
		if err := s.repo.DeleteUnpaidWithTx(tx, prefix); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop unpaid requests")
		}

		photos, err := s.photos.ListOriginalsByIDsWithTx(tx, prefix, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load photos")
		}
		if len(photos) != len(ids) {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid photo selection")
		}

		if input.PackageID != nil {
			pkg, err := s.packages.FindByIDWithTx(tx, *input.PackageID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation, "invalid package selection")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
			}
			if !pkg.Active || pkg.BranchID != input.BranchID {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid package selection")
			}
		}

		clones, err := s.photos.ListClonesByOriginsWithTx(tx, user.ID, prefix, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load clone copies")
		}
		copiesByOrigin := make(map[uuid.UUID]int, len(ids))
		cloneIDs := make([]uuid.UUID, 0, len(clones))
		for _, clone := range clones {
			origin, ok := clone.ClonedFrom()
			if !ok {
				continue
			}
			copiesByOrigin[origin]++
			cloneIDs = append(cloneIDs, clone.ID)
		}
		for _, item := range input.Items {
			if copiesByOrigin[item.PhotoID] != item.Quantity {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "photo selection is out of date")
			}
		}

		method := input.PaymentMethod
		if method == "" {
			method = enums.PaymentMethodCash
		}

		req := &models.PrintRequest{
			UserID:        user.ID,
			BarcodePrefix: prefix,
			PackageID:     input.PackageID,
			Status:        enums.PrintRequestStatusPending,
			PaymentMethod: method,
		}
		for _, item := range input.Items {
			req.Photos = append(req.Photos, models.PrintRequestPhoto{
				PhotoID:   item.PhotoID,
				Quantity:  item.Quantity,
				UnitPrice: pricing.PricePerPhoto,
			})
		}
		if err := s.repo.CreateWithTx(tx, req); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create print request")
		}

		if err := s.photos.UpdateStatusWithTx(tx, cloneIDs, enums.PhotoStatusReadyToPrint); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stage copies")
		}

		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get loads a print request with its pivot rows.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PrintRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "print request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find print request")
	}
	return req, nil
}

// ListForPrefix returns a session's print requests.
func (s *service) ListForPrefix(ctx context.Context, prefix string) ([]models.PrintRequest, error) {
	rows, err := s.repo.ListForPrefix(ctx, prefix)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list print requests")
	}
	return rows, nil
}

// MarkPaid records payment on a staged request.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID, method enums.PaymentMethod) error {
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if err := s.repo.MarkPaid(ctx, id, method); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark paid")
	}
	return nil
}
