package invoices

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
	"github.com/karimelbaz/photodesk-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userFinder interface {
	FindByBarcodeWithTx(tx *gorm.DB, barcode string) (*models.User, error)
}

type photoFlipper interface {
	ListReadyToPrintWithTx(tx *gorm.DB, userID uuid.UUID) ([]models.Photo, error)
	UpdateStatusWithTx(tx *gorm.DB, ids []uuid.UUID, status enums.PhotoStatus) error
}

type invoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	ListForPrefix(ctx context.Context, prefix string) ([]models.Invoice, error)
	CreateWithTx(tx *gorm.DB, invoice *models.Invoice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InvoiceStatus) error
}

// ConfirmInput carries a print confirmation request.
type ConfirmInput struct {
	Barcode       string
	InvoiceMethod enums.InvoiceMethod
}

// Service exposes invoice generation and lookup.
type Service interface {
	ConfirmPrint(ctx context.Context, input ConfirmInput) (*models.Invoice, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	ListForPrefix(ctx context.Context, prefix string) ([]models.Invoice, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type service struct {
	tx     txRunner
	users  userFinder
	photos photoFlipper
	repo   invoiceRepository
}

// NewService builds an invoice service with the provided collaborators.
func NewService(tx txRunner, users userFinder, photos photoFlipper, repo invoiceRepository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if photos == nil {
		return nil, fmt.Errorf("photo repository required")
	}
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	return &service{tx: tx, users: users, photos: photos, repo: repo}, nil
}

// ConfirmPrint freezes an invoice for every ready_to_print photo on the
// barcode and flips those photos to printed. The photo id set the
// invoice covers is recorded in metadata so printed rows always trace
// to exactly one invoice. Invoice and status flips commit together or
// not at all.
func (s *service) ConfirmPrint(ctx context.Context, input ConfirmInput) (*models.Invoice, error) {
	if !input.InvoiceMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid invoice method")
	}

	var created *models.Invoice
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := s.users.FindByBarcodeWithTx(tx, input.Barcode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
		}

		ready, err := s.photos.ListReadyToPrintWithTx(tx, user.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load staged photos")
		}
		if len(ready) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "no photos ready to print")
		}

		ids := make([]uuid.UUID, 0, len(ready))
		photoIDs := make([]any, 0, len(ready))
		for _, p := range ready {
			ids = append(ids, p.ID)
			photoIDs = append(photoIDs, p.ID.String())
		}

		amount, tax, total := pricing.Totals(len(ready))
		invoice := &models.Invoice{
			UserID:        user.ID,
			BarcodePrefix: user.BarcodePrefix(),
			BranchID:      user.BranchID,
			NumPhotos:     len(ready),
			Amount:        amount,
			TaxRate:       pricing.TaxRate,
			TaxAmount:     tax,
			TotalAmount:   total,
			InvoiceMethod: input.InvoiceMethod,
			Status:        enums.InvoiceStatusActive,
			Metadata:      types.JSONMap{models.MetadataPhotoIDs: photoIDs},
		}
		if err := s.repo.CreateWithTx(tx, invoice); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
		}

		if err := s.photos.UpdateStatusWithTx(tx, ids, enums.PhotoStatusPrinted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "flip photos to printed")
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get loads an invoice.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find invoice")
	}
	return invoice, nil
}

// ListForPrefix returns a session's invoices.
func (s *service) ListForPrefix(ctx context.Context, prefix string) ([]models.Invoice, error) {
	rows, err := s.repo.ListForPrefix(ctx, prefix)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return rows, nil
}

// Cancel voids an active invoice.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status != enums.InvoiceStatusActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only active invoices can be cancelled")
	}
	if err := s.repo.UpdateStatus(ctx, id, enums.InvoiceStatusCancelled); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel invoice")
	}
	return nil
}
