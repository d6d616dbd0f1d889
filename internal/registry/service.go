package registry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
)

const (
	barcodeDigits      = 12
	maxBarcodeAttempts = 5
)

type userRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByBarcode(ctx context.Context, barcode string) (*models.User, error)
	FindByBarcodePrefix(ctx context.Context, prefix, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// Service exposes customer registration and lookup.
type Service interface {
	Register(ctx context.Context, phone string, branchID uuid.UUID) (*UserDTO, error)
	GetByBarcode(ctx context.Context, barcode string, branchID uuid.UUID) (*UserDTO, error)
	ResolveSession(ctx context.Context, prefix, phone string) (*UserDTO, error)
}

type service struct {
	repo userRepository
	now  func() time.Time
}

// NewService builds a registration service with the provided repository.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Register issues a fresh barcode and creates the customer row. Barcode
// collisions are rare but possible, so creation retries with a new code.
func (s *service) Register(ctx context.Context, phone string, branchID uuid.UUID) (*UserDTO, error) {
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}
	if branchID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch is required")
	}

	var lastErr error
	for attempt := 0; attempt < maxBarcodeAttempts; attempt++ {
		barcode, err := generateBarcode()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate barcode")
		}

		user, err := s.repo.Create(ctx, CreateUserDTO{
			Barcode:     barcode,
			PhoneNumber: phone,
			BranchID:    branchID,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				lastErr = err
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		return FromModel(user), nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, lastErr, "barcode space exhausted")
}

// GetByBarcode resolves a customer by the exact scanned barcode and
// stamps the visit. A well-formed code with no prior record comes from
// a pre-printed QR card, so the first scan creates the customer row at
// the scanning branch.
func (s *service) GetByBarcode(ctx context.Context, barcode string, branchID uuid.UUID) (*UserDTO, error) {
	if len(barcode) != barcodeDigits {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode must be 12 digits")
	}

	user, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
		}
		if branchID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch is required")
		}
		user, err = s.repo.Create(ctx, CreateUserDTO{Barcode: barcode, BranchID: branchID})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "barcode already registered")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
	}

	now := s.now()
	user.LastVisit = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp visit")
	}
	return FromModel(user), nil
}

// ResolveSession resolves a customer by barcode prefix, using the phone
// number to disambiguate prefix collisions.
func (s *service) ResolveSession(ctx context.Context, prefix, phone string) (*UserDTO, error) {
	user, err := s.repo.FindByBarcodePrefix(ctx, prefix, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return FromModel(user), nil
}

func generateBarcode() (string, error) {
	digits := make([]byte, barcodeDigits)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	// A leading zero would survive string handling but confuses the
	// physical scanners, so force a non-zero first digit.
	if digits[0] == '0' {
		digits[0] = '9'
	}
	return string(digits), nil
}
