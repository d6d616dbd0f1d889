package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
)

type stubUserRepo struct {
	user      *models.User
	err       error
	createErr []error
	created   []CreateUserDTO
	updated   []*models.User
}

func (s *stubUserRepo) Create(_ context.Context, dto CreateUserDTO) (*models.User, error) {
	s.created = append(s.created, dto)
	if len(s.createErr) > 0 {
		err := s.createErr[0]
		s.createErr = s.createErr[1:]
		if err != nil {
			return nil, err
		}
	}
	return &models.User{
		ID:          uuid.New(),
		Barcode:     dto.Barcode,
		PhoneNumber: dto.PhoneNumber,
		BranchID:    dto.BranchID,
	}, nil
}

func (s *stubUserRepo) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserRepo) FindByBarcode(context.Context, string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByBarcodePrefix(context.Context, string, string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) Update(_ context.Context, user *models.User) error {
	s.updated = append(s.updated, user)
	return nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestRegisterIssuesTwelveDigitBarcode(t *testing.T) {
	repo := &stubUserRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Register(context.Background(), "01012345678", uuid.New())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(dto.Barcode) != 12 {
		t.Fatalf("expected 12 digit barcode got %q", dto.Barcode)
	}
	for _, r := range dto.Barcode {
		if r < '0' || r > '9' {
			t.Fatalf("barcode contains non-digit %q", dto.Barcode)
		}
	}
	if dto.BarcodePrefix != dto.Barcode[:8] {
		t.Fatalf("expected prefix %q got %q", dto.Barcode[:8], dto.BarcodePrefix)
	}
}

func TestRegisterRetriesOnBarcodeCollision(t *testing.T) {
	repo := &stubUserRepo{createErr: []error{errors.New("duplicate key value violates unique constraint")}}
	svc, _ := NewService(repo)

	dto, err := svc.Register(context.Background(), "01012345678", uuid.New())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected a retry after collision, got %d attempts", len(repo.created))
	}
	if repo.created[0].Barcode == repo.created[1].Barcode {
		t.Fatal("expected a fresh barcode on retry")
	}
	if dto == nil || dto.Barcode == "" {
		t.Fatal("expected user after retry")
	}
}

func TestRegisterRequiresPhone(t *testing.T) {
	svc, _ := NewService(&stubUserRepo{})
	_, err := svc.Register(context.Background(), "", uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByBarcodeStampsVisit(t *testing.T) {
	user := &models.User{ID: uuid.New(), Barcode: "123456789012", PhoneNumber: "555"}
	repo := &stubUserRepo{user: user}
	svc, _ := NewService(repo)

	dto, err := svc.GetByBarcode(context.Background(), user.Barcode, uuid.New())
	if err != nil {
		t.Fatalf("get by barcode: %v", err)
	}
	if dto.ID != user.ID {
		t.Fatalf("expected user %s got %s", user.ID, dto.ID)
	}
	if len(repo.created) != 0 {
		t.Fatal("known barcode must not create a new customer")
	}
	if len(repo.updated) != 1 || repo.updated[0].LastVisit == nil {
		t.Fatal("expected last visit stamp")
	}
}

func TestGetByBarcodeRegistersUnknownCustomer(t *testing.T) {
	repo := &stubUserRepo{err: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)
	branchID := uuid.New()

	dto, err := svc.GetByBarcode(context.Background(), "123456789012", branchID)
	if err != nil {
		t.Fatalf("get by barcode: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created customer, got %d", len(repo.created))
	}
	if repo.created[0].Barcode != "123456789012" || repo.created[0].BranchID != branchID {
		t.Fatalf("expected scanned barcode at scanning branch, got %+v", repo.created[0])
	}
	if dto.Barcode != "123456789012" {
		t.Fatalf("expected scanned barcode in response, got %q", dto.Barcode)
	}
	if len(repo.updated) != 1 || repo.updated[0].LastVisit == nil {
		t.Fatal("expected last visit stamp on first scan")
	}
}

func TestGetByBarcodeRejectsMalformedCode(t *testing.T) {
	svc, _ := NewService(&stubUserRepo{})

	_, err := svc.GetByBarcode(context.Background(), "12345", uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByBarcodeRequiresBranchForNewCustomer(t *testing.T) {
	repo := &stubUserRepo{err: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	_, err := svc.GetByBarcode(context.Background(), "123456789012", uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("must not create a customer without a branch")
	}
}
