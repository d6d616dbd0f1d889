package printrequests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/types"
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

type stubPhotoStager struct {
	photos   []models.Photo
	clones   []models.Photo
	resets   int
	staged   []uuid.UUID
	stagedAs enums.PhotoStatus
}

func (s *stubPhotoStager) ListOriginalsByIDsWithTx(_ *gorm.DB, _ string, ids []uuid.UUID) ([]models.Photo, error) {
	var out []models.Photo
	for _, p := range s.photos {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *stubPhotoStager) ListClonesByOriginsWithTx(_ *gorm.DB, _ uuid.UUID, _ string, originIDs []uuid.UUID) ([]models.Photo, error) {
	var out []models.Photo
	for _, c := range s.clones {
		origin, ok := c.ClonedFrom()
		if !ok || c.Status != enums.PhotoStatusPending {
			continue
		}
		for _, id := range originIDs {
			if origin == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (s *stubPhotoStager) ResetReadyToPendingWithTx(*gorm.DB, uuid.UUID) error {
	s.resets++
	return nil
}

func (s *stubPhotoStager) UpdateStatusWithTx(_ *gorm.DB, ids []uuid.UUID, status enums.PhotoStatus) error {
	s.staged = append(s.staged, ids...)
	s.stagedAs = status
	return nil
}

type stubPackageFinder struct {
	pkg *models.Package
	err error
}

func (s stubPackageFinder) FindByIDWithTx(*gorm.DB, uuid.UUID) (*models.Package, error) {
	return s.pkg, s.err
}

type stubRequestRepo struct {
	unpaidDeletes int
	created       []*models.PrintRequest
	paid          []uuid.UUID
}

func (s *stubRequestRepo) FindByID(context.Context, uuid.UUID) (*models.PrintRequest, error) {
	if len(s.created) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.created[len(s.created)-1], nil
}

func (s *stubRequestRepo) ListForPrefix(context.Context, string) ([]models.PrintRequest, error) {
	return nil, nil
}

func (s *stubRequestRepo) DeleteUnpaidWithTx(*gorm.DB, string) error {
	s.unpaidDeletes++
	return nil
}

func (s *stubRequestRepo) CreateWithTx(_ *gorm.DB, req *models.PrintRequest) error {
	req.ID = uuid.New()
	s.created = append(s.created, req)
	return nil
}

func (s *stubRequestRepo) MarkPaid(_ context.Context, id uuid.UUID, _ enums.PaymentMethod) error {
	s.paid = append(s.paid, id)
	return nil
}

func stagingFixture() (*models.User, []models.Photo) {
	user := &models.User{ID: uuid.New(), Barcode: "123456789012", PhoneNumber: "555"}
	photos := []models.Photo{
		{ID: uuid.New(), BarcodePrefix: "12345678"},
		{ID: uuid.New(), BarcodePrefix: "12345678"},
	}
	return user, photos
}

func cloneRows(user *models.User, origin models.Photo, count int) []models.Photo {
	var out []models.Photo
	for i := 0; i < count; i++ {
		out = append(out, models.Photo{
			ID:            uuid.New(),
			BarcodePrefix: origin.BarcodePrefix,
			UserID:        &user.ID,
			Status:        enums.PhotoStatusPending,
			Metadata:      types.JSONMap{models.MetadataClonedFrom: origin.ID.String()},
		})
	}
	return out
}

func TestCreateStagesPhotosAndPivot(t *testing.T) {
	user, photos := stagingFixture()
	clones := append(cloneRows(user, photos[0], 2), cloneRows(user, photos[1], 1)...)
	stager := &stubPhotoStager{photos: photos, clones: clones}
	repo := &stubRequestRepo{}
	svc, err := NewService(stubTxRunner{}, stubUserFinder{user: user}, stager, stubPackageFinder{}, repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	req, err := svc.Create(context.Background(), CreateInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		Items: []RequestItem{
			{PhotoID: photos[0].ID, Quantity: 2},
			{PhotoID: photos[1].ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if req.Status != enums.PrintRequestStatusPending {
		t.Fatalf("expected pending status got %s", req.Status)
	}
	if len(req.Photos) != 2 {
		t.Fatalf("expected 2 pivot rows got %d", len(req.Photos))
	}
	for _, pivot := range req.Photos {
		if pivot.Quantity < 1 {
			t.Fatal("pivot quantity must be at least 1")
		}
		if pivot.UnitPrice.StringFixed(2) != "10.00" {
			t.Fatalf("expected flat unit price got %s", pivot.UnitPrice)
		}
	}
	if stager.resets != 1 {
		t.Fatal("expected prior staging reset")
	}
	if repo.unpaidDeletes != 1 {
		t.Fatal("expected unpaid requests dropped")
	}
	if stager.stagedAs != enums.PhotoStatusReadyToPrint {
		t.Fatalf("expected photos staged ready_to_print, got %s", stager.stagedAs)
	}
	if len(stager.staged) != 3 {
		t.Fatalf("expected one staged copy per requested print, got %d", len(stager.staged))
	}
	cloneIDs := make(map[uuid.UUID]bool, len(clones))
	for _, c := range clones {
		cloneIDs[c.ID] = true
	}
	for _, id := range stager.staged {
		if !cloneIDs[id] {
			t.Fatalf("staged id %s is not a clone copy", id)
		}
	}
}

func TestCreateRejectsStaleSelection(t *testing.T) {
	user, photos := stagingFixture()
	// Clone copies exist for only one of the two copies requested.
	clones := cloneRows(user, photos[0], 1)
	stager := &stubPhotoStager{photos: photos, clones: clones}
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{user: user}, stager, stubPackageFinder{}, &stubRequestRepo{})

	_, err := svc.Create(context.Background(), CreateInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		Items:       []RequestItem{{PhotoID: photos[0].ID, Quantity: 2}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for stale selection, got %v", err)
	}
}

func TestCreateRejectsForeignPhotos(t *testing.T) {
	user, photos := stagingFixture()
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{user: user}, &stubPhotoStager{photos: photos}, stubPackageFinder{}, &stubRequestRepo{})

	_, err := svc.Create(context.Background(), CreateInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		Items:       []RequestItem{{PhotoID: uuid.New(), Quantity: 1}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected invalid photo selection, got %v", err)
	}
}

func TestCreateRejectsInactivePackage(t *testing.T) {
	user, photos := stagingFixture()
	branchID := uuid.New()
	pkgID := uuid.New()
	pkgs := stubPackageFinder{pkg: &models.Package{ID: pkgID, BranchID: branchID, Active: false}}
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{user: user}, &stubPhotoStager{photos: photos}, pkgs, &stubRequestRepo{})

	_, err := svc.Create(context.Background(), CreateInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		Items:       []RequestItem{{PhotoID: photos[0].ID, Quantity: 1}},
		PackageID:   &pkgID,
		BranchID:    branchID,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected invalid package selection, got %v", err)
	}
}

func TestCreateRejectsWrongBranchPackage(t *testing.T) {
	user, photos := stagingFixture()
	pkgID := uuid.New()
	pkgs := stubPackageFinder{pkg: &models.Package{ID: pkgID, BranchID: uuid.New(), Active: true}}
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{user: user}, &stubPhotoStager{photos: photos}, pkgs, &stubRequestRepo{})

	_, err := svc.Create(context.Background(), CreateInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		Items:       []RequestItem{{PhotoID: photos[0].ID, Quantity: 1}},
		PackageID:   &pkgID,
		BranchID:    uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected invalid package selection, got %v", err)
	}
}

func TestCreateUserNotFound(t *testing.T) {
	svc, _ := NewService(stubTxRunner{}, stubUserFinder{err: gorm.ErrRecordNotFound}, &stubPhotoStager{}, stubPackageFinder{}, &stubRequestRepo{})

	_, err := svc.Create(context.Background(), CreateInput{
		Barcode: "123456789012",
		Items:   []RequestItem{{PhotoID: uuid.New(), Quantity: 1}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
