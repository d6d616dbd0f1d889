package photos

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/storage/local"
	"github.com/karimelbaz/photodesk-backend/pkg/types"
)

type stubPhotoRepo struct {
	createErr error
	created   []*models.Photo
	photo     *models.Photo
	findErr   error
	assigned  []uuid.UUID
	cloneRefs int64
	deleted   []uuid.UUID
}

func (s *stubPhotoRepo) Create(_ context.Context, photo *models.Photo) error {
	if s.createErr != nil {
		return s.createErr
	}
	photo.ID = uuid.New()
	s.created = append(s.created, photo)
	return nil
}

func (s *stubPhotoRepo) FindByID(context.Context, uuid.UUID) (*models.Photo, error) {
	return s.photo, s.findErr
}

func (s *stubPhotoRepo) ListByPrefix(context.Context, string, *enums.PhotoStatus) ([]models.Photo, error) {
	if s.photo == nil {
		return nil, nil
	}
	return []models.Photo{*s.photo}, nil
}

func (s *stubPhotoRepo) AssignUser(_ context.Context, ids []uuid.UUID, _ uuid.UUID) error {
	s.assigned = append(s.assigned, ids...)
	return nil
}

func (s *stubPhotoRepo) CountClonesOf(context.Context, uuid.UUID) (int64, error) {
	return s.cloneRefs, nil
}

func (s *stubPhotoRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubStore struct {
	saveErr error
	saved   []string
	removed []string
}

func (s *stubStore) Save(key string, _ io.Reader) (*local.SavedPhoto, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saved = append(s.saved, key)
	return &local.SavedPhoto{FilePath: key, ThumbnailPath: local.ThumbnailKey(key)}, nil
}

func (s *stubStore) Remove(key, thumbKey string) error {
	s.removed = append(s.removed, key)
	return nil
}

func TestUploadCreatesPendingPhoto(t *testing.T) {
	repo := &stubPhotoRepo{}
	store := &stubStore{}
	svc, err := NewService(repo, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Upload(context.Background(), UploadInput{
		BarcodePrefix: "12345678",
		Filename:      "session.jpg",
		BranchCode:    "downtown",
		BranchID:      uuid.New(),
		StaffID:       uuid.New(),
		Body:          bytes.NewReader([]byte("jpeg-bytes")),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if dto.Status != enums.PhotoStatusPending {
		t.Fatalf("expected pending status got %s", dto.Status)
	}
	if dto.SyncStatus != enums.SyncStatusPending {
		t.Fatalf("expected pending sync status got %s", dto.SyncStatus)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one stored object got %d", len(store.saved))
	}
	if dto.ThumbnailPath == nil {
		t.Fatal("expected thumbnail path")
	}
}

func TestUploadCleansUpStorageWhenInsertFails(t *testing.T) {
	repo := &stubPhotoRepo{createErr: errors.New("insert failed")}
	store := &stubStore{}
	svc, _ := NewService(repo, store)

	_, err := svc.Upload(context.Background(), UploadInput{
		BarcodePrefix: "12345678",
		Filename:      "session.jpg",
		BranchCode:    "downtown",
		BranchID:      uuid.New(),
		StaffID:       uuid.New(),
		Body:          bytes.NewReader([]byte("jpeg-bytes")),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.removed) != 1 {
		t.Fatalf("expected stored object removed after failed insert, got %d", len(store.removed))
	}
}

func TestRemoveKeepsSharedFileForClones(t *testing.T) {
	origin := uuid.New()
	clone := &models.Photo{
		ID:       uuid.New(),
		FilePath: "downtown/2026/09/01/12345678/session.jpg",
		Status:   enums.PhotoStatusPending,
		Metadata: types.JSONMap{models.MetadataClonedFrom: origin.String()},
	}
	repo := &stubPhotoRepo{photo: clone}
	store := &stubStore{}
	svc, _ := NewService(repo, store)

	if err := svc.Remove(context.Background(), clone.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatal("expected photo row deleted")
	}
	if len(store.removed) != 0 {
		t.Fatal("clone removal must not delete the shared file")
	}
}

func TestRemoveRejectsNonPendingPhoto(t *testing.T) {
	staged := &models.Photo{
		ID:       uuid.New(),
		FilePath: "downtown/2026/09/01/12345678/session.jpg",
		Status:   enums.PhotoStatusReadyToPrint,
	}
	repo := &stubPhotoRepo{photo: staged}
	store := &stubStore{}
	svc, _ := NewService(repo, store)

	err := svc.Remove(context.Background(), staged.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(repo.deleted) != 0 || len(store.removed) != 0 {
		t.Fatal("staged photo must not be deleted")
	}
}

func TestRemoveRejectsOriginWithLiveCopies(t *testing.T) {
	origin := &models.Photo{
		ID:       uuid.New(),
		FilePath: "downtown/2026/09/01/12345678/session.jpg",
		Status:   enums.PhotoStatusPending,
	}
	repo := &stubPhotoRepo{photo: origin, cloneRefs: 2}
	store := &stubStore{}
	svc, _ := NewService(repo, store)

	err := svc.Remove(context.Background(), origin.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(repo.deleted) != 0 || len(store.removed) != 0 {
		t.Fatal("original with selected copies must stay")
	}
}

func TestRemoveDeletesPendingOriginal(t *testing.T) {
	origin := &models.Photo{
		ID:       uuid.New(),
		FilePath: "downtown/2026/09/01/12345678/session.jpg",
		Status:   enums.PhotoStatusPending,
	}
	repo := &stubPhotoRepo{photo: origin}
	store := &stubStore{}
	svc, _ := NewService(repo, store)

	if err := svc.Remove(context.Background(), origin.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatal("expected photo row deleted")
	}
	if len(store.removed) != 1 {
		t.Fatal("expected stored file released")
	}
}

func TestRemoveNotFound(t *testing.T) {
	repo := &stubPhotoRepo{findErr: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo, &stubStore{})

	err := svc.Remove(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
