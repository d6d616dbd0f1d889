package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/storage/local"
)

type photoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	ListByPrefix(ctx context.Context, prefix string, status *enums.PhotoStatus) ([]models.Photo, error)
	AssignUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) error
	CountClonesOf(ctx context.Context, originID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type objectStore interface {
	Save(key string, r io.Reader) (*local.SavedPhoto, error)
	Remove(key, thumbKey string) error
}

// UploadInput carries one staged image from the intake endpoint.
type UploadInput struct {
	BarcodePrefix string
	Filename      string
	BranchCode    string
	BranchID      uuid.UUID
	StaffID       uuid.UUID
	Body          io.Reader
}

// Service exposes photo intake and lookup.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*PhotoDTO, error)
	ListByPrefix(ctx context.Context, prefix string, status *enums.PhotoStatus) ([]PhotoDTO, error)
	Tag(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  photoRepository
	store objectStore
	now   func() time.Time
}

// NewService builds a photo service with the provided repository and store.
func NewService(repo photoRepository, store objectStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("photo repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	return &service{repo: repo, store: store, now: time.Now}, nil
}

// Upload writes the image and its thumbnail to storage and records the
// pending photo row. A failed insert removes the stored files so the
// tree does not accumulate orphans.
func (s *service) Upload(ctx context.Context, input UploadInput) (*PhotoDTO, error) {
	if input.BarcodePrefix == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode prefix is required")
	}
	if strings.TrimSpace(input.Filename) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file body is required")
	}

	key := local.ObjectKey(input.BranchCode, input.BarcodePrefix, input.Filename, s.now())
	saved, err := s.store.Save(key, input.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store photo")
	}

	photo := &models.Photo{
		FilePath:      saved.FilePath,
		BarcodePrefix: input.BarcodePrefix,
		UploadedBy:    input.StaffID,
		BranchID:      input.BranchID,
		Status:        enums.PhotoStatusPending,
		SyncStatus:    enums.SyncStatusPending,
	}
	if saved.ThumbnailPath != "" {
		photo.ThumbnailPath = &saved.ThumbnailPath
	}

	if err := s.repo.Create(ctx, photo); err != nil {
		s.store.Remove(saved.FilePath, saved.ThumbnailPath)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create photo")
	}
	return FromModel(photo), nil
}

// ListByPrefix returns the photos for a walk-in session.
func (s *service) ListByPrefix(ctx context.Context, prefix string, status *enums.PhotoStatus) ([]PhotoDTO, error) {
	rows, err := s.repo.ListByPrefix(ctx, prefix, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list photos")
	}
	return FromModels(rows), nil
}

// Tag assigns photos to the customer who claimed the session.
func (s *service) Tag(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "photo ids are required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user is required")
	}
	if err := s.repo.AssignUser(ctx, ids, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "tag photos")
	}
	return nil
}

// Remove deletes a pending photo row and its stored files. Staged or
// printed photos are part of a purchase and cannot be deleted, and an
// original with live clone copies stays because the copies share its
// file. Only non-clones release storage.
func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find photo")
	}
	if photo.Status != enums.PhotoStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending photos can be deleted")
	}
	if !photo.IsClone() {
		clones, err := s.repo.CountClonesOf(ctx, photo.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count clone copies")
		}
		if clones > 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "photo has selected copies")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete photo")
	}
	if !photo.IsClone() {
		thumb := ""
		if photo.ThumbnailPath != nil {
			thumb = *photo.ThumbnailPath
		}
		if err := s.store.Remove(photo.FilePath, thumb); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove stored photo")
		}
	}
	return nil
}
