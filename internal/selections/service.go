package selections

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userFinder interface {
	FindByBarcodePrefix(ctx context.Context, prefix, phone string) (*models.User, error)
}

type photoCloner interface {
	ListOriginalsByIDsWithTx(tx *gorm.DB, prefix string, ids []uuid.UUID) ([]models.Photo, error)
	DeleteClonesWithTx(tx *gorm.DB, userID uuid.UUID, prefix string) error
	CreateWithTx(tx *gorm.DB, photo *models.Photo) error
}

type selectionRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID, prefix string) ([]models.PhotoSelection, error)
	DeleteForUserWithTx(tx *gorm.DB, userID uuid.UUID, prefix string) error
	CreateWithTx(tx *gorm.DB, rows []models.PhotoSelection) error
}

// SelectionItem is one requested photo with its print quantity.
type SelectionItem struct {
	PhotoID  uuid.UUID
	Quantity int
}

// ReplaceInput carries a full selection for a walk-in session.
type ReplaceInput struct {
	Barcode     string
	PhoneNumber string
	Items       []SelectionItem
}

// ReplaceResult reports what the replacement produced.
type ReplaceResult struct {
	UserID        uuid.UUID `json:"user_id"`
	BarcodePrefix string    `json:"barcode_prefix"`
	SelectedCount int       `json:"selected_count"`
	ClonedCount   int       `json:"cloned_count"`
}

// Service exposes the selection workflow.
type Service interface {
	Replace(ctx context.Context, input ReplaceInput) (*ReplaceResult, error)
	ListForUser(ctx context.Context, userID uuid.UUID, prefix string) ([]models.PhotoSelection, error)
}

type service struct {
	tx     txRunner
	users  userFinder
	photos photoCloner
	repo   selectionRepository
}

// NewService builds a selection service with the provided collaborators.
func NewService(tx txRunner, users userFinder, photos photoCloner, repo selectionRepository) (Service, error) {
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
		return nil, fmt.Errorf("selection repository required")
	}
	return &service{tx: tx, users: users, photos: photos, repo: repo}, nil
}

// Replace swaps the session's selection wholesale. Prior selection rows
// and cloned photos are deleted, then one clone row per requested copy
// is created carrying cloned_from metadata. Repeating the call with
// different quantities replaces the previous outcome entirely; the last
// submission wins.
func (s *service) Replace(ctx context.Context, input ReplaceInput) (*ReplaceResult, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one photo is required")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
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

	result := &ReplaceResult{UserID: user.ID, BarcodePrefix: prefix}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		originals, err := s.photos.ListOriginalsByIDsWithTx(tx, prefix, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load photos")
		}
		if len(originals) != len(ids) {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid photo selection")
		}
		byID := make(map[uuid.UUID]*models.Photo, len(originals))
		for i := range originals {
			byID[originals[i].ID] = &originals[i]
		}

		if err := s.repo.DeleteForUserWithTx(tx, user.ID, prefix); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear selection")
		}
		if err := s.photos.DeleteClonesWithTx(tx, user.ID, prefix); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear clones")
		}

		rows := make([]models.PhotoSelection, 0, len(input.Items))
		for _, item := range input.Items {
			rows = append(rows, models.PhotoSelection{
				UserID:        user.ID,
				BarcodePrefix: prefix,
				PhotoID:       item.PhotoID,
				Quantity:      item.Quantity,
			})
		}
		if err := s.repo.CreateWithTx(tx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create selection")
		}

		for _, item := range input.Items {
			origin := byID[item.PhotoID]
			for copyIdx := 0; copyIdx < item.Quantity; copyIdx++ {
				clone := &models.Photo{
					FilePath:      origin.FilePath,
					ThumbnailPath: origin.ThumbnailPath,
					BarcodePrefix: prefix,
					UploadedBy:    origin.UploadedBy,
					BranchID:      origin.BranchID,
					UserID:        &user.ID,
					Status:        enums.PhotoStatusPending,
					SyncStatus:    origin.SyncStatus,
					Metadata: types.JSONMap{
						models.MetadataClonedFrom: origin.ID.String(),
					},
				}
				if err := s.photos.CreateWithTx(tx, clone); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clone photo")
				}
				result.ClonedCount++
			}
		}
		result.SelectedCount = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListForUser returns the current selection rows for a session.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, prefix string) ([]models.PhotoSelection, error) {
	rows, err := s.repo.ListForUser(ctx, userID, prefix)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list selection")
	}
	return rows, nil
}
