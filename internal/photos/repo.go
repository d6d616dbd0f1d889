package photos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

// Repository handles photo persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to photo operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new photo row.
func (r *Repository) Create(ctx context.Context, photo *models.Photo) error {
	if photo == nil {
		return fmt.Errorf("photo is required")
	}
	return r.db.WithContext(ctx).Create(photo).Error
}

// FindByID loads a photo by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByPrefix returns photos for a barcode prefix, newest first,
// optionally filtered by status.
func (r *Repository) ListByPrefix(ctx context.Context, prefix string, status *enums.PhotoStatus) ([]models.Photo, error) {
	q := r.db.WithContext(ctx).Where("barcode_prefix = ?", prefix)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var rows []models.Photo
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOriginalsByIDs loads the requested photos restricted to a prefix,
// excluding clone rows.
func (r *Repository) ListOriginalsByIDs(ctx context.Context, prefix string, ids []uuid.UUID) ([]models.Photo, error) {
	var rows []models.Photo
	err := r.db.WithContext(ctx).
		Where("barcode_prefix = ?", prefix).
		Where("id IN ?", ids).
		Where("metadata IS NULL OR metadata->>? IS NULL", models.MetadataClonedFrom).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListReadyToPrint returns every ready_to_print photo for a user.
func (r *Repository) ListReadyToPrint(ctx context.Context, userID uuid.UUID) ([]models.Photo, error) {
	var rows []models.Photo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", enums.PhotoStatusReadyToPrint).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AssignUser tags photos with the customer who claimed the session.
func (r *Repository) AssignUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("id IN ?", ids).
		Update("user_id", userID).Error
}

// Delete removes a photo row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Photo{}, "id = ?", id).Error
}

// CreateWithTx persists a photo within the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, photo *models.Photo) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if photo == nil {
		return fmt.Errorf("photo is required")
	}
	return tx.Create(photo).Error
}

// ListOriginalsByIDsWithTx loads prefix-scoped originals inside a transaction.
func (r *Repository) ListOriginalsByIDsWithTx(tx *gorm.DB, prefix string, ids []uuid.UUID) ([]models.Photo, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var rows []models.Photo
	err := tx.
		Where("barcode_prefix = ?", prefix).
		Where("id IN ?", ids).
		Where("metadata IS NULL OR metadata->>? IS NULL", models.MetadataClonedFrom).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListClonesByOriginsWithTx returns the pending clone copies a user
// holds for the given origin photos, inside a transaction. Copies
// already attached to an invoice stay printed and are not returned.
func (r *Repository) ListClonesByOriginsWithTx(tx *gorm.DB, userID uuid.UUID, prefix string, originIDs []uuid.UUID) ([]models.Photo, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	origins := make([]string, 0, len(originIDs))
	for _, id := range originIDs {
		origins = append(origins, id.String())
	}
	var rows []models.Photo
	err := tx.
		Where("user_id = ?", userID).
		Where("barcode_prefix = ?", prefix).
		Where("status = ?", enums.PhotoStatusPending).
		Where("metadata->>? IN ?", models.MetadataClonedFrom, origins).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountClonesOf reports how many clone rows still point at a photo.
func (r *Repository) CountClonesOf(ctx context.Context, originID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("metadata->>? = ?", models.MetadataClonedFrom, originID.String()).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteClonesWithTx removes the uncommitted clone rows for a
// (user, prefix) pair inside a transaction. Printed copies are part of
// an invoice and stay.
func (r *Repository) DeleteClonesWithTx(tx *gorm.DB, userID uuid.UUID, prefix string) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.
		Where("user_id = ?", userID).
		Where("barcode_prefix = ?", prefix).
		Where("status <> ?", enums.PhotoStatusPrinted).
		Where("metadata->>? IS NOT NULL", models.MetadataClonedFrom).
		Delete(&models.Photo{}).Error
}

// UpdateStatusWithTx flips the status for the given photo ids inside a
// transaction.
func (r *Repository) UpdateStatusWithTx(tx *gorm.DB, ids []uuid.UUID, status enums.PhotoStatus) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(ids) == 0 {
		return nil
	}
	return tx.
		Model(&models.Photo{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

// ResetReadyToPendingWithTx undoes a prior uncommitted selection by
// moving every ready_to_print photo for the user back to pending.
func (r *Repository) ResetReadyToPendingWithTx(tx *gorm.DB, userID uuid.UUID) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.
		Model(&models.Photo{}).
		Where("user_id = ?", userID).
		Where("status = ?", enums.PhotoStatusReadyToPrint).
		Update("status", enums.PhotoStatusPending).Error
}

// ListReadyToPrintWithTx returns ready_to_print photos inside a transaction.
func (r *Repository) ListReadyToPrintWithTx(tx *gorm.DB, userID uuid.UUID) ([]models.Photo, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var rows []models.Photo
	err := tx.
		Where("user_id = ?", userID).
		Where("status = ?", enums.PhotoStatusReadyToPrint).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
