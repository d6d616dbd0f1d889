package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
)

// Repository handles customer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to customer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new customer row.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a customer by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByBarcode loads a customer by the exact barcode.
func (r *Repository) FindByBarcode(ctx context.Context, barcode string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByBarcodePrefix loads a customer whose barcode starts with the
// prefix. The phone number disambiguates when more than one session
// shares the prefix.
func (r *Repository) FindByBarcodePrefix(ctx context.Context, prefix, phone string) (*models.User, error) {
	var user models.User
	q := r.db.WithContext(ctx).Where("barcode LIKE ?", prefix+"%")
	if phone != "" {
		q = q.Where("phone_number = ?", phone)
	}
	if err := q.Order("created_at DESC").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByBarcodeWithTx loads a customer within the provided transaction.
func (r *Repository) FindByBarcodeWithTx(tx *gorm.DB, barcode string) (*models.User, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var user models.User
	if err := tx.First(&user, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves the provided customer.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	return r.db.WithContext(ctx).Save(user).Error
}
