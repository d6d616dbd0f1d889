package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
)

// Repository handles staff account persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to staff operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail loads a staff account by its sign-in email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var account models.Staff
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByID loads a staff account by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	var account models.Staff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Create persists a new staff account.
func (r *Repository) Create(ctx context.Context, account *models.Staff) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// UpdatePasswordHash swaps the stored credential for an account.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// ListForBranch returns a branch's staff accounts.
func (r *Repository) ListForBranch(ctx context.Context, branchID uuid.UUID) ([]models.Staff, error) {
	var rows []models.Staff
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
