package packages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
)

// Repository handles pricing package persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to package operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveForBranch returns the packages a branch can sell.
func (r *Repository) ListActiveForBranch(ctx context.Context, branchID uuid.UUID) ([]models.Package, error) {
	var rows []models.Package
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Where("active = ?", true).
		Order("price ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a package by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindByIDWithTx loads a package within the provided transaction.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Package, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var pkg models.Package
	if err := tx.First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Create persists a new package row.
func (r *Repository) Create(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

// Update saves the provided package.
func (r *Repository) Update(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}
