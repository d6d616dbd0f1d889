package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/karimelbaz/photodesk-backend/pkg/auth"
	"github.com/karimelbaz/photodesk-backend/pkg/config"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

type staffRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// LoginRequest carries sign-in credentials.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse returns the minted token and the account it represents.
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	StaffID     uuid.UUID       `json:"staff_id"`
	Name        string          `json:"name"`
	Role        enums.StaffRole `json:"role"`
	BranchID    uuid.UUID       `json:"branch_id"`
}

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ResetPassword(ctx context.Context, staffID uuid.UUID) (string, error)
}

type service struct {
	repo        staffRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs a staff auth service with the provided dependencies.
func NewService(repo staffRepository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository is required")
	}
	return &service{
		repo:        repo,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Login verifies credentials and mints a branch-scoped access token.
// Disabled accounts fail the same way wrong passwords do.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find staff")
	}
	if !account.Active {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		StaffID:  account.ID,
		BranchID: account.BranchID,
		Role:     account.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &LoginResponse{
		AccessToken: token,
		StaffID:     account.ID,
		Name:        account.Name,
		Role:        account.Role,
		BranchID:    account.BranchID,
	}, nil
}

// ResetPassword issues a temporary credential for an account and
// returns it so the branch manager can hand it over.
func (s *service) ResetPassword(ctx context.Context, staffID uuid.UUID) (string, error) {
	if _, err := s.repo.FindByID(ctx, staffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "staff not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find staff")
	}

	tempPassword, err := security.GenerateTempPassword(16)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, staffID, hash); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return tempPassword, nil
}
