package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

type AdminInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6" trim:"-"`
}

type AdminService interface {
	GetByID(ctx context.Context, id int) (*models.Admin, error)
	// EnsureDefaultAdmin creates the admin only when no admin exists yet and
	// reports whether it did.
	EnsureDefaultAdmin(ctx context.Context, input AdminInput) (bool, error)
}

type adminService struct {
	adminRepo repositories.AdminRepository
}

func NewAdminService(adminRepo repositories.AdminRepository) AdminService {
	return &adminService{adminRepo: adminRepo}
}

func (s *adminService) GetByID(ctx context.Context, id int) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin %d: %w", id, err)
	}
	return admin, nil
}

func (s *adminService) EnsureDefaultAdmin(ctx context.Context, input AdminInput) (bool, error) {
	if err := validateInput(&input); err != nil {
		return false, err
	}
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return false, err
	}
	admin := &models.Admin{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrAdminEmailConflict) {
			return false, ErrEmailConflict
		}
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
