package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/session"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required" trim:"-"`
}

// AuthResult is returned by every login endpoint.
type AuthResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Role      models.UserRole `json:"role"`
	User      interface{}     `json:"user"`
}

type AuthService interface {
	LoginAdmin(ctx context.Context, input LoginInput) (*AuthResult, error)
	LoginCaptain(ctx context.Context, input LoginInput) (*AuthResult, error)
	LoginPlayer(ctx context.Context, input LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, claims *Claims) error
	// Authenticate parses a bearer token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

type authService struct {
	adminRepo   repositories.AdminRepository
	captainRepo repositories.CaptainRepository
	playerRepo  repositories.PlayerRepository
	tokens      *TokenManager
	sessions    session.Store
}

func NewAuthService(
	adminRepo repositories.AdminRepository,
	captainRepo repositories.CaptainRepository,
	playerRepo repositories.PlayerRepository,
	tokens *TokenManager,
	sessions session.Store,
) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		captainRepo: captainRepo,
		playerRepo:  playerRepo,
		tokens:      tokens,
		sessions:    sessions,
	}
}

func (s *authService) issue(userID int, role models.UserRole, name string, user interface{}) (*AuthResult, error) {
	token, claims, err := s.tokens.Issue(userID, role, name)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: claims.ExpiresAt, Role: role, User: user}, nil
}

func (s *authService) LoginAdmin(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	admin, err := s.adminRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin by email: %w", err)
	}
	if err := checkPassword(admin.PasswordHash, input.Password); err != nil {
		return nil, err
	}
	return s.issue(admin.ID, models.RoleAdmin, admin.Name, admin)
}

func (s *authService) LoginCaptain(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	captain, err := s.captainRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrCaptainNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find captain by email: %w", err)
	}
	if err := checkPassword(captain.PasswordHash, input.Password); err != nil {
		return nil, err
	}
	// Пароль проверяем раньше статуса, чтобы не раскрывать статус чужого аккаунта
	if !captain.Status.CanSignIn() {
		return nil, fmt.Errorf("%w: status is %s", ErrAccountNotApproved, captain.Status)
	}
	return s.issue(captain.ID, models.RoleCaptain, captain.Name, captain)
}

func (s *authService) LoginPlayer(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	player, err := s.playerRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find player by email: %w", err)
	}
	if err := checkPassword(player.PasswordHash, input.Password); err != nil {
		return nil, err
	}
	if !player.Status.CanSignIn() {
		return nil, fmt.Errorf("%w: status is %s", ErrAccountNotApproved, player.Status)
	}
	return s.issue(player.ID, models.RolePlayer, player.Name, player)
}

func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return ErrAuthenticationFailed
	}
	if err := s.sessions.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	revoked, err := s.sessions.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", ErrAuthenticationFailed)
	}
	return claims, nil
}
