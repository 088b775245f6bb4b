package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sports-portal/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Actor identifies who performs an operation that depends on ownership.
type Actor struct {
	ID   int
	Role models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// BulkResult reports a best-effort batch: every id is attempted in order and
// failures do not stop or roll back the rest.
type BulkResult struct {
	Requested int   `json:"requested"`
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
	FailedIDs []int `json:"failed_ids"`
}

// StatusInput is the body of single and bulk status requests.
type StatusInput struct {
	Status models.RegistrationStatus `json:"status" validate:"required"`
}

type BulkStatusInput struct {
	IDs    []int                     `json:"ids"`
	Status models.RegistrationStatus `json:"status"`
}

func runBulk(ctx context.Context, ids []int, apply func(ctx context.Context, id int) error) BulkResult {
	result := BulkResult{Requested: len(ids), FailedIDs: make([]int, 0)}
	for _, id := range ids {
		if err := apply(ctx, id); err != nil {
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.Succeeded++
	}
	return result
}

func checkTransition(current, next models.RegistrationStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if !current.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, next)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeIdentifier(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func sameFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizePaging(filter models.ListFilter) models.ListFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	return filter
}

func newListResult[T any](items []T, total int, filter models.ListFilter) *models.ListResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return &models.ListResult[T]{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}
}

// errMapping translates repository sentinels into service errors.
type errMapping []struct{ from, to error }

// translate returns the mapped service error, or wraps err with the failed action.
func (m errMapping) translate(err error, action string, args ...interface{}) error {
	for _, pair := range m {
		if errors.Is(err, pair.from) {
			return pair.to
		}
	}
	return fmt.Errorf("failed to "+action+": %w", append(args, err)...)
}

func captainID(c *models.Captain) int { return c.ID }

func departmentPlayerID(p *models.DepartmentPlayer) int { return p.ID }
