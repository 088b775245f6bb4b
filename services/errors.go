package services

import (
	"errors"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Аутентификация и доступ
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountNotApproved   = errors.New("account is not approved yet")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrPasswordTooShort     = errors.New("password is too short")

	// Статусы
	ErrInvalidStatus           = errors.New("invalid status provided")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// Конфликты
	ErrEmailConflict          = errors.New("email address is already in use")
	ErrRNumberConflict        = errors.New("r-number is already registered")
	ErrUniqueIDConflict       = errors.New("unique id is already in use")
	ErrTeamNameConflict       = errors.New("a team with this name already exists for the sport")
	ErrSportAlreadyRegistered = errors.New("player is already registered for this sport")
	ErrSportLimitReached      = errors.New("player is already registered for the maximum number of sports")

	// Бизнес-правила
	ErrCaptainNotApproved      = errors.New("captain must be approved before adding players")
	ErrMatchSameTeams          = errors.New("team A and team B must be different teams")
	ErrMatchTeamSportMismatch  = errors.New("both teams must play the match sport")
	ErrMatchInvalidStatus      = errors.New("invalid match status provided")
	ErrMatchNegativeScore      = errors.New("scores must not be negative")
	ErrScheduleGenderRequired  = errors.New("gender is required unless sport is General")
	ErrAnnouncementPriority    = errors.New("invalid announcement priority provided")
	ErrVerificationType        = errors.New("verification type must be captain or player")
	ErrVerificationIdentifiers = errors.New("both r_number and unique_id are required")
	ErrImageRequired           = errors.New("image_url or an uploaded image is required")
	ErrUnsupportedImageType    = errors.New("unsupported image type")
	ErrStorageNotConfigured    = errors.New("image uploads are not configured")
	ErrEmptyBulkRequest        = errors.New("at least one id is required")

	// Сущности
	ErrAdminNotFound            = errors.New("admin not found")
	ErrCaptainNotFound          = errors.New("captain not found")
	ErrDepartmentPlayerNotFound = errors.New("department player not found")
	ErrPlayerNotFound           = errors.New("player not found")
	ErrTeamNotFound             = errors.New("team not found")
	ErrMatchNotFound            = errors.New("match not found")
	ErrScheduleNotFound         = errors.New("schedule entry not found")
	ErrRuleNotFound             = errors.New("rule not found")
	ErrAnnouncementNotFound     = errors.New("announcement not found")
	ErrGalleryItemNotFound      = errors.New("gallery item not found")
)

// ValidationError carries per-field messages; it matches ErrValidationFailed via errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
