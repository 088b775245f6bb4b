package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/sports-portal/export"
	"github.com/Dosada05/sports-portal/idcard"
	"github.com/Dosada05/sports-portal/metrics"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

type DepartmentPlayerInput struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email"`
	RNumber    string `json:"r_number" validate:"required,max=40"`
	BloodGroup string `json:"blood_group" validate:"omitempty,max=5"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	// Sport по умолчанию берётся у капитана
	Sport  string `json:"sport"`
	Gender string `json:"gender" validate:"omitempty,oneof=Boys Girls Mixed"`
	Year   string `json:"year" validate:"omitempty,max=10"`
	// Только для администратора
	CaptainID int                       `json:"captain_id,omitempty"`
	Status    models.RegistrationStatus `json:"status,omitempty"`
}

type DepartmentPlayerUpdateInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email      *string `json:"email" validate:"omitempty,email"`
	RNumber    *string `json:"r_number" validate:"omitempty,min=1,max=40"`
	BloodGroup *string `json:"blood_group" validate:"omitempty,max=5"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Sport      *string `json:"sport" validate:"omitempty,min=1"`
	Gender     *string `json:"gender" validate:"omitempty,oneof=Boys Girls Mixed"`
	Year       *string `json:"year" validate:"omitempty,max=10"`
}

// SportRegistration summarises which sports an R-Number already plays.
type SportRegistration struct {
	RNumber   string   `json:"r_number"`
	UniqueID  string   `json:"unique_id,omitempty"`
	Sports    []string `json:"sports"`
	Remaining int      `json:"remaining"`
}

type DepartmentPlayerService interface {
	Add(ctx context.Context, actor Actor, input DepartmentPlayerInput) (*models.DepartmentPlayer, error)
	GetByID(ctx context.Context, actor Actor, id int) (*models.DepartmentPlayer, error)
	List(ctx context.Context, actor Actor, filter models.ListFilter) (*models.ListResult[models.DepartmentPlayer], error)
	Update(ctx context.Context, actor Actor, id int, input DepartmentPlayerUpdateInput) (*models.DepartmentPlayer, error)
	Delete(ctx context.Context, actor Actor, id int) error
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (*models.DepartmentPlayer, error)
	BulkUpdateStatus(ctx context.Context, input BulkStatusInput) (*BulkResult, error)
	RegisteredSports(ctx context.Context, rNumber string) (*SportRegistration, error)
	Export(ctx context.Context, filter models.ListFilter) (*bytes.Buffer, error)
	IDCard(ctx context.Context, id int, size int) ([]byte, error)
}

type departmentPlayerService struct {
	playerRepo  repositories.DepartmentPlayerRepository
	captainRepo repositories.CaptainRepository
	notifier    Notifier
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewDepartmentPlayerService(
	playerRepo repositories.DepartmentPlayerRepository,
	captainRepo repositories.CaptainRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) DepartmentPlayerService {
	if notifier == nil {
		notifier = NoopNotifier()
	}
	return &departmentPlayerService{
		playerRepo:  playerRepo,
		captainRepo: captainRepo,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

var departmentPlayerErrors = errMapping{
	{repositories.ErrDepartmentPlayerNotFound, ErrDepartmentPlayerNotFound},
	{repositories.ErrDepartmentPlayerSportConflict, ErrSportAlreadyRegistered},
	{repositories.ErrDepartmentPlayerCaptainInvalid, ErrCaptainNotFound},
}

// resolveIdentity enforces the per-player sport limit for rNumber and returns the
// unique id already assigned to that R-Number, or "" if it has no records yet.
// The record with excludeID is ignored so updates do not count against themselves.
// Callers run it under repo.WithIdentityLock together with the write it guards.
func resolveIdentity(ctx context.Context, repo repositories.DepartmentPlayerRepository, rNumber, sport string, excludeID int) (string, error) {
	existing, err := repo.ListByRNumber(ctx, rNumber)
	if err != nil {
		return "", fmt.Errorf("failed to look up r-number %s: %w", rNumber, err)
	}

	uniqueID := ""
	sports := make(map[string]struct{})
	for _, p := range existing {
		if p.ID == excludeID {
			continue
		}
		if sameFold(p.Sport, sport) {
			return "", fmt.Errorf("%w: %s", ErrSportAlreadyRegistered, p.Sport)
		}
		sports[strings.ToLower(strings.TrimSpace(p.Sport))] = struct{}{}
		if uniqueID == "" {
			uniqueID = p.UniqueID
		}
	}
	if len(sports) >= models.MaxSportsPerPlayer {
		return "", ErrSportLimitReached
	}
	return uniqueID, nil
}

func (s *departmentPlayerService) Add(ctx context.Context, actor Actor, input DepartmentPlayerInput) (*models.DepartmentPlayer, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	captainID := actor.ID
	status := models.StatusPending
	if actor.IsAdmin() {
		if input.CaptainID <= 0 {
			return nil, newValidationError("captain_id", "must be provided")
		}
		captainID = input.CaptainID
		status = models.StatusApproved
		if input.Status != "" {
			status = input.Status
		}
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	captain, err := s.captainRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, captainErrors.translate(err, "get captain %d", captainID)
	}
	if !actor.IsAdmin() && !captain.Status.CanSignIn() {
		return nil, ErrCaptainNotApproved
	}

	sport := strings.TrimSpace(input.Sport)
	if sport == "" {
		sport = captain.Sport
	}
	if sport == "" {
		return nil, newValidationError("sport", "must be provided")
	}

	rNumber := normalizeIdentifier(input.RNumber)
	player := &models.DepartmentPlayer{
		Name:       input.Name,
		Email:      normalizeEmail(input.Email),
		RNumber:    rNumber,
		Department: captain.Department,
		BloodGroup: input.BloodGroup,
		Phone:      input.Phone,
		Sport:      sport,
		Gender:     input.Gender,
		Year:       input.Year,
		CaptainID:  captain.ID,
		Status:     status,
	}
	err = s.playerRepo.WithIdentityLock(ctx, rNumber, func(repo repositories.DepartmentPlayerRepository) error {
		uniqueID, err := resolveIdentity(ctx, repo, rNumber, sport, 0)
		if err != nil {
			return err
		}
		player.UniqueID = uniqueID
		if err := repo.Create(ctx, player); err != nil {
			return departmentPlayerErrors.translate(err, "create department player")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	player.CaptainName = &captain.Name

	s.logger.Info("department player added",
		"player_id", player.ID, "unique_id", player.UniqueID, "sport", player.Sport, "captain_id", captain.ID)
	return player, nil
}

func (s *departmentPlayerService) get(ctx context.Context, id int) (*models.DepartmentPlayer, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, departmentPlayerErrors.translate(err, "get department player %d", id)
	}
	return player, nil
}

// getOwned loads a player and checks that a captain actor added it.
func (s *departmentPlayerService) getOwned(ctx context.Context, actor Actor, id int) (*models.DepartmentPlayer, error) {
	player, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && player.CaptainID != actor.ID {
		return nil, ErrForbiddenOperation
	}
	return player, nil
}

// getEditable is getOwned plus the sign-in check Add applies: a captain that is
// pending, rejected or inactive may not change its roster.
func (s *departmentPlayerService) getEditable(ctx context.Context, actor Actor, id int) (*models.DepartmentPlayer, error) {
	player, err := s.getOwned(ctx, actor, id)
	if err != nil || actor.IsAdmin() {
		return player, err
	}
	captain, err := s.captainRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, captainErrors.translate(err, "get captain %d", actor.ID)
	}
	if !captain.Status.CanSignIn() {
		return nil, ErrCaptainNotApproved
	}
	return player, nil
}

func (s *departmentPlayerService) GetByID(ctx context.Context, actor Actor, id int) (*models.DepartmentPlayer, error) {
	return s.getOwned(ctx, actor, id)
}

func (s *departmentPlayerService) List(ctx context.Context, actor Actor, filter models.ListFilter) (*models.ListResult[models.DepartmentPlayer], error) {
	filter = normalizePaging(filter)
	if !actor.IsAdmin() {
		captainID := actor.ID
		filter.CaptainID = &captainID
	}
	players, total, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list department players: %w", err)
	}
	return newListResult(players, total, filter), nil
}

func (s *departmentPlayerService) Update(ctx context.Context, actor Actor, id int, input DepartmentPlayerUpdateInput) (*models.DepartmentPlayer, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	player, err := s.getEditable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	oldRNumber, oldSport := player.RNumber, player.Sport
	if input.Name != nil {
		player.Name = *input.Name
	}
	if input.Email != nil {
		player.Email = normalizeEmail(*input.Email)
	}
	if input.RNumber != nil {
		player.RNumber = normalizeIdentifier(*input.RNumber)
	}
	if input.BloodGroup != nil {
		player.BloodGroup = *input.BloodGroup
	}
	if input.Phone != nil {
		player.Phone = *input.Phone
	}
	if input.Sport != nil {
		player.Sport = strings.TrimSpace(*input.Sport)
	}
	if input.Gender != nil {
		player.Gender = *input.Gender
	}
	if input.Year != nil {
		player.Year = *input.Year
	}

	rNumberChanged := !sameFold(oldRNumber, player.RNumber)
	if !rNumberChanged && sameFold(oldSport, player.Sport) {
		if err := s.playerRepo.Update(ctx, player); err != nil {
			return nil, departmentPlayerErrors.translate(err, "update department player %d", id)
		}
		return player, nil
	}

	err = s.playerRepo.WithIdentityLock(ctx, player.RNumber, func(repo repositories.DepartmentPlayerRepository) error {
		uniqueID, err := resolveIdentity(ctx, repo, player.RNumber, player.Sport, player.ID)
		if err != nil {
			return err
		}
		switch {
		case uniqueID != "":
			player.UniqueID = uniqueID
		case rNumberChanged:
			// Новый R-Number без других записей получает собственный Unique ID
			if player.UniqueID, err = repo.NextUniqueID(ctx); err != nil {
				return fmt.Errorf("failed to allocate unique id: %w", err)
			}
		}
		if err := repo.Update(ctx, player); err != nil {
			return departmentPlayerErrors.translate(err, "update department player %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (s *departmentPlayerService) Delete(ctx context.Context, actor Actor, id int) error {
	if _, err := s.getEditable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return departmentPlayerErrors.translate(err, "delete department player %d", id)
	}
	return nil
}

func (s *departmentPlayerService) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (player *models.DepartmentPlayer, err error) {
	defer func() { s.metrics.RecordTransition("department_player", string(status), err) }()

	player, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = checkTransition(player.Status, status); err != nil {
		return nil, err
	}
	if player.Status == status {
		return player, nil
	}
	if err = s.playerRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, departmentPlayerErrors.translate(err, "update department player %d status", id)
	}
	player.Status = status

	if shouldNotify(status) {
		s.notifier.NotifyStatusChange(ctx, StatusNotification{
			Email:    player.Email,
			Name:     player.Name,
			Role:     "player",
			UniqueID: player.UniqueID,
			Status:   status,
		})
	}
	return player, nil
}

func (s *departmentPlayerService) BulkUpdateStatus(ctx context.Context, input BulkStatusInput) (*BulkResult, error) {
	if len(input.IDs) == 0 {
		return nil, ErrEmptyBulkRequest
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}
	result := runBulk(ctx, input.IDs, func(ctx context.Context, id int) error {
		_, err := s.UpdateStatus(ctx, id, input.Status)
		if err != nil {
			s.logger.Warn("bulk department player status update failed", "player_id", id, "status", input.Status, "error", err)
		}
		return err
	})
	return &result, nil
}

func (s *departmentPlayerService) RegisteredSports(ctx context.Context, rNumber string) (*SportRegistration, error) {
	rNumber = normalizeIdentifier(rNumber)
	if rNumber == "" {
		return nil, newValidationError("r_number", "must be provided")
	}
	existing, err := s.playerRepo.ListByRNumber(ctx, rNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up r-number %s: %w", rNumber, err)
	}

	reg := &SportRegistration{RNumber: rNumber, Sports: make([]string, 0, len(existing))}
	for _, p := range existing {
		if reg.UniqueID == "" {
			reg.UniqueID = p.UniqueID
		}
		reg.Sports = append(reg.Sports, p.Sport)
	}
	reg.Remaining = models.MaxSportsPerPlayer - len(reg.Sports)
	if reg.Remaining < 0 {
		reg.Remaining = 0
	}
	return reg, nil
}

func (s *departmentPlayerService) Export(ctx context.Context, filter models.ListFilter) (*bytes.Buffer, error) {
	filter.Page, filter.Limit = 1, 0
	players, _, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list department players for export: %w", err)
	}
	return export.DepartmentPlayersXLSX(players)
}

func (s *departmentPlayerService) IDCard(ctx context.Context, id int, size int) ([]byte, error) {
	player, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return idcard.PNG(idcard.Card{
		Type:       idcard.TypePlayer,
		Name:       player.Name,
		RNumber:    player.RNumber,
		UniqueID:   player.UniqueID,
		Department: player.Department,
		Sport:      player.Sport,
	}, size)
}
