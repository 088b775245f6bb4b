package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/sports-portal/metrics"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

type PlayerRegisterInput struct {
	Name         string `json:"name" validate:"required,max=120"`
	Email        string `json:"email" validate:"required,email"`
	RNumber      string `json:"r_number" validate:"omitempty,max=40"`
	Password     string `json:"password" validate:"required,min=6" trim:"-"`
	Department   string `json:"department" validate:"omitempty,max=120"`
	Position     string `json:"position" validate:"omitempty,max=60"`
	JerseyNumber *int   `json:"jersey_number" validate:"omitempty,gte=0,max=999"`
	TeamID       *int   `json:"team_id" validate:"omitempty,gt=0"`
	// Только для администратора
	Status models.RegistrationStatus `json:"status,omitempty"`
}

type PlayerUpdateInput struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email        *string `json:"email" validate:"omitempty,email"`
	RNumber      *string `json:"r_number" validate:"omitempty,max=40"`
	Password     *string `json:"password" validate:"omitempty,min=6" trim:"-"`
	Department   *string `json:"department" validate:"omitempty,max=120"`
	Position     *string `json:"position" validate:"omitempty,max=60"`
	JerseyNumber *int    `json:"jersey_number" validate:"omitempty,gte=0,max=999"`
	TeamID       *int    `json:"team_id" validate:"omitempty,gte=0"`
}

type PlayerService interface {
	Register(ctx context.Context, input PlayerRegisterInput) (*models.Player, error)
	Create(ctx context.Context, input PlayerRegisterInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Player], error)
	Update(ctx context.Context, id int, input PlayerUpdateInput) (*models.Player, error)
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (*models.Player, error)
	BulkUpdateStatus(ctx context.Context, input BulkStatusInput) (*BulkResult, error)
	Delete(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	notifier   Notifier
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) PlayerService {
	if notifier == nil {
		notifier = NoopNotifier()
	}
	return &playerService{playerRepo: playerRepo, notifier: notifier, metrics: m, logger: logger}
}

var playerErrors = errMapping{
	{repositories.ErrPlayerNotFound, ErrPlayerNotFound},
	{repositories.ErrPlayerEmailConflict, ErrEmailConflict},
	{repositories.ErrPlayerTeamInvalid, ErrTeamNotFound},
}

func (s *playerService) Register(ctx context.Context, input PlayerRegisterInput) (*models.Player, error) {
	input.Status = models.StatusPending
	return s.create(ctx, input)
}

func (s *playerService) Create(ctx context.Context, input PlayerRegisterInput) (*models.Player, error) {
	if input.Status == "" {
		input.Status = models.StatusApproved
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}
	return s.create(ctx, input)
}

func (s *playerService) create(ctx context.Context, input PlayerRegisterInput) (*models.Player, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	player := &models.Player{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		RNumber:      normalizeIdentifier(input.RNumber),
		PasswordHash: hash,
		TeamID:       input.TeamID,
		Department:   input.Department,
		Position:     input.Position,
		JerseyNumber: input.JerseyNumber,
		Status:       input.Status,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, playerErrors.translate(err, "create player")
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, playerErrors.translate(err, "get player %d", id)
	}
	return player, nil
}

func (s *playerService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Player], error) {
	filter = normalizePaging(filter)
	players, total, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return newListResult(players, total, filter), nil
}

func (s *playerService) Update(ctx context.Context, id int, input PlayerUpdateInput) (*models.Player, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		player.Name = *input.Name
	}
	if input.Email != nil {
		player.Email = normalizeEmail(*input.Email)
	}
	if input.RNumber != nil {
		player.RNumber = normalizeIdentifier(*input.RNumber)
	}
	if input.Department != nil {
		player.Department = *input.Department
	}
	if input.Position != nil {
		player.Position = *input.Position
	}
	if input.JerseyNumber != nil {
		player.JerseyNumber = input.JerseyNumber
	}
	if input.TeamID != nil {
		// team_id = 0 снимает игрока с команды
		if *input.TeamID == 0 {
			player.TeamID = nil
		} else {
			player.TeamID = input.TeamID
		}
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		player.PasswordHash = hash
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, playerErrors.translate(err, "update player %d", id)
	}
	return player, nil
}

func (s *playerService) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (player *models.Player, err error) {
	defer func() { s.metrics.RecordTransition("player", string(status), err) }()

	player, err = s.GetByID(ctx, id)
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
		return nil, playerErrors.translate(err, "update player %d status", id)
	}
	player.Status = status

	if shouldNotify(status) {
		s.notifier.NotifyStatusChange(ctx, StatusNotification{
			Email:  player.Email,
			Name:   player.Name,
			Role:   "player",
			Status: status,
		})
	}
	return player, nil
}

func (s *playerService) BulkUpdateStatus(ctx context.Context, input BulkStatusInput) (*BulkResult, error) {
	if len(input.IDs) == 0 {
		return nil, ErrEmptyBulkRequest
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}
	result := runBulk(ctx, input.IDs, func(ctx context.Context, id int) error {
		_, err := s.UpdateStatus(ctx, id, input.Status)
		if err != nil {
			s.logger.Warn("bulk player status update failed", "player_id", id, "status", input.Status, "error", err)
		}
		return err
	})
	return &result, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return playerErrors.translate(err, "delete player %d", id)
	}
	return nil
}
