package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/sports-portal/idcard"
	"github.com/Dosada05/sports-portal/metrics"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

type CaptainRegisterInput struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email"`
	RNumber    string `json:"r_number" validate:"required,max=40"`
	Department string `json:"department" validate:"required"`
	BloodGroup string `json:"blood_group" validate:"omitempty,max=5"`
	Phone      string `json:"phone" validate:"required,max=20"`
	Sport      string `json:"sport" validate:"required"`
	Gender     string `json:"gender" validate:"omitempty,oneof=Boys Girls Mixed"`
	Password   string `json:"password" validate:"required,min=6" trim:"-"`
	// Status задаётся только администратором; при саморегистрации игнорируется.
	Status models.RegistrationStatus `json:"status,omitempty"`
}

type CaptainUpdateInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email      *string `json:"email" validate:"omitempty,email"`
	RNumber    *string `json:"r_number" validate:"omitempty,min=1,max=40"`
	Department *string `json:"department" validate:"omitempty,min=1"`
	BloodGroup *string `json:"blood_group" validate:"omitempty,max=5"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Sport      *string `json:"sport" validate:"omitempty,min=1"`
	Gender     *string `json:"gender" validate:"omitempty,oneof=Boys Girls Mixed"`
	Password   *string `json:"password" validate:"omitempty,min=6" trim:"-"`
}

type CaptainService interface {
	Register(ctx context.Context, input CaptainRegisterInput) (*models.Captain, error)
	Create(ctx context.Context, input CaptainRegisterInput) (*models.Captain, error)
	GetByID(ctx context.Context, id int) (*models.Captain, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Captain], error)
	Update(ctx context.Context, id int, input CaptainUpdateInput) (*models.Captain, error)
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (*models.Captain, error)
	BulkUpdateStatus(ctx context.Context, input BulkStatusInput) (*BulkResult, error)
	// Delete removes the captain together with their department players and
	// returns how many players were removed.
	Delete(ctx context.Context, id int) (int, error)
	IDCard(ctx context.Context, id int, size int) ([]byte, error)
}

type captainService struct {
	captainRepo repositories.CaptainRepository
	notifier    Notifier
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewCaptainService(
	captainRepo repositories.CaptainRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) CaptainService {
	if notifier == nil {
		notifier = NoopNotifier()
	}
	return &captainService{
		captainRepo: captainRepo,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

var captainErrors = errMapping{
	{repositories.ErrCaptainNotFound, ErrCaptainNotFound},
	{repositories.ErrCaptainEmailConflict, ErrEmailConflict},
	{repositories.ErrCaptainRNumberConflict, ErrRNumberConflict},
	{repositories.ErrCaptainUniqueIDConflict, ErrUniqueIDConflict},
}

func (s *captainService) Register(ctx context.Context, input CaptainRegisterInput) (*models.Captain, error) {
	input.Status = models.StatusPending
	return s.create(ctx, input)
}

func (s *captainService) Create(ctx context.Context, input CaptainRegisterInput) (*models.Captain, error) {
	if input.Status == "" {
		input.Status = models.StatusApproved
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}
	return s.create(ctx, input)
}

func (s *captainService) create(ctx context.Context, input CaptainRegisterInput) (*models.Captain, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	captain := &models.Captain{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		RNumber:      normalizeIdentifier(input.RNumber),
		Department:   input.Department,
		BloodGroup:   input.BloodGroup,
		Phone:        input.Phone,
		Sport:        input.Sport,
		Gender:       input.Gender,
		PasswordHash: hash,
		Status:       input.Status,
	}
	if err := s.captainRepo.Create(ctx, captain); err != nil {
		return nil, captainErrors.translate(err, "create captain")
	}
	s.logger.Info("captain registered", "captain_id", captain.ID, "unique_id", captain.UniqueID, "status", captain.Status)
	return captain, nil
}

func (s *captainService) GetByID(ctx context.Context, id int) (*models.Captain, error) {
	captain, err := s.captainRepo.GetByID(ctx, id)
	if err != nil {
		return nil, captainErrors.translate(err, "get captain %d", id)
	}
	return captain, nil
}

func (s *captainService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Captain], error) {
	filter = normalizePaging(filter)
	captains, total, err := s.captainRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list captains: %w", err)
	}
	return newListResult(captains, total, filter), nil
}

func (s *captainService) Update(ctx context.Context, id int, input CaptainUpdateInput) (*models.Captain, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	captain, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		captain.Name = *input.Name
	}
	if input.Email != nil {
		captain.Email = normalizeEmail(*input.Email)
	}
	if input.RNumber != nil {
		captain.RNumber = normalizeIdentifier(*input.RNumber)
	}
	if input.Department != nil {
		captain.Department = *input.Department
	}
	if input.BloodGroup != nil {
		captain.BloodGroup = *input.BloodGroup
	}
	if input.Phone != nil {
		captain.Phone = *input.Phone
	}
	if input.Sport != nil {
		captain.Sport = *input.Sport
	}
	if input.Gender != nil {
		captain.Gender = *input.Gender
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		captain.PasswordHash = hash
	}

	if err := s.captainRepo.Update(ctx, captain); err != nil {
		return nil, captainErrors.translate(err, "update captain %d", id)
	}
	return captain, nil
}

func (s *captainService) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (captain *models.Captain, err error) {
	defer func() { s.metrics.RecordTransition("captain", string(status), err) }()

	captain, err = s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = checkTransition(captain.Status, status); err != nil {
		return nil, err
	}
	if captain.Status == status {
		return captain, nil
	}

	if err = s.captainRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, captainErrors.translate(err, "update captain %d status", id)
	}
	captain.Status = status

	if shouldNotify(status) {
		s.notifier.NotifyStatusChange(ctx, StatusNotification{
			Email:    captain.Email,
			Name:     captain.Name,
			Role:     "captain",
			UniqueID: captain.UniqueID,
			Status:   status,
		})
	}
	return captain, nil
}

func (s *captainService) BulkUpdateStatus(ctx context.Context, input BulkStatusInput) (*BulkResult, error) {
	if len(input.IDs) == 0 {
		return nil, ErrEmptyBulkRequest
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}
	result := runBulk(ctx, input.IDs, func(ctx context.Context, id int) error {
		_, err := s.UpdateStatus(ctx, id, input.Status)
		if err != nil {
			s.logger.Warn("bulk captain status update failed", "captain_id", id, "status", input.Status, "error", err)
		}
		return err
	})
	return &result, nil
}

func (s *captainService) Delete(ctx context.Context, id int) (int, error) {
	removed, err := s.captainRepo.DeleteWithPlayers(ctx, id)
	if err != nil {
		return 0, captainErrors.translate(err, "delete captain %d", id)
	}
	s.logger.Info("captain deleted", "captain_id", id, "players_removed", removed)
	return removed, nil
}

func (s *captainService) IDCard(ctx context.Context, id int, size int) ([]byte, error) {
	captain, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return idcard.PNG(idcard.Card{
		Type:       idcard.TypeCaptain,
		Name:       captain.Name,
		RNumber:    captain.RNumber,
		UniqueID:   captain.UniqueID,
		Department: captain.Department,
		Sport:      captain.Sport,
	}, size)
}
