package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

var scheduleGenders = []string{"Boys", "Girls", "Mixed"}

type ScheduleInput struct {
	SerialNo    int    `json:"serial_no" validate:"gte=0"`
	Date        string `json:"date" validate:"required,max=40"`
	Time        string `json:"time" validate:"required,max=40"`
	Activity    string `json:"activity" validate:"required,max=200"`
	Sport       string `json:"sport" validate:"required,max=60"`
	Gender      string `json:"gender"`
	MatchDetail string `json:"match_detail"`
}

type ScheduleService interface {
	Create(ctx context.Context, input ScheduleInput) (*models.Schedule, error)
	GetByID(ctx context.Context, id int) (*models.Schedule, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Schedule], error)
	Update(ctx context.Context, id int, input ScheduleInput) (*models.Schedule, error)
	Delete(ctx context.Context, id int) error
}

type scheduleService struct {
	scheduleRepo repositories.ScheduleRepository
}

func NewScheduleService(scheduleRepo repositories.ScheduleRepository) ScheduleService {
	return &scheduleService{scheduleRepo: scheduleRepo}
}

var scheduleErrors = errMapping{
	{repositories.ErrScheduleNotFound, ErrScheduleNotFound},
}

// buildSchedule applies the gender rule: General entries may omit gender and
// match detail, every other sport needs Boys, Girls or Mixed.
func buildSchedule(input ScheduleInput) (*models.Schedule, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	sched := &models.Schedule{
		SerialNo:    input.SerialNo,
		Date:        strings.TrimSpace(input.Date),
		Time:        strings.TrimSpace(input.Time),
		Activity:    strings.TrimSpace(input.Activity),
		Sport:       strings.TrimSpace(input.Sport),
		MatchDetail: strings.TrimSpace(input.MatchDetail),
	}

	gender := strings.TrimSpace(input.Gender)
	if sameFold(sched.Sport, models.GeneralSport) {
		sched.Sport = models.GeneralSport
		sched.Gender = gender
		return sched, nil
	}
	if gender == "" {
		return nil, ErrScheduleGenderRequired
	}
	for _, g := range scheduleGenders {
		if strings.EqualFold(g, gender) {
			sched.Gender = g
			return sched, nil
		}
	}
	return nil, newValidationError("gender", "must be one of: "+strings.Join(scheduleGenders, ", "))
}

func (s *scheduleService) Create(ctx context.Context, input ScheduleInput) (*models.Schedule, error) {
	sched, err := buildSchedule(input)
	if err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.Create(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return sched, nil
}

func (s *scheduleService) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	sched, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, scheduleErrors.translate(err, "get schedule entry %d", id)
	}
	return sched, nil
}

func (s *scheduleService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Schedule], error) {
	filter = normalizePaging(filter)
	items, total, err := s.scheduleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	return newListResult(items, total, filter), nil
}

func (s *scheduleService) Update(ctx context.Context, id int, input ScheduleInput) (*models.Schedule, error) {
	sched, err := buildSchedule(input)
	if err != nil {
		return nil, err
	}
	sched.ID = id
	if err := s.scheduleRepo.Update(ctx, sched); err != nil {
		return nil, scheduleErrors.translate(err, "update schedule entry %d", id)
	}
	return sched, nil
}

func (s *scheduleService) Delete(ctx context.Context, id int) error {
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return scheduleErrors.translate(err, "delete schedule entry %d", id)
	}
	return nil
}
