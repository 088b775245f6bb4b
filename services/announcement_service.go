package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

type AnnouncementInput struct {
	Title       string                      `json:"title" validate:"required,max=200"`
	Description string                      `json:"description" validate:"required"`
	Priority    models.AnnouncementPriority `json:"priority"`
}

type AnnouncementService interface {
	Create(ctx context.Context, input AnnouncementInput) (*models.Announcement, error)
	GetByID(ctx context.Context, id int) (*models.Announcement, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Announcement], error)
	Update(ctx context.Context, id int, input AnnouncementInput) (*models.Announcement, error)
	Delete(ctx context.Context, id int) error
}

type announcementService struct {
	announcementRepo repositories.AnnouncementRepository
}

func NewAnnouncementService(announcementRepo repositories.AnnouncementRepository) AnnouncementService {
	return &announcementService{announcementRepo: announcementRepo}
}

var announcementErrors = errMapping{
	{repositories.ErrAnnouncementNotFound, ErrAnnouncementNotFound},
}

func normalizePriority(p models.AnnouncementPriority) (models.AnnouncementPriority, error) {
	p = models.AnnouncementPriority(strings.ToLower(strings.TrimSpace(string(p))))
	if p == "" {
		return models.PriorityNormal, nil
	}
	if p.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrAnnouncementPriority, p)
	}
	return p, nil
}

func (s *announcementService) Create(ctx context.Context, input AnnouncementInput) (*models.Announcement, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	a := &models.Announcement{Title: input.Title, Description: input.Description, Priority: priority}
	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return a, nil
}

func (s *announcementService) GetByID(ctx context.Context, id int) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, announcementErrors.translate(err, "get announcement %d", id)
	}
	return a, nil
}

func (s *announcementService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Announcement], error) {
	filter = normalizePaging(filter)
	items, total, err := s.announcementRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return newListResult(items, total, filter), nil
}

func (s *announcementService) Update(ctx context.Context, id int, input AnnouncementInput) (*models.Announcement, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Title, a.Description, a.Priority = input.Title, input.Description, priority
	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, announcementErrors.translate(err, "update announcement %d", id)
	}
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, id int) error {
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return announcementErrors.translate(err, "delete announcement %d", id)
	}
	return nil
}
