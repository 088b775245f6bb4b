package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/storage"
)

type TeamInput struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Sport       string  `json:"sport" validate:"required,max=60"`
	Department  string  `json:"department" validate:"omitempty,max=120"`
	Coach       string  `json:"coach" validate:"omitempty,max=120"`
	CaptainName string  `json:"captain_name" validate:"omitempty,max=120"`
	Description string  `json:"description"`
	Record      string  `json:"record"`
	Wins        string  `json:"wins"`
	Standings   string  `json:"standings"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

type TeamService interface {
	Create(ctx context.Context, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Team], error)
	Update(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	UploadImage(ctx context.Context, id int, img *ImageUpload) (*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{teamRepo: teamRepo, playerRepo: playerRepo, uploader: uploader, logger: logger}
}

var teamErrors = errMapping{
	{repositories.ErrTeamNotFound, ErrTeamNotFound},
	{repositories.ErrTeamNameConflict, ErrTeamNameConflict},
}

func applyTeamInput(team *models.Team, input TeamInput) {
	team.Name = strings.TrimSpace(input.Name)
	team.Sport = strings.TrimSpace(input.Sport)
	team.Department = input.Department
	team.Coach = input.Coach
	team.CaptainName = input.CaptainName
	team.Description = input.Description
	team.Record = input.Record
	team.Wins = input.Wins
	team.Standings = input.Standings
}

func (s *teamService) Create(ctx context.Context, input TeamInput) (*models.Team, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	team := &models.Team{ImageURL: input.ImageURL}
	applyTeamInput(team, input)

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, teamErrors.translate(err, "create team")
	}
	return team, nil
}

// GetByID returns the team with its roster of self-registered players.
func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, teamErrors.translate(err, "get team %d", id)
	}
	players, _, err := s.playerRepo.List(ctx, models.ListFilter{TeamID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", id, err)
	}
	team.Players = players
	return team, nil
}

func (s *teamService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Team], error) {
	filter = normalizePaging(filter)
	teams, total, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return newListResult(teams, total, filter), nil
}

func (s *teamService) Update(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, teamErrors.translate(err, "get team %d", id)
	}
	applyTeamInput(team, input)

	var staleKey *string
	if input.ImageURL != nil && derefString(input.ImageURL) != derefString(team.ImageURL) {
		// Внешний URL заменяет загруженный файл
		staleKey = team.ImageKey
		team.ImageURL = input.ImageURL
		team.ImageKey = nil
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, teamErrors.translate(err, "update team %d", id)
	}
	if staleKey != nil {
		if err := s.teamRepo.UpdateImage(ctx, id, nil, team.ImageURL); err != nil {
			return nil, teamErrors.translate(err, "update team %d image", id)
		}
		deleteImage(ctx, s.uploader, s.logger, staleKey)
	}
	return team, nil
}

func (s *teamService) UploadImage(ctx context.Context, id int, img *ImageUpload) (*models.Team, error) {
	if img == nil || img.Reader == nil {
		return nil, ErrImageRequired
	}
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, teamErrors.translate(err, "get team %d", id)
	}

	uploaded, err := uploadImage(ctx, s.uploader, "teams", img)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.UpdateImage(ctx, id, &uploaded.Key, &uploaded.Location); err != nil {
		deleteImage(ctx, s.uploader, s.logger, &uploaded.Key)
		return nil, teamErrors.translate(err, "update team %d image", id)
	}

	deleteImage(ctx, s.uploader, s.logger, team.ImageKey)
	team.ImageKey = &uploaded.Key
	team.ImageURL = &uploaded.Location
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return teamErrors.translate(err, "get team %d", id)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return teamErrors.translate(err, "delete team %d", id)
	}
	deleteImage(ctx, s.uploader, s.logger, team.ImageKey)
	return nil
}
