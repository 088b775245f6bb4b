package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/sports-portal/livescore"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

type MatchInput struct {
	TeamA     string             `json:"team_a" validate:"max=120"`
	TeamB     string             `json:"team_b" validate:"max=120"`
	TeamAID   *int               `json:"team_a_id" validate:"omitempty,gt=0"`
	TeamBID   *int               `json:"team_b_id" validate:"omitempty,gt=0"`
	Sport     string             `json:"sport" validate:"required,max=60"`
	MatchDate time.Time          `json:"match_date" validate:"required"`
	Venue     string             `json:"venue" validate:"max=120"`
	ScoreA    int                `json:"score_a" validate:"gte=0"`
	ScoreB    int                `json:"score_b" validate:"gte=0"`
	Status    models.MatchStatus `json:"status"`
}

type ScoreInput struct {
	ScoreA *int               `json:"score_a" validate:"required,gte=0"`
	ScoreB *int               `json:"score_b" validate:"required,gte=0"`
	Status models.MatchStatus `json:"status"`
}

// MatchPublisher receives match changes for the live score feed.
type MatchPublisher interface {
	PublishMatch(eventType string, match *models.Match)
}

type MatchService interface {
	Create(ctx context.Context, input MatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Match], error)
	Update(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	UpdateScore(ctx context.Context, id int, input ScoreInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	publisher MatchPublisher
}

type noopPublisher struct{}

func (noopPublisher) PublishMatch(string, *models.Match) {}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	publisher MatchPublisher,
) MatchService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &matchService{matchRepo: matchRepo, teamRepo: teamRepo, publisher: publisher}
}

var matchErrors = errMapping{
	{repositories.ErrMatchNotFound, ErrMatchNotFound},
	{repositories.ErrMatchTeamInvalid, ErrTeamNotFound},
}

// buildMatch validates input and resolves team references into a match.
// Teams referenced by id must exist and play the match sport; the two sides
// must differ both by id and by case-insensitive name.
func (s *matchService) buildMatch(ctx context.Context, input MatchInput) (*models.Match, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	m := &models.Match{
		TeamA:     strings.TrimSpace(input.TeamA),
		TeamB:     strings.TrimSpace(input.TeamB),
		TeamAID:   input.TeamAID,
		TeamBID:   input.TeamBID,
		Sport:     strings.TrimSpace(input.Sport),
		MatchDate: input.MatchDate,
		Venue:     input.Venue,
		ScoreA:    input.ScoreA,
		ScoreB:    input.ScoreB,
		Status:    input.Status,
	}
	if m.Status == "" {
		m.Status = models.MatchScheduled
	}
	if !m.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrMatchInvalidStatus, m.Status)
	}

	if m.TeamAID != nil && m.TeamBID != nil && *m.TeamAID == *m.TeamBID {
		return nil, ErrMatchSameTeams
	}
	for _, side := range []struct {
		id   *int
		name *string
	}{{m.TeamAID, &m.TeamA}, {m.TeamBID, &m.TeamB}} {
		if side.id == nil {
			continue
		}
		team, err := s.teamRepo.GetByID(ctx, *side.id)
		if err != nil {
			return nil, teamErrors.translate(err, "get team %d", *side.id)
		}
		if !sameFold(team.Sport, m.Sport) {
			return nil, fmt.Errorf("%w: %s plays %s", ErrMatchTeamSportMismatch, team.Name, team.Sport)
		}
		*side.name = team.Name
	}

	fields := map[string]string{}
	if m.TeamA == "" {
		fields["team_a"] = "must be provided"
	}
	if m.TeamB == "" {
		fields["team_b"] = "must be provided"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if sameFold(m.TeamA, m.TeamB) {
		return nil, ErrMatchSameTeams
	}
	return m, nil
}

func (s *matchService) Create(ctx context.Context, input MatchInput) (*models.Match, error) {
	m, err := s.buildMatch(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return nil, matchErrors.translate(err, "create match")
	}
	s.publisher.PublishMatch(livescore.EventMatchCreated, m)
	return m, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, matchErrors.translate(err, "get match %d", id)
	}
	return m, nil
}

func (s *matchService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.Match], error) {
	filter = normalizePaging(filter)
	matches, total, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return newListResult(matches, total, filter), nil
}

func (s *matchService) Update(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := s.buildMatch(ctx, input)
	if err != nil {
		return nil, err
	}
	m.ID = id
	m.CreatedAt = existing.CreatedAt

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return nil, matchErrors.translate(err, "update match %d", id)
	}
	s.publisher.PublishMatch(livescore.EventMatchUpdated, m)
	return m, nil
}

func (s *matchService) UpdateScore(ctx context.Context, id int, input ScoreInput) (*models.Match, error) {
	if input.ScoreA != nil && *input.ScoreA < 0 || input.ScoreB != nil && *input.ScoreB < 0 {
		return nil, ErrMatchNegativeScore
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = m.Status
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrMatchInvalidStatus, status)
	}

	if err := s.matchRepo.UpdateScore(ctx, id, *input.ScoreA, *input.ScoreB, status); err != nil {
		return nil, matchErrors.translate(err, "update match %d score", id)
	}
	m.ScoreA, m.ScoreB, m.Status = *input.ScoreA, *input.ScoreB, status
	s.publisher.PublishMatch(livescore.EventMatchUpdated, m)
	return m, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return matchErrors.translate(err, "delete match %d", id)
	}
	s.publisher.PublishMatch(livescore.EventMatchDeleted, m)
	return nil
}
