package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/sports-portal/livescore"
	"github.com/Dosada05/sports-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchFixture() (MatchService, *recordingPublisher) {
	teams := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "CSE Tigers", Sport: "Cricket"},
		2: {ID: 2, Name: "ECE Lions", Sport: "cricket"},
		3: {ID: 3, Name: "MECH Eagles", Sport: "Football"},
	}}
	pub := &recordingPublisher{}
	return NewMatchService(newFakeMatchRepo(), teams, pub), pub
}

var kickoff = time.Date(2025, 2, 14, 10, 30, 0, 0, time.UTC)

func TestCreateMatchFromTeams(t *testing.T) {
	svc, pub := newMatchFixture()

	m, err := svc.Create(context.Background(), MatchInput{
		TeamAID: intPtr(1), TeamBID: intPtr(2), TeamA: "ignored", Sport: "Cricket", MatchDate: kickoff, Venue: "Main Ground",
	})
	require.NoError(t, err)
	assert.Equal(t, "CSE Tigers", m.TeamA)
	assert.Equal(t, "ECE Lions", m.TeamB)
	assert.Equal(t, models.MatchScheduled, m.Status)
	assert.Equal(t, []string{livescore.EventMatchCreated}, pub.events)
}

func TestCreateMatchRejectsInvalidInput(t *testing.T) {
	svc, pub := newMatchFixture()

	tests := []struct {
		name  string
		input MatchInput
		want  error
	}{
		{"same team ids", MatchInput{TeamAID: intPtr(1), TeamBID: intPtr(1), Sport: "Cricket", MatchDate: kickoff}, ErrMatchSameTeams},
		{"same names ignoring case", MatchInput{TeamA: "Blue", TeamB: " blue ", Sport: "Cricket", MatchDate: kickoff}, ErrMatchSameTeams},
		{"team plays another sport", MatchInput{TeamAID: intPtr(1), TeamBID: intPtr(3), Sport: "Cricket", MatchDate: kickoff}, ErrMatchTeamSportMismatch},
		{"unknown team", MatchInput{TeamAID: intPtr(99), TeamB: "Guests", Sport: "Cricket", MatchDate: kickoff}, ErrTeamNotFound},
		{"unknown status", MatchInput{TeamA: "A", TeamB: "B", Sport: "Cricket", MatchDate: kickoff, Status: "postponed"}, ErrMatchInvalidStatus},
		{"missing team b", MatchInput{TeamA: "A", Sport: "Cricket", MatchDate: kickoff}, ErrValidationFailed},
		{"missing date", MatchInput{TeamA: "A", TeamB: "B", Sport: "Cricket"}, ErrValidationFailed},
		{"negative score", MatchInput{TeamA: "A", TeamB: "B", Sport: "Cricket", MatchDate: kickoff, ScoreA: -1}, ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, pub.events)
}

func TestUpdateMatchScore(t *testing.T) {
	svc, pub := newMatchFixture()
	ctx := context.Background()

	m, err := svc.Create(ctx, MatchInput{TeamA: "A", TeamB: "B", Sport: "Kabaddi", MatchDate: kickoff})
	require.NoError(t, err)

	_, err = svc.UpdateScore(ctx, m.ID, ScoreInput{ScoreA: intPtr(-2), ScoreB: intPtr(0)})
	assert.ErrorIs(t, err, ErrMatchNegativeScore)

	_, err = svc.UpdateScore(ctx, m.ID, ScoreInput{ScoreA: intPtr(2)})
	assert.ErrorIs(t, err, ErrValidationFailed)

	updated, err := svc.UpdateScore(ctx, m.ID, ScoreInput{ScoreA: intPtr(12), ScoreB: intPtr(9), Status: models.MatchLive})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.ScoreA)
	assert.Equal(t, models.MatchLive, updated.Status)

	kept, err := svc.UpdateScore(ctx, m.ID, ScoreInput{ScoreA: intPtr(14), ScoreB: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, models.MatchLive, kept.Status, "status is kept when omitted")

	_, err = svc.UpdateScore(ctx, 77, ScoreInput{ScoreA: intPtr(1), ScoreB: intPtr(1)})
	assert.ErrorIs(t, err, ErrMatchNotFound)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, []string{
		livescore.EventMatchCreated, livescore.EventMatchUpdated, livescore.EventMatchUpdated, livescore.EventMatchDeleted,
	}, pub.events)
}
