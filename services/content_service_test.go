package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScheduleGenderRule(t *testing.T) {
	base := ScheduleInput{SerialNo: 1, Date: "2025-02-14", Time: "09:00", Activity: "Opening ceremony"}

	tests := []struct {
		name       string
		sport      string
		gender     string
		wantSport  string
		wantGender string
		wantErr    error
	}{
		{"general without gender", "general", "", models.GeneralSport, "", nil},
		{"general keeps optional gender", "General", "Mixed", models.GeneralSport, "Mixed", nil},
		{"sport needs gender", "Cricket", "", "", "", ErrScheduleGenderRequired},
		{"gender is canonicalised", "Cricket", "boys", "Cricket", "Boys", nil},
		{"unknown gender", "Cricket", "Men", "", "", ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Sport, in.Gender = tt.sport, tt.gender
			got, err := buildSchedule(in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSport, got.Sport)
			assert.Equal(t, tt.wantGender, got.Gender)
		})
	}

	_, err := buildSchedule(ScheduleInput{Sport: "General"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "activity")
	assert.Contains(t, verr.Fields, "date")
}

func TestNormalizePriority(t *testing.T) {
	for in, want := range map[models.AnnouncementPriority]models.AnnouncementPriority{
		"":         models.PriorityNormal,
		"URGENT":   models.PriorityUrgent,
		" medium ": models.PriorityMedium,
		"low":      models.PriorityLow,
	} {
		got, err := normalizePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := normalizePriority("critical")
	assert.ErrorIs(t, err, ErrAnnouncementPriority)
}

func TestRulePreview(t *testing.T) {
	svc := NewRuleService(nil)

	preview := svc.Preview("Each side fields **11** players.\n- Toss at *09:45*\n- No <b>tags</b>")
	assert.Equal(t,
		"<p>Each side fields <strong>11</strong> players.</p><ul><li>Toss at <em>09:45</em></li><li>No &lt;b&gt;tags&lt;/b&gt;</li></ul>",
		preview.HTML)
	require.Len(t, preview.Blocks, 3)
	assert.Equal(t, richtext.BlockBullet, preview.Blocks[1].Kind)
}

func TestDashboardStats(t *testing.T) {
	captains := newFakeCaptainRepo(
		&models.Captain{ID: 1, Status: models.StatusApproved},
		&models.Captain{ID: 2, Status: models.StatusPending},
		&models.Captain{ID: 3, Status: models.StatusPending},
	)
	dp := newFakeDepartmentPlayerRepo()
	svc := NewDashboardService(
		captains,
		&countingDPRepo{DepartmentPlayerRepository: dp, n: 12},
		&countingPlayerRepo{n: 5},
		&countingTeamRepo{n: 4},
		&countingMatchRepo{byStatus: map[string]int{"live": 1, "scheduled": 3}},
		&countingAnnouncementRepo{n: 2},
	)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{
		CaptainsTotal:     3,
		CaptainsByStatus:  map[string]int{"approved": 1, "pending": 2},
		DepartmentPlayers: 12,
		PlayersTotal:      5,
		TeamsTotal:        4,
		MatchesByStatus:   map[string]int{"live": 1, "scheduled": 3},
		Announcements:     2,
	}, stats)
}
