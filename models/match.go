package models

import "time"

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchLive, MatchCompleted:
		return true
	}
	return false
}

type Match struct {
	ID        int         `json:"id" db:"id"`
	TeamA     string      `json:"team_a" db:"team_a"`
	TeamB     string      `json:"team_b" db:"team_b"`
	TeamAID   *int        `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID   *int        `json:"team_b_id,omitempty" db:"team_b_id"`
	Sport     string      `json:"sport" db:"sport"`
	MatchDate time.Time   `json:"match_date" db:"match_date"`
	Venue     string      `json:"venue" db:"venue"`
	ScoreA    int         `json:"score_a" db:"score_a"`
	ScoreB    int         `json:"score_b" db:"score_b"`
	Status    MatchStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
