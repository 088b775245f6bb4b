package models

// ListFilter carries the query-string filters accepted by list endpoints.
// Empty fields are ignored; Limit 0 returns every matching record.
type ListFilter struct {
	Search     string
	Sport      string
	Status     string
	Department string
	Gender     string
	Category   string
	Priority   string
	CaptainID  *int
	TeamID     *int
	Page       int
	Limit      int
}

func (f ListFilter) Offset() int {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// ListResult is a page of records plus the unpaginated total.
type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type DashboardStats struct {
	CaptainsTotal     int            `json:"captains_total"`
	CaptainsByStatus  map[string]int `json:"captains_by_status"`
	DepartmentPlayers int            `json:"department_players_total"`
	PlayersTotal      int            `json:"players_total"`
	TeamsTotal        int            `json:"teams_total"`
	MatchesByStatus   map[string]int `json:"matches_by_status"`
	Announcements     int            `json:"announcements_total"`
}
