package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team reference is invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Match, int, error)
	Update(ctx context.Context, match *models.Match) error
	UpdateScore(ctx context.Context, id int, scoreA, scoreB int, status models.MatchStatus) error
	Delete(ctx context.Context, id int) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, team_a, team_b, team_a_id, team_b_id, sport, match_date, venue, score_a, score_b, status, created_at`

func scanMatch(row rowScanner) (*models.Match, error) {
	var m models.Match
	var teamAID, teamBID sql.NullInt64
	err := row.Scan(
		&m.ID, &m.TeamA, &m.TeamB, &teamAID, &teamBID, &m.Sport, &m.MatchDate, &m.Venue,
		&m.ScoreA, &m.ScoreB, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if teamAID.Valid {
		id := int(teamAID.Int64)
		m.TeamAID = &id
	}
	if teamBID.Valid {
		id := int(teamBID.Int64)
		m.TeamBID = &id
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (team_a, team_b, team_a_id, team_b_id, sport, match_date, venue, score_a, score_b, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.TeamA, m.TeamB, m.TeamAID, m.TeamBID, m.Sport, m.MatchDate, m.Venue, m.ScoreA, m.ScoreB, m.Status,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMatchTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Match, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "team_a", "team_b", "venue")
	w.eqFold("sport", filter.Sport)
	w.eqFold("status", filter.Status)

	total, err := countRows(ctx, r.db, "matches", w)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + matchColumns + ` FROM matches` + w.String() + ` ORDER BY match_date ASC, id ASC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, 0, err
		}
		matches = append(matches, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET
			team_a = $1, team_b = $2, team_a_id = $3, team_b_id = $4, sport = $5,
			match_date = $6, venue = $7, score_a = $8, score_b = $9, status = $10
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		m.TeamA, m.TeamB, m.TeamAID, m.TeamBID, m.Sport,
		m.MatchDate, m.Venue, m.ScoreA, m.ScoreB, m.Status, m.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMatchTeamInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id int, scoreA, scoreB int, status models.MatchStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET score_a = $1, score_b = $2, status = $3 WHERE id = $4`, scoreA, scoreB, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByColumn(ctx, r.db, "matches", "status")
}
