package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict for this sport")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Team, int, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateImage(ctx context.Context, id int, imageKey, imageURL *string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, sport, department, coach, captain_name, description, record, wins,
	standings, image_key, image_url, created_at`

func scanTeam(row rowScanner) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID, &t.Name, &t.Sport, &t.Department, &t.Coach, &t.CaptainName, &t.Description, &t.Record, &t.Wins,
		&t.Standings, &t.ImageKey, &t.ImageURL, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (name, sport, department, coach, captain_name, description, record, wins,
			standings, image_key, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Sport, t.Department, t.Coach, t.CaptainName, t.Description, t.Record, t.Wins,
		t.Standings, t.ImageKey, t.ImageURL,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTeamNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, err := scanTeam(r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Team, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "name", "coach", "captain_name", "department")
	w.eqFold("sport", filter.Sport)
	w.eqFold("department", filter.Department)

	total, err := countRows(ctx, r.db, "teams", w)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + teamColumns + ` FROM teams` + w.String() + ` ORDER BY sport ASC, name ASC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, 0, err
		}
		teams = append(teams, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, t *models.Team) error {
	query := `
		UPDATE teams SET
			name = $1, sport = $2, department = $3, coach = $4, captain_name = $5,
			description = $6, record = $7, wins = $8, standings = $9, image_url = $10
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Sport, t.Department, t.Coach, t.CaptainName,
		t.Description, t.Record, t.Wins, t.Standings, t.ImageURL, t.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTeamNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateImage(ctx context.Context, id int, imageKey, imageURL *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET image_key = $1, image_url = $2 WHERE id = $3`, imageKey, imageURL, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "teams", &whereClause{})
}
