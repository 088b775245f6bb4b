package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerEmailConflict = errors.New("player email conflict")
	ErrPlayerTeamInvalid   = errors.New("player team reference is invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByEmail(ctx context.Context, email string) (*models.Player, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Player, int, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerSelect = `
	SELECT p.id, p.name, p.email, p.r_number, p.password_hash, p.team_id, p.department,
		p.position, p.jersey_number, p.status, p.created_at, t.name
	FROM players p
	LEFT JOIN teams t ON t.id = p.team_id`

func scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	var teamID, jersey sql.NullInt64
	var teamName sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.RNumber, &p.PasswordHash, &teamID, &p.Department,
		&p.Position, &jersey, &p.Status, &p.CreatedAt, &teamName,
	)
	if err != nil {
		return nil, err
	}
	if teamID.Valid {
		id := int(teamID.Int64)
		p.TeamID = &id
	}
	if jersey.Valid {
		n := int(jersey.Int64)
		p.JerseyNumber = &n
	}
	if teamName.Valid {
		p.TeamName = &teamName.String
	}
	return &p, nil
}

func (r *postgresPlayerRepository) handleError(err error) error {
	switch {
	case isUniqueViolation(err):
		return ErrPlayerEmailConflict
	case isForeignKeyViolation(err):
		return ErrPlayerTeamInvalid
	}
	return err
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (name, email, r_number, password_hash, team_id, department, position, jersey_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Email, p.RNumber, p.PasswordHash, p.TeamID, p.Department, p.Position, p.JerseyNumber, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return r.handleError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Player, error) {
	p, err := scanPlayer(r.db.QueryRowContext(ctx, playerSelect+` WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

func (r *postgresPlayerRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	return r.getOne(ctx, "LOWER(p.email) = LOWER($1)", email)
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Player, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "p.name", "p.email", "p.r_number", "p.position")
	w.eqFold("p.status", filter.Status)
	w.eqFold("p.department", filter.Department)
	w.eqInt("p.team_id", filter.TeamID)

	total, err := countRows(ctx, r.db, "players p", w)
	if err != nil {
		return nil, 0, err
	}

	query := playerSelect + w.String() + ` ORDER BY p.created_at DESC, p.id DESC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, 0, err
		}
		players = append(players, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players SET
			name = $1, email = $2, r_number = $3, password_hash = $4, team_id = $5,
			department = $6, position = $7, jersey_number = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Email, p.RNumber, p.PasswordHash, p.TeamID,
		p.Department, p.Position, p.JerseyNumber, p.ID,
	)
	if err != nil {
		return r.handleError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "players", &whereClause{})
}
