package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/sports-portal/db"
	"github.com/Dosada05/sports-portal/models"
)

var (
	ErrDepartmentPlayerNotFound       = errors.New("department player not found")
	ErrDepartmentPlayerSportConflict  = errors.New("department player already registered for this sport")
	ErrDepartmentPlayerCaptainInvalid = errors.New("department player captain reference is invalid")
)

type DepartmentPlayerRepository interface {
	NextUniqueID(ctx context.Context) (string, error)
	Create(ctx context.Context, player *models.DepartmentPlayer) error
	GetByID(ctx context.Context, id int) (*models.DepartmentPlayer, error)
	FindByRNumber(ctx context.Context, rNumber string) (*models.DepartmentPlayer, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*models.DepartmentPlayer, error)
	ListByRNumber(ctx context.Context, rNumber string) ([]models.DepartmentPlayer, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.DepartmentPlayer, int, error)
	Update(ctx context.Context, player *models.DepartmentPlayer) error
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	// WithIdentityLock runs fn inside a transaction that holds an advisory lock
	// on rNumber. The repository passed to fn works inside that transaction, so
	// the sport limit check and the write it guards cannot interleave with
	// another request for the same R-Number.
	WithIdentityLock(ctx context.Context, rNumber string, fn func(repo DepartmentPlayerRepository) error) error
}

type postgresDepartmentPlayerRepository struct {
	db   *sql.DB
	exec SQLExecutor // *sql.DB или *sql.Tx внутри WithIdentityLock
}

func NewPostgresDepartmentPlayerRepository(conn *sql.DB) DepartmentPlayerRepository {
	return &postgresDepartmentPlayerRepository{db: conn, exec: conn}
}

const departmentPlayerSelect = `
	SELECT dp.id, dp.name, dp.email, dp.r_number, dp.unique_id, dp.department, dp.blood_group,
		dp.phone, dp.sport, dp.gender, dp.year, dp.captain_id, dp.status, dp.added_at, c.name
	FROM department_players dp
	LEFT JOIN captains c ON c.id = dp.captain_id`

func scanDepartmentPlayer(row rowScanner) (*models.DepartmentPlayer, error) {
	var p models.DepartmentPlayer
	var captainName sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.RNumber, &p.UniqueID, &p.Department, &p.BloodGroup,
		&p.Phone, &p.Sport, &p.Gender, &p.Year, &p.CaptainID, &p.Status, &p.AddedAt, &captainName,
	)
	if err != nil {
		return nil, err
	}
	if captainName.Valid {
		p.CaptainName = &captainName.String
	}
	return &p, nil
}

func (r *postgresDepartmentPlayerRepository) handleError(err error) error {
	if pqErr, ok := asPQError(err); ok {
		switch {
		case pqErr.Code == pqUniqueViolation && pqErr.Constraint == "department_players_r_number_sport_key":
			return ErrDepartmentPlayerSportConflict
		case pqErr.Code == pqForeignKeyViolation:
			return ErrDepartmentPlayerCaptainInvalid
		}
	}
	return err
}

func (r *postgresDepartmentPlayerRepository) NextUniqueID(ctx context.Context) (string, error) {
	return nextUniqueID(ctx, r.exec, "player_uid_seq", "PLY")
}

func (r *postgresDepartmentPlayerRepository) Create(ctx context.Context, p *models.DepartmentPlayer) error {
	if p.UniqueID == "" {
		uid, err := r.NextUniqueID(ctx)
		if err != nil {
			return err
		}
		p.UniqueID = uid
	}

	query := `
		INSERT INTO department_players (name, email, r_number, unique_id, department, blood_group,
			phone, sport, gender, year, captain_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, added_at`

	err := r.exec.QueryRowContext(ctx, query,
		p.Name, p.Email, p.RNumber, p.UniqueID, p.Department, p.BloodGroup,
		p.Phone, p.Sport, p.Gender, p.Year, p.CaptainID, p.Status,
	).Scan(&p.ID, &p.AddedAt)
	if err != nil {
		return r.handleError(err)
	}
	return nil
}

func (r *postgresDepartmentPlayerRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.DepartmentPlayer, error) {
	query := departmentPlayerSelect + ` WHERE ` + where + ` ORDER BY dp.added_at ASC, dp.id ASC LIMIT 1`
	p, err := scanDepartmentPlayer(r.exec.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDepartmentPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresDepartmentPlayerRepository) GetByID(ctx context.Context, id int) (*models.DepartmentPlayer, error) {
	return r.getOne(ctx, "dp.id = $1", id)
}

func (r *postgresDepartmentPlayerRepository) FindByRNumber(ctx context.Context, rNumber string) (*models.DepartmentPlayer, error) {
	return r.getOne(ctx, "UPPER(dp.r_number) = UPPER($1)", rNumber)
}

func (r *postgresDepartmentPlayerRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*models.DepartmentPlayer, error) {
	return r.getOne(ctx, "UPPER(dp.unique_id) = UPPER($1)", uniqueID)
}

func (r *postgresDepartmentPlayerRepository) ListByRNumber(ctx context.Context, rNumber string) ([]models.DepartmentPlayer, error) {
	query := departmentPlayerSelect + ` WHERE UPPER(dp.r_number) = UPPER($1) ORDER BY dp.added_at ASC, dp.id ASC`
	return r.query(ctx, query, rNumber)
}

func (r *postgresDepartmentPlayerRepository) List(ctx context.Context, filter models.ListFilter) ([]models.DepartmentPlayer, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "dp.name", "dp.email", "dp.r_number", "dp.unique_id")
	w.eqFold("dp.status", filter.Status)
	w.eqFold("dp.department", filter.Department)
	w.eqFold("dp.sport", filter.Sport)
	w.eqFold("dp.gender", filter.Gender)
	w.eqInt("dp.captain_id", filter.CaptainID)

	total, err := countRows(ctx, r.exec, "department_players dp", w)
	if err != nil {
		return nil, 0, err
	}

	query := departmentPlayerSelect + w.String() + ` ORDER BY dp.added_at DESC, dp.id DESC`
	query, args := w.page(query, filter)
	players, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

func (r *postgresDepartmentPlayerRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.DepartmentPlayer, error) {
	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.DepartmentPlayer, 0)
	for rows.Next() {
		p, err := scanDepartmentPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresDepartmentPlayerRepository) Update(ctx context.Context, p *models.DepartmentPlayer) error {
	query := `
		UPDATE department_players SET
			name = $1, email = $2, r_number = $3, unique_id = $4, blood_group = $5,
			phone = $6, sport = $7, gender = $8, year = $9
		WHERE id = $10`

	result, err := r.exec.ExecContext(ctx, query,
		p.Name, p.Email, p.RNumber, p.UniqueID, p.BloodGroup,
		p.Phone, p.Sport, p.Gender, p.Year, p.ID,
	)
	if err != nil {
		return r.handleError(err)
	}
	return checkAffectedRows(result, ErrDepartmentPlayerNotFound)
}

func (r *postgresDepartmentPlayerRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	result, err := r.exec.ExecContext(ctx, `UPDATE department_players SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDepartmentPlayerNotFound)
}

func (r *postgresDepartmentPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.exec.ExecContext(ctx, `DELETE FROM department_players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDepartmentPlayerNotFound)
}

func (r *postgresDepartmentPlayerRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.exec, "department_players", &whereClause{})
}

func (r *postgresDepartmentPlayerRepository) WithIdentityLock(ctx context.Context, rNumber string, fn func(repo DepartmentPlayerRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// Лок снимается вместе с транзакцией
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext(UPPER($1)))`, rNumber); err != nil {
			return fmt.Errorf("failed to lock r-number %s: %w", rNumber, err)
		}
		return fn(&postgresDepartmentPlayerRepository{db: r.db, exec: tx})
	})
}
