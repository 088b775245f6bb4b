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
	ErrCaptainNotFound         = errors.New("captain not found")
	ErrCaptainEmailConflict    = errors.New("captain email conflict")
	ErrCaptainRNumberConflict  = errors.New("captain r-number conflict")
	ErrCaptainUniqueIDConflict = errors.New("captain unique id conflict")
)

type CaptainRepository interface {
	Create(ctx context.Context, captain *models.Captain) error
	GetByID(ctx context.Context, id int) (*models.Captain, error)
	GetByEmail(ctx context.Context, email string) (*models.Captain, error)
	FindByRNumber(ctx context.Context, rNumber string) (*models.Captain, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*models.Captain, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Captain, int, error)
	Update(ctx context.Context, captain *models.Captain) error
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	// DeleteWithPlayers removes the captain and every department player they added
	// in one transaction and returns the number of removed players.
	DeleteWithPlayers(ctx context.Context, id int) (int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type postgresCaptainRepository struct {
	db *sql.DB
}

func NewPostgresCaptainRepository(db *sql.DB) CaptainRepository {
	return &postgresCaptainRepository{db: db}
}

const captainColumns = `id, name, email, r_number, unique_id, department, blood_group, phone,
	sport, gender, password_hash, status, created_at, updated_at`

func scanCaptain(row rowScanner) (*models.Captain, error) {
	var c models.Captain
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.RNumber, &c.UniqueID, &c.Department, &c.BloodGroup, &c.Phone,
		&c.Sport, &c.Gender, &c.PasswordHash, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresCaptainRepository) handleCaptainError(err error) error {
	if pqErr, ok := asPQError(err); ok && pqErr.Code == pqUniqueViolation {
		switch pqErr.Constraint {
		case "captains_email_key":
			return ErrCaptainEmailConflict
		case "captains_r_number_key":
			return ErrCaptainRNumberConflict
		case "captains_unique_id_key":
			return ErrCaptainUniqueIDConflict
		}
	}
	return err
}

func (r *postgresCaptainRepository) Create(ctx context.Context, c *models.Captain) error {
	if c.UniqueID == "" {
		uid, err := nextUniqueID(ctx, r.db, "captain_uid_seq", "CPT")
		if err != nil {
			return err
		}
		c.UniqueID = uid
	}

	query := `
		INSERT INTO captains (name, email, r_number, unique_id, department, blood_group, phone,
			sport, gender, password_hash, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Email, c.RNumber, c.UniqueID, c.Department, c.BloodGroup, c.Phone,
		c.Sport, c.Gender, c.PasswordHash, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return r.handleCaptainError(err)
	}
	return nil
}

func (r *postgresCaptainRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Captain, error) {
	query := `SELECT ` + captainColumns + ` FROM captains WHERE ` + where + ` ORDER BY created_at ASC, id ASC LIMIT 1`
	c, err := scanCaptain(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCaptainNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCaptainRepository) GetByID(ctx context.Context, id int) (*models.Captain, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresCaptainRepository) GetByEmail(ctx context.Context, email string) (*models.Captain, error) {
	return r.getOne(ctx, "LOWER(email) = LOWER($1)", email)
}

func (r *postgresCaptainRepository) FindByRNumber(ctx context.Context, rNumber string) (*models.Captain, error) {
	return r.getOne(ctx, "UPPER(r_number) = UPPER($1)", rNumber)
}

func (r *postgresCaptainRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*models.Captain, error) {
	return r.getOne(ctx, "UPPER(unique_id) = UPPER($1)", uniqueID)
}

func (r *postgresCaptainRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Captain, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "name", "email", "r_number", "unique_id")
	w.eqFold("status", filter.Status)
	w.eqFold("department", filter.Department)
	w.eqFold("sport", filter.Sport)
	w.eqFold("gender", filter.Gender)

	total, err := countRows(ctx, r.db, "captains", w)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + captainColumns + `,
			(SELECT COUNT(*) FROM department_players dp WHERE dp.captain_id = captains.id)
		FROM captains` + w.String() + ` ORDER BY created_at DESC, id DESC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	captains := make([]models.Captain, 0)
	for rows.Next() {
		var c models.Captain
		var players int
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.RNumber, &c.UniqueID, &c.Department, &c.BloodGroup, &c.Phone,
			&c.Sport, &c.Gender, &c.PasswordHash, &c.Status, &c.CreatedAt, &c.UpdatedAt, &players,
		); err != nil {
			return nil, 0, err
		}
		c.PlayerCount = &players
		captains = append(captains, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return captains, total, nil
}

func (r *postgresCaptainRepository) Update(ctx context.Context, c *models.Captain) error {
	query := `
		UPDATE captains SET
			name = $1, email = $2, r_number = $3, department = $4, blood_group = $5,
			phone = $6, sport = $7, gender = $8, password_hash = $9, updated_at = now()
		WHERE id = $10
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Email, c.RNumber, c.Department, c.BloodGroup,
		c.Phone, c.Sport, c.Gender, c.PasswordHash, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCaptainNotFound
		}
		return r.handleCaptainError(err)
	}
	return nil
}

func (r *postgresCaptainRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE captains SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCaptainNotFound)
}

func (r *postgresCaptainRepository) DeleteWithPlayers(ctx context.Context, id int) (int, error) {
	var removed int
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM department_players WHERE captain_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete players of captain %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows: %w", err)
		}
		removed = int(n)

		res, err = tx.ExecContext(ctx, `DELETE FROM captains WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete captain %d: %w", id, err)
		}
		return checkAffectedRows(res, ErrCaptainNotFound)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *postgresCaptainRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByColumn(ctx, r.db, "captains", "status")
}
