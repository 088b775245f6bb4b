package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var ErrScheduleNotFound = errors.New("schedule entry not found")

type ScheduleRepository interface {
	Create(ctx context.Context, s *models.Schedule) error
	GetByID(ctx context.Context, id int) (*models.Schedule, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Schedule, int, error)
	Update(ctx context.Context, s *models.Schedule) error
	Delete(ctx context.Context, id int) error
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

const scheduleColumns = `id, serial_no, date, time, activity, sport, gender, match_detail`

func scanSchedule(row rowScanner) (*models.Schedule, error) {
	var s models.Schedule
	if err := row.Scan(&s.ID, &s.SerialNo, &s.Date, &s.Time, &s.Activity, &s.Sport, &s.Gender, &s.MatchDetail); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresScheduleRepository) Create(ctx context.Context, s *models.Schedule) error {
	query := `
		INSERT INTO schedules (serial_no, date, time, activity, sport, gender, match_detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		s.SerialNo, s.Date, s.Time, s.Activity, s.Sport, s.Gender, s.MatchDetail,
	).Scan(&s.ID)
}

func (r *postgresScheduleRepository) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	s, err := scanSchedule(r.db.QueryRowContext(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresScheduleRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Schedule, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "activity", "match_detail")
	w.eqFold("sport", filter.Sport)
	w.eqFold("gender", filter.Gender)

	total, err := countRows(ctx, r.db, "schedules", w)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + scheduleColumns + ` FROM schedules` + w.String() + ` ORDER BY serial_no ASC, id ASC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	schedules := make([]models.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, 0, err
		}
		schedules = append(schedules, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

func (r *postgresScheduleRepository) Update(ctx context.Context, s *models.Schedule) error {
	query := `
		UPDATE schedules SET
			serial_no = $1, date = $2, time = $3, activity = $4, sport = $5, gender = $6, match_detail = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		s.SerialNo, s.Date, s.Time, s.Activity, s.Sport, s.Gender, s.MatchDetail, s.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}

func (r *postgresScheduleRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}
