package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id int) (*models.Announcement, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Announcement, int, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresAnnouncementRepository struct {
	db *sql.DB
}

func NewPostgresAnnouncementRepository(db *sql.DB) AnnouncementRepository {
	return &postgresAnnouncementRepository{db: db}
}

// priorityOrder sorts urgent first; medium and normal share a tier.
const priorityOrder = `CASE priority
		WHEN 'urgent' THEN 0
		WHEN 'high' THEN 1
		WHEN 'medium' THEN 2
		WHEN 'normal' THEN 2
		WHEN 'low' THEN 3
		ELSE 4 END`

func scanAnnouncement(row rowScanner) (*models.Announcement, error) {
	var a models.Announcement
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Priority, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := `
		INSERT INTO announcements (title, description, priority)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, a.Title, a.Description, a.Priority).Scan(&a.ID, &a.CreatedAt)
}

func (r *postgresAnnouncementRepository) GetByID(ctx context.Context, id int) (*models.Announcement, error) {
	a, err := scanAnnouncement(r.db.QueryRowContext(ctx,
		`SELECT id, title, description, priority, created_at FROM announcements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *postgresAnnouncementRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Announcement, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "title", "description")
	w.eqFold("priority", filter.Priority)

	total, err := countRows(ctx, r.db, "announcements", w)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, title, description, priority, created_at FROM announcements` +
		w.String() + ` ORDER BY ` + priorityOrder + `, created_at DESC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	announcements := make([]models.Announcement, 0)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, err
		}
		announcements = append(announcements, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}

func (r *postgresAnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE announcements SET title = $1, description = $2, priority = $3 WHERE id = $4`,
		a.Title, a.Description, a.Priority, a.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAnnouncementNotFound)
}

func (r *postgresAnnouncementRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAnnouncementNotFound)
}

func (r *postgresAnnouncementRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "announcements", &whereClause{})
}
