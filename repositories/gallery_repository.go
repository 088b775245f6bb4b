package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var ErrGalleryItemNotFound = errors.New("gallery item not found")

type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	GetByID(ctx context.Context, id int) (*models.GalleryItem, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.GalleryItem, int, error)
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id int) error
}

type postgresGalleryRepository struct {
	db *sql.DB
}

func NewPostgresGalleryRepository(db *sql.DB) GalleryRepository {
	return &postgresGalleryRepository{db: db}
}

const galleryColumns = `id, title, image_url, image_key, category, description, created_at`

func scanGalleryItem(row rowScanner) (*models.GalleryItem, error) {
	var g models.GalleryItem
	if err := row.Scan(&g.ID, &g.Title, &g.ImageURL, &g.ImageKey, &g.Category, &g.Description, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *postgresGalleryRepository) Create(ctx context.Context, g *models.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (title, image_url, image_key, category, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, g.Title, g.ImageURL, g.ImageKey, g.Category, g.Description).
		Scan(&g.ID, &g.CreatedAt)
}

func (r *postgresGalleryRepository) GetByID(ctx context.Context, id int) (*models.GalleryItem, error) {
	g, err := scanGalleryItem(r.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM gallery_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *postgresGalleryRepository) List(ctx context.Context, filter models.ListFilter) ([]models.GalleryItem, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "title", "description")
	w.eqFold("category", filter.Category)

	total, err := countRows(ctx, r.db, "gallery_items", w)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + galleryColumns + ` FROM gallery_items` + w.String() + ` ORDER BY created_at DESC, id DESC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]models.GalleryItem, 0)
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *postgresGalleryRepository) Update(ctx context.Context, g *models.GalleryItem) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gallery_items SET title = $1, image_url = $2, image_key = $3, category = $4, description = $5 WHERE id = $6`,
		g.Title, g.ImageURL, g.ImageKey, g.Category, g.Description, g.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGalleryItemNotFound)
}

func (r *postgresGalleryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGalleryItemNotFound)
}
