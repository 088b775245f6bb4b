package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var ErrRuleNotFound = errors.New("rule not found")

type RuleRepository interface {
	Create(ctx context.Context, rule *models.Rule) error
	GetByID(ctx context.Context, id int) (*models.Rule, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Rule, int, error)
	Update(ctx context.Context, rule *models.Rule) error
	Delete(ctx context.Context, id int) error
}

type postgresRuleRepository struct {
	db *sql.DB
}

func NewPostgresRuleRepository(db *sql.DB) RuleRepository {
	return &postgresRuleRepository{db: db}
}

func scanRule(row rowScanner) (*models.Rule, error) {
	var rule models.Rule
	if err := row.Scan(&rule.ID, &rule.Title, &rule.Description, &rule.Sport, &rule.Category, &rule.DisplayOrder); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *postgresRuleRepository) Create(ctx context.Context, rule *models.Rule) error {
	query := `
		INSERT INTO rules (title, description, sport, category, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rule.Title, rule.Description, rule.Sport, rule.Category, rule.DisplayOrder,
	).Scan(&rule.ID)
}

func (r *postgresRuleRepository) GetByID(ctx context.Context, id int) (*models.Rule, error) {
	rule, err := scanRule(r.db.QueryRowContext(ctx,
		`SELECT id, title, description, sport, category, display_order FROM rules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

func (r *postgresRuleRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Rule, int, error) {
	w := &whereClause{}
	w.search(filter.Search, "title", "description")
	w.eqFold("sport", filter.Sport)
	w.eqFold("category", filter.Category)

	total, err := countRows(ctx, r.db, "rules", w)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, title, description, sport, category, display_order FROM rules` +
		w.String() + ` ORDER BY display_order ASC, id ASC`
	query, args := w.page(query, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rules := make([]models.Rule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, 0, err
		}
		rules = append(rules, *rule)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

func (r *postgresRuleRepository) Update(ctx context.Context, rule *models.Rule) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE rules SET title = $1, description = $2, sport = $3, category = $4, display_order = $5 WHERE id = $6`,
		rule.Title, rule.Description, rule.Sport, rule.Category, rule.DisplayOrder, rule.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRuleNotFound)
}

func (r *postgresRuleRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRuleNotFound)
}
