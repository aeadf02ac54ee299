package postgres

import (
	"context"
	"database/sql"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (home_id, name_tr, name_en, kind, icon, color, is_default, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.HomeID, c.NameTr, c.NameEn, c.Kind, c.Icon, c.Color, c.IsDefault, time.Now()).Scan(&c.ID)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	c := &domain.Category{}
	query := `SELECT id, home_id, name_tr, name_en, kind, icon, color, is_default, created_on FROM categories WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.HomeID, &c.NameTr, &c.NameEn, &c.Kind, &c.Icon, &c.Color, &c.IsDefault, &createdOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name_tr = $1, name_en = $2, kind = $3, icon = $4, color = $5 WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, c.NameTr, c.NameEn, c.Kind, c.Icon, c.Color, c.ID)
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND is_default = FALSE`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) ListByHome(ctx context.Context, homeID int32, kind *domain.CategoryKind) ([]domain.Category, error) {
	query := `SELECT id, home_id, name_tr, name_en, kind, icon, color, is_default, created_on FROM categories
	          WHERE (home_id = $1 OR home_id IS NULL)`
	args := []any{homeID}
	if kind != nil {
		query += ` AND (kind = $2 OR kind = 'BOTH')`
		args = append(args, *kind)
	}
	query += ` ORDER BY is_default DESC, name_tr`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		var createdOn time.Time
		if err := rows.Scan(&c.ID, &c.HomeID, &c.NameTr, &c.NameEn, &c.Kind, &c.Icon, &c.Color, &c.IsDefault, &createdOn); err != nil {
			return nil, err
		}
		c.CreatedOn = createdOn.Format("2006-01-02")
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindOrCreate resolves a per-home category by its Turkish name. The partial
// unique index on (home_id, lower(name_tr)) makes the insert race-safe; a
// concurrent loser falls through to the select.
func (r *categoryRepository) FindOrCreate(ctx context.Context, c *domain.Category) error {
	insert := `INSERT INTO categories (home_id, name_tr, name_en, kind, icon, color, is_default, created_on)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	           ON CONFLICT (home_id, lower(name_tr)) WHERE home_id IS NOT NULL DO NOTHING RETURNING id`
	err := r.db.QueryRowContext(ctx, insert, c.HomeID, c.NameTr, c.NameEn, c.Kind, c.Icon, c.Color, c.IsDefault, time.Now()).Scan(&c.ID)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	query := `SELECT id, name_tr, name_en, kind, icon, color, is_default FROM categories
	          WHERE home_id = $1 AND lower(name_tr) = lower($2)`
	return r.db.QueryRowContext(ctx, query, c.HomeID, c.NameTr).
		Scan(&c.ID, &c.NameTr, &c.NameEn, &c.Kind, &c.Icon, &c.Color, &c.IsDefault)
}
