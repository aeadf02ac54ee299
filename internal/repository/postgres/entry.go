package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type entryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, home_id, created_by_id, kind, amount, occurred_at, COALESCE(title, ''),
	category_id, card_id, is_shared, is_recurring, from_user_id, to_user_id, created_on`

func scanEntry(row interface{ Scan(...any) error }) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	err := row.Scan(&e.ID, &e.HomeID, &e.CreatedByID, &e.Kind, &e.Amount, &e.OccurredAt, &e.Title,
		&e.CategoryID, &e.CardID, &e.IsShared, &e.IsRecurring, &e.FromUserID, &e.ToUserID, &e.CreatedOn)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *entryRepository) Create(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO entries (home_id, created_by_id, kind, amount, occurred_at, title, category_id, card_id,
	          is_shared, is_recurring, from_user_id, to_user_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.HomeID, e.CreatedByID, e.Kind, e.Amount, e.OccurredAt, e.Title,
		e.CategoryID, e.CardID, e.IsShared, e.IsRecurring, e.FromUserID, e.ToUserID, time.Now()).Scan(&e.ID)
}

func (r *entryRepository) GetByID(ctx context.Context, id int32) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	return scanEntry(r.db.QueryRowContext(ctx, query, id))
}

// Update leaves kind and the transfer participant pair untouched; those are
// immutable after creation.
func (r *entryRepository) Update(ctx context.Context, e *domain.LedgerEntry) error {
	query := `UPDATE entries SET amount = $1, occurred_at = $2, title = $3, category_id = $4, card_id = $5,
	          is_shared = $6, is_recurring = $7 WHERE id = $8`
	_, err := r.db.ExecContext(ctx, query, e.Amount, e.OccurredAt, e.Title, e.CategoryID, e.CardID,
		e.IsShared, e.IsRecurring, e.ID)
	return err
}

func (r *entryRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
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

// buildWhere translates the typed filter into a WHERE clause. Transfers are
// scoped to their two participants whenever a viewer is set, so hidden rows
// never leak into pages or counts.
func buildWhere(f repository.EntryFilter) (string, []any) {
	clauses := []string{"home_id = $1"}
	args := []any{f.HomeID}

	next := func() int { return len(args) + 1 }

	if f.ViewerID != 0 {
		clauses = append(clauses, fmt.Sprintf("(kind <> 'TRANSFER' OR from_user_id = $%d OR to_user_id = $%d)", next(), next()))
		args = append(args, f.ViewerID)
	}
	if f.Kind != nil {
		clauses = append(clauses, fmt.Sprintf("kind = $%d", next()))
		args = append(args, *f.Kind)
	}
	if f.CategoryID != nil {
		clauses = append(clauses, fmt.Sprintf("category_id = $%d", next()))
		args = append(args, *f.CategoryID)
	}
	if f.CreatedByID != nil {
		clauses = append(clauses, fmt.Sprintf("created_by_id = $%d", next()))
		args = append(args, *f.CreatedByID)
	}
	if f.Month != nil && f.Year != nil {
		from := time.Date(*f.Year, time.Month(*f.Month), 1, 0, 0, 0, 0, time.Local)
		clauses = append(clauses, fmt.Sprintf("occurred_at >= $%d", next()))
		args = append(args, from)
		clauses = append(clauses, fmt.Sprintf("occurred_at < $%d", next()))
		args = append(args, from.AddDate(0, 1, 0))
	} else if f.Year != nil {
		from := time.Date(*f.Year, time.January, 1, 0, 0, 0, 0, time.Local)
		clauses = append(clauses, fmt.Sprintf("occurred_at >= $%d", next()))
		args = append(args, from)
		clauses = append(clauses, fmt.Sprintf("occurred_at < $%d", next()))
		args = append(args, from.AddDate(1, 0, 0))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *entryRepository) List(ctx context.Context, f repository.EntryFilter) ([]domain.LedgerEntry, int32, error) {
	where, args := buildWhere(f)

	var count int32
	countQuery := `SELECT count(*) FROM entries WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	query := fmt.Sprintf(`SELECT %s FROM entries WHERE %s ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		entryColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *e)
	}
	return entries, count, rows.Err()
}

func (r *entryRepository) ListForPeriod(ctx context.Context, homeID int32, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
	          WHERE home_id = $1 AND occurred_at >= $2 AND occurred_at < $3 ORDER BY occurred_at`
	rows, err := r.db.QueryContext(ctx, query, homeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
