package postgres

import (
	"context"
	"database/sql"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, c *domain.Card) error {
	query := `INSERT INTO cards (home_id, owner_user_id, name, last4, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.HomeID, c.OwnerUserID, c.Name, c.Last4, time.Now()).Scan(&c.ID)
}

func (r *cardRepository) GetByID(ctx context.Context, id int32) (*domain.Card, error) {
	c := &domain.Card{}
	query := `SELECT id, home_id, owner_user_id, name, COALESCE(last4, ''), created_on FROM cards WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.HomeID, &c.OwnerUserID, &c.Name, &c.Last4, &createdOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	return c, nil
}

func (r *cardRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
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

func (r *cardRepository) ListByHome(ctx context.Context, homeID int32) ([]domain.Card, error) {
	query := `SELECT id, home_id, owner_user_id, name, COALESCE(last4, ''), created_on FROM cards WHERE home_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, homeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		var createdOn time.Time
		if err := rows.Scan(&c.ID, &c.HomeID, &c.OwnerUserID, &c.Name, &c.Last4, &createdOn); err != nil {
			return nil, err
		}
		c.CreatedOn = createdOn.Format("2006-01-02")
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
