package postgres

import (
	"context"
	"database/sql"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
)

type homeRepository struct {
	db *sql.DB
}

func NewHomeRepository(db *sql.DB) repository.HomeRepository {
	return &homeRepository{db: db}
}

// CreateWithOwner runs registration as one transaction: the home row, the
// owner membership, and the default category seed all land together or not at
// all.
func (r *homeRepository) CreateWithOwner(ctx context.Context, h *domain.Home, ownerID int32, seed []domain.Category) error {
	logger.EnterMethod("homeRepository.CreateWithOwner", "name", h.Name, "ownerID", ownerID, "seedCount", len(seed))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO homes (name, currency, created_on) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, h.Name, h.Currency, now).Scan(&h.ID); err != nil {
		logger.ExitMethodWithError("homeRepository.CreateWithOwner", err, "step", "insert home")
		return err
	}

	memberQuery := `INSERT INTO home_members (user_id, home_id, role, joined_on) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, memberQuery, ownerID, h.ID, domain.HomeRoleOwner, now); err != nil {
		logger.ExitMethodWithError("homeRepository.CreateWithOwner", err, "step", "insert owner")
		return err
	}

	seedQuery := `INSERT INTO categories (home_id, name_tr, name_en, kind, icon, color, is_default, created_on)
	              VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)`
	for _, c := range seed {
		if _, err := tx.ExecContext(ctx, seedQuery, h.ID, c.NameTr, c.NameEn, c.Kind, c.Icon, c.Color, now); err != nil {
			logger.ExitMethodWithError("homeRepository.CreateWithOwner", err, "step", "seed categories", "nameTr", c.NameTr)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("homeRepository.CreateWithOwner", err, "step", "commit")
		return err
	}

	logger.ExitMethod("homeRepository.CreateWithOwner", "homeID", h.ID)
	return nil
}

func (r *homeRepository) GetByID(ctx context.Context, id int32) (*domain.Home, error) {
	h := &domain.Home{}
	query := `SELECT id, name, currency, created_on FROM homes WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.Currency, &createdOn)
	if err != nil {
		return nil, err
	}
	h.CreatedOn = createdOn.Format("2006-01-02")
	return h, nil
}

func (r *homeRepository) Update(ctx context.Context, h *domain.Home) error {
	query := `UPDATE homes SET name = $1, currency = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, h.Name, h.Currency, h.ID)
	return err
}
