package postgres

import (
	"context"
	"database/sql"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `INSERT INTO invitations (invitation_code, home_id, email, created_by, expires_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, inv.InvitationCode, inv.HomeID, inv.Email, inv.CreatedBy, inv.ExpiresOn, time.Now()).Scan(&inv.ID)
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	query := `SELECT id, invitation_code, home_id, email, created_by, expires_on, used_on, used_by_user_id, created_on
	          FROM invitations WHERE invitation_code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&inv.ID, &inv.InvitationCode, &inv.HomeID, &inv.Email,
		&inv.CreatedBy, &inv.ExpiresOn, &inv.UsedOn, &inv.UsedByUserID, &inv.CreatedOn)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) Update(ctx context.Context, inv *domain.Invitation) error {
	query := `UPDATE invitations SET used_on = $1, used_by_user_id = $2 WHERE invitation_code = $3`
	_, err := r.db.ExecContext(ctx, query, inv.UsedOn, inv.UsedByUserID, inv.InvitationCode)
	return err
}
