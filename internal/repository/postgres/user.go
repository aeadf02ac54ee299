package postgres

import (
	"context"
	"database/sql"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, created_on, updated_on FROM users WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, created_on, updated_on FROM users WHERE lower(email) = lower($1)`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = $1, name = $2, updated_on = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, time.Now(), u.ID)
	return err
}

func (r *userRepository) AddMember(ctx context.Context, m *domain.HomeMember) error {
	query := `INSERT INTO home_members (user_id, home_id, role, joined_on, linked_card_id)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.HomeID, m.Role, time.Now(), m.LinkedCardID)
	return err
}

func (r *userRepository) GetMember(ctx context.Context, userID, homeID int32) (*domain.HomeMember, error) {
	m := &domain.HomeMember{}
	query := `SELECT user_id, home_id, role, joined_on, linked_card_id FROM home_members WHERE user_id = $1 AND home_id = $2`
	var joinedOn time.Time
	err := r.db.QueryRowContext(ctx, query, userID, homeID).Scan(&m.UserID, &m.HomeID, &m.Role, &joinedOn, &m.LinkedCardID)
	if err != nil {
		return nil, err
	}
	m.JoinedOn = joinedOn.Format("2006-01-02")
	return m, nil
}

func (r *userRepository) GetMembership(ctx context.Context, userID int32) (*domain.HomeMember, error) {
	m := &domain.HomeMember{}
	query := `SELECT user_id, home_id, role, joined_on, linked_card_id FROM home_members WHERE user_id = $1`
	var joinedOn time.Time
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&m.UserID, &m.HomeID, &m.Role, &joinedOn, &m.LinkedCardID)
	if err != nil {
		return nil, err
	}
	m.JoinedOn = joinedOn.Format("2006-01-02")
	return m, nil
}

func (r *userRepository) UpdateMember(ctx context.Context, m *domain.HomeMember) error {
	query := `UPDATE home_members SET role = $1, linked_card_id = $2 WHERE user_id = $3 AND home_id = $4`
	_, err := r.db.ExecContext(ctx, query, m.Role, m.LinkedCardID, m.UserID, m.HomeID)
	return err
}

func (r *userRepository) ListMembersByHome(ctx context.Context, homeID int32) ([]domain.User, []domain.HomeMember, error) {
	query := `SELECT u.id, u.email, u.name, m.user_id, m.home_id, m.role, m.joined_on, m.linked_card_id
	          FROM users u JOIN home_members m ON m.user_id = u.id
	          WHERE m.home_id = $1 ORDER BY m.joined_on`
	rows, err := r.db.QueryContext(ctx, query, homeID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var users []domain.User
	var members []domain.HomeMember
	for rows.Next() {
		var u domain.User
		var m domain.HomeMember
		var joinedOn time.Time
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &m.UserID, &m.HomeID, &m.Role, &joinedOn, &m.LinkedCardID); err != nil {
			return nil, nil, err
		}
		m.JoinedOn = joinedOn.Format("2006-01-02")
		users = append(users, u)
		members = append(members, m)
	}
	return users, members, rows.Err()
}
