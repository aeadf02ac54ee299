package postgres

import (
	"context"
	"database/sql"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, user_id, name, principal_amount, total_amount, monthly_payment,
	total_installments, paid_installments, start_date, interest_rate, COALESCE(notes, ''), created_on`

func scanLoan(row interface{ Scan(...any) error }) (*domain.Loan, error) {
	l := &domain.Loan{}
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.PrincipalAmount, &l.TotalAmount, &l.MonthlyPayment,
		&l.TotalInstallments, &l.PaidInstallments, &l.StartDate, &l.InterestRate, &l.Notes, &l.CreatedOn)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (user_id, name, principal_amount, total_amount, monthly_payment,
	          total_installments, paid_installments, start_date, interest_rate, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, l.UserID, l.Name, l.PrincipalAmount, l.TotalAmount, l.MonthlyPayment,
		l.TotalInstallments, l.PaidInstallments, l.StartDate, l.InterestRate, l.Notes, time.Now()).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return scanLoan(r.db.QueryRowContext(ctx, query, id))
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET name = $1, principal_amount = $2, total_amount = $3, monthly_payment = $4,
	          total_installments = $5, paid_installments = $6, start_date = $7, interest_rate = $8, notes = $9
	          WHERE id = $10`
	_, err := r.db.ExecContext(ctx, query, l.Name, l.PrincipalAmount, l.TotalAmount, l.MonthlyPayment,
		l.TotalInstallments, l.PaidInstallments, l.StartDate, l.InterestRate, l.Notes, l.ID)
	return err
}

func (r *loanRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
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

func (r *loanRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

// PayInstallment advances the paid counter and inserts the synthesized
// expense entry in a single transaction. The UPDATE's guard clause re-checks
// the installment bound under the row lock, so a concurrent payer can never
// push the counter past the total; when the guard fails no row comes back and
// nothing is written.
func (r *loanRepository) PayInstallment(ctx context.Context, loanID, count int32, entry *domain.LedgerEntry) (*domain.Loan, error) {
	logger.EnterMethod("loanRepository.PayInstallment", "loanID", loanID, "count", count)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE loans SET paid_installments = paid_installments + $2
	          WHERE id = $1 AND paid_installments + $2 <= total_installments
	          RETURNING ` + loanColumns
	loan, err := scanLoan(tx.QueryRowContext(ctx, query, loanID, count))
	if err != nil {
		logger.ExitMethodWithError("loanRepository.PayInstallment", err, "loanID", loanID, "step", "advance counter")
		return nil, err
	}

	entryQuery := `INSERT INTO entries (home_id, created_by_id, kind, amount, occurred_at, title, category_id,
	               is_shared, is_recurring, created_on)
	               VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE, $8) RETURNING id`
	err = tx.QueryRowContext(ctx, entryQuery, entry.HomeID, entry.CreatedByID, entry.Kind, entry.Amount,
		entry.OccurredAt, entry.Title, entry.CategoryID, time.Now()).Scan(&entry.ID)
	if err != nil {
		logger.ExitMethodWithError("loanRepository.PayInstallment", err, "loanID", loanID, "step", "insert expense")
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("loanRepository.PayInstallment", err, "loanID", loanID, "step", "commit")
		return nil, err
	}

	logger.ExitMethod("loanRepository.PayInstallment", "loanID", loanID, "paidInstallments", loan.PaidInstallments, "entryID", entry.ID)
	return loan, nil
}
