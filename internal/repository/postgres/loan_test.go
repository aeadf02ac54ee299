package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository/postgres"
)

var loanRows = []string{"id", "user_id", "name", "principal_amount", "total_amount", "monthly_payment",
	"total_installments", "paid_installments", "start_date", "interest_rate", "notes", "created_on"}

func addLoanRow(rows *sqlmock.Rows, paid int32) *sqlmock.Rows {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(1, 1, "Araba Kredisi", "100000", "120000", "10000", 12, paid, start, nil, "", time.Now())
}

func TestLoanRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loan := &domain.Loan{
			UserID:            1,
			Name:              "Araba Kredisi",
			PrincipalAmount:   decimal.NewFromInt(100000),
			TotalAmount:       decimal.NewFromInt(120000),
			MonthlyPayment:    decimal.NewFromInt(10000),
			TotalInstallments: 12,
			StartDate:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}

		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(loan.UserID, loan.Name, loan.PrincipalAmount, loan.TotalAmount, loan.MonthlyPayment,
				loan.TotalInstallments, loan.PaidInstallments, loan.StartDate, loan.InterestRate,
				loan.Notes, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		err := repo.Create(ctx, loan)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), loan.ID)
	})
}

func TestLoanRepository_PayInstallment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	newEntry := func() *domain.LedgerEntry {
		return &domain.LedgerEntry{
			HomeID:      7,
			CreatedByID: 1,
			Kind:        domain.EntryKindExpense,
			Amount:      decimal.NewFromInt(10000),
			OccurredAt:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Title:       "Araba Kredisi - Installment 11",
		}
	}

	t.Run("Success", func(t *testing.T) {
		// Goal: the counter advance and the expense insert commit together.
		entry := newEntry()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE loans SET paid_installments = paid_installments \+ \$2`).
			WithArgs(int32(1), int32(1)).
			WillReturnRows(addLoanRow(sqlmock.NewRows(loanRows), 11))
		mock.ExpectQuery("INSERT INTO entries").
			WithArgs(entry.HomeID, entry.CreatedByID, entry.Kind, entry.Amount, entry.OccurredAt,
				entry.Title, entry.CategoryID, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectCommit()

		loan, err := repo.PayInstallment(ctx, 1, 1, entry)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), loan.PaidInstallments)
		assert.Equal(t, int32(42), entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_GuardLoses", func(t *testing.T) {
		// Goal: when the bound check rejects the update nothing is committed.
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE loans SET paid_installments = paid_installments \+ \$2`).
			WithArgs(int32(1), int32(5)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		loan, err := repo.PayInstallment(ctx, 1, 5, newEntry())
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, loan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_EntryInsertFails", func(t *testing.T) {
		// Goal: a failed expense insert rolls the counter advance back.
		entry := newEntry()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE loans SET paid_installments = paid_installments \+ \$2`).
			WithArgs(int32(1), int32(1)).
			WillReturnRows(addLoanRow(sqlmock.NewRows(loanRows), 11))
		mock.ExpectQuery("INSERT INTO entries").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		loan, err := repo.PayInstallment(ctx, 1, 1, entry)
		assert.Error(t, err)
		assert.Nil(t, loan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
