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
	"spendly-backend/internal/repository"
	"spendly-backend/internal/repository/postgres"
)

var entryRows = []string{"id", "home_id", "created_by_id", "kind", "amount", "occurred_at", "title",
	"category_id", "card_id", "is_shared", "is_recurring", "from_user_id", "to_user_id", "created_on"}

func addEntryRow(rows *sqlmock.Rows, id int32, kind string, amount string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, 7, 1, kind, amount, now, "", nil, nil, false, false, nil, nil, now)
}

func TestEntryRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEntryRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		entry := &domain.LedgerEntry{
			HomeID:      7,
			CreatedByID: 1,
			Kind:        domain.EntryKindExpense,
			Amount:      decimal.NewFromInt(100),
			OccurredAt:  time.Now(),
			Title:       "Market",
		}

		mock.ExpectQuery("INSERT INTO entries").
			WithArgs(entry.HomeID, entry.CreatedByID, entry.Kind, entry.Amount, entry.OccurredAt, entry.Title,
				entry.CategoryID, entry.CardID, entry.IsShared, entry.IsRecurring,
				entry.FromUserID, entry.ToUserID, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, entry)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), entry.ID)
	})
}

func TestEntryRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEntryRepository(db)
	ctx := context.Background()

	t.Run("Success_ViewerScopesTransfers", func(t *testing.T) {
		// Goal: with a viewer set, both the count and the page carry the
		// participant clause, so pagination totals match what is shown.
		filter := repository.EntryFilter{HomeID: 7, ViewerID: 2, Page: 1, Limit: 20}

		mock.ExpectQuery(`SELECT count\(\*\) FROM entries WHERE home_id = \$1 AND \(kind <> 'TRANSFER' OR from_user_id = \$2 OR to_user_id = \$2\)`).
			WithArgs(int32(7), int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(entryRows)
		addEntryRow(rows, 1, "EXPENSE", "100")
		addEntryRow(rows, 2, "TRANSFER", "50")
		mock.ExpectQuery(`SELECT (.+) FROM entries WHERE home_id = \$1 AND \(kind <> 'TRANSFER' OR from_user_id = \$2 OR to_user_id = \$2\) ORDER BY occurred_at DESC, id DESC LIMIT \$3 OFFSET \$4`).
			WithArgs(int32(7), int32(2), int32(20), int32(0)).
			WillReturnRows(rows)

		entries, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), total)
		assert.Len(t, entries, 2)
	})

	t.Run("Success_MonthWindow", func(t *testing.T) {
		month, year := 3, 2025
		kind := domain.EntryKindExpense
		filter := repository.EntryFilter{
			HomeID: 7, ViewerID: 1, Kind: &kind, Month: &month, Year: &year, Page: 2, Limit: 10,
		}

		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
		mock.ExpectQuery(`SELECT count\(\*\) FROM entries`).
			WithArgs(int32(7), int32(1), kind, from, from.AddDate(0, 1, 0)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM entries`).
			WithArgs(int32(7), int32(1), kind, from, from.AddDate(0, 1, 0), int32(10), int32(10)).
			WillReturnRows(sqlmock.NewRows(entryRows))

		entries, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), total)
		assert.Empty(t, entries)
	})
}

func TestEntryRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEntryRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM entries").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("Error_Missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM entries").
			WithArgs(int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 99), sql.ErrNoRows)
	})
}
