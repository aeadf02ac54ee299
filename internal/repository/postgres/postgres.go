package postgres

import (
	"database/sql"

	"spendly-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.HomeRepository
	repository.EntryRepository
	repository.CategoryRepository
	repository.LoanRepository
	repository.CardRepository
	repository.NotificationRepository
	repository.InvitationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		HomeRepository:         NewHomeRepository(db),
		EntryRepository:        NewEntryRepository(db),
		CategoryRepository:     NewCategoryRepository(db),
		LoanRepository:         NewLoanRepository(db),
		CardRepository:         NewCardRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
	}
}
