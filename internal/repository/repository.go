package repository

import (
	"context"
	"time"

	"spendly-backend/internal/domain"
)

// EntryFilter is the typed query filter for ledger entries. Optional fields
// are pointers; the storage adapter translates the set fields into its own
// query language. ViewerID scopes transfer rows to their two participants so
// pagination totals stay correct.
type EntryFilter struct {
	HomeID      int32
	ViewerID    int32
	Kind        *domain.EntryKind
	CategoryID  *int32
	CreatedByID *int32
	Month       *int
	Year        *int
	Page        int32
	Limit       int32
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// Home membership
	AddMember(ctx context.Context, member *domain.HomeMember) error
	GetMember(ctx context.Context, userID, homeID int32) (*domain.HomeMember, error)
	GetMembership(ctx context.Context, userID int32) (*domain.HomeMember, error)
	UpdateMember(ctx context.Context, member *domain.HomeMember) error
	ListMembersByHome(ctx context.Context, homeID int32) ([]domain.User, []domain.HomeMember, error)
}

type HomeRepository interface {
	// CreateWithOwner atomically creates the home, seeds its default
	// categories, and adds the creator as owner.
	CreateWithOwner(ctx context.Context, home *domain.Home, ownerID int32, seed []domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Home, error)
	Update(ctx context.Context, home *domain.Home) error
}

type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id int32) (*domain.LedgerEntry, error)
	Update(ctx context.Context, entry *domain.LedgerEntry) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter EntryFilter) ([]domain.LedgerEntry, int32, error)
	// ListForPeriod returns every entry of a home in [from, to), unpaged,
	// for aggregation.
	ListForPeriod(ctx context.Context, homeID int32, from, to time.Time) ([]domain.LedgerEntry, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int32) error
	// ListByHome returns the home's categories plus the global defaults.
	ListByHome(ctx context.Context, homeID int32, kind *domain.CategoryKind) ([]domain.Category, error)
	// FindOrCreate resolves a per-home category by Turkish name, creating it
	// when absent. Never duplicates under concurrent callers.
	FindOrCreate(ctx context.Context, category *domain.Category) error
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	Delete(ctx context.Context, id int32) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error)
	// PayInstallment advances the paid counter by count and records the
	// synthesized expense entry in one transaction. Returns the updated loan,
	// or a guard failure when count exceeds the remaining installments.
	PayInstallment(ctx context.Context, loanID, count int32, entry *domain.LedgerEntry) (*domain.Loan, error)
}

type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id int32) (*domain.Card, error)
	Delete(ctx context.Context, id int32) error
	ListByHome(ctx context.Context, homeID int32) ([]domain.Card, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type InvitationRepository interface {
	Create(ctx context.Context, invite *domain.Invitation) error
	GetByCode(ctx context.Context, code string) (*domain.Invitation, error)
	Update(ctx context.Context, invite *domain.Invitation) error
}
