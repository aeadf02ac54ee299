package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                      // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, error)
}

type HomeService interface {
	CreateHome(ctx context.Context, userID int32, name, currency string) (*domain.Home, error)
	GetHome(ctx context.Context, homeID int32) (*domain.Home, error)
	ListMembers(ctx context.Context, homeID int32) ([]domain.User, []domain.HomeMember, error)
	GetMembership(ctx context.Context, userID int32) (*domain.HomeMember, error)
	InviteMember(ctx context.Context, inviterID, homeID int32, email string) (*domain.Invitation, error)
	AcceptInvitation(ctx context.Context, userID int32, code string) (*domain.HomeMember, error)

	AddCard(ctx context.Context, homeID, ownerUserID int32, name, last4 string) (*domain.Card, error)
	ListCards(ctx context.Context, homeID int32) ([]domain.Card, error)
	RemoveCard(ctx context.Context, homeID, cardID int32) error
}

type EntryService interface {
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error
	UpdateEntry(ctx context.Context, userID int32, entry *domain.LedgerEntry) error
	DeleteEntry(ctx context.Context, userID, entryID int32) error
	ListEntries(ctx context.Context, filter repository.EntryFilter) ([]domain.EntryView, domain.Page, error)
	CreateTransfer(ctx context.Context, homeID, fromUserID, toUserID int32, amount decimal.Decimal, date time.Time, title string) (*domain.LedgerEntry, error)
}

type SummaryService interface {
	GetHomeSummary(ctx context.Context, homeID int32, month, year int) (*domain.HomeSummary, error)
	GetUserSummary(ctx context.Context, userID, homeID int32, month, year int) (*domain.UserSummary, error)
	GetAllUserSummaries(ctx context.Context, homeID int32, month, year int) ([]domain.MemberSummary, error)
}

// LoanUpdate carries the editable loan fields. PaidInstallments is a pointer
// so an edit that omits it keeps the stored payment counter; an explicit
// value may also lower the counter, reopening a completed loan.
type LoanUpdate struct {
	Name              string
	PrincipalAmount   decimal.Decimal
	TotalAmount       decimal.Decimal
	MonthlyPayment    decimal.Decimal
	TotalInstallments int32
	PaidInstallments  *int32
	StartDate         time.Time
	InterestRate      *decimal.Decimal
	Notes             string
}

type LoanService interface {
	CreateLoan(ctx context.Context, loan *domain.Loan) (*domain.LoanView, error)
	GetLoan(ctx context.Context, userID, loanID int32) (*domain.LoanView, error)
	UpdateLoan(ctx context.Context, userID, loanID int32, upd LoanUpdate) (*domain.LoanView, error)
	DeleteLoan(ctx context.Context, userID, loanID int32) error
	ListLoans(ctx context.Context, userID int32) ([]domain.LoanView, error)
	PayInstallment(ctx context.Context, userID, loanID, count int32) (*domain.LoanView, *domain.LedgerEntry, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, homeID int32, name string, lang domain.Lang, kind domain.CategoryKind, icon, color string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, homeID, categoryID int32, name string, lang domain.Lang, icon, color string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, homeID, categoryID int32) error
	ListCategories(ctx context.Context, homeID int32, kind *domain.CategoryKind) ([]domain.Category, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendInvitation(ctx context.Context, email, inviterName, homeName, code string) error
	SendLoanReminder(ctx context.Context, email, name, loanName string, amount decimal.Decimal, dueDate string) error
}

// Translator turns a category name from one supported language into the
// other. Implementations must be safe for concurrent use; callers treat any
// error as "keep the original text".
type Translator interface {
	Translate(ctx context.Context, text string, from, to domain.Lang) (string, error)
}
