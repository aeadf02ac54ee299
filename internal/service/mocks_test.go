package service_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) AddMember(ctx context.Context, member *domain.HomeMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockUserRepo) GetMember(ctx context.Context, userID, homeID int32) (*domain.HomeMember, error) {
	args := m.Called(ctx, userID, homeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HomeMember), args.Error(1)
}

func (m *MockUserRepo) GetMembership(ctx context.Context, userID int32) (*domain.HomeMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HomeMember), args.Error(1)
}

func (m *MockUserRepo) UpdateMember(ctx context.Context, member *domain.HomeMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockUserRepo) ListMembersByHome(ctx context.Context, homeID int32) ([]domain.User, []domain.HomeMember, error) {
	args := m.Called(ctx, homeID)
	var users []domain.User
	var members []domain.HomeMember
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	if args.Get(1) != nil {
		members = args.Get(1).([]domain.HomeMember)
	}
	return users, members, args.Error(2)
}

type MockHomeRepo struct{ mock.Mock }

func (m *MockHomeRepo) CreateWithOwner(ctx context.Context, home *domain.Home, ownerID int32, seed []domain.Category) error {
	return m.Called(ctx, home, ownerID, seed).Error(0)
}

func (m *MockHomeRepo) GetByID(ctx context.Context, id int32) (*domain.Home, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Home), args.Error(1)
}

func (m *MockHomeRepo) Update(ctx context.Context, home *domain.Home) error {
	return m.Called(ctx, home).Error(0)
}

type MockEntryRepo struct{ mock.Mock }

func (m *MockEntryRepo) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepo) GetByID(ctx context.Context, id int32) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepo) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEntryRepo) List(ctx context.Context, filter repository.EntryFilter) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, filter)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Get(1).(int32), args.Error(2)
}

func (m *MockEntryRepo) ListForPeriod(ctx context.Context, homeID int32, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, homeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

type MockCategoryRepo struct{ mock.Mock }

func (m *MockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepo) ListByHome(ctx context.Context, homeID int32, kind *domain.CategoryKind) ([]domain.Category, error) {
	args := m.Called(ctx, homeID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepo) FindOrCreate(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

type MockLoanRepo struct{ mock.Mock }

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLoanRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) PayInstallment(ctx context.Context, loanID, count int32, entry *domain.LedgerEntry) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, count, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

type MockCardRepo struct{ mock.Mock }

func (m *MockCardRepo) Create(ctx context.Context, card *domain.Card) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockCardRepo) GetByID(ctx context.Context, id int32) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCardRepo) ListByHome(ctx context.Context, homeID int32) ([]domain.Card, error) {
	args := m.Called(ctx, homeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

type MockInviteRepo struct{ mock.Mock }

func (m *MockInviteRepo) Create(ctx context.Context, invite *domain.Invitation) error {
	return m.Called(ctx, invite).Error(0)
}

func (m *MockInviteRepo) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInviteRepo) Update(ctx context.Context, invite *domain.Invitation) error {
	return m.Called(ctx, invite).Error(0)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	var notes []domain.Notification
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Notification)
	}
	return notes, args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendInvitation(ctx context.Context, email, inviterName, homeName, code string) error {
	return m.Called(ctx, email, inviterName, homeName, code).Error(0)
}

func (m *MockEmailService) SendLoanReminder(ctx context.Context, email, name, loanName string, amount decimal.Decimal, dueDate string) error {
	return m.Called(ctx, email, name, loanName, amount, dueDate).Error(0)
}

type MockTranslator struct{ mock.Mock }

func (m *MockTranslator) Translate(ctx context.Context, text string, from, to domain.Lang) (string, error) {
	args := m.Called(ctx, text, from, to)
	return args.String(0), args.Error(1)
}
