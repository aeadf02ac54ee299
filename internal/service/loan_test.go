package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/service"
)

func newLoanFixture() (*MockLoanRepo, *MockUserRepo, *MockCategoryRepo, service.LoanService) {
	loanRepo := new(MockLoanRepo)
	userRepo := new(MockUserRepo)
	categoryRepo := new(MockCategoryRepo)
	svc := service.NewLoanService(loanRepo, userRepo, categoryRepo)
	return loanRepo, userRepo, categoryRepo, svc
}

func sampleLoan() *domain.Loan {
	return &domain.Loan{
		ID:                1,
		UserID:            1,
		Name:              "Araba Kredisi",
		PrincipalAmount:   dec("100000"),
		TotalAmount:       dec("120000"),
		MonthlyPayment:    dec("10000"),
		TotalInstallments: 12,
		PaidInstallments:  10,
		StartDate:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoanService_CreateLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loanRepo, _, _, svc := newLoanFixture()
		loan := sampleLoan()
		loan.ID = 0
		loan.PaidInstallments = 0
		loanRepo.On("Create", ctx, loan).Return(nil).Once()

		view, err := svc.CreateLoan(ctx, loan)
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusActive, view.Status)
		assert.Equal(t, int32(12), view.RemainingInstallments)
		loanRepo.AssertExpectations(t)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		_, _, _, svc := newLoanFixture()

		loan := sampleLoan()
		loan.Name = ""
		_, err := svc.CreateLoan(ctx, loan)
		assert.True(t, domain.IsValidation(err))

		loan = sampleLoan()
		loan.TotalInstallments = 0
		_, err = svc.CreateLoan(ctx, loan)
		assert.True(t, domain.IsValidation(err))

		loan = sampleLoan()
		loan.MonthlyPayment = dec("-1")
		_, err = svc.CreateLoan(ctx, loan)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestLoanService_GetLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_OtherUsersLoanHidden", func(t *testing.T) {
		loanRepo, _, _, svc := newLoanFixture()
		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()

		_, err := svc.GetLoan(ctx, 2, 1)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Success_DerivedFields", func(t *testing.T) {
		loanRepo, _, _, svc := newLoanFixture()
		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()

		view, err := svc.GetLoan(ctx, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), view.RemainingInstallments)
		assert.True(t, view.RemainingAmount.Equal(dec("20000")))
		assert.Equal(t, int32(83), view.ProgressPercentage)
	})
}

func TestLoanService_UpdateLoan(t *testing.T) {
	ctx := context.Background()

	sampleUpdate := func() service.LoanUpdate {
		return service.LoanUpdate{
			Name:              "Araba Kredisi",
			PrincipalAmount:   dec("100000"),
			TotalAmount:       dec("120000"),
			MonthlyPayment:    dec("10000"),
			TotalInstallments: 12,
			StartDate:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Success_RenameKeepsPaidCounter", func(t *testing.T) {
		// Goal: an edit that omits the counter leaves payment progress intact.
		loanRepo, _, _, svc := newLoanFixture()
		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()
		loanRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
			return l.Name == "Taşıt Kredisi" && l.PaidInstallments == 10 && l.UserID == 1
		})).Return(nil).Once()

		upd := sampleUpdate()
		upd.Name = "Taşıt Kredisi"
		view, err := svc.UpdateLoan(ctx, 1, 1, upd)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), view.PaidInstallments)
		assert.Equal(t, int32(2), view.RemainingInstallments)
		assert.Equal(t, domain.LoanStatusActive, view.Status)
		loanRepo.AssertExpectations(t)
	})

	t.Run("Success_LoweringCounterReopensCompletedLoan", func(t *testing.T) {
		loanRepo, _, _, svc := newLoanFixture()
		complete := sampleLoan()
		complete.PaidInstallments = 12
		loanRepo.On("GetByID", ctx, int32(1)).Return(complete, nil).Once()
		loanRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
			return l.PaidInstallments == 11
		})).Return(nil).Once()

		upd := sampleUpdate()
		upd.PaidInstallments = i32ptr(11)
		view, err := svc.UpdateLoan(ctx, 1, 1, upd)
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusActive, view.Status)
		assert.NotNil(t, view.NextPaymentDate)
		loanRepo.AssertExpectations(t)
	})

	t.Run("Error_CounterAboveTotal", func(t *testing.T) {
		loanRepo, _, _, svc := newLoanFixture()
		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()

		upd := sampleUpdate()
		upd.PaidInstallments = i32ptr(13)
		_, err := svc.UpdateLoan(ctx, 1, 1, upd)
		assert.True(t, domain.IsValidation(err))
		loanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_OtherUsersLoanHidden", func(t *testing.T) {
		loanRepo, _, _, svc := newLoanFixture()
		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()

		_, err := svc.UpdateLoan(ctx, 2, 1, sampleUpdate())
		assert.True(t, domain.IsNotFound(err))
		loanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestLoanService_PayInstallment(t *testing.T) {
	ctx := context.Background()
	membership := &domain.HomeMember{UserID: 1, HomeID: 7}

	t.Run("Success_EntryAndCounterTogether", func(t *testing.T) {
		loanRepo, userRepo, categoryRepo, svc := newLoanFixture()

		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()
		userRepo.On("GetMembership", ctx, int32(1)).Return(membership, nil).Once()
		categoryRepo.On("FindOrCreate", ctx, mock.MatchedBy(func(c *domain.Category) bool {
			return c.NameTr == "Kredi Ödemesi" && c.Kind == domain.CategoryKindExpense && c.IsDefault
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Category).ID = 42
		}).Return(nil).Once()

		paid := sampleLoan()
		paid.PaidInstallments = 11
		loanRepo.On("PayInstallment", ctx, int32(1), int32(1), mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Kind == domain.EntryKindExpense &&
				e.Amount.Equal(dec("10000")) &&
				e.Title == "Araba Kredisi - Installment 11" &&
				*e.CategoryID == 42 && e.HomeID == 7
		})).Return(paid, nil).Once()

		view, entry, err := svc.PayInstallment(ctx, 1, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), view.PaidInstallments)
		assert.Equal(t, domain.LoanStatusActive, view.Status)
		assert.NotNil(t, entry)
		loanRepo.AssertExpectations(t)
	})

	t.Run("Success_FinalPaymentCompletesLoan", func(t *testing.T) {
		loanRepo, userRepo, categoryRepo, svc := newLoanFixture()

		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()
		userRepo.On("GetMembership", ctx, int32(1)).Return(membership, nil).Once()
		categoryRepo.On("FindOrCreate", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Category).ID = 42
		}).Return(nil).Once()

		paid := sampleLoan()
		paid.PaidInstallments = 12
		loanRepo.On("PayInstallment", ctx, int32(1), int32(2), mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Amount.Equal(dec("20000")) && e.Title == "Araba Kredisi - Installment 11-12"
		})).Return(paid, nil).Once()

		view, _, err := svc.PayInstallment(ctx, 1, 1, 2)
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusComplete, view.Status)
		assert.Nil(t, view.NextPaymentDate)
	})

	t.Run("Error_OverpaymentRejectedUnchanged", func(t *testing.T) {
		// Goal: paying 3 installments with 2 remaining fails without
		// touching the loan or writing an entry.
		loanRepo, _, _, svc := newLoanFixture()
		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()

		_, _, err := svc.PayInstallment(ctx, 1, 1, 3)
		assert.True(t, domain.IsValidation(err))
		loanRepo.AssertNotCalled(t, "PayInstallment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_ConcurrentGuardLoss", func(t *testing.T) {
		// Goal: when the guarded update matches no row, the caller gets a
		// validation error rather than a broken half-applied state.
		loanRepo, userRepo, categoryRepo, svc := newLoanFixture()

		loanRepo.On("GetByID", ctx, int32(1)).Return(sampleLoan(), nil).Once()
		userRepo.On("GetMembership", ctx, int32(1)).Return(membership, nil).Once()
		categoryRepo.On("FindOrCreate", ctx, mock.Anything).Return(nil).Once()
		loanRepo.On("PayInstallment", ctx, int32(1), int32(1), mock.Anything).Return(nil, sql.ErrNoRows).Once()

		_, _, err := svc.PayInstallment(ctx, 1, 1, 1)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Error_ZeroCount", func(t *testing.T) {
		_, _, _, svc := newLoanFixture()
		_, _, err := svc.PayInstallment(ctx, 1, 1, 0)
		assert.True(t, domain.IsValidation(err))
	})
}
