package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
)

// Per-home category that receives synthesized installment expenses. Created
// lazily on the first payment and marked default so it cannot be deleted out
// from under the loan history.
const (
	loanCategoryNameTr = "Kredi Ödemesi"
	loanCategoryNameEn = "Loan Payment"
	loanCategoryIcon   = "bank"
	loanCategoryColor  = "#6C5CE7"
)

type loanService struct {
	loanRepo     repository.LoanRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
) LoanService {
	return &loanService{
		loanRepo:     loanRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

func validateLoan(loan *domain.Loan) error {
	if loan.Name == "" {
		return domain.Errorf(domain.KindValidation, "loan name is required")
	}
	if !loan.PrincipalAmount.IsPositive() || !loan.TotalAmount.IsPositive() || !loan.MonthlyPayment.IsPositive() {
		return domain.Errorf(domain.KindValidation, "loan amounts must be positive")
	}
	if loan.TotalInstallments < 1 {
		return domain.Errorf(domain.KindValidation, "a loan needs at least one installment")
	}
	if loan.PaidInstallments < 0 || loan.PaidInstallments > loan.TotalInstallments {
		return domain.Errorf(domain.KindValidation, "paid installments must be between 0 and %d, got %d",
			loan.TotalInstallments, loan.PaidInstallments)
	}
	if loan.StartDate.IsZero() {
		return domain.Errorf(domain.KindValidation, "loan start date is required")
	}
	return nil
}

func (s *loanService) CreateLoan(ctx context.Context, loan *domain.Loan) (*domain.LoanView, error) {
	logger.EnterMethod("loanService.CreateLoan", "userID", loan.UserID, "name", loan.Name)

	if err := validateLoan(loan); err != nil {
		logger.ExitMethodWithError("loanService.CreateLoan", err, "userID", loan.UserID)
		return nil, err
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		logger.ExitMethodWithError("loanService.CreateLoan", err, "userID", loan.UserID)
		return nil, err
	}

	view := domain.DeriveLoanView(*loan)
	logger.ExitMethod("loanService.CreateLoan", "loanID", loan.ID)
	return &view, nil
}

// getOwned loads a loan and hides its existence from anyone but the owner.
func (s *loanService) getOwned(ctx context.Context, userID, loanID int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindNotFound, "loan %d does not exist", loanID)
		}
		return nil, err
	}
	if loan.UserID != userID {
		return nil, domain.Errorf(domain.KindNotFound, "loan %d does not exist", loanID)
	}
	return loan, nil
}

func (s *loanService) GetLoan(ctx context.Context, userID, loanID int32) (*domain.LoanView, error) {
	loan, err := s.getOwned(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	view := domain.DeriveLoanView(*loan)
	return &view, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, userID, loanID int32, upd LoanUpdate) (*domain.LoanView, error) {
	logger.EnterMethod("loanService.UpdateLoan", "userID", userID, "loanID", loanID)

	loan, err := s.getOwned(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	loan.Name = upd.Name
	loan.PrincipalAmount = upd.PrincipalAmount
	loan.TotalAmount = upd.TotalAmount
	loan.MonthlyPayment = upd.MonthlyPayment
	loan.TotalInstallments = upd.TotalInstallments
	if upd.PaidInstallments != nil {
		loan.PaidInstallments = *upd.PaidInstallments
	}
	loan.StartDate = upd.StartDate
	loan.InterestRate = upd.InterestRate
	loan.Notes = upd.Notes

	if err := validateLoan(loan); err != nil {
		logger.ExitMethodWithError("loanService.UpdateLoan", err, "loanID", loanID)
		return nil, err
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		logger.ExitMethodWithError("loanService.UpdateLoan", err, "loanID", loanID)
		return nil, err
	}

	view := domain.DeriveLoanView(*loan)
	logger.ExitMethod("loanService.UpdateLoan", "loanID", loanID, "paidInstallments", loan.PaidInstallments)
	return &view, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, userID, loanID int32) error {
	if _, err := s.getOwned(ctx, userID, loanID); err != nil {
		return err
	}
	return s.loanRepo.Delete(ctx, loanID)
}

func (s *loanService) ListLoans(ctx context.Context, userID int32) ([]domain.LoanView, error) {
	loans, err := s.loanRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.LoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, domain.DeriveLoanView(loan))
	}
	return views, nil
}

// PayInstallment advances the loan and records the matching expense entry.
// The counter update and the entry insert commit together or not at all.
func (s *loanService) PayInstallment(ctx context.Context, userID, loanID, count int32) (*domain.LoanView, *domain.LedgerEntry, error) {
	logger.EnterMethod("loanService.PayInstallment", "userID", userID, "loanID", loanID, "count", count)

	if count < 1 {
		return nil, nil, domain.Errorf(domain.KindValidation, "installment count must be at least 1, got %d", count)
	}

	loan, err := s.getOwned(ctx, userID, loanID)
	if err != nil {
		logger.ExitMethodWithError("loanService.PayInstallment", err, "loanID", loanID)
		return nil, nil, err
	}
	if loan.PaidInstallments+count > loan.TotalInstallments {
		return nil, nil, domain.Errorf(domain.KindValidation,
			"cannot pay %d installments, only %d remaining", count, loan.TotalInstallments-loan.PaidInstallments)
	}

	membership, err := s.userRepo.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.Errorf(domain.KindNotFound, "user %d does not belong to a home", userID)
		}
		return nil, nil, err
	}

	category := &domain.Category{
		HomeID:    &membership.HomeID,
		NameTr:    loanCategoryNameTr,
		NameEn:    loanCategoryNameEn,
		Kind:      domain.CategoryKindExpense,
		Icon:      loanCategoryIcon,
		Color:     loanCategoryColor,
		IsDefault: true,
	}
	if err := s.categoryRepo.FindOrCreate(ctx, category); err != nil {
		logger.ExitMethodWithError("loanService.PayInstallment", err, "loanID", loanID, "step", "loan payment category")
		return nil, nil, err
	}

	first := loan.PaidInstallments + 1
	last := loan.PaidInstallments + count
	title := fmt.Sprintf("%s - Installment %d", loan.Name, first)
	if count > 1 {
		title = fmt.Sprintf("%s - Installment %d-%d", loan.Name, first, last)
	}

	entry := &domain.LedgerEntry{
		HomeID:      membership.HomeID,
		CreatedByID: userID,
		Kind:        domain.EntryKindExpense,
		Amount:      loan.MonthlyPayment.Mul(decimal.NewFromInt32(count)),
		OccurredAt:  time.Now(),
		Title:       title,
		CategoryID:  &category.ID,
	}

	updated, err := s.loanRepo.PayInstallment(ctx, loanID, count, entry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The guard clause lost to a concurrent payment.
			return nil, nil, domain.Errorf(domain.KindValidation,
				"cannot pay %d installments, fewer remain on loan %d", count, loanID)
		}
		logger.ExitMethodWithError("loanService.PayInstallment", err, "loanID", loanID)
		return nil, nil, domain.WrapConsistency("installment payment did not apply", err)
	}

	view := domain.DeriveLoanView(*updated)
	logger.ExitMethod("loanService.PayInstallment", "loanID", loanID,
		"paidInstallments", updated.PaidInstallments, "entryID", entry.ID)
	return &view, entry, nil
}
