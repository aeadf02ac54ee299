package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
)

// Labels for expense entries whose category has been deleted. They stay a
// visible bucket in the breakdown instead of failing the summary.
const (
	unknownCategoryNameTr = "Bilinmeyen kategori"
	unknownCategoryNameEn = "Unknown category"
)

var oneHundred = decimal.NewFromInt(100)

type summaryService struct {
	entryRepo    repository.EntryRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	cardRepo     repository.CardRepository
}

func NewSummaryService(
	entryRepo repository.EntryRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	cardRepo repository.CardRepository,
) SummaryService {
	return &summaryService{
		entryRepo:    entryRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		cardRepo:     cardRepo,
	}
}

// monthWindow returns [first day of month 00:00, first day of next month).
func monthWindow(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, domain.Errorf(domain.KindValidation, "month must be between 1 and 12, got %d", month)
	}
	if year < 1 {
		return time.Time{}, time.Time{}, domain.Errorf(domain.KindValidation, "year must be positive, got %d", year)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 1, 0), nil
}

func (s *summaryService) GetHomeSummary(ctx context.Context, homeID int32, month, year int) (*domain.HomeSummary, error) {
	logger.EnterMethod("summaryService.GetHomeSummary", "homeID", homeID, "month", month, "year", year)

	from, to, err := monthWindow(month, year)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListForPeriod(ctx, homeID, from, to)
	if err != nil {
		logger.ExitMethodWithError("summaryService.GetHomeSummary", err, "homeID", homeID)
		return nil, err
	}

	categories, err := s.categoryRepo.ListByHome(ctx, homeID, nil)
	if err != nil {
		logger.ExitMethodWithError("summaryService.GetHomeSummary", err, "homeID", homeID)
		return nil, err
	}
	byID := make(map[int32]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	summary := &domain.HomeSummary{HomeID: homeID, Month: month, Year: year}
	categoryTotals := make(map[int32]*domain.CategoryTotal)

	for _, e := range entries {
		switch e.Kind {
		case domain.EntryKindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(e.Amount)
		case domain.EntryKindExpense:
			summary.TotalExpense = summary.TotalExpense.Add(e.Amount)

			// Entries whose category was deleted land in the unknown bucket.
			var cat domain.CategoryTotal
			if e.CategoryID != nil {
				if known, ok := byID[*e.CategoryID]; ok {
					cat = domain.CategoryTotal{CategoryID: known.ID, NameTr: known.NameTr, NameEn: known.NameEn, Icon: known.Icon, Color: known.Color}
				} else {
					cat = domain.CategoryTotal{NameTr: unknownCategoryNameTr, NameEn: unknownCategoryNameEn}
				}
			} else {
				cat = domain.CategoryTotal{NameTr: unknownCategoryNameTr, NameEn: unknownCategoryNameEn}
			}

			bucket, ok := categoryTotals[cat.CategoryID]
			if !ok {
				bucket = &cat
				categoryTotals[cat.CategoryID] = bucket
			}
			bucket.Total = bucket.Total.Add(e.Amount)
		}
		// Transfers are peer-to-peer movements and never count toward totals.
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)

	summary.ByCategory = make([]domain.CategoryTotal, 0, len(categoryTotals))
	for _, bucket := range categoryTotals {
		if summary.TotalExpense.IsPositive() {
			bucket.Percentage = bucket.Total.Mul(oneHundred).Div(summary.TotalExpense).Round(2)
		}
		summary.ByCategory = append(summary.ByCategory, *bucket)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
	})

	logger.ExitMethod("summaryService.GetHomeSummary", "homeID", homeID,
		"totalIncome", summary.TotalIncome, "totalExpense", summary.TotalExpense, "categories", len(summary.ByCategory))
	return summary, nil
}

func (s *summaryService) GetUserSummary(ctx context.Context, userID, homeID int32, month, year int) (*domain.UserSummary, error) {
	logger.EnterMethod("summaryService.GetUserSummary", "userID", userID, "homeID", homeID, "month", month, "year", year)

	if _, err := s.userRepo.GetMember(ctx, userID, homeID); err != nil {
		logger.ExitMethodWithError("summaryService.GetUserSummary", err, "userID", userID, "homeID", homeID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindNotFound, "user %d is not a member of home %d", userID, homeID)
		}
		return nil, err
	}

	entries, memberCount, cardOwners, err := s.loadPeriod(ctx, homeID, month, year)
	if err != nil {
		logger.ExitMethodWithError("summaryService.GetUserSummary", err, "homeID", homeID)
		return nil, err
	}

	summary := buildUserSummary(userID, entries, memberCount, cardOwners)

	logger.ExitMethod("summaryService.GetUserSummary", "userID", userID,
		"totalExpense", summary.TotalExpense, "sharedExpenseShare", summary.SharedExpenseShare)
	return &summary, nil
}

func (s *summaryService) GetAllUserSummaries(ctx context.Context, homeID int32, month, year int) ([]domain.MemberSummary, error) {
	logger.EnterMethod("summaryService.GetAllUserSummaries", "homeID", homeID, "month", month, "year", year)

	users, _, err := s.userRepo.ListMembersByHome(ctx, homeID)
	if err != nil {
		logger.ExitMethodWithError("summaryService.GetAllUserSummaries", err, "homeID", homeID)
		return nil, err
	}

	entries, memberCount, cardOwners, err := s.loadPeriod(ctx, homeID, month, year)
	if err != nil {
		logger.ExitMethodWithError("summaryService.GetAllUserSummaries", err, "homeID", homeID)
		return nil, err
	}

	summaries := make([]domain.MemberSummary, 0, len(users))
	for _, u := range users {
		ms := domain.MemberSummary{
			Member:  u,
			Summary: buildUserSummary(u.ID, entries, memberCount, cardOwners),
		}
		// Attribution for display: the shared expenses this member entered.
		// A different quantity from the home-wide shared total behind the
		// equal share above.
		own := decimal.Zero
		for _, e := range entries {
			if e.Kind == domain.EntryKindExpense && e.IsShared && e.CreatedByID == u.ID {
				own = own.Add(e.Amount)
			}
		}
		ms.TotalSharedExpense = own.Round(2)
		summaries = append(summaries, ms)
	}

	logger.ExitMethod("summaryService.GetAllUserSummaries", "homeID", homeID, "members", len(summaries))
	return summaries, nil
}

// loadPeriod gathers everything the per-user math needs in one query each:
// the month's entries, the member count, and card ownership.
func (s *summaryService) loadPeriod(ctx context.Context, homeID int32, month, year int) ([]domain.LedgerEntry, int, map[int32]int32, error) {
	from, to, err := monthWindow(month, year)
	if err != nil {
		return nil, 0, nil, err
	}

	entries, err := s.entryRepo.ListForPeriod(ctx, homeID, from, to)
	if err != nil {
		return nil, 0, nil, err
	}

	_, members, err := s.userRepo.ListMembersByHome(ctx, homeID)
	if err != nil {
		return nil, 0, nil, err
	}

	cards, err := s.cardRepo.ListByHome(ctx, homeID)
	if err != nil {
		return nil, 0, nil, err
	}
	cardOwners := make(map[int32]int32, len(cards))
	for _, c := range cards {
		cardOwners[c.ID] = c.OwnerUserID
	}

	return entries, len(members), cardOwners, nil
}

// buildUserSummary computes one member's monthly figures. The shared share is
// the home-wide shared total split equally across members regardless of who
// created the entries; card debt follows card ownership regardless of who
// entered the expense. Division happens on the raw sum and rounding only on
// the final fields.
func buildUserSummary(userID int32, entries []domain.LedgerEntry, memberCount int, cardOwners map[int32]int32) domain.UserSummary {
	var income, personal, sharedTotal, cardDebt decimal.Decimal

	for _, e := range entries {
		switch e.Kind {
		case domain.EntryKindIncome:
			if e.CreatedByID == userID {
				income = income.Add(e.Amount)
			}
		case domain.EntryKindExpense:
			if e.IsShared {
				sharedTotal = sharedTotal.Add(e.Amount)
			} else if e.CreatedByID == userID {
				personal = personal.Add(e.Amount)
			}
			if e.CardID != nil {
				if owner, ok := cardOwners[*e.CardID]; ok && owner == userID {
					cardDebt = cardDebt.Add(e.Amount)
				}
			}
		}
	}

	// A home always has at least its creator; guard anyway.
	if memberCount <= 0 {
		memberCount = 1
	}
	share := sharedTotal.Div(decimal.NewFromInt(int64(memberCount)))

	totalExpense := personal.Add(share)
	return domain.UserSummary{
		UserID:             userID,
		TotalIncome:        income.Round(2),
		TotalExpense:       totalExpense.Round(2),
		PersonalExpense:    personal.Round(2),
		SharedExpenseShare: share.Round(2),
		CreditCardDebt:     cardDebt.Round(2),
		Balance:            income.Sub(totalExpense).Round(2),
	}
}
