package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
)

type entryService struct {
	entryRepo    repository.EntryRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	cardRepo     repository.CardRepository
}

func NewEntryService(
	entryRepo repository.EntryRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	cardRepo repository.CardRepository,
) EntryService {
	return &entryService{
		entryRepo:    entryRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		cardRepo:     cardRepo,
	}
}

func (s *entryService) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	logger.EnterMethod("entryService.CreateEntry", "homeID", entry.HomeID, "kind", entry.Kind, "amount", entry.Amount)

	if entry.Kind == domain.EntryKindTransfer {
		return domain.Errorf(domain.KindValidation, "transfers are created through the transfer operation")
	}
	if entry.Kind != domain.EntryKindIncome && entry.Kind != domain.EntryKindExpense {
		return domain.Errorf(domain.KindValidation, "unknown entry kind %q", entry.Kind)
	}
	if err := s.validateEntry(ctx, entry); err != nil {
		logger.ExitMethodWithError("entryService.CreateEntry", err, "homeID", entry.HomeID)
		return err
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		logger.ExitMethodWithError("entryService.CreateEntry", err, "homeID", entry.HomeID)
		return err
	}

	logger.ExitMethod("entryService.CreateEntry", "entryID", entry.ID)
	return nil
}

// validateEntry checks the rules shared by create and update: a positive
// amount, a category of the right kind from the same home, and a card from
// the same home on expenses only.
func (s *entryService) validateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if !entry.Amount.IsPositive() {
		return domain.Errorf(domain.KindValidation, "amount must be positive, got %s", entry.Amount)
	}
	if entry.OccurredAt.IsZero() {
		return domain.Errorf(domain.KindValidation, "entry date is required")
	}

	if entry.CategoryID == nil {
		return domain.Errorf(domain.KindValidation, "category is required for %s entries", entry.Kind)
	}
	category, err := s.categoryRepo.GetByID(ctx, *entry.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Errorf(domain.KindNotFound, "category %d does not exist", *entry.CategoryID)
		}
		return err
	}
	if category.HomeID != nil && *category.HomeID != entry.HomeID {
		return domain.Errorf(domain.KindNotFound, "category %d does not belong to home %d", category.ID, entry.HomeID)
	}
	if !category.Matches(entry.Kind) {
		return domain.Errorf(domain.KindValidation, "category %q does not accept %s entries", category.NameEn, entry.Kind)
	}

	if entry.Kind == domain.EntryKindIncome {
		if entry.CardID != nil {
			return domain.Errorf(domain.KindValidation, "card assignment is only valid on expenses")
		}
		if entry.IsShared {
			return domain.Errorf(domain.KindValidation, "only expenses can be shared")
		}
		return nil
	}

	if entry.CardID != nil {
		card, err := s.cardRepo.GetByID(ctx, *entry.CardID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Errorf(domain.KindNotFound, "card %d does not exist", *entry.CardID)
			}
			return err
		}
		if card.HomeID != entry.HomeID {
			return domain.Errorf(domain.KindNotFound, "card %d does not belong to home %d", card.ID, entry.HomeID)
		}
	}
	return nil
}

func (s *entryService) UpdateEntry(ctx context.Context, userID int32, entry *domain.LedgerEntry) error {
	logger.EnterMethod("entryService.UpdateEntry", "userID", userID, "entryID", entry.ID)

	existing, err := s.entryRepo.GetByID(ctx, entry.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Errorf(domain.KindNotFound, "entry %d does not exist", entry.ID)
		}
		return err
	}
	if existing.CreatedByID != userID {
		return domain.Errorf(domain.KindNotFound, "entry %d does not exist", entry.ID)
	}

	// Kind and the transfer participant pair are immutable.
	entry.HomeID = existing.HomeID
	entry.CreatedByID = existing.CreatedByID
	entry.Kind = existing.Kind
	entry.FromUserID = existing.FromUserID
	entry.ToUserID = existing.ToUserID

	if entry.Kind == domain.EntryKindTransfer {
		if !entry.Amount.IsPositive() {
			return domain.Errorf(domain.KindValidation, "amount must be positive, got %s", entry.Amount)
		}
		entry.CategoryID = nil
		entry.CardID = nil
		entry.IsShared = false
	} else if err := s.validateEntry(ctx, entry); err != nil {
		logger.ExitMethodWithError("entryService.UpdateEntry", err, "entryID", entry.ID)
		return err
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		logger.ExitMethodWithError("entryService.UpdateEntry", err, "entryID", entry.ID)
		return err
	}

	logger.ExitMethod("entryService.UpdateEntry", "entryID", entry.ID)
	return nil
}

func (s *entryService) DeleteEntry(ctx context.Context, userID, entryID int32) error {
	logger.EnterMethod("entryService.DeleteEntry", "userID", userID, "entryID", entryID)

	existing, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Errorf(domain.KindNotFound, "entry %d does not exist", entryID)
		}
		return err
	}
	if existing.CreatedByID != userID {
		return domain.Errorf(domain.KindNotFound, "entry %d does not exist", entryID)
	}

	if err := s.entryRepo.Delete(ctx, entryID); err != nil {
		logger.ExitMethodWithError("entryService.DeleteEntry", err, "entryID", entryID)
		return err
	}

	logger.ExitMethod("entryService.DeleteEntry", "entryID", entryID)
	return nil
}

// ListEntries returns one page of entries as seen by filter.ViewerID.
// Transfer rows the viewer does not participate in are excluded by the store
// query itself, so totals and page boundaries stay correct; the rows that
// remain are resolved into the viewer's perspective here.
func (s *entryService) ListEntries(ctx context.Context, filter repository.EntryFilter) ([]domain.EntryView, domain.Page, error) {
	logger.EnterMethod("entryService.ListEntries", "homeID", filter.HomeID, "viewerID", filter.ViewerID, "page", filter.Page)

	if filter.ViewerID == 0 {
		return nil, domain.Page{}, domain.Errorf(domain.KindValidation, "viewer is required to list entries")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	entries, total, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		logger.ExitMethodWithError("entryService.ListEntries", err, "homeID", filter.HomeID)
		return nil, domain.Page{}, err
	}

	names, err := s.memberNames(ctx, filter.HomeID)
	if err != nil {
		logger.ExitMethodWithError("entryService.ListEntries", err, "homeID", filter.HomeID)
		return nil, domain.Page{}, err
	}

	views := make([]domain.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, resolveEntryView(e, filter.ViewerID, names))
	}

	page := domain.NewPage(filter.Page, filter.Limit, total)
	logger.ExitMethod("entryService.ListEntries", "homeID", filter.HomeID, "count", len(views), "total", total)
	return views, page, nil
}

func (s *entryService) memberNames(ctx context.Context, homeID int32) (map[int32]string, error) {
	users, _, err := s.userRepo.ListMembersByHome(ctx, homeID)
	if err != nil {
		return nil, err
	}
	names := make(map[int32]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// resolveEntryView renders a stored entry from one viewer's side. A transfer
// reads as outgoing to its sender and incoming to its receiver; the reserved
// transfer label stands in for a category.
func resolveEntryView(e domain.LedgerEntry, viewerID int32, names map[int32]string) domain.EntryView {
	view := domain.EntryView{LedgerEntry: e}
	if e.Kind != domain.EntryKindTransfer || e.FromUserID == nil || e.ToUserID == nil {
		return view
	}

	if *e.FromUserID == viewerID {
		view.Direction = domain.TransferOutgoing
		view.CounterpartyID = *e.ToUserID
	} else {
		view.Direction = domain.TransferIncoming
		view.CounterpartyID = *e.FromUserID
	}
	view.CounterpartyName = names[view.CounterpartyID]
	view.CategoryLabel = domain.ReservedTransferCategory
	return view
}

func (s *entryService) CreateTransfer(ctx context.Context, homeID, fromUserID, toUserID int32, amount decimal.Decimal, date time.Time, title string) (*domain.LedgerEntry, error) {
	logger.EnterMethod("entryService.CreateTransfer", "homeID", homeID, "fromUserID", fromUserID, "toUserID", toUserID, "amount", amount)

	if !amount.IsPositive() {
		return nil, domain.Errorf(domain.KindValidation, "amount must be positive, got %s", amount)
	}
	if fromUserID == toUserID {
		return nil, domain.Errorf(domain.KindConflict, "cannot transfer to yourself")
	}
	for _, userID := range []int32{fromUserID, toUserID} {
		if _, err := s.userRepo.GetMember(ctx, userID, homeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.Errorf(domain.KindConflict, "user %d is not a member of home %d", userID, homeID)
			}
			return nil, err
		}
	}
	if date.IsZero() {
		date = time.Now()
	}

	// One stored record per transfer; each side's reading is resolved at
	// list time.
	entry := &domain.LedgerEntry{
		HomeID:      homeID,
		CreatedByID: fromUserID,
		Kind:        domain.EntryKindTransfer,
		Amount:      amount,
		OccurredAt:  date,
		Title:       title,
		FromUserID:  &fromUserID,
		ToUserID:    &toUserID,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		logger.ExitMethodWithError("entryService.CreateTransfer", err, "homeID", homeID)
		return nil, err
	}

	logger.ExitMethod("entryService.CreateTransfer", "entryID", entry.ID)
	return entry, nil
}
