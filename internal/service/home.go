package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
)

const invitationTTL = 7 * 24 * time.Hour

type homeService struct {
	homeRepo   repository.HomeRepository
	userRepo   repository.UserRepository
	cardRepo   repository.CardRepository
	inviteRepo repository.InvitationRepository
	noteRepo   repository.NotificationRepository
	email      EmailService
	seed       []domain.Category
}

func NewHomeService(
	homeRepo repository.HomeRepository,
	userRepo repository.UserRepository,
	cardRepo repository.CardRepository,
	inviteRepo repository.InvitationRepository,
	noteRepo repository.NotificationRepository,
	email EmailService,
	seed []domain.Category,
) HomeService {
	return &homeService{
		homeRepo:   homeRepo,
		userRepo:   userRepo,
		cardRepo:   cardRepo,
		inviteRepo: inviteRepo,
		noteRepo:   noteRepo,
		email:      email,
		seed:       seed,
	}
}

func (s *homeService) CreateHome(ctx context.Context, userID int32, name, currency string) (*domain.Home, error) {
	logger.EnterMethod("homeService.CreateHome", "userID", userID, "name", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Errorf(domain.KindValidation, "home name is required")
	}
	if currency == "" {
		currency = "TRY"
	}

	if existing, err := s.userRepo.GetMembership(ctx, userID); err == nil && existing != nil {
		return nil, domain.Errorf(domain.KindConflict, "user %d already belongs to a home", userID)
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethodWithError("homeService.CreateHome", err, "userID", userID)
		return nil, err
	}

	home := &domain.Home{Name: name, Currency: currency}
	if err := s.homeRepo.CreateWithOwner(ctx, home, userID, s.seed); err != nil {
		logger.ExitMethodWithError("homeService.CreateHome", err, "userID", userID)
		return nil, err
	}

	logger.ExitMethod("homeService.CreateHome", "homeID", home.ID)
	return home, nil
}

func (s *homeService) GetHome(ctx context.Context, homeID int32) (*domain.Home, error) {
	home, err := s.homeRepo.GetByID(ctx, homeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindNotFound, "home %d does not exist", homeID)
		}
		return nil, err
	}
	return home, nil
}

func (s *homeService) ListMembers(ctx context.Context, homeID int32) ([]domain.User, []domain.HomeMember, error) {
	return s.userRepo.ListMembersByHome(ctx, homeID)
}

func (s *homeService) GetMembership(ctx context.Context, userID int32) (*domain.HomeMember, error) {
	member, err := s.userRepo.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindNotFound, "user %d does not belong to a home", userID)
		}
		return nil, err
	}
	return member, nil
}

func (s *homeService) InviteMember(ctx context.Context, inviterID, homeID int32, email string) (*domain.Invitation, error) {
	logger.EnterMethod("homeService.InviteMember", "inviterID", inviterID, "homeID", homeID)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Errorf(domain.KindValidation, "a valid email address is required")
	}

	membership, err := s.userRepo.GetMember(ctx, inviterID, homeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindNotFound, "home %d does not exist", homeID)
		}
		return nil, err
	}
	if membership.Role != domain.HomeRoleOwner {
		return nil, domain.Errorf(domain.KindValidation, "only the home owner can invite members")
	}

	// A user who already belongs to this home needs no invitation.
	if invitee, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		if _, err := s.userRepo.GetMember(ctx, invitee.ID, homeID); err == nil {
			return nil, domain.Errorf(domain.KindConflict, "%s is already a member of this home", email)
		}
	}

	home, err := s.homeRepo.GetByID(ctx, homeID)
	if err != nil {
		logger.ExitMethodWithError("homeService.InviteMember", err, "homeID", homeID)
		return nil, err
	}
	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		logger.ExitMethodWithError("homeService.InviteMember", err, "inviterID", inviterID)
		return nil, err
	}

	invite := &domain.Invitation{
		InvitationCode: uuid.New().String(),
		HomeID:         homeID,
		Email:          email,
		CreatedBy:      inviterID,
		ExpiresOn:      time.Now().UTC().Add(invitationTTL).Format(time.RFC3339),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		logger.ExitMethodWithError("homeService.InviteMember", err, "homeID", homeID)
		return nil, err
	}

	if err := s.email.SendInvitation(ctx, email, inviter.Name, home.Name, invite.InvitationCode); err != nil {
		// The invitation stays valid; the code can still be shared by hand.
		logger.Warn("invitation email failed", "email", email, "error", err)
	}

	logger.ExitMethod("homeService.InviteMember", "invitationID", invite.ID)
	return invite, nil
}

func (s *homeService) AcceptInvitation(ctx context.Context, userID int32, code string) (*domain.HomeMember, error) {
	logger.EnterMethod("homeService.AcceptInvitation", "userID", userID)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.Errorf(domain.KindValidation, "invitation code is required")
	}

	invite, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindNotFound, "invitation not found")
		}
		return nil, err
	}
	if invite.UsedOn != nil {
		return nil, domain.Errorf(domain.KindConflict, "invitation has already been used")
	}
	if expires, err := time.Parse(time.RFC3339, invite.ExpiresOn); err == nil && time.Now().UTC().After(expires) {
		return nil, domain.Errorf(domain.KindConflict, "invitation has expired")
	}

	if existing, err := s.userRepo.GetMembership(ctx, userID); err == nil && existing != nil {
		return nil, domain.Errorf(domain.KindConflict, "user %d already belongs to a home", userID)
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	member := &domain.HomeMember{
		UserID: userID,
		HomeID: invite.HomeID,
		Role:   domain.HomeRoleMember,
	}
	if err := s.userRepo.AddMember(ctx, member); err != nil {
		logger.ExitMethodWithError("homeService.AcceptInvitation", err, "userID", userID)
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	invite.UsedOn = &now
	invite.UsedByUserID = &userID
	if err := s.inviteRepo.Update(ctx, invite); err != nil {
		logger.Warn("failed to mark invitation used", "invitationID", invite.ID, "error", err)
	}

	if joined, err := s.userRepo.GetByID(ctx, userID); err == nil {
		note := &domain.Notification{
			UserID:  invite.CreatedBy,
			HomeID:  invite.HomeID,
			Title:   "New member joined",
			Message: joined.Name + " accepted your invitation",
			Attributes: map[string]string{
				"user_id": strconv.Itoa(int(userID)),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("failed to notify inviter", "invitationID", invite.ID, "error", err)
		}
	}

	logger.ExitMethod("homeService.AcceptInvitation", "homeID", invite.HomeID)
	return member, nil
}

func (s *homeService) AddCard(ctx context.Context, homeID, ownerUserID int32, name, last4 string) (*domain.Card, error) {
	logger.EnterMethod("homeService.AddCard", "homeID", homeID, "ownerUserID", ownerUserID)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Errorf(domain.KindValidation, "card name is required")
	}
	if last4 != "" && len(last4) != 4 {
		return nil, domain.Errorf(domain.KindValidation, "last4 must be exactly four digits")
	}

	if _, err := s.userRepo.GetMember(ctx, ownerUserID, homeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(domain.KindValidation, "card owner %d is not a member of home %d", ownerUserID, homeID)
		}
		return nil, err
	}

	card := &domain.Card{
		HomeID:      homeID,
		OwnerUserID: ownerUserID,
		Name:        name,
		Last4:       last4,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		logger.ExitMethodWithError("homeService.AddCard", err, "homeID", homeID)
		return nil, err
	}

	logger.ExitMethod("homeService.AddCard", "cardID", card.ID)
	return card, nil
}

func (s *homeService) ListCards(ctx context.Context, homeID int32) ([]domain.Card, error) {
	return s.cardRepo.ListByHome(ctx, homeID)
}

func (s *homeService) RemoveCard(ctx context.Context, homeID, cardID int32) error {
	logger.EnterMethod("homeService.RemoveCard", "homeID", homeID, "cardID", cardID)

	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Errorf(domain.KindNotFound, "card %d does not exist", cardID)
		}
		return err
	}
	if card.HomeID != homeID {
		return domain.Errorf(domain.KindNotFound, "card %d does not exist", cardID)
	}

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		logger.ExitMethodWithError("homeService.RemoveCard", err, "cardID", cardID)
		return err
	}

	logger.ExitMethod("homeService.RemoveCard", "cardID", cardID)
	return nil
}
