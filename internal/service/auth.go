package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository"
	"spendly-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 8

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) {
	logger.EnterMethod("authService.Signup", "email", email)

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return nil, "", "", domain.Errorf(domain.KindValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", domain.Errorf(domain.KindValidation, "a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, "", "", domain.Errorf(domain.KindValidation, "password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", domain.Errorf(domain.KindConflict, "an account with %s already exists", email)
	} else if !errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethodWithError("authService.Signup", err, "email", email)
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Signup", err, "email", email)
		return nil, "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}

	logger.ExitMethod("authService.Signup", "userID", user.ID)
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	logger.EnterMethod("authService.Login", "email", email)

	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", security.ErrWrongTokenType
	}

	// The account may have been removed since the token was issued.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", security.ErrInvalidToken
		}
		return "", err
	}

	return s.tokens.GenerateAccessToken(user.ID, user.Email)
}
