package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/security"
)

type contextKey string

const (
	userIDKey contextKey = "user-id"
	memberKey contextKey = "home-member"
)

// UserID returns the authenticated user's ID from the request context.
func UserID(ctx context.Context) int32 {
	id, _ := ctx.Value(userIDKey).(int32)
	return id
}

// Membership returns the authenticated user's home membership. It is only
// present on routes behind requireHome.
func Membership(ctx context.Context) *domain.HomeMember {
	m, _ := ctx.Value(memberKey).(*domain.HomeMember)
	return m
}

// authenticate validates the Bearer token and stores the user ID in the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := s.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, err)
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeError(w, security.ErrWrongTokenType)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireHome resolves the caller's home membership and stores it in the
// request context. Runs after authenticate.
func (s *Server) requireHome(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		member, err := s.homes.GetMembership(r.Context(), UserID(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), memberKey, member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
