package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"spendly-backend/internal/security"
	"spendly-backend/internal/service"
)

// Server is the HTTP surface of the application. All state-changing routes
// require a valid access token; home-scoped routes additionally resolve the
// caller's membership.
type Server struct {
	httpServer *http.Server

	tokens        security.TokenManager
	auth          service.AuthService
	homes         service.HomeService
	entries       service.EntryService
	summaries     service.SummaryService
	loans         service.LoanService
	categories    service.CategoryService
	notifications service.NotificationService
}

func NewServer(
	addr string,
	tokens security.TokenManager,
	auth service.AuthService,
	homes service.HomeService,
	entries service.EntryService,
	summaries service.SummaryService,
	loans service.LoanService,
	categories service.CategoryService,
	notifications service.NotificationService,
) *Server {
	s := &Server{
		tokens:        tokens,
		auth:          auth,
		homes:         homes,
		entries:       entries,
		summaries:     summaries,
		loans:         loans,
		categories:    categories,
		notifications: notifications,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)

	// Authenticated routes that work before the user joins a home
	authed := api.NewRoute().Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/homes", s.handleCreateHome).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/accept", s.handleAcceptInvitation).Methods(http.MethodPost)
	authed.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", s.handleMarkNotificationRead).Methods(http.MethodPost)
	authed.HandleFunc("/loans", s.handleCreateLoan).Methods(http.MethodPost)
	authed.HandleFunc("/loans", s.handleListLoans).Methods(http.MethodGet)
	authed.HandleFunc("/loans/{id:[0-9]+}", s.handleGetLoan).Methods(http.MethodGet)
	authed.HandleFunc("/loans/{id:[0-9]+}", s.handleUpdateLoan).Methods(http.MethodPut)
	authed.HandleFunc("/loans/{id:[0-9]+}", s.handleDeleteLoan).Methods(http.MethodDelete)
	authed.HandleFunc("/loans/{id:[0-9]+}/payments", s.handlePayInstallment).Methods(http.MethodPost)

	// Home-scoped routes
	home := api.NewRoute().Subrouter()
	home.Use(s.authenticate, s.requireHome)
	home.HandleFunc("/home", s.handleGetHome).Methods(http.MethodGet)
	home.HandleFunc("/home/members", s.handleListMembers).Methods(http.MethodGet)
	home.HandleFunc("/home/invitations", s.handleInviteMember).Methods(http.MethodPost)
	home.HandleFunc("/home/cards", s.handleAddCard).Methods(http.MethodPost)
	home.HandleFunc("/home/cards", s.handleListCards).Methods(http.MethodGet)
	home.HandleFunc("/home/cards/{id:[0-9]+}", s.handleRemoveCard).Methods(http.MethodDelete)

	home.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	home.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost)
	home.HandleFunc("/categories/{id:[0-9]+}", s.handleUpdateCategory).Methods(http.MethodPut)
	home.HandleFunc("/categories/{id:[0-9]+}", s.handleDeleteCategory).Methods(http.MethodDelete)

	home.HandleFunc("/entries", s.handleListEntries).Methods(http.MethodGet)
	home.HandleFunc("/entries", s.handleCreateEntry).Methods(http.MethodPost)
	home.HandleFunc("/entries/{id:[0-9]+}", s.handleUpdateEntry).Methods(http.MethodPut)
	home.HandleFunc("/entries/{id:[0-9]+}", s.handleDeleteEntry).Methods(http.MethodDelete)
	home.HandleFunc("/transfers", s.handleCreateTransfer).Methods(http.MethodPost)

	home.HandleFunc("/summary/home", s.handleHomeSummary).Methods(http.MethodGet)
	home.HandleFunc("/summary/me", s.handleUserSummary).Methods(http.MethodGet)
	home.HandleFunc("/summary/members", s.handleMemberSummaries).Methods(http.MethodGet)

	return r
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
