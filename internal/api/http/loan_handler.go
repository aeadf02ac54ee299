package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/service"
)

type loanRequest struct {
	Name              string           `json:"name"`
	PrincipalAmount   decimal.Decimal  `json:"principal_amount"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	MonthlyPayment    decimal.Decimal  `json:"monthly_payment"`
	TotalInstallments int32            `json:"total_installments"`
	PaidInstallments  *int32           `json:"paid_installments"`
	StartDate         time.Time        `json:"start_date"`
	InterestRate      *decimal.Decimal `json:"interest_rate"`
	Notes             string           `json:"notes"`
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	loan := &domain.Loan{
		UserID:            UserID(r.Context()),
		Name:              req.Name,
		PrincipalAmount:   req.PrincipalAmount,
		TotalAmount:       req.TotalAmount,
		MonthlyPayment:    req.MonthlyPayment,
		TotalInstallments: req.TotalInstallments,
		StartDate:         req.StartDate,
		InterestRate:      req.InterestRate,
		Notes:             req.Notes,
	}
	// Lets users register a loan they are already part way through.
	if req.PaidInstallments != nil {
		loan.PaidInstallments = *req.PaidInstallments
	}
	view, err := s.loans.CreateLoan(r.Context(), loan)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	views, err := s.loans.ListLoans(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	view, err := s.loans.GetLoan(r.Context(), UserID(r.Context()), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	upd := service.LoanUpdate{
		Name:              req.Name,
		PrincipalAmount:   req.PrincipalAmount,
		TotalAmount:       req.TotalAmount,
		MonthlyPayment:    req.MonthlyPayment,
		TotalInstallments: req.TotalInstallments,
		PaidInstallments:  req.PaidInstallments,
		StartDate:         req.StartDate,
		InterestRate:      req.InterestRate,
		Notes:             req.Notes,
	}
	view, err := s.loans.UpdateLoan(r.Context(), UserID(r.Context()), pathID(r), upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := s.loans.DeleteLoan(r.Context(), UserID(r.Context()), pathID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

type payInstallmentResponse struct {
	Loan  *domain.LoanView    `json:"loan"`
	Entry *domain.LedgerEntry `json:"entry"`
}

func (s *Server) handlePayInstallment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int32 `json:"count"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	view, entry, err := s.loans.PayInstallment(r.Context(), UserID(r.Context()), pathID(r), req.Count)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payInstallmentResponse{Loan: view, Entry: entry})
}
