package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/repository"
)

type entryRequest struct {
	Kind        domain.EntryKind `json:"kind"`
	Amount      decimal.Decimal  `json:"amount"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Title       string           `json:"title"`
	CategoryID  *int32           `json:"category_id"`
	CardID      *int32           `json:"card_id"`
	IsShared    bool             `json:"is_shared"`
	IsRecurring bool             `json:"is_recurring"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry := &domain.LedgerEntry{
		HomeID:      Membership(r.Context()).HomeID,
		CreatedByID: UserID(r.Context()),
		Kind:        req.Kind,
		Amount:      req.Amount,
		OccurredAt:  req.OccurredAt,
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		CardID:      req.CardID,
		IsShared:    req.IsShared,
		IsRecurring: req.IsRecurring,
	}
	if err := s.entries.CreateEntry(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry := &domain.LedgerEntry{
		ID:          pathID(r),
		Amount:      req.Amount,
		OccurredAt:  req.OccurredAt,
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		CardID:      req.CardID,
		IsShared:    req.IsShared,
		IsRecurring: req.IsRecurring,
	}
	if err := s.entries.UpdateEntry(r.Context(), UserID(r.Context()), entry); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.entries.DeleteEntry(r.Context(), UserID(r.Context()), pathID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

type entryListResponse struct {
	Entries []domain.EntryView `json:"entries"`
	Page    domain.Page        `json:"page"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	filter := repository.EntryFilter{
		HomeID:   Membership(r.Context()).HomeID,
		ViewerID: UserID(r.Context()),
	}

	q := r.URL.Query()
	if v := q.Get("kind"); v != "" {
		kind := domain.EntryKind(v)
		filter.Kind = &kind
	}
	if v := q.Get("category_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cid := int32(id)
			filter.CategoryID = &cid
		}
	}
	if v := q.Get("created_by_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			uid := int32(id)
			filter.CreatedByID = &uid
		}
	}
	if v := q.Get("month"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			filter.Month = &m
		}
	}
	if v := q.Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			filter.Year = &y
		}
	}
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			filter.Page = int32(p)
		}
	}
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			filter.Limit = int32(l)
		}
	}

	views, page, err := s.entries.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryListResponse{Entries: views, Page: page})
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ToUserID   int32           `json:"to_user_id"`
		Amount     decimal.Decimal `json:"amount"`
		OccurredAt time.Time       `json:"occurred_at"`
		Title      string          `json:"title"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := s.entries.CreateTransfer(r.Context(),
		Membership(r.Context()).HomeID,
		UserID(r.Context()),
		req.ToUserID,
		req.Amount,
		req.OccurredAt,
		req.Title,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}
