package http

import (
	"net/http"
	"strconv"
	"time"
)

// monthYear reads the month and year query parameters, defaulting to the
// current month in UTC.
func monthYear(r *http.Request) (int, int) {
	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	return month, year
}

func (s *Server) handleHomeSummary(w http.ResponseWriter, r *http.Request) {
	month, year := monthYear(r)
	summary, err := s.summaries.GetHomeSummary(r.Context(), Membership(r.Context()).HomeID, month, year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleUserSummary(w http.ResponseWriter, r *http.Request) {
	month, year := monthYear(r)
	summary, err := s.summaries.GetUserSummary(r.Context(), UserID(r.Context()), Membership(r.Context()).HomeID, month, year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleMemberSummaries(w http.ResponseWriter, r *http.Request) {
	month, year := monthYear(r)
	summaries, err := s.summaries.GetAllUserSummaries(r.Context(), Membership(r.Context()).HomeID, month, year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}
