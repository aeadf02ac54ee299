package http

import (
	"net/http"
	"strconv"

	"spendly-backend/internal/domain"
)

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	page, pageSize := int32(1), int32(20)
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			page = int32(p)
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			pageSize = int32(l)
		}
	}

	notes, total, err := s.notifications.GetNotifications(r.Context(), UserID(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, Total: total})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := s.notifications.MarkAsRead(r.Context(), UserID(r.Context()), pathID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
