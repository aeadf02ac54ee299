package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"spendly-backend/internal/domain"
)

func pathID(r *http.Request) int32 {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return int32(id)
}

func (s *Server) handleCreateHome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	home, err := s.homes.CreateHome(r.Context(), UserID(r.Context()), req.Name, req.Currency)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, home)
}

func (s *Server) handleGetHome(w http.ResponseWriter, r *http.Request) {
	home, err := s.homes.GetHome(r.Context(), Membership(r.Context()).HomeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, home)
}

type memberResponse struct {
	User       domain.User       `json:"user"`
	Membership domain.HomeMember `json:"membership"`
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	users, memberships, err := s.homes.ListMembers(r.Context(), Membership(r.Context()).HomeID)
	if err != nil {
		writeError(w, err)
		return
	}

	members := make([]memberResponse, 0, len(users))
	for i := range users {
		members = append(members, memberResponse{User: users[i], Membership: memberships[i]})
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	invite, err := s.homes.InviteMember(r.Context(), UserID(r.Context()), Membership(r.Context()).HomeID, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, invite)
}

func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	member, err := s.homes.AcceptInvitation(r.Context(), UserID(r.Context()), req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerUserID int32  `json:"owner_user_id"`
		Name        string `json:"name"`
		Last4       string `json:"last4"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.OwnerUserID == 0 {
		req.OwnerUserID = UserID(r.Context())
	}

	card, err := s.homes.AddCard(r.Context(), Membership(r.Context()).HomeID, req.OwnerUserID, req.Name, req.Last4)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.homes.ListCards(r.Context(), Membership(r.Context()).HomeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	if err := s.homes.RemoveCard(r.Context(), Membership(r.Context()).HomeID, pathID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
