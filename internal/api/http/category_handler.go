package http

import (
	"net/http"

	"spendly-backend/internal/domain"
)

type categoryRequest struct {
	Name  string              `json:"name"`
	Lang  domain.Lang         `json:"lang"`
	Kind  domain.CategoryKind `json:"kind"`
	Icon  string              `json:"icon"`
	Color string              `json:"color"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var kind *domain.CategoryKind
	if v := r.URL.Query().Get("kind"); v != "" {
		k := domain.CategoryKind(v)
		kind = &k
	}

	categories, err := s.categories.ListCategories(r.Context(), Membership(r.Context()).HomeID, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Lang == "" {
		req.Lang = domain.LangTurkish
	}

	category, err := s.categories.CreateCategory(r.Context(), Membership(r.Context()).HomeID, req.Name, req.Lang, req.Kind, req.Icon, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Lang == "" {
		req.Lang = domain.LangTurkish
	}

	category, err := s.categories.UpdateCategory(r.Context(), Membership(r.Context()).HomeID, pathID(r), req.Name, req.Lang, req.Icon, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.DeleteCategory(r.Context(), Membership(r.Context()).HomeID, pathID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
