package http

import (
	"net/http"

	"carteira/internal/core"
)

type referenceDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createReferenceRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.storage.ListAccounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]referenceDTO, len(accounts))
	for i, a := range accounts {
		out[i] = referenceDTO{ID: a.ID, Name: a.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createReferenceRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	account := core.Account{Name: req.Name}
	if err := account.Validate(); err != nil {
		writeError(w, err)
		return
	}

	id, err := s.storage.CreateAccount(r.Context(), account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, referenceDTO{ID: id, Name: req.Name})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid account id")
		return
	}
	if err := s.storage.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.storage.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]referenceDTO, len(categories))
	for i, c := range categories {
		out[i] = referenceDTO{ID: c.ID, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createReferenceRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	category := core.Category{Name: req.Name}
	if err := category.Validate(); err != nil {
		writeError(w, err)
		return
	}

	id, err := s.storage.CreateCategory(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, referenceDTO{ID: id, Name: req.Name})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid category id")
		return
	}
	if err := s.storage.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
