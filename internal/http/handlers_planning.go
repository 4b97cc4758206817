package http

import (
	"net/http"

	"carteira/internal/core"
)

type budgetDTO struct {
	ID         int64   `json:"id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	CategoryID int64   `json:"categoryId"`
	Amount     float64 `json:"amount"`
}

type upsertBudgetRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	CategoryID int64   `json:"categoryId"`
	Amount     float64 `json:"amount"`
}

type categoryPlanDTO struct {
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Budgeted     float64 `json:"budgeted"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
}

type planningDTO struct {
	Year          int               `json:"year"`
	Month         int               `json:"month"`
	TotalBudgeted float64           `json:"totalBudgeted"`
	TotalSpent    float64           `json:"totalSpent"`
	Categories    []categoryPlanDTO `json:"categories"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthQuery(r)
	if !ok {
		writeBadRequest(w, "invalid year or month")
		return
	}

	budgets, err := s.storage.ListBudgets(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]budgetDTO, len(budgets))
	for i, b := range budgets {
		out[i] = budgetDTO{
			ID:         b.ID,
			Year:       b.Year,
			Month:      b.Month,
			CategoryID: b.CategoryID,
			Amount:     b.Amount.Float(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req upsertBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	amount, err := core.FromFloat(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	budget := core.Budget{
		Year:       req.Year,
		Month:      req.Month,
		CategoryID: req.CategoryID,
		Amount:     amount,
	}

	id, err := s.planning.SetBudget(r.Context(), budget)
	if err != nil {
		writeError(w, err)
		return
	}
	budget.ID = id
	writeJSON(w, http.StatusOK, budgetDTO{
		ID:         id,
		Year:       budget.Year,
		Month:      budget.Month,
		CategoryID: budget.CategoryID,
		Amount:     budget.Amount.Float(),
	})
}

func (s *Server) handlePlanning(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthQuery(r)
	if !ok {
		writeBadRequest(w, "invalid year or month")
		return
	}

	ov, err := s.planning.Overview(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}

	dto := planningDTO{
		Year:          ov.Year,
		Month:         ov.Month,
		TotalBudgeted: ov.TotalBudgeted.Float(),
		TotalSpent:    ov.TotalSpent.Float(),
		Categories:    make([]categoryPlanDTO, len(ov.Categories)),
	}
	for i, p := range ov.Categories {
		dto.Categories[i] = categoryPlanDTO{
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			Budgeted:     p.Budgeted.Float(),
			Spent:        p.Spent.Float(),
			Remaining:    p.Remaining.Float(),
		}
	}
	writeJSON(w, http.StatusOK, dto)
}
