package http

import (
	"net/http"

	"carteira/internal/core"
)

type expenseDTO struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CategoryID  int64   `json:"categoryId"`
	AccountID   int64   `json:"accountId"`
}

type createExpenseRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CategoryID  int64   `json:"categoryId"`
	AccountID   int64   `json:"accountId"`
}

func toExpenseDTO(e core.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		Date:        e.Date.String(),
		Description: e.Description,
		Amount:      e.Amount.Float(),
		CategoryID:  e.CategoryID,
		AccountID:   e.AccountID,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthQuery(r)
	if !ok {
		writeBadRequest(w, "invalid year or month")
		return
	}

	expenses, err := s.expenses.ListExpenses(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]expenseDTO, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseDTO(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid expense id")
		return
	}
	expense, err := s.expenses.GetExpense(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseDTO(expense))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeBadRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	amount, err := core.FromFloat(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	expense := core.Expense{
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
	}

	id, err := s.expenses.CreateExpense(r.Context(), expense)
	if err != nil {
		writeError(w, err)
		return
	}
	s.planning.Invalidate(date.Year(), date.Month())

	expense.ID = id
	writeJSON(w, http.StatusCreated, toExpenseDTO(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid expense id")
		return
	}

	// Fetch first so the planning cache for its month can be dropped.
	expense, err := s.expenses.GetExpense(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.planning.Invalidate(expense.Date.Year(), expense.Date.Month())

	writeJSON(w, http.StatusNoContent, nil)
}
