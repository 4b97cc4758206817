package http

import (
	"net/http"

	"carteira/internal/core"
)

type incomeDTO struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CategoryID  int64   `json:"categoryId"`
	AccountID   int64   `json:"accountId"`
}

type createIncomeRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CategoryID  int64   `json:"categoryId"`
	AccountID   int64   `json:"accountId"`
}

func toIncomeDTO(i core.Income) incomeDTO {
	return incomeDTO{
		ID:          i.ID,
		Date:        i.Date.String(),
		Description: i.Description,
		Amount:      i.Amount.Float(),
		CategoryID:  i.CategoryID,
		AccountID:   i.AccountID,
	}
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthQuery(r)
	if !ok {
		writeBadRequest(w, "invalid year or month")
		return
	}

	incomes, err := s.storage.ListIncomes(r.Context(), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]incomeDTO, len(incomes))
	for i, income := range incomes {
		out[i] = toIncomeDTO(income)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req createIncomeRequest
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

	income := core.Income{
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
	}
	if err := income.Validate(); err != nil {
		writeError(w, err)
		return
	}

	id, err := s.storage.CreateIncome(r.Context(), income)
	if err != nil {
		writeError(w, err)
		return
	}
	income.ID = id
	writeJSON(w, http.StatusCreated, toIncomeDTO(income))
}
