package handler

import (
	"errors"
	"net/http"

	"github.com/trackly-app/trackly/internal/repository"
	"github.com/trackly-app/trackly/internal/service"
	"github.com/trackly-app/trackly/internal/utils"
)

type expenseRequest struct {
	Title       string  `json:"title"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// AddExpense records a new expense for the authenticated user
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Title = utils.SanitizeInput(req.Title)
	req.Description = utils.SanitizeInput(req.Description)

	if req.Title == "" || req.Amount == 0 || req.Date == "" || req.Category == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Amount < 0 {
		respondMessage(w, http.StatusBadRequest, "Amount must be non-negative")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	expense, err := h.svc.AddExpense(r.Context(), req.Title, req.Amount, date, req.Category, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateExpense) {
			respondMessage(w, http.StatusBadRequest, "Expense already exists")
			return
		}
		respondServerError(w, err)
		return
	}

	respond(w, http.StatusCreated, map[string]interface{}{
		"message": "Expense added successfully",
		"expense": expense,
	})
}

// GetExpense fetches one expense by id
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	expense, err := h.svc.GetExpense(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Expense not found")
			return
		}
		respondServerError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Expense fetched successfully",
		"expense": expense,
	})
}

// GetAllExpenses returns one page of the user's expenses
func (h *Handler) GetAllExpenses(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.svc.ListExpenses(r.Context(), page, limit)
	if err != nil {
		respondServerError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":       "Expenses fetched successfully",
		"expenses":      result.Expenses,
		"page":          result.Page,
		"totalpages":    result.TotalPages,
		"totalExpenses": result.TotalExpenses,
	})
}

// UpdateExpense replaces one expense by id
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Title = utils.SanitizeInput(req.Title)
	req.Description = utils.SanitizeInput(req.Description)

	if req.Title == "" || req.Amount == 0 || req.Date == "" || req.Category == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	expense, err := h.svc.UpdateExpense(r.Context(), id, req.Title, req.Amount, date, req.Category, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Expense not found")
			return
		}
		respondServerError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Expense updated successfully",
		"expense": expense,
	})
}

// DeleteExpense removes one expense by id
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Expense not found")
			return
		}
		respondServerError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Expense deleted successfully")
}

// TotalExpense sums the user's spend for a period
func (h *Handler) TotalExpense(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	value := r.URL.Query().Get("value")
	if period == "" || value == "" {
		respondMessage(w, http.StatusBadRequest, "Period and value are required")
		return
	}
	if _, _, err := service.ParsePeriodRange(period, value); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := h.svc.TotalExpense(r.Context(), period, value)
	if err != nil {
		respondServerError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":     "Total expense fetched successfully",
		"totalAmount": total,
	})
}
