package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/trackly-app/trackly/internal/service"
)

// Dashboard returns the aggregate rollups behind the dashboard page
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Dashboard(r.Context())
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":      "Dashboard data fetched successfully",
		"expenses":     summary.Expenses,
		"productivity": summary.Productivity,
		"tasks":        summary.Tasks,
		"charts":       summary.Charts,
	})
}

// Analytics runs the insight engine over the trailing 7-day window
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Analytics(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}

	message := "Analytics data fetched successfully"
	if len(result.DailyRecords) == 0 {
		message = "No data available for the specified period"
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":  message,
		"range":    service.AnalyticsRange,
		"data":     result.DailyRecords,
		"averages": result.Averages,
		"insights": result.Insights,
	})
}

// Rates converts an amount between two currencies using the ECB
// daily reference rates; without a query it returns the full table.
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.rates.GetRates()
	if err != nil {
		respond(w, http.StatusBadGateway, map[string]string{
			"message": "Failed to fetch exchange rates",
			"error":   err.Error(),
		})
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	amountStr := r.URL.Query().Get("amount")
	if from == "" && to == "" && amountStr == "" {
		respond(w, http.StatusOK, map[string]interface{}{
			"message": "Exchange rates fetched successfully",
			"date":    quotes.Date,
			"rates":   quotes.ByCurrency,
		})
		return
	}
	if from == "" || to == "" || amountStr == "" {
		respondMessage(w, http.StatusBadRequest, "from, to and amount are required")
		return
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.IsNegative() {
		respondMessage(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	converted, err := quotes.Convert(from, to, amount)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":   "Conversion computed successfully",
		"date":      quotes.Date,
		"from":      from,
		"to":        to,
		"amount":    amount,
		"converted": converted,
	})
}
