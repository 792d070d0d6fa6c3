package repository

import (
	"fmt"
	"time"

	"github.com/trackly-app/trackly/internal/models"
)

// DailyExpenseTotals sums a user's expenses per calendar day over
// [start, end), keyed "YYYY-MM-DD". Days without expenses are absent.
func (r *Repository) DailyExpenseTotals(userID int64, start, end time.Time) (map[string]float64, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD'), SUM(amount)
		FROM trackly.expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY 1`
	rows, err := r.db.Query(query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily expenses: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var day string
		var total float64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily expense total: %w", err)
		}
		totals[day] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate daily expenses: %w", err)
	}
	return totals, nil
}

// DailyCompletedMinutes sums a user's completed-task minutes per
// calendar day over [start, end), keyed "YYYY-MM-DD".
func (r *Repository) DailyCompletedMinutes(userID int64, start, end time.Time) (map[string]int, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD'), SUM(duration)
		FROM trackly.tasks
		WHERE user_id = $1 AND completed = TRUE AND date >= $2 AND date < $3
		GROUP BY 1`
	rows, err := r.db.Query(query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily productivity: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var day string
		var minutes int
		if err := rows.Scan(&day, &minutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily productivity total: %w", err)
		}
		totals[day] = minutes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate daily productivity: %w", err)
	}
	return totals, nil
}

// ExpensesByCategory returns the user's top spending categories over
// [start, end), largest first.
func (r *Repository) ExpensesByCategory(userID int64, start, end time.Time, limit int) ([]models.CategoryAmount, error) {
	query := `
		SELECT COALESCE(NULLIF(category, ''), 'Uncategorized'), SUM(amount), COUNT(*)
		FROM trackly.expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY 1
		ORDER BY 2 DESC
		LIMIT $4`
	rows, err := r.db.Query(query, userID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer rows.Close()

	categories := []models.CategoryAmount{}
	for rows.Next() {
		var c models.CategoryAmount
		if err := rows.Scan(&c.Category, &c.Amount, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	return categories, nil
}

// MonthlyExpenseTotal is one calendar month's spend
type MonthlyExpenseTotal struct {
	Year  int
	Month time.Month
	Total float64
}

// MonthlyExpenseTotals sums a user's expenses per calendar month from
// `since` onward, oldest first.
func (r *Repository) MonthlyExpenseTotals(userID int64, since time.Time) ([]MonthlyExpenseTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int, SUM(amount)
		FROM trackly.expenses
		WHERE user_id = $1 AND date >= $2
		GROUP BY 1, 2
		ORDER BY 1, 2`
	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly expenses: %w", err)
	}
	defer rows.Close()

	totals := []MonthlyExpenseTotal{}
	for rows.Next() {
		var year, month int
		var total float64
		if err := rows.Scan(&year, &month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly expense total: %w", err)
		}
		totals = append(totals, MonthlyExpenseTotal{Year: year, Month: time.Month(month), Total: total})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly expenses: %w", err)
	}
	return totals, nil
}
