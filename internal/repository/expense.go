package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trackly-app/trackly/internal/models"
)

// CreateExpense creates a new expense in the database
func (r *Repository) CreateExpense(expense *models.Expense) error {
	query := `
		INSERT INTO trackly.expenses (user_id, title, amount, date, category, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		expense.UserID, expense.Title, expense.Amount, expense.Date, expense.Category, expense.Description).
		Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ExpenseExists reports whether the user already has an expense with
// the exact same title, amount, date and category.
func (r *Repository) ExpenseExists(userID int64, title string, amount float64, date time.Time, category string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM trackly.expenses
			WHERE user_id = $1 AND title = $2 AND amount = $3 AND date = $4 AND category = $5
		)`
	var exists bool
	if err := r.db.QueryRow(query, userID, title, amount, date, category).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check expense: %w", err)
	}
	return exists, nil
}

// FindExpenseByID retrieves a user's expense by primary key
func (r *Repository) FindExpenseByID(id, userID int64) (*models.Expense, error) {
	expense := &models.Expense{}
	query := `
		SELECT id, user_id, title, amount, date, category, description, created_at, updated_at
		FROM trackly.expenses
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&expense.ID, &expense.UserID, &expense.Title, &expense.Amount, &expense.Date,
			&expense.Category, &expense.Description, &expense.CreatedAt, &expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns one page of a user's expenses, newest first
func (r *Repository) ListExpenses(userID int64, limit, offset int) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, title, amount, date, category, description, created_at, updated_at
		FROM trackly.expenses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Date,
			&e.Category, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// CountExpenses returns the total number of a user's expenses
func (r *Repository) CountExpenses(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM trackly.expenses WHERE user_id = $1`
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// UpdateExpense replaces a user's expense and returns the new row
func (r *Repository) UpdateExpense(expense *models.Expense) error {
	query := `
		UPDATE trackly.expenses
		SET title = $1, amount = $2, date = $3, category = $4, description = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query,
		expense.Title, expense.Amount, expense.Date, expense.Category, expense.Description,
		expense.ID, expense.UserID).
		Scan(&expense.CreatedAt, &expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteExpense removes a user's expense
func (r *Repository) DeleteExpense(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM trackly.expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SumExpenses totals a user's expenses over [start, end)
func (r *Repository) SumExpenses(userID int64, start, end time.Time) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM trackly.expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3`
	if err := r.db.QueryRow(query, userID, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
