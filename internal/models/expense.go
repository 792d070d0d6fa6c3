package models

import "time"

// Expense represents a single recorded expense
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// ExpensePage is one page of a user's expenses, newest first
type ExpensePage struct {
	Expenses      []Expense `json:"expenses"`
	Page          int       `json:"page"`
	TotalPages    int       `json:"totalpages"`
	TotalExpenses int       `json:"totalExpenses"`
}
