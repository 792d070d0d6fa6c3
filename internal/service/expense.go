package service

import (
	"context"
	"errors"
	"time"

	"github.com/trackly-app/trackly/internal/models"
)

// ErrDuplicateExpense is returned when the exact same expense already
// exists for the user.
var ErrDuplicateExpense = errors.New("expense already exists")

// AddExpense records a new expense, rejecting an exact duplicate
func (s *Service) AddExpense(ctx context.Context, title string, amount float64, date time.Time, category, description string) (*models.Expense, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExpenseExists(userID, title, amount, date, category)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateExpense
	}

	expense := &models.Expense{
		UserID:      userID,
		Title:       title,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Description: description,
	}
	if err := s.repo.CreateExpense(expense); err != nil {
		return nil, err
	}

	s.log.Infof("Expense added for user %d: %s", userID, expense.Title)
	return expense, nil
}

// GetExpense fetches one of the user's expenses
func (s *Service) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindExpenseByID(id, userID)
}

// ListExpenses returns one page of the user's expenses, newest first
func (s *Service) ListExpenses(ctx context.Context, page, limit int) (*models.ExpensePage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	expenses, err := s.repo.ListExpenses(userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountExpenses(userID)
	if err != nil {
		return nil, err
	}

	return &models.ExpensePage{
		Expenses:      expenses,
		Page:          page,
		TotalPages:    (total + limit - 1) / limit,
		TotalExpenses: total,
	}, nil
}

// UpdateExpense replaces one of the user's expenses
func (s *Service) UpdateExpense(ctx context.Context, id int64, title string, amount float64, date time.Time, category, description string) (*models.Expense, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Description: description,
	}
	if err := s.repo.UpdateExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes one of the user's expenses
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteExpense(id, userID)
}

// TotalExpense sums the user's spend for a daily/monthly/yearly period
func (s *Service) TotalExpense(ctx context.Context, period, value string) (float64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	start, end, err := ParsePeriodRange(period, value)
	if err != nil {
		return 0, err
	}
	return s.repo.SumExpenses(userID, start, end)
}
