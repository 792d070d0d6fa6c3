package service

import (
	"context"
	"time"

	"github.com/trackly-app/trackly/internal/models"
)

const categoryLimit = 8

// Dashboard assembles the summary rollups behind the dashboard page:
// today's and this month's spend, today's completed minutes, the task
// status split and the three chart series.
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := startOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, 0)
	weekStart := dayStart.AddDate(0, 0, -6)
	sixMonthsStart := startOfMonth(now).AddDate(0, -5, 0)

	today, err := s.repo.SumExpenses(userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.repo.SumExpenses(userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	productivityToday, err := s.repo.SumCompletedDuration(userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	taskCounts, err := s.repo.TaskStatusCounts(userID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.repo.ExpensesByCategory(userID, monthStart, monthEnd, categoryLimit)
	if err != nil {
		return nil, err
	}
	dailyTotals, err := s.repo.DailyExpenseTotals(userID, weekStart, dayEnd)
	if err != nil {
		return nil, err
	}
	monthlyTotals, err := s.repo.MonthlyExpenseTotals(userID, sixMonthsStart)
	if err != nil {
		return nil, err
	}

	monthlyTrend := make([]models.MonthlyAmount, 0, len(monthlyTotals))
	for _, m := range monthlyTotals {
		label := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local).Format("Jan 2006")
		monthlyTrend = append(monthlyTrend, models.MonthlyAmount{Month: label, Amount: m.Total})
	}

	return &models.DashboardSummary{
		Expenses: models.ExpenseTotals{
			Today:     today,
			ThisMonth: thisMonth,
		},
		Productivity: models.ProductivityToday{Today: productivityToday},
		Tasks:        taskCounts,
		Charts: models.DashboardCharts{
			ByCategory:   byCategory,
			DailyTrend:   BuildDailyTrend(dayStart, dailyTotals),
			MonthlyTrend: monthlyTrend,
		},
	}, nil
}

// BuildDailyTrend zero-fills the trailing 7 days, oldest first, so
// the chart always has a fixed x-axis.
func BuildDailyTrend(dayStart time.Time, totals map[string]float64) []models.DailyTrendDay {
	trend := make([]models.DailyTrendDay, 0, 7)
	for i := 6; i >= 0; i-- {
		day := dayStart.AddDate(0, 0, -i)
		dateStr := day.Format("2006-01-02")
		trend = append(trend, models.DailyTrendDay{
			Date:   dateStr,
			Day:    day.Format("Mon"),
			Amount: totals[dateStr],
		})
	}
	return trend
}
