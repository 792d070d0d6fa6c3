package service

import (
	"context"
	"time"

	"github.com/trackly-app/trackly/internal/analytics"
)

// AnalyticsRange is the label attached to every analytics response
const AnalyticsRange = "last_7_days"

// Analytics runs the insight engine over the user's trailing 7 local
// calendar days, inclusive of today.
func (s *Service) Analytics(ctx context.Context) (*analytics.Result, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.analyticsForUser(userID)
}

func (s *Service) analyticsForUser(userID int64) (*analytics.Result, error) {
	dayStart := startOfDay(time.Now())
	windowStart := dayStart.AddDate(0, 0, -6)
	windowEnd := dayStart.AddDate(0, 0, 1)

	expenseByDay, err := s.repo.DailyExpenseTotals(userID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	productivityByDay, err := s.repo.DailyCompletedMinutes(userID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	result := analytics.Compute(expenseByDay, productivityByDay, s.thresholds)
	return &result, nil
}
