package service

import (
	"fmt"
	"strings"

	"github.com/trackly-app/trackly/internal/analytics"
)

// SendWeeklyDigests emails every user a summary of their trailing
// week. Users with no activity are skipped; per-user failures are
// logged and do not stop the run.
func (s *Service) SendWeeklyDigests() {
	users, err := s.repo.ListUsers()
	if err != nil {
		s.log.Errorf("Weekly digest: failed to list users: %v", err)
		return
	}

	sent := 0
	for _, user := range users {
		result, err := s.analyticsForUser(user.ID)
		if err != nil {
			s.log.Errorf("Weekly digest: analytics failed for user %d: %v", user.ID, err)
			continue
		}
		if len(result.DailyRecords) == 0 {
			continue
		}

		body := FormatDigestBody(user.Name, result)
		if err := s.sender.SendWeeklyDigest(user.Email, body); err != nil {
			s.log.Errorf("Weekly digest: send failed for user %d: %v", user.ID, err)
			continue
		}
		sent++
	}
	s.log.Infof("Weekly digest: sent %d of %d", sent, len(users))
}

// FormatDigestBody renders the plain-text weekly summary email
func FormatDigestBody(name string, result *analytics.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nHere is your week at a glance.\n\n", name)

	var totalExpense float64
	var totalMinutes int
	for _, r := range result.DailyRecords {
		totalExpense += r.Expense
		totalMinutes += r.Productivity
	}
	fmt.Fprintf(&b, "Total spent: %.2f over %d active days (avg %.2f/day)\n",
		totalExpense, len(result.DailyRecords), result.Averages.AverageExpense)
	fmt.Fprintf(&b, "Completed task time: %d minutes (avg %.0f/day)\n",
		totalMinutes, result.Averages.AverageProductivity)

	for _, insight := range result.Insights {
		fmt.Fprintf(&b, "\nInsight: %s\n", insight.Message)
	}

	b.WriteString("\nBest regards,\nTrackly")
	return b.String()
}
