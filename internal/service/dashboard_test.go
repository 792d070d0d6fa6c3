package service

import (
	"testing"
	"time"
)

func TestBuildDailyTrendZeroFills(t *testing.T) {
	dayStart := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local)
	totals := map[string]float64{
		"2024-01-10": 42.5,
		"2024-01-07": 10,
	}

	trend := BuildDailyTrend(dayStart, totals)

	if len(trend) != 7 {
		t.Fatalf("expected 7 days, got %d", len(trend))
	}
	if trend[0].Date != "2024-01-04" {
		t.Errorf("first day = %s, want 2024-01-04", trend[0].Date)
	}
	if trend[6].Date != "2024-01-10" {
		t.Errorf("last day = %s, want 2024-01-10", trend[6].Date)
	}
	if trend[6].Amount != 42.5 {
		t.Errorf("today's amount = %v, want 42.5", trend[6].Amount)
	}
	if trend[3].Date != "2024-01-07" || trend[3].Amount != 10 {
		t.Errorf("mid-window day = %+v, want 2024-01-07 with amount 10", trend[3])
	}
	// Days without expenses appear with a zero amount.
	if trend[1].Amount != 0 {
		t.Errorf("empty day amount = %v, want 0", trend[1].Amount)
	}
	if trend[6].Day != dayStart.Format("Mon") {
		t.Errorf("weekday label = %q, want %q", trend[6].Day, dayStart.Format("Mon"))
	}
}
