package service

import (
	"fmt"
	"strconv"
	"time"
)

// ParsePeriodRange turns a period selector into a half-open [start,
// end) range in the server's local calendar. Accepted forms:
// daily "2024-01-10", monthly "2024-01", yearly "2024".
func ParsePeriodRange(period, value string) (time.Time, time.Time, error) {
	switch period {
	case "daily":
		day, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid daily value %q", value)
		}
		return day, day.AddDate(0, 0, 1), nil
	case "monthly":
		month, err := time.ParseInLocation("2006-01", value, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid monthly value %q", value)
		}
		return month, month.AddDate(0, 1, 0), nil
	case "yearly":
		year, err := strconv.Atoi(value)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid yearly value %q", value)
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
	}
}

// startOfDay truncates to local midnight
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfMonth truncates to the first of the local month
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
