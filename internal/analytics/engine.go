// Package analytics computes the spending/productivity correlation
// insight for a single user over a trailing window. The computation is
// pure: it takes two sparse per-day aggregates, already filtered to
// the window by the caller, and returns a merged daily series,
// averages and exactly one insight.
package analytics

import (
	"fmt"
	"math"
	"sort"
)

// Insight types.
const (
	TypeInsufficientData     = "INSUFFICIENT_DATA"
	TypeInsufficientVariance = "INSUFFICIENT_VARIANCE"
	TypeProductivityDrop     = "PRODUCTIVITY_DROP"
	TypeProductivityGain     = "PRODUCTIVITY_GAIN"
	TypeNoStrongCorrelation  = "NO_STRONG_CORRELATION"
)

// Insight severities.
const (
	SeverityInfo   = "info"
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Thresholds holds the drop-percentage cutoffs used to select an
// insight. Injected per call so alternate sets can be tested without
// touching shared state.
type Thresholds struct {
	HighDrop   float64
	MediumDrop float64
	LowDrop    float64
	Gain       float64
}

// DefaultThresholds matches the production cutoffs.
var DefaultThresholds = Thresholds{
	HighDrop:   30,
	MediumDrop: 20,
	LowDrop:    15,
	Gain:       -20,
}

// DailyRecord is one calendar day's totals. Days with no activity in
// either dimension are absent from the series, not zero-filled.
type DailyRecord struct {
	Date         string  `json:"date"`
	Expense      float64 `json:"expense"`
	Productivity int     `json:"productivity"`
}

// Averages are arithmetic means over the merged daily series.
type Averages struct {
	AverageExpense      float64 `json:"averageExpense"`
	AverageProductivity float64 `json:"averageProductivity"`
}

// Insight is one card shown to the user.
type Insight struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Value    int    `json:"value"`
	Message  string `json:"message"`
}

// Result is the full analytics payload for one window.
type Result struct {
	DailyRecords []DailyRecord `json:"data"`
	Averages     Averages      `json:"averages"`
	Insights     []Insight     `json:"insights"`
}

// enriched carries the per-day classification relative to the window
// averages. Intermediate only; the response exposes plain records.
type enriched struct {
	DailyRecord
	isHighSpend       bool
	isLowProductivity bool
}

// Compute merges the two per-day aggregates, classifies days against
// the window averages and selects a single insight. It never fails:
// empty or low-variance windows degrade to an info-severity insight.
func Compute(expenseByDay map[string]float64, productivityByDay map[string]int, t Thresholds) Result {
	records := merge(expenseByDay, productivityByDay)

	if len(records) == 0 {
		return Result{
			DailyRecords: []DailyRecord{},
			Averages:     Averages{},
			Insights: []Insight{{
				Type:     TypeInsufficientData,
				Severity: SeverityInfo,
				Value:    0,
				Message:  "Not enough data to generate insights",
			}},
		}
	}

	var expenseSum, productivitySum float64
	for _, r := range records {
		expenseSum += r.Expense
		productivitySum += float64(r.Productivity)
	}
	avg := Averages{
		AverageExpense:      expenseSum / float64(len(records)),
		AverageProductivity: productivitySum / float64(len(records)),
	}

	var highSpendDays, normalDays []enriched
	for _, r := range records {
		e := enriched{
			DailyRecord:       r,
			isHighSpend:       r.Expense > avg.AverageExpense,
			isLowProductivity: float64(r.Productivity) < avg.AverageProductivity,
		}
		if e.isHighSpend {
			highSpendDays = append(highSpendDays, e)
		} else {
			normalDays = append(normalDays, e)
		}
	}

	// A bucket with a single day cannot support a correlation claim.
	if len(highSpendDays) < 2 || len(normalDays) < 2 {
		return Result{
			DailyRecords: records,
			Averages:     avg,
			Insights: []Insight{{
				Type:     TypeInsufficientVariance,
				Severity: SeverityInfo,
				Value:    0,
				Message:  "Not enough variation in spending patterns to detect trends",
			}},
		}
	}

	rawNormal := meanProductivity(normalDays)
	avgHigh := nonZeroOr(meanProductivity(highSpendDays), 1)
	avgNormal := nonZeroOr(rawNormal, 1)

	// The guard tests the raw normal-day mean while the ratio uses the
	// clamped means. A window whose normal days have zero completed
	// minutes therefore always reports drop 0. Intentional: kept
	// bit-compatible with the long-standing behavior.
	var drop float64
	if rawNormal > 0 {
		drop = (avgNormal - avgHigh) / avgNormal * 100
	}

	return Result{
		DailyRecords: records,
		Averages:     avg,
		Insights:     []Insight{selectInsight(drop, t)},
	}
}

// merge unions the two sparse maps into a date-ascending series.
// Lexical order on "YYYY-MM-DD" keys is calendar order.
func merge(expenseByDay map[string]float64, productivityByDay map[string]int) []DailyRecord {
	byDate := make(map[string]DailyRecord, len(expenseByDay)+len(productivityByDay))
	for date, expense := range expenseByDay {
		byDate[date] = DailyRecord{Date: date, Expense: expense}
	}
	for date, minutes := range productivityByDay {
		r := byDate[date]
		r.Date = date
		r.Productivity = minutes
		byDate[date] = r
	}

	records := make([]DailyRecord, 0, len(byDate))
	for _, r := range byDate {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records
}

func meanProductivity(days []enriched) float64 {
	var sum float64
	for _, d := range days {
		sum += float64(d.Productivity)
	}
	return sum / float64(len(days))
}

// nonZeroOr substitutes fallback for a zero value. Named so the clamp
// on a zero-productivity bucket mean is visible at the call site.
func nonZeroOr(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}

// selectInsight maps the unrounded drop percentage onto the insight
// bands. Rounding applies to the displayed value only.
func selectInsight(drop float64, t Thresholds) Insight {
	switch {
	case drop >= t.HighDrop:
		value := int(math.Round(drop))
		return Insight{
			Type:     TypeProductivityDrop,
			Severity: SeverityHigh,
			Value:    value,
			Message:  fmt.Sprintf("High spending days reduce productivity by %d%%", value),
		}
	case drop >= t.MediumDrop:
		value := int(math.Round(drop))
		return Insight{
			Type:     TypeProductivityDrop,
			Severity: SeverityMedium,
			Value:    value,
			Message:  fmt.Sprintf("Productivity drops by %d%% on high spending days", value),
		}
	case drop >= t.LowDrop:
		return Insight{
			Type:     TypeProductivityDrop,
			Severity: SeverityLow,
			Value:    int(math.Round(drop)),
			Message:  "You are slightly less productive on higher spending days",
		}
	case drop <= t.Gain:
		return Insight{
			Type:     TypeProductivityGain,
			Severity: SeverityMedium,
			Value:    int(math.Round(math.Abs(drop))),
			Message:  "You are more productive on higher spending days",
		}
	default:
		return Insight{
			Type:     TypeNoStrongCorrelation,
			Severity: SeverityInfo,
			Value:    0,
			Message:  "No strong relationship between spending and productivity detected",
		}
	}
}
