package analytics

import (
	"reflect"
	"testing"
)

// week builds aligned expense/productivity maps for sequential January
// 2024 dates, one entry per element.
func week(expenses []float64, productivity []int) (map[string]float64, map[string]int) {
	dates := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}
	e := make(map[string]float64)
	p := make(map[string]int)
	for i, v := range expenses {
		e[dates[i]] = v
	}
	for i, v := range productivity {
		p[dates[i]] = v
	}
	return e, p
}

func singleInsight(t *testing.T, r Result) Insight {
	t.Helper()
	if len(r.Insights) != 1 {
		t.Fatalf("expected exactly 1 insight, got %d", len(r.Insights))
	}
	return r.Insights[0]
}

func TestComputeEmptyWindow(t *testing.T) {
	r := Compute(map[string]float64{}, map[string]int{}, DefaultThresholds)

	if len(r.DailyRecords) != 0 {
		t.Errorf("expected no daily records, got %d", len(r.DailyRecords))
	}
	if r.Averages.AverageExpense != 0 || r.Averages.AverageProductivity != 0 {
		t.Errorf("expected zero averages, got %+v", r.Averages)
	}
	in := singleInsight(t, r)
	if in.Type != TypeInsufficientData || in.Severity != SeverityInfo || in.Value != 0 {
		t.Errorf("unexpected insight: %+v", in)
	}
}

func TestComputeSingleDayIsInsufficientVariance(t *testing.T) {
	r := Compute(
		map[string]float64{"2024-01-10": 50},
		map[string]int{"2024-01-10": 30},
		DefaultThresholds,
	)

	if len(r.DailyRecords) != 1 {
		t.Fatalf("expected 1 daily record, got %d", len(r.DailyRecords))
	}
	if r.Averages.AverageExpense != 50 || r.Averages.AverageProductivity != 30 {
		t.Errorf("unexpected averages: %+v", r.Averages)
	}
	in := singleInsight(t, r)
	if in.Type != TypeInsufficientVariance || in.Severity != SeverityInfo || in.Value != 0 {
		t.Errorf("unexpected insight: %+v", in)
	}
}

func TestComputeMergesSparseInputs(t *testing.T) {
	// 2024-01-02 appears only in productivity, 2024-01-03 only in
	// expenses; the missing dimension defaults to zero.
	e := map[string]float64{"2024-01-03": 40, "2024-01-01": 10}
	p := map[string]int{"2024-01-01": 60, "2024-01-02": 30}

	r := Compute(e, p, DefaultThresholds)

	want := []DailyRecord{
		{Date: "2024-01-01", Expense: 10, Productivity: 60},
		{Date: "2024-01-02", Expense: 0, Productivity: 30},
		{Date: "2024-01-03", Expense: 40, Productivity: 0},
	}
	if !reflect.DeepEqual(r.DailyRecords, want) {
		t.Errorf("merged records = %+v, want %+v", r.DailyRecords, want)
	}
	if r.Averages.AverageExpense != 50.0/3 {
		t.Errorf("averageExpense = %v, want %v", r.Averages.AverageExpense, 50.0/3)
	}
	if r.Averages.AverageProductivity != 30 {
		t.Errorf("averageProductivity = %v, want 30", r.Averages.AverageProductivity)
	}
}

func TestComputeHighDrop(t *testing.T) {
	// Two expensive low-output days against five cheap productive
	// ones: drop = (100-10)/100*100 = 90.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{100, 100, 100, 100, 100, 10, 10},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeProductivityDrop || in.Severity != SeverityHigh {
		t.Fatalf("unexpected insight: %+v", in)
	}
	if in.Value != 90 {
		t.Errorf("value = %d, want 90", in.Value)
	}
	if in.Message != "High spending days reduce productivity by 90%" {
		t.Errorf("unexpected message: %q", in.Message)
	}
}

func TestComputeMediumDrop(t *testing.T) {
	// drop = (100-77)/100*100 = 23.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{100, 100, 100, 100, 100, 77, 77},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeProductivityDrop || in.Severity != SeverityMedium || in.Value != 23 {
		t.Errorf("unexpected insight: %+v", in)
	}
	if in.Message != "Productivity drops by 23% on high spending days" {
		t.Errorf("unexpected message: %q", in.Message)
	}
}

func TestComputeLowDrop(t *testing.T) {
	// drop = (100-83)/100*100 = 17.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{100, 100, 100, 100, 100, 83, 83},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeProductivityDrop || in.Severity != SeverityLow || in.Value != 17 {
		t.Errorf("unexpected insight: %+v", in)
	}
	if in.Message != "You are slightly less productive on higher spending days" {
		t.Errorf("unexpected message: %q", in.Message)
	}
}

func TestComputeProductivityGain(t *testing.T) {
	// High-spend days are the productive ones: drop = (100-150)/100*100 = -50.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{100, 100, 100, 100, 100, 150, 150},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeProductivityGain || in.Severity != SeverityMedium || in.Value != 50 {
		t.Errorf("unexpected insight: %+v", in)
	}
	if in.Message != "You are more productive on higher spending days" {
		t.Errorf("unexpected message: %q", in.Message)
	}
}

func TestComputeNoStrongCorrelation(t *testing.T) {
	// drop = (100-95)/100*100 = 5, inside the dead band.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{100, 100, 100, 100, 100, 95, 95},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeNoStrongCorrelation || in.Severity != SeverityInfo || in.Value != 0 {
		t.Errorf("unexpected insight: %+v", in)
	}
}

func TestComputeThresholdUsesUnroundedDrop(t *testing.T) {
	// drop = (125-88)/125*100 = 29.6: below the high cutoff before
	// rounding, so severity stays medium even though the displayed
	// value rounds up to 30.
	e, p := week(
		[]float64{20, 20, 20, 20, 200, 200},
		[]int{125, 125, 125, 125, 88, 88},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Severity != SeverityMedium {
		t.Errorf("severity = %q, want medium (compare before rounding)", in.Severity)
	}
	if in.Value != 30 {
		t.Errorf("value = %d, want 30", in.Value)
	}
}

func TestComputeGainValueRoundsHalfAwayFromZero(t *testing.T) {
	// drop = (200-299)/200*100 = -49.5; |drop| rounds to 50.
	e, p := week(
		[]float64{20, 20, 20, 20, 200, 200},
		[]int{200, 200, 200, 200, 299, 299},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeProductivityGain || in.Value != 50 {
		t.Errorf("unexpected insight: %+v", in)
	}
}

func TestComputeZeroProductivityHighBucketIsClamped(t *testing.T) {
	// High-spend days with zero completed minutes: the bucket mean is
	// clamped to 1, so drop = (100-1)/100*100 = 99, not 100.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{100, 100, 100, 100, 100, 0, 0},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeProductivityDrop || in.Severity != SeverityHigh {
		t.Fatalf("unexpected insight: %+v", in)
	}
	if in.Value != 99 {
		t.Errorf("value = %d, want 99 (clamped high-bucket mean)", in.Value)
	}
}

func TestComputeZeroNormalMeanSkipsCorrelation(t *testing.T) {
	// Normal days with zero completed minutes: the drop branch is
	// guarded on the raw normal mean, so the result is always the
	// dead-band insight no matter what the high-spend days did.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{0, 0, 0, 0, 0, 500, 500},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeNoStrongCorrelation || in.Value != 0 {
		t.Errorf("unexpected insight: %+v", in)
	}
}

func TestComputeDayAtAverageIsNotHighSpend(t *testing.T) {
	// Average expense is exactly 70; the 70 day must land in the
	// normal bucket (strict inequality). If it were classified high
	// the drop would fall to 12.5 and no insight band would match.
	e, p := week(
		[]float64{100, 100, 100, 40, 40, 40, 70},
		[]int{50, 50, 50, 100, 100, 100, 200},
	)

	in := singleInsight(t, Compute(e, p, DefaultThresholds))
	if in.Type != TypeProductivityDrop || in.Value != 60 {
		t.Errorf("unexpected insight: %+v", in)
	}
}

func TestComputeVarianceGuardNeedsTwoDaysPerBucket(t *testing.T) {
	// One clear outlier and two normal days: the high bucket has a
	// single member, so no correlation is attempted.
	e := map[string]float64{"2024-01-01": 10, "2024-01-02": 10, "2024-01-03": 400}
	p := map[string]int{"2024-01-01": 60, "2024-01-02": 60, "2024-01-03": 0}

	r := Compute(e, p, DefaultThresholds)
	if len(r.DailyRecords) != 3 {
		t.Fatalf("expected 3 daily records, got %d", len(r.DailyRecords))
	}
	in := singleInsight(t, r)
	if in.Type != TypeInsufficientVariance {
		t.Errorf("insight type = %q, want %q", in.Type, TypeInsufficientVariance)
	}
}

func TestComputeCustomThresholds(t *testing.T) {
	// drop = 5 is a high-severity event under a tighter threshold set.
	e, p := week(
		[]float64{20, 20, 20, 20, 20, 200, 200},
		[]int{100, 100, 100, 100, 100, 95, 95},
	)
	tight := Thresholds{HighDrop: 4, MediumDrop: 3, LowDrop: 2, Gain: -2}

	in := singleInsight(t, Compute(e, p, tight))
	if in.Type != TypeProductivityDrop || in.Severity != SeverityHigh || in.Value != 5 {
		t.Errorf("unexpected insight: %+v", in)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	e, p := week(
		[]float64{20, 35, 10, 80, 20, 200, 150},
		[]int{100, 40, 100, 25, 100, 10, 60},
	)

	first := Compute(e, p, DefaultThresholds)
	second := Compute(e, p, DefaultThresholds)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestNonZeroOr(t *testing.T) {
	if got := nonZeroOr(0, 1); got != 1 {
		t.Errorf("nonZeroOr(0, 1) = %v, want 1", got)
	}
	if got := nonZeroOr(42.5, 1); got != 42.5 {
		t.Errorf("nonZeroOr(42.5, 1) = %v, want 42.5", got)
	}
}
