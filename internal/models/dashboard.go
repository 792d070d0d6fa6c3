package models

// DashboardSummary is the aggregate payload behind the dashboard page
type DashboardSummary struct {
	Expenses     ExpenseTotals     `json:"expenses"`
	Productivity ProductivityToday `json:"productivity"`
	Tasks        TaskStatusCounts  `json:"tasks"`
	Charts       DashboardCharts   `json:"charts"`
}

// ExpenseTotals holds today's and the current month's spend
type ExpenseTotals struct {
	Today     float64 `json:"today"`
	ThisMonth float64 `json:"thisMonth"`
}

// ProductivityToday holds completed-task minutes for the current day
type ProductivityToday struct {
	Today int `json:"today"`
}

// TaskStatusCounts splits the user's tasks by completion state
type TaskStatusCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// DashboardCharts groups the chart series
type DashboardCharts struct {
	ByCategory   []CategoryAmount `json:"byCategory"`
	DailyTrend   []DailyTrendDay  `json:"dailyTrend"`
	MonthlyTrend []MonthlyAmount  `json:"monthlyTrend"`
}

// CategoryAmount is one slice of the category breakdown
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
}

// DailyTrendDay is one zero-filled day of the 7-day spend trend
type DailyTrendDay struct {
	Date   string  `json:"date"` // Format: YYYY-MM-DD
	Day    string  `json:"day"`  // Short weekday name, e.g. "Mon"
	Amount float64 `json:"amount"`
}

// MonthlyAmount is one month of the 6-month spend trend
type MonthlyAmount struct {
	Month  string  `json:"month"` // e.g. "Jan 2026"
	Amount float64 `json:"amount"`
}
