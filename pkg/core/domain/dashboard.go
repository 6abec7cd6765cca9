package domain

// DateLayout is the calendar-day format used for DashboardData.LastUpdate
const DateLayout = "2006-01-02"

// DashboardData holds the aggregate counters shown on the dashboard
type DashboardData struct {
	TotalLinks  int64  `json:"totalLinks"`
	TotalClicks int64  `json:"totalClicks"`
	TodayLinks  int64  `json:"todayLinks"`
	LastUpdate  string `json:"lastUpdate"` // YYYY-MM-DD
}
