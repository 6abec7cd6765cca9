package domain

import "time"

// LinkRecord represents a shortened URL and its click counter
type LinkRecord struct {
	ShortCode   string    `json:"shortCode"`
	OriginalURL string    `json:"originalUrl"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Snapshot is the full persisted state, used for export/import
type Snapshot struct {
	URLDatabase  [][2]string   `json:"urlDatabase"`
	LinksHistory []LinkRecord  `json:"linksHistory"`
	Dashboard    DashboardData `json:"dashboardData"`
}
