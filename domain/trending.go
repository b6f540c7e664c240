package domain

// TrendingEvent is one entry of a trending ranking: the event id with the
// popularity score computed for the requested scope.
type TrendingEvent struct {
	EventID string  `json:"event_id"`
	Score   float64 `json:"score"`
}

// ScoredEvent is one entry of a personalized ranking, with advisory
// human-readable reasons. Reasons are presentation text only.
type ScoredEvent struct {
	Event   Event    `json:"event"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
