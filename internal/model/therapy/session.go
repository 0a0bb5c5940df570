package therapy

import "time"

// Interaction records a single processed exchange. Owned exclusively by its
// session and never mutated after creation.
type Interaction struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	UserInput   string          `json:"userInput"`
	Sentiment   SentimentResult `json:"sentiment"`
	BotResponse string          `json:"botResponse"`
}

// Session is the ordered history of one conversational identity. It is mutated
// only by appending, and the two history views stay index-synchronized:
// SentimentHistory[i] == Interactions[i].Sentiment.Category.
type Session struct {
	ID               string        `json:"id"`
	StartTime        time.Time     `json:"startTime"`
	Interactions     []Interaction `json:"interactions"`
	SentimentHistory []Category    `json:"sentimentHistory"`
}

// Summary aggregates a session for analytics callers.
type Summary struct {
	SessionID         string           `json:"sessionId"`
	Duration          string           `json:"duration"`
	TotalInteractions int              `json:"totalInteractions"`
	SentimentCounts   map[Category]int `json:"sentimentDistribution"`
	Recent            []Interaction    `json:"recentInteractions"`
}
