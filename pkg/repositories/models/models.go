package models

// Session is one stored distractor session: the totals accumulated across
// every engine run within the session's wall-clock window.
type Session struct {
	ID         string `json:"id"`
	CreatedAt  int64  `json:"created_at"`
	Seed       int64  `json:"seed"`
	DurationMS int64  `json:"duration_ms"`
	Lines      int    `json:"lines"`
	Losses     int    `json:"losses"`
	Score      int    `json:"score"`
	MaxLevel   int    `json:"max_level"`
}
