package models

// AnalyzeRequest asks for a verdict on one comment. A nil Strictness selects
// the configured default.
type AnalyzeRequest struct {
	Text       string `json:"text"`
	Strictness *int   `json:"strictness,omitempty"`
}

// ReclassifyRequest re-labels an already computed score.
type ReclassifyRequest struct {
	Score      *float64 `json:"score" binding:"required"`
	Strictness *int     `json:"strictness,omitempty"`
}

// HighlightRequest marks trigger words in text.
type HighlightRequest struct {
	Text     string   `json:"text"`
	Triggers []string `json:"triggers"`
}

// HighlightResponse carries both highlight renderings.
type HighlightResponse struct {
	Segments []Segment `json:"segments"`
	Inline   string    `json:"inline"`
}
