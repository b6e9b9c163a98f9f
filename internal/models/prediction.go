package models

// Prediction is the remote classifier's answer for one text.
type Prediction struct {
	Label int     `json:"label"` // 1 = toxic, 0 = non-toxic
	Prob  float64 `json:"prob"`  // probability of toxic
}
