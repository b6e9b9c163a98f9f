package models

import "math"

// Level is the discrete verdict level derived from a risk score.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var levelLabels = map[Level]string{
	LevelLow:    "Clean",
	LevelMedium: "Caution",
	LevelHigh:   "Toxic",
}

var levelMessages = map[Level]string{
	LevelLow:    "Looks safe. Still give it a quick read for tone.",
	LevelMedium: "Trim harsh qualifiers or rephrase to focus on ideas.",
	LevelHigh:   "Pause before posting. Consider a calmer, specific rewrite.",
}

// Label returns the display label for the level.
func (l Level) Label() string {
	return levelLabels[l]
}

// Message returns the advisory message for the level.
func (l Level) Message() string {
	return levelMessages[l]
}

// ScoreSource tells where a verdict's score came from.
type ScoreSource string

const (
	SourceLexicon ScoreSource = "lexicon"
	SourceRemote  ScoreSource = "remote"
)

// Classification is the strictness-dependent part of a verdict.
type Classification struct {
	Level   Level  `json:"level"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Verdict is the full result of evaluating one comment.
//
// Triggers always come from the local lexicon. When Source is SourceRemote the
// score was supplied by the remote classifier and the triggers do not explain it.
type Verdict struct {
	Score    float64     `json:"score"`
	Level    Level       `json:"level"`
	Label    string      `json:"label"`
	Message  string      `json:"message"`
	Triggers []string    `json:"triggers"`
	Source   ScoreSource `json:"source"`
}

// Apply overwrites the strictness-dependent fields, keeping score and triggers.
func (v *Verdict) Apply(c Classification) {
	v.Level = c.Level
	v.Label = c.Label
	v.Message = c.Message
}

// ConfidencePercent is the score as a rounded whole percentage.
func (v Verdict) ConfidencePercent() int {
	return PercentOf(v.Score)
}

// PercentOf rounds a [0,1] score to a whole percentage.
func PercentOf(score float64) int {
	return int(math.Round(score * 100))
}
