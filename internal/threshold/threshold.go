package threshold

import (
	"math"

	"comment-screener/internal/models"
)

const (
	baseMedium   = 0.35
	baseHigh     = 0.65
	stepPerLevel = 0.1

	minMedium = 0.10
	maxMedium = 0.55
	maxHigh   = 0.85

	// highGap keeps the high threshold strictly above the medium one.
	highGap = 0.05
)

// Thresholds returns the medium and high cut-offs for a strictness. Scores
// strictly above a cut-off reach that level.
//
// Callers are expected to validate s; out-of-range values still produce
// clamped, ordered thresholds.
func Thresholds(s Strictness) (medium, high float64) {
	adjustment := float64(s) * stepPerLevel
	medium = clamp(baseMedium+adjustment, minMedium, maxMedium)
	high = clamp(baseHigh+adjustment, medium+highGap, maxHigh)
	return medium, high
}

// Classify maps a risk score to a level, label and message. It does not
// depend on how the score was computed, so a changed strictness can be
// re-applied to an existing score without rescoring.
func Classify(score float64, s Strictness) models.Classification {
	medium, high := Thresholds(s)

	level := models.LevelLow
	switch {
	case score > high:
		level = models.LevelHigh
	case score > medium:
		level = models.LevelMedium
	}

	return models.Classification{
		Level:   level,
		Label:   level.Label(),
		Message: level.Message(),
	}
}

// clamp applies the lower bound last so lo wins when lo > hi.
func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
