package service

import (
	"math"

	"comment-screener/internal/models"
	"comment-screener/internal/scorer"
	"comment-screener/internal/threshold"
)

// Builder composes lexicon scoring and threshold mapping into verdicts.
type Builder struct {
	scorer *scorer.Scorer
}

// NewBuilder creates a verdict builder backed by sc.
func NewBuilder(sc *scorer.Scorer) *Builder {
	return &Builder{scorer: sc}
}

// Build always runs the lexicon scorer to obtain triggers. When override is
// nil the lexicon score is used and the verdict is self-consistent. When
// override is set it replaces the score before classification; the triggers
// still come from the lexicon and need not explain the overridden score.
//
// Build never substitutes a lexicon score for a missing override. Callers
// that expected a remote score and did not get one must report no verdict.
func (b *Builder) Build(text string, strictness threshold.Strictness, override *float64) models.Verdict {
	res := b.scorer.ScoreText(text)

	v := models.Verdict{
		Score:    res.Score,
		Triggers: res.Triggers,
		Source:   models.SourceLexicon,
	}
	if override != nil {
		v.Score = math.Max(0, math.Min(1, *override))
		v.Source = models.SourceRemote
	}

	v.Apply(threshold.Classify(v.Score, strictness))
	return v
}

// Evaluate builds a lexicon-only verdict. It satisfies csvbatch.Evaluator.
func (b *Builder) Evaluate(text string, strictness threshold.Strictness) models.Verdict {
	return b.Build(text, strictness, nil)
}

// Reclassify re-derives level, label and message for a new strictness while
// keeping the score, triggers and source.
func Reclassify(v models.Verdict, strictness threshold.Strictness) models.Verdict {
	v.Triggers = append([]string(nil), v.Triggers...)
	v.Apply(threshold.Classify(v.Score, strictness))
	return v
}
