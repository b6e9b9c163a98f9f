package scorer

import (
	"math"
	"strings"

	"comment-screener/internal/lexicon"
	"comment-screener/internal/models"
	"comment-screener/internal/threshold"
)

// Result is the strictness-independent output of scoring a text.
type Result struct {
	Score    float64  `json:"score"`
	Triggers []string `json:"triggers"`
}

// Scorer computes lexicon-based risk scores. It holds no mutable state and
// is safe for concurrent use.
type Scorer struct {
	lex *lexicon.Lexicon
}

// New creates a scorer over lex. A nil lexicon selects lexicon.Default().
func New(lex *lexicon.Lexicon) *Scorer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Scorer{lex: lex}
}

// ScoreText sums the weights of every lexicon entry whose marker words occur
// in text. Matching is plain substring containment on the lowercased text, so
// a marker also matches inside longer words; no other normalization is
// applied to text. Each entry contributes its weight once per distinct marker
// found; the total is clamped to [0, 1].
//
// Only markers of positive-weight entries are reported as triggers, in the
// spelling the lexicon was configured with. Conciliatory markers lower the
// score but are never highlighted.
func (s *Scorer) ScoreText(text string) Result {
	folded := lexicon.Fold(text)
	triggers := make([]string, 0)

	var raw float64
	s.lex.Each(func(words, keys []string, weight float64) {
		hits := 0
		for i, key := range keys {
			if !strings.Contains(folded, key) {
				continue
			}
			hits++
			if weight > 0 {
				triggers = append(triggers, words[i])
			}
		}
		raw += weight * float64(hits)
	})

	return Result{
		Score:    math.Max(0, math.Min(1, raw)),
		Triggers: triggers,
	}
}

// Evaluate scores text and classifies it at the given strictness.
func (s *Scorer) Evaluate(text string, strictness threshold.Strictness) models.Verdict {
	res := s.ScoreText(text)
	v := models.Verdict{
		Score:    res.Score,
		Triggers: res.Triggers,
		Source:   models.SourceLexicon,
	}
	v.Apply(threshold.Classify(res.Score, strictness))
	return v
}
