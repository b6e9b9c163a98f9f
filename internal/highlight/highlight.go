package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"comment-screener/internal/models"
)

// Markers wrapped around matches by InlineMark.
const (
	OpenMarker  = "<<"
	CloseMarker = ">>"
)

// Spans finds trigger occurrences in text, case-insensitively, scanning left
// to right. At each position the first trigger (in deduplicated input order)
// that matches wins, and scanning resumes after it, so spans never overlap.
// Adjacent matches produce adjacent spans.
func Spans(text string, triggers []string) []models.Span {
	words := uniqueTriggers(triggers)
	if text == "" || len(words) == 0 {
		return nil
	}

	var spans []models.Span
	for i := 0; i < len(text); {
		matched := false
		for _, w := range words {
			if n, ok := foldPrefix(text[i:], w); ok {
				spans = append(spans, models.Span{Start: i, End: i + n})
				i += n
				matched = true
				break
			}
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}
	return spans
}

// Annotate splits text into match and non-match segments. Without triggers
// the whole text comes back as a single unmatched segment.
func Annotate(text string, triggers []string) []models.Segment {
	if text == "" {
		return []models.Segment{}
	}

	spans := Spans(text, triggers)
	if len(spans) == 0 {
		return []models.Segment{{Text: text}}
	}

	segments := make([]models.Segment, 0, 2*len(spans)+1)
	last := 0
	for _, sp := range spans {
		if sp.Start > last {
			segments = append(segments, models.Segment{Text: text[last:sp.Start]})
		}
		segments = append(segments, models.Segment{IsMatch: true, Text: text[sp.Start:sp.End]})
		last = sp.End
	}
	if last < len(text) {
		segments = append(segments, models.Segment{Text: text[last:]})
	}
	return segments
}

// InlineMark wraps every match in OpenMarker/CloseMarker, keeping the
// original casing of the matched text.
func InlineMark(text string, triggers []string) string {
	if text == "" {
		return ""
	}

	spans := Spans(text, triggers)
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(OpenMarker)+len(CloseMarker)))
	last := 0
	for _, sp := range spans {
		b.WriteString(text[last:sp.Start])
		b.WriteString(OpenMarker)
		b.WriteString(text[sp.Start:sp.End])
		b.WriteString(CloseMarker)
		last = sp.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// StripMarkers removes inline markers. It inverts InlineMark exactly when
// the original text contained no marker sequences of its own.
func StripMarkers(s string) string {
	return strings.NewReplacer(OpenMarker, "", CloseMarker, "").Replace(s)
}

// uniqueTriggers lowercases triggers and drops blanks and duplicates.
func uniqueTriggers(triggers []string) []string {
	seen := make(map[string]struct{}, len(triggers))
	out := make([]string, 0, len(triggers))
	for _, t := range triggers {
		lt := strings.ToLower(t)
		if lt == "" {
			continue
		}
		if _, ok := seen[lt]; ok {
			continue
		}
		seen[lt] = struct{}{}
		out = append(out, lt)
	}
	return out
}

// foldPrefix reports whether s starts with prefix under simple Unicode case
// folding, returning the byte length of the match in s.
func foldPrefix(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if !equalFoldRune(r, pr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
