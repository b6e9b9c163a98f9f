package lexicon

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Entry groups marker words that share a signed weight.
type Entry struct {
	Words  []string `yaml:"words" json:"words"`
	Weight float64  `yaml:"weight" json:"weight"`
}

// Lexicon is an immutable table of weighted marker words. Build it once at
// startup and share it; nothing mutates it after New returns.
type Lexicon struct {
	entries []Entry
	keys    [][]string // Fold of each entry's words, same order
}

// file is the on-disk YAML layout of a lexicon.
type file struct {
	Entries []Entry `yaml:"entries"`
}

var defaultEntries = []Entry{
	{Words: []string{"hate", "stupid", "idiot"}, Weight: 0.35},
	{Words: []string{"kill", "die", "trash"}, Weight: 0.35},
	{Words: []string{"dumb", "ugly", "worthless", "annoying"}, Weight: 0.25},
	{Words: []string{"please", "thank", "appreciate"}, Weight: -0.1},
}

// New validates and normalizes entries into a Lexicon. Marker words are
// trimmed and NFKC-normalized but keep their spelling and case; blanks and
// words that repeat case-insensitively within an entry are dropped. The same
// word may still appear in several entries, in which case every matching
// entry contributes.
func New(entries []Entry) (*Lexicon, error) {
	out := make([]Entry, 0, len(entries))
	keys := make([][]string, 0, len(entries))
	for i, e := range entries {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("lexicon entry %d has non-finite weight", i)
		}
		words := NormalizeWords(e.Words)
		if len(words) == 0 {
			return nil, fmt.Errorf("lexicon entry %d has no marker words", i)
		}
		out = append(out, Entry{Words: words, Weight: e.Weight})
		keys = append(keys, foldAll(words))
	}
	return &Lexicon{entries: out, keys: keys}, nil
}

// Default returns the built-in toxicity lexicon.
func Default() *Lexicon {
	lex, err := New(defaultEntries)
	if err != nil {
		panic(fmt.Sprintf("default lexicon is invalid: %v", err))
	}
	return lex
}

// Load reads a lexicon from a YAML file of the form:
//
//	entries:
//	  - words: [hate, stupid]
//	    weight: 0.35
//
// Words are normalized as in New: a marker written "Idiot" is reported as
// "Idiot" and matches "idiot" or "IDIOT" in text.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon file: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, errors.New("lexicon file has no entries")
	}

	return New(f.Entries)
}

// Entries returns a copy of the lexicon table.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = Entry{Words: append([]string(nil), e.Words...), Weight: e.Weight}
	}
	return out
}

// Len reports the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Each calls fn for every entry in table order without copying. words holds
// the markers as configured and keys their folded forms, index for index.
// fn must not modify either slice.
func (l *Lexicon) Each(fn func(words, keys []string, weight float64)) {
	for i, e := range l.entries {
		fn(e.Words, l.keys[i], e.Weight)
	}
}

// Fold lowercases s for containment tests. Text is not Unicode-normalized,
// so a marker only matches where its lowercase form literally occurs.
func Fold(s string) string {
	return strings.ToLower(s)
}

// NormalizeWords trims and NFKC-normalizes words, dropping blanks and
// case-insensitive repeats while keeping first-seen order and spelling.
func NormalizeWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		nw := norm.NFKC.String(strings.TrimSpace(w))
		if nw == "" {
			continue
		}
		key := Fold(nw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, nw)
	}
	return out
}

func foldAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Fold(w)
	}
	return out
}
