package threshold

import (
	"errors"
	"math"
	"testing"

	"comment-screener/internal/models"
)

const eps = 1e-9

func TestThresholds(t *testing.T) {
	cases := []struct {
		strictness Strictness
		medium     float64
		high       float64
	}{
		{strictness: -2, medium: 0.15, high: 0.45},
		{strictness: -1, medium: 0.25, high: 0.55},
		{strictness: 0, medium: 0.35, high: 0.65},
		{strictness: 1, medium: 0.45, high: 0.75},
		{strictness: 2, medium: 0.55, high: 0.85},
		// out of range still yields ordered, clamped thresholds
		{strictness: -5, medium: 0.10, high: 0.15},
		{strictness: 9, medium: 0.55, high: 0.85},
	}

	for _, tc := range cases {
		medium, high := Thresholds(tc.strictness)
		if math.Abs(medium-tc.medium) > eps {
			t.Errorf("strictness %d: medium = %v, want %v", tc.strictness, medium, tc.medium)
		}
		if math.Abs(high-tc.high) > eps {
			t.Errorf("strictness %d: high = %v, want %v", tc.strictness, high, tc.high)
		}
	}
}

func TestThresholdsMonotonicAndSeparated(t *testing.T) {
	prevMedium, prevHigh := Thresholds(-10)
	for s := Strictness(-10); s <= 10; s++ {
		medium, high := Thresholds(s)
		if medium+eps < prevMedium || high+eps < prevHigh {
			t.Fatalf("thresholds decreased at strictness %d: medium %v->%v high %v->%v", s, prevMedium, medium, prevHigh, high)
		}
		if high+eps < medium+highGap {
			t.Fatalf("strictness %d: high %v not at least medium %v + %v", s, high, medium, highGap)
		}
		prevMedium, prevHigh = medium, high
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		score      float64
		strictness Strictness
		level      models.Level
		label      string
	}{
		{name: "zero is clean", score: 0, strictness: 0, level: models.LevelLow, label: "Clean"},
		{name: "at medium threshold stays low", score: 0.35, strictness: 0, level: models.LevelLow, label: "Clean"},
		{name: "stupid and ugly balanced", score: 0.60, strictness: 0, level: models.LevelMedium, label: "Caution"},
		{name: "stupid and ugly very sensitive", score: 0.60, strictness: -2, level: models.LevelHigh, label: "Toxic"},
		{name: "stupid and ugly very tolerant", score: 0.60, strictness: 2, level: models.LevelMedium, label: "Caution"},
		{name: "max score", score: 1, strictness: 2, level: models.LevelHigh, label: "Toxic"},
		{name: "just below tolerant medium", score: 0.44, strictness: 1, level: models.LevelLow, label: "Clean"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.score, tc.strictness)
			if got.Level != tc.level {
				t.Fatalf("level = %q, want %q", got.Level, tc.level)
			}
			if got.Label != tc.label {
				t.Fatalf("label = %q, want %q", got.Label, tc.label)
			}
			if got.Message != tc.level.Message() {
				t.Fatalf("message = %q, want %q", got.Message, tc.level.Message())
			}
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	for s := MinStrictness; s <= MaxStrictness; s++ {
		for _, score := range []float64{0, 0.2, 0.5, 0.7, 0.9} {
			first := Classify(score, s)
			for i := 0; i < 3; i++ {
				if again := Classify(score, s); again != first {
					t.Fatalf("Classify(%v, %d) changed: %+v vs %+v", score, s, first, again)
				}
			}
		}
	}
}

func TestStrictnessValidate(t *testing.T) {
	for s := MinStrictness; s <= MaxStrictness; s++ {
		if err := s.Validate(); err != nil {
			t.Fatalf("strictness %d should be valid: %v", s, err)
		}
	}
	for _, s := range []Strictness{-3, 3, 100} {
		if err := s.Validate(); !errors.Is(err, ErrStrictnessOutOfRange) {
			t.Fatalf("strictness %d: expected ErrStrictnessOutOfRange, got %v", s, err)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		raw     string
		want    Strictness
		wantErr bool
	}{
		{raw: "0", want: 0},
		{raw: " -2 ", want: -2},
		{raw: "+1", want: 1},
		{raw: "3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := Parse(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestClampAndDescription(t *testing.T) {
	if Clamp(-7) != MinStrictness || Clamp(7) != MaxStrictness || Clamp(1) != 1 {
		t.Fatalf("unexpected clamp results")
	}
	if Strictness(-2).Description() != "very sensitive" {
		t.Fatalf("unexpected description %q", Strictness(-2).Description())
	}
	if Strictness(0).Description() != "balanced" {
		t.Fatalf("unexpected description %q", Strictness(0).Description())
	}
	if Strictness(5).Description() != "custom" {
		t.Fatalf("unexpected description %q", Strictness(5).Description())
	}
}
