package threshold

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Strictness shifts the verdict thresholds. Negative values are more
// sensitive, positive values more tolerant.
type Strictness int

const (
	MinStrictness     Strictness = -2
	NeutralStrictness Strictness = 0
	MaxStrictness     Strictness = 2
)

// ErrStrictnessOutOfRange is returned for values outside [-2, 2].
var ErrStrictnessOutOfRange = errors.New("strictness out of range")

var descriptions = map[Strictness]string{
	-2: "very sensitive",
	-1: "sensitive",
	0:  "balanced",
	1:  "tolerant",
	2:  "very tolerant",
}

// Validate reports whether s is one of the supported levels.
func (s Strictness) Validate() error {
	if s < MinStrictness || s > MaxStrictness {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrStrictnessOutOfRange, int(s), MinStrictness, MaxStrictness)
	}
	return nil
}

// Description returns the human-readable name of the level.
func (s Strictness) Description() string {
	if d, ok := descriptions[s]; ok {
		return d
	}
	return "custom"
}

// Parse reads and validates a strictness from a string such as "-1" or "+2".
func Parse(raw string) (Strictness, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid strictness %q: %w", raw, err)
	}
	s := Strictness(v)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Clamp forces v into the supported range.
func Clamp(v int) Strictness {
	switch {
	case v < int(MinStrictness):
		return MinStrictness
	case v > int(MaxStrictness):
		return MaxStrictness
	default:
		return Strictness(v)
	}
}
