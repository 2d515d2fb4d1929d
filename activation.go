package openair

import (
	"fmt"
	"strings"
	"time"

	"github.com/relvacode/iso8601"
)

// ActivationTimes is the activation window of an airspace. A nil side is
// open-ended; both sides nil means the airspace is inactive.
type ActivationTimes struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// ParseActivationTimes decodes an AA record payload: either the literal
// NONE, or "START/END" where each side is NONE or an ISO 8601 date-time.
func ParseActivationTimes(data string) (ActivationTimes, error) {
	if strings.EqualFold(data, "NONE") {
		return ActivationTimes{}, nil
	}

	startStr, endStr, found := strings.Cut(data, "/")
	if !found {
		return ActivationTimes{}, fmt.Errorf("invalid activation times record: %s", data)
	}

	var times ActivationTimes
	if !strings.EqualFold(startStr, "NONE") {
		start, err := iso8601.ParseString(startStr)
		if err != nil {
			return ActivationTimes{}, fmt.Errorf("invalid activation start %q: %w", startStr, err)
		}
		times.Start = &start
	}
	if !strings.EqualFold(endStr, "NONE") {
		end, err := iso8601.ParseString(endStr)
		if err != nil {
			return ActivationTimes{}, fmt.Errorf("invalid activation end %q: %w", endStr, err)
		}
		times.End = &end
	}

	return times, nil
}

// encode returns the canonical OpenAir notation for the activation window.
func (t ActivationTimes) encode() string {
	if t.Start == nil && t.End == nil {
		return "NONE"
	}
	start, end := "NONE", "NONE"
	if t.Start != nil {
		start = t.Start.Format(time.RFC3339)
	}
	if t.End != nil {
		end = t.End.Format(time.RFC3339)
	}
	return start + "/" + end
}

// Equal compares two activation windows by instant.
func (t ActivationTimes) Equal(other ActivationTimes) bool {
	eq := func(a, b *time.Time) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Equal(*b)
	}
	return eq(t.Start, other.Start) && eq(t.End, other.End)
}
