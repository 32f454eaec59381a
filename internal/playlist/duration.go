package playlist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"yoga-playlist/internal/schema"
)

// ErrBadLength marks a song length that is not MM:SS.
var ErrBadLength = errors.New("invalid song length")

// ParseLength converts an MM:SS string to total seconds.
func ParseLength(length string) (int, error) {
	parts := strings.Split(strings.TrimSpace(length), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, length)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, length)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadLength, length)
	}
	return minutes*60 + seconds, nil
}

// FormatSeconds renders total seconds as M:SS.
func FormatSeconds(total int) string {
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Durations holds per-section and total playlist time. A section whose songs
// include an unparseable or missing length has no entry in Sections, and
// TotalKnown is false: an aggregate that silently dropped a song would be
// worse than no aggregate.
type Durations struct {
	Sections   map[string]int
	Total      int
	TotalKnown bool
}

// Aggregate sums song lengths per section and across the class.
func Aggregate(plan schema.ClassPlan) Durations {
	d := Durations{Sections: make(map[string]int, len(plan.Sections)), TotalKnown: true}
	for _, name := range schema.SectionOrder {
		section, ok := plan.Sections[name]
		if !ok {
			d.TotalKnown = false
			continue
		}
		sum := 0
		known := true
		for _, song := range section.Songs {
			seconds, err := ParseLength(song.Length)
			if err != nil {
				known = false
				break
			}
			sum += seconds
		}
		if !known {
			d.TotalKnown = false
			continue
		}
		d.Sections[name] = sum
		d.Total += sum
	}
	if !d.TotalKnown {
		d.Total = 0
	}
	return d
}
