// Package prompt composes the instruction sent to the generation service.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"yoga-playlist/internal/schema"
)

// ErrEmptyTheme is returned when no theme was supplied; no service call
// should be made in that case.
var ErrEmptyTheme = errors.New("theme must not be empty")

// System is the fixed system instruction sent with every generation request.
const System = "You are a yoga music expert who provides song recommendations. Respond only with valid JSON."

// exampleJSON is a worked example of the expected response shape. Including
// it noticeably improves format compliance compared to describing the shape
// in prose alone.
const exampleJSON = `{
  "sections": {
    "Grounding & Warm Up": {
      "duration": "8-10 minutes",
      "intensity": "1-2",
      "songs": [
        {"name": "Weightless", "artist": "Marconi Union", "length": "8:09", "intensity": 1, "reason": "Slow ambient pulse to settle breath"},
        {"name": "Opening", "artist": "Explosions in the Sky", "length": "4:59", "intensity": 2, "reason": "Gentle build matching early movement"}
      ]
    }
  }
}`

// Build assembles the user prompt for a themed class of the given duration.
// Preferences are free text and may be empty. The returned string embeds the
// per-duration timing table so the generator allocates songs per section.
func Build(theme, preferences string, duration int) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return "", ErrEmptyTheme
	}

	table, ok := schema.TimingTable(duration)
	if !ok {
		return "", fmt.Errorf("unsupported class duration %d (supported: 45, 60, 75)", duration)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a music playlist for a %d-minute yoga class with the theme: %s.\n", duration, theme)
	if p := strings.TrimSpace(preferences); p != "" {
		fmt.Fprintf(&b, "Additional preferences: %s.\n", p)
	}
	b.WriteString("\nThe class has these sections:\n")
	for i, name := range schema.SectionOrder {
		timing := table[name]
		fmt.Fprintf(&b, "%d. %s (%s): Intensity %s\n", i+1, name, timing.Range, timing.Intensity)
	}
	b.WriteString(`
For each section, recommend 2-3 songs that fit the section's intensity band and the theme. Include for every song:
- Song name and artist
- Duration (MM:SS format)
- Intensity level (1-5)
- Brief explanation why this song fits

Only use well-known songs that verifiably exist; do not invent song titles or artists.

Return a single JSON object using the exact section names above as keys. Example of the expected shape (showing one section):

`)
	b.WriteString(exampleJSON)
	b.WriteString("\n\nReturn only the JSON object, no explanation.")
	return b.String(), nil
}
