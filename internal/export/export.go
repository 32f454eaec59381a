// Package export writes a generated plan to disk as a pretty-printed JSON
// artifact, named after the theme and class duration.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"yoga-playlist/internal/schema"
)

// Filename returns the artifact name for a theme/duration pair, e.g.
// "yoga_playlist_lo_fi_60min_20260831_1405.json".
func Filename(theme string, duration int, now time.Time) string {
	return fmt.Sprintf("yoga_playlist_%s_%dmin_%s.json", sanitize(theme), duration, now.Format("20060102_1504"))
}

// Write serializes the plan with 4-space indentation into dir and returns the
// full path. An empty dir means the current directory.
func Write(dir string, plan schema.ClassPlan, theme string, duration int, now time.Time) (string, error) {
	buf, err := json.MarshalIndent(plan, "", "    ")
	if err != nil {
		return "", fmt.Errorf("export: marshal plan: %w", err)
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename(theme, duration, now))
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// sanitize turns a free-text theme into a filename-safe token.
func sanitize(theme string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(theme)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return "playlist"
	}
	return out
}
