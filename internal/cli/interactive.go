package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"yoga-playlist/internal/export"
	"yoga-playlist/internal/schema"
)

// runInteractive loops theme -> preferences -> duration -> generate until the
// user quits. History accumulates across rounds and is shown between them.
func (s *session) runInteractive(ctx context.Context, defaultDuration int) error {
	reader := bufio.NewScanner(os.Stdin)
	out := s.out

	out.Print(out.Bold("Yoga Playlist Creator"))
	out.Print(out.Gray("Press Enter on an empty theme to quit. Type \"history\" to list this session's playlists."))
	out.Print("")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		theme, ok := promptLine(reader, out.Bold("Theme")+" (e.g. lo-fi, calm edm, country): ")
		if !ok || theme == "" {
			return nil
		}
		if strings.EqualFold(theme, "history") {
			s.renderHistory()
			continue
		}
		if strings.EqualFold(theme, "quit") || strings.EqualFold(theme, "exit") {
			return nil
		}

		preferences, ok := promptLine(reader, "Preferences (optional): ")
		if !ok {
			return nil
		}
		duration, ok := s.promptDuration(reader, defaultDuration)
		if !ok {
			return nil
		}

		result, err := s.generate(ctx, theme, preferences, duration)
		if err != nil {
			out.Error(err.Error())
			continue
		}
		renderPlan(out, result)

		if answer, ok := promptLine(reader, "Save playlist JSON? [y/N]: "); ok && isYes(answer) {
			path, err := export.Write(s.outDir, result.Plan, result.Theme, result.Duration, time.Now())
			if err != nil {
				out.Error(err.Error())
			} else {
				out.Success("Saved " + path)
			}
		}

		s.renderRecent()
		out.Print("")
	}
}

func (s *session) promptDuration(reader *bufio.Scanner, fallback int) (int, bool) {
	supported := schema.SupportedDurations()
	labels := make([]string, len(supported))
	for i, d := range supported {
		labels[i] = strconv.Itoa(d)
	}
	label := fmt.Sprintf("Duration minutes [%s] (default %d): ", strings.Join(labels, "/"), fallback)

	for {
		answer, ok := promptLine(reader, label)
		if !ok {
			return 0, false
		}
		if answer == "" {
			return fallback, true
		}
		duration, err := strconv.Atoi(answer)
		if err == nil {
			if _, supported := schema.TimingTable(duration); supported {
				return duration, true
			}
		}
		s.out.Warn("Supported durations: " + strings.Join(labels, ", "))
	}
}

func (s *session) renderHistory() {
	out := s.out
	if s.book.Len() == 0 {
		out.Print(out.Gray("No playlists generated yet this session."))
		return
	}
	out.Print(out.Bold("Recent playlists:"))
	for i, entry := range s.book.Recent(5) {
		out.Print(fmt.Sprintf("  %d. %s (%d min, %s)", i+1, entry.Theme, entry.Duration, entry.CreatedAt.Format("15:04")))
	}
}

func (s *session) renderRecent() {
	if s.book.Len() > 1 {
		s.renderHistory()
	}
}

// promptLine writes the label and reads one trimmed line. ok is false once
// stdin is exhausted or unreadable.
func promptLine(reader *bufio.Scanner, label string) (string, bool) {
	fmt.Fprint(os.Stdout, label)
	if !reader.Scan() {
		fmt.Fprintln(os.Stdout)
		return "", false
	}
	return strings.TrimSpace(reader.Text()), true
}

func isYes(answer string) bool {
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
