package cli

import (
	"fmt"
	"text/tabwriter"

	"yoga-playlist/internal/output"
	"yoga-playlist/internal/playlist"
	"yoga-playlist/internal/schema"
)

const maxReasonWidth = 60

// renderPlan prints the plan section by section with per-section and total
// durations. Verified songs are marked and show their canonical names.
func renderPlan(out *output.Output, result playlist.Result) {
	if out.JSON || out.Quiet {
		return
	}

	durations := playlist.Aggregate(result.Plan)

	out.Print("")
	out.Print(out.Bold(fmt.Sprintf("Your %d-minute %q yoga playlist", result.Duration, result.Theme)))

	for _, name := range schema.SectionOrder {
		section, ok := result.Plan.Sections[name]
		if !ok {
			continue
		}
		out.Print("")
		out.Print(out.Bold(fmt.Sprintf("%s (%s | Intensity %s)", name, section.Duration, section.Intensity)))

		w := tabwriter.NewWriter(out.Stdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  SONG\tARTIST\tLENGTH\tINT\tWHY")
		for _, song := range section.Songs {
			songName, artist := song.Name, song.Artist
			if song.VerifiedName != "" {
				songName = song.VerifiedName
			}
			if song.VerifiedArtist != "" {
				artist = song.VerifiedArtist
			}
			marker := ""
			if song.Verified() {
				marker = " " + out.Green("✓")
			}
			fmt.Fprintf(w, "  %s%s\t%s\t%s\t%d\t%s\n", songName, marker, artist, song.Length, song.Intensity, truncate(song.Reason, maxReasonWidth))
		}
		_ = w.Flush()

		if seconds, ok := durations.Sections[name]; ok {
			out.Print(out.Gray("  Section duration: " + playlist.FormatSeconds(seconds)))
		} else {
			out.Print(out.Gray("  Section duration: unavailable (missing song lengths)"))
		}
	}

	out.Print("")
	if durations.TotalKnown {
		out.Success("Total playlist duration: " + playlist.FormatSeconds(durations.Total))
	} else {
		out.Warn("Total playlist duration unavailable: some songs have no usable length")
	}

	if result.Enrichment != nil {
		out.Info(out.Gray(fmt.Sprintf("Catalog: %d verified, %d unmatched", result.Enrichment.Enriched, result.Enrichment.Missed)))
	}
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-1]) + "…"
}
