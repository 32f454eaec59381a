package spotify

import (
	"context"
	"errors"
	"fmt"

	"yoga-playlist/internal/schema"
)

// Status tags the outcome of one song's catalog lookup.
type Status string

const (
	StatusEnriched     Status = "enriched"
	StatusUnmatched    Status = "unmatched"
	StatusLookupFailed Status = "lookup_failed"
)

// Outcome records what happened to a single song during enrichment.
type Outcome struct {
	Section string
	Name    string
	Artist  string
	Status  Status
	Err     error
}

func (o Outcome) String() string {
	label := fmt.Sprintf("%s - %s (%s)", o.Artist, o.Name, o.Section)
	switch o.Status {
	case StatusUnmatched:
		return "no catalog match for " + label
	case StatusLookupFailed:
		return fmt.Sprintf("catalog lookup failed for %s: %v", label, o.Err)
	default:
		return "enriched " + label
	}
}

// Summary aggregates per-song outcomes for one enrichment pass.
type Summary struct {
	Enriched int
	Missed   int
	Outcomes []Outcome
}

// Misses returns the outcomes that did not produce verified metadata.
func (s Summary) Misses() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Status != StatusEnriched {
			out = append(out, o)
		}
	}
	return out
}

// EnrichPlan looks up every song in the plan sequentially and attaches
// verified metadata to the ones it can match. A lookup failure or miss only
// degrades that one song; the pass always visits every song and never
// invalidates the plan. Each outcome is tagged rather than raised, so the
// caller decides what to surface.
func (c *Client) EnrichPlan(ctx context.Context, plan *schema.ClassPlan) Summary {
	var summary Summary
	for _, sectionName := range schema.SectionOrder {
		section, ok := plan.Sections[sectionName]
		if !ok {
			continue
		}
		for i := range section.Songs {
			song := &section.Songs[i]
			outcome := Outcome{Section: sectionName, Name: song.Name, Artist: song.Artist}

			track, err := c.SearchTrack(ctx, song.Name, song.Artist)
			switch {
			case errors.Is(err, ErrNoMatch):
				outcome.Status = StatusUnmatched
				summary.Missed++
			case err != nil:
				outcome.Status = StatusLookupFailed
				outcome.Err = err
				summary.Missed++
			default:
				applyTrack(song, track)
				outcome.Status = StatusEnriched
				summary.Enriched++
			}
			summary.Outcomes = append(summary.Outcomes, outcome)
		}
		plan.Sections[sectionName] = section
	}
	return summary
}

// applyTrack attaches catalog metadata to a song. The original name/artist
// are kept; the catalog-verified length overrides the generated one, which is
// the authoritative source whenever a match exists.
func applyTrack(song *schema.SongRecommendation, track Track) {
	song.SpotifyURL = track.URL
	song.PreviewURL = track.PreviewURL
	song.VerifiedName = track.Name
	song.VerifiedArtist = track.Artist
	song.Popularity = track.Popularity
	if track.DurationMs > 0 {
		song.Length = track.Length()
	}
}
