// Package schema defines the class plan structure a generation run must
// produce: the six fixed class sections, the per-duration timing tables, and
// the validation gate that rejects structurally incomplete plans.
package schema

import (
	"errors"
	"fmt"
)

// Canonical section names. Every plan must contain all six.
const (
	SectionGrounding   = "Grounding & Warm Up"
	SectionSunSalutes  = "Sun Salutations"
	SectionMovement1   = "Movement Series 1"
	SectionMovement2   = "Movement Series 2"
	SectionIntegration = "Integration Series"
	SectionSavasana    = "Savasana"
)

// SectionOrder lists the sections in class order. Maps don't keep order, so
// rendering and validation iterate this slice instead.
var SectionOrder = []string{
	SectionGrounding,
	SectionSunSalutes,
	SectionMovement1,
	SectionMovement2,
	SectionIntegration,
	SectionSavasana,
}

// SectionTiming is the target time range and intensity band for one section
// at a given class duration.
type SectionTiming struct {
	Range     string
	Intensity string
}

var timingTables = map[int]map[string]SectionTiming{
	45: {
		SectionGrounding:   {Range: "6-8 minutes", Intensity: "1-2"},
		SectionSunSalutes:  {Range: "2-3 minutes", Intensity: "1-3"},
		SectionMovement1:   {Range: "6-8 minutes", Intensity: "2-3"},
		SectionMovement2:   {Range: "8-10 minutes", Intensity: "2-4"},
		SectionIntegration: {Range: "6-8 minutes", Intensity: "2-4"},
		SectionSavasana:    {Range: "6-8 minutes", Intensity: "1-2"},
	},
	60: {
		SectionGrounding:   {Range: "8-10 minutes", Intensity: "1-2"},
		SectionSunSalutes:  {Range: "2-3 minutes", Intensity: "1-3"},
		SectionMovement1:   {Range: "8-10 minutes", Intensity: "2-3"},
		SectionMovement2:   {Range: "10-12 minutes", Intensity: "2-4"},
		SectionIntegration: {Range: "8-10 minutes", Intensity: "2-4"},
		SectionSavasana:    {Range: "8-10 minutes", Intensity: "1-2"},
	},
	75: {
		SectionGrounding:   {Range: "10-12 minutes", Intensity: "1-2"},
		SectionSunSalutes:  {Range: "3-4 minutes", Intensity: "1-3"},
		SectionMovement1:   {Range: "10-12 minutes", Intensity: "2-3"},
		SectionMovement2:   {Range: "12-15 minutes", Intensity: "2-4"},
		SectionIntegration: {Range: "10-12 minutes", Intensity: "2-4"},
		SectionSavasana:    {Range: "10-12 minutes", Intensity: "1-2"},
	},
}

// SupportedDurations returns the class lengths (minutes) with a timing table.
func SupportedDurations() []int {
	return []int{45, 60, 75}
}

// TimingTable returns the per-section timing for a class duration.
func TimingTable(duration int) (map[string]SectionTiming, bool) {
	table, ok := timingTables[duration]
	return table, ok
}

// SongRecommendation is one generated song. Name/Artist/Length come from the
// generator; the Verified*/URL/Popularity fields are only set when catalog
// enrichment found a match and are omitted from JSON otherwise.
type SongRecommendation struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	Length    string `json:"length"`
	Intensity int    `json:"intensity"`
	Reason    string `json:"reason"`

	SpotifyURL     string `json:"spotify_url,omitempty"`
	PreviewURL     string `json:"preview_url,omitempty"`
	VerifiedName   string `json:"verified_name,omitempty"`
	VerifiedArtist string `json:"verified_artist,omitempty"`
	Popularity     int    `json:"popularity,omitempty"`
}

// Verified reports whether catalog enrichment succeeded for this song.
func (s SongRecommendation) Verified() bool {
	return s.SpotifyURL != ""
}

// SectionPlan holds the generated songs for one class section together with
// the duration and intensity band the generator was told to honor.
type SectionPlan struct {
	Duration  string               `json:"duration"`
	Intensity string               `json:"intensity"`
	Songs     []SongRecommendation `json:"songs"`
}

// ClassPlan is the complete playlist for a class, keyed by section name.
type ClassPlan struct {
	Sections map[string]SectionPlan `json:"sections"`
}

// Copy returns a deep copy of the plan. History entries store copies so later
// enrichment or rendering can't mutate them.
func (p ClassPlan) Copy() ClassPlan {
	out := ClassPlan{Sections: make(map[string]SectionPlan, len(p.Sections))}
	for name, section := range p.Sections {
		songs := make([]SongRecommendation, len(section.Songs))
		copy(songs, section.Songs)
		section.Songs = songs
		out.Sections[name] = section
	}
	return out
}

// Policy controls how strictly a plan is validated. The song count is always
// described to the generator as a range; EnforceCount decides whether a count
// outside [MinSongs, MaxSongs] is an error or merely worth a warning.
type Policy struct {
	MinSongs     int
	MaxSongs     int
	EnforceCount bool
}

var (
	// Tolerant accepts 2-3 songs per section and treats count drift as a warning.
	Tolerant = Policy{MinSongs: 2, MaxSongs: 3}
	// Strict requires exactly 3 songs per section.
	Strict = Policy{MinSongs: 3, MaxSongs: 3, EnforceCount: true}
)

// ErrSchema is the sentinel all validation failures match via errors.Is.
var ErrSchema = errors.New("schema violation")

// MissingSectionError reports the first canonical section absent from a plan.
type MissingSectionError struct {
	Section string
}

func (e MissingSectionError) Error() string {
	return fmt.Sprintf("plan is missing required section %q", e.Section)
}

func (e MissingSectionError) Is(target error) bool {
	return target == ErrSchema
}

// SongCountError reports a section whose song count violates a strict policy.
type SongCountError struct {
	Section string
	Count   int
	Min     int
	Max     int
}

func (e SongCountError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("section %q has %d songs, want exactly %d", e.Section, e.Count, e.Min)
	}
	return fmt.Sprintf("section %q has %d songs, want %d-%d", e.Section, e.Count, e.Min, e.Max)
}

func (e SongCountError) Is(target error) bool {
	return target == ErrSchema
}

// Validate checks that every canonical section is present, and, when the
// policy enforces counts, that each section's song count is in range. The
// first violation found (in class order) is returned.
func Validate(plan ClassPlan, policy Policy) error {
	for _, name := range SectionOrder {
		if _, ok := plan.Sections[name]; !ok {
			return MissingSectionError{Section: name}
		}
	}
	if !policy.EnforceCount {
		return nil
	}
	for _, name := range SectionOrder {
		count := len(plan.Sections[name].Songs)
		if count < policy.MinSongs || count > policy.MaxSongs {
			return SongCountError{Section: name, Count: count, Min: policy.MinSongs, Max: policy.MaxSongs}
		}
	}
	return nil
}

// CountWarnings returns a human-readable warning per section whose song count
// falls outside the policy range. Used by the tolerant path, which renders
// such plans anyway.
func CountWarnings(plan ClassPlan, policy Policy) []string {
	var warnings []string
	for _, name := range SectionOrder {
		section, ok := plan.Sections[name]
		if !ok {
			continue
		}
		count := len(section.Songs)
		if count < policy.MinSongs || count > policy.MaxSongs {
			warnings = append(warnings, fmt.Sprintf("%s: %d songs (expected %d-%d)", name, count, policy.MinSongs, policy.MaxSongs))
		}
	}
	return warnings
}
