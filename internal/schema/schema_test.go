package schema

import (
	"errors"
	"testing"
)

func completePlan(songsPerSection int) ClassPlan {
	plan := ClassPlan{Sections: map[string]SectionPlan{}}
	for _, name := range SectionOrder {
		songs := make([]SongRecommendation, 0, songsPerSection)
		for i := 0; i < songsPerSection; i++ {
			songs = append(songs, SongRecommendation{
				Name:      "Song",
				Artist:    "Artist",
				Length:    "3:30",
				Intensity: 2,
				Reason:    "fits the section",
			})
		}
		plan.Sections[name] = SectionPlan{Duration: "8-10 minutes", Intensity: "1-2", Songs: songs}
	}
	return plan
}

func TestTimingTableAllDurations(t *testing.T) {
	t.Parallel()

	for _, duration := range SupportedDurations() {
		table, ok := TimingTable(duration)
		if !ok {
			t.Fatalf("no timing table for %d minutes", duration)
		}
		if len(table) != len(SectionOrder) {
			t.Fatalf("duration %d: got %d sections, want %d", duration, len(table), len(SectionOrder))
		}
		for _, name := range SectionOrder {
			timing, ok := table[name]
			if !ok {
				t.Fatalf("duration %d: missing section %q", duration, name)
			}
			if timing.Range == "" {
				t.Fatalf("duration %d: empty range for %q", duration, name)
			}
			if timing.Intensity == "" {
				t.Fatalf("duration %d: empty intensity band for %q", duration, name)
			}
		}
	}
}

func TestTimingTableUnsupported(t *testing.T) {
	t.Parallel()

	if _, ok := TimingTable(90); ok {
		t.Fatalf("expected no table for 90 minutes")
	}
}

func TestValidateMissingSection(t *testing.T) {
	t.Parallel()

	for _, missing := range SectionOrder {
		plan := completePlan(3)
		delete(plan.Sections, missing)

		err := Validate(plan, Tolerant)
		if err == nil {
			t.Fatalf("expected error with %q missing", missing)
		}
		if !errors.Is(err, ErrSchema) {
			t.Fatalf("expected schema error, got %v", err)
		}
		var mse MissingSectionError
		if !errors.As(err, &mse) {
			t.Fatalf("expected MissingSectionError, got %T", err)
		}
		if mse.Section != missing {
			t.Fatalf("error names %q, want %q", mse.Section, missing)
		}
	}
}

func TestValidateEmptySongsTolerant(t *testing.T) {
	t.Parallel()

	plan := completePlan(0)
	if err := Validate(plan, Tolerant); err != nil {
		t.Fatalf("tolerant policy should accept empty song lists: %v", err)
	}
	if warnings := CountWarnings(plan, Tolerant); len(warnings) != len(SectionOrder) {
		t.Fatalf("expected %d warnings, got %d", len(SectionOrder), len(warnings))
	}
}

func TestValidateStrictCount(t *testing.T) {
	t.Parallel()

	plan := completePlan(2)
	err := Validate(plan, Strict)
	if err == nil {
		t.Fatalf("strict policy should reject 2 songs per section")
	}
	var sce SongCountError
	if !errors.As(err, &sce) {
		t.Fatalf("expected SongCountError, got %T", err)
	}
	if sce.Section != SectionGrounding {
		t.Fatalf("expected first section in class order, got %q", sce.Section)
	}

	if err := Validate(completePlan(3), Strict); err != nil {
		t.Fatalf("strict policy should accept 3 songs: %v", err)
	}
}

func TestCopyIsDeep(t *testing.T) {
	t.Parallel()

	plan := completePlan(3)
	snapshot := plan.Copy()

	section := plan.Sections[SectionSavasana]
	section.Songs[0].SpotifyURL = "https://open.spotify.com/track/abc"
	plan.Sections[SectionSavasana] = section

	if snapshot.Sections[SectionSavasana].Songs[0].SpotifyURL != "" {
		t.Fatalf("copy shares song storage with the original")
	}
}
