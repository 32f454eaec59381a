package cli

import (
	"testing"

	"yoga-playlist/internal/playlist"
	"yoga-playlist/internal/schema"
	"yoga-playlist/internal/spotify"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	long := "a reason that is definitely longer than ten characters"
	got := truncate(long, 10)
	if len([]rune(got)) != 10 {
		t.Fatalf("truncated length = %d, want 10", len([]rune(got)))
	}
}

func TestPolicyFor(t *testing.T) {
	t.Parallel()

	if policyFor(true) != schema.Strict {
		t.Fatalf("strict flag must select the strict policy")
	}
	if policyFor(false) != schema.Tolerant {
		t.Fatalf("default must be tolerant")
	}
}

func TestJSONResult(t *testing.T) {
	t.Parallel()

	plan := schema.ClassPlan{Sections: map[string]schema.SectionPlan{}}
	for _, name := range schema.SectionOrder {
		plan.Sections[name] = schema.SectionPlan{
			Songs: []schema.SongRecommendation{{Name: "s", Artist: "a", Length: "3:00"}},
		}
	}
	result := playlist.Result{
		Plan:       plan,
		Theme:      "lo-fi",
		Duration:   60,
		Enrichment: &spotify.Summary{Enriched: 5, Missed: 1},
	}

	payload := jsonResult(result, "/tmp/out.json")
	if payload["theme"] != "lo-fi" || payload["duration"] != 60 {
		t.Fatalf("metadata missing: %v", payload)
	}
	if payload["totalSeconds"] != 6*180 {
		t.Fatalf("totalSeconds = %v", payload["totalSeconds"])
	}
	if payload["enriched"] != 5 || payload["missed"] != 1 {
		t.Fatalf("enrichment counts missing: %v", payload)
	}
	if payload["savedTo"] != "/tmp/out.json" {
		t.Fatalf("savedTo missing")
	}

	// A song without a length makes the total unavailable, not wrong.
	section := plan.Sections[schema.SectionSavasana]
	section.Songs[0].Length = ""
	plan.Sections[schema.SectionSavasana] = section
	payload = jsonResult(playlist.Result{Plan: plan, Theme: "lo-fi", Duration: 60}, "")
	if _, ok := payload["totalSeconds"]; ok {
		t.Fatalf("totalSeconds must be omitted when unknown")
	}
}
