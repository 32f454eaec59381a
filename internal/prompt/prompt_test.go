package prompt

import (
	"errors"
	"strings"
	"testing"

	"yoga-playlist/internal/schema"
)

func TestBuildEmptyTheme(t *testing.T) {
	t.Parallel()

	if _, err := Build("", "", 60); !errors.Is(err, ErrEmptyTheme) {
		t.Fatalf("expected ErrEmptyTheme, got %v", err)
	}
	if _, err := Build("   ", "", 60); !errors.Is(err, ErrEmptyTheme) {
		t.Fatalf("whitespace theme: expected ErrEmptyTheme, got %v", err)
	}
}

func TestBuildUnsupportedDuration(t *testing.T) {
	t.Parallel()

	if _, err := Build("lo-fi", "", 90); err == nil {
		t.Fatalf("expected error for unsupported duration")
	}
}

func TestBuildEmbedsTimingTable(t *testing.T) {
	t.Parallel()

	for _, duration := range schema.SupportedDurations() {
		got, err := Build("lo-fi", "", duration)
		if err != nil {
			t.Fatalf("duration %d: %v", duration, err)
		}
		table, _ := schema.TimingTable(duration)
		for _, name := range schema.SectionOrder {
			if !strings.Contains(got, name) {
				t.Fatalf("duration %d: prompt missing section %q", duration, name)
			}
			if !strings.Contains(got, table[name].Range) {
				t.Fatalf("duration %d: prompt missing range for %q", duration, name)
			}
		}
	}
}

func TestBuildIncludesThemeAndPreferences(t *testing.T) {
	t.Parallel()

	got, err := Build("calm edm", "instrumental only", 60)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(got, "calm edm") {
		t.Fatalf("prompt missing theme")
	}
	if !strings.Contains(got, "instrumental only") {
		t.Fatalf("prompt missing preferences")
	}
	if !strings.Contains(got, "60-minute") {
		t.Fatalf("prompt missing duration")
	}

	noPrefs, err := Build("calm edm", "  ", 60)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(noPrefs, "Additional preferences") {
		t.Fatalf("blank preferences should be omitted")
	}
}
