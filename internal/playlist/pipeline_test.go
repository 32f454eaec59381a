package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"yoga-playlist/internal/ai"
	"yoga-playlist/internal/history"
	"yoga-playlist/internal/prompt"
	"yoga-playlist/internal/schema"
	"yoga-playlist/internal/spotify"
)

type fakeGenerator struct {
	response string
	err      error
	gotUser  string
}

func (f *fakeGenerator) Complete(_ context.Context, system, user string) (string, error) {
	f.gotUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeEnricher struct {
	summary spotify.Summary
	called  bool
}

func (f *fakeEnricher) EnrichPlan(_ context.Context, plan *schema.ClassPlan) spotify.Summary {
	f.called = true
	for name, section := range plan.Sections {
		for i := range section.Songs {
			section.Songs[i].SpotifyURL = "https://open.spotify.com/track/x"
		}
		plan.Sections[name] = section
	}
	return f.summary
}

func generatorJSON(t *testing.T) string {
	t.Helper()
	plan := schema.ClassPlan{Sections: map[string]schema.SectionPlan{}}
	for _, name := range schema.SectionOrder {
		plan.Sections[name] = schema.SectionPlan{
			Duration:  "8-10 minutes",
			Intensity: "1-2",
			Songs: []schema.SongRecommendation{
				{Name: "One", Artist: "A", Length: "3:30", Intensity: 2, Reason: "r"},
				{Name: "Two", Artist: "B", Length: "4:05", Intensity: 2, Reason: "r"},
			},
		}
	}
	b, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestGenerateEndToEnd(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "Sure! Here you go:\n" + generatorJSON(t)}
	enr := &fakeEnricher{summary: spotify.Summary{Enriched: 12}}
	book := history.NewBook()

	result, err := Generate(context.Background(), Options{
		Theme:     "lo-fi",
		Duration:  60,
		Policy:    schema.Tolerant,
		Generator: gen,
		Enricher:  enr,
		History:   book,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(gen.gotUser, "lo-fi") {
		t.Fatalf("prompt missing theme: %q", gen.gotUser)
	}
	if !enr.called {
		t.Fatalf("enricher not invoked")
	}
	if len(result.Plan.Sections) != 6 {
		t.Fatalf("sections = %d", len(result.Plan.Sections))
	}
	for _, name := range schema.SectionOrder {
		for _, song := range result.Plan.Sections[name].Songs {
			if !song.Verified() {
				t.Fatalf("song %s in %s not enriched", song.Name, name)
			}
		}
	}
	if book.Len() != 1 {
		t.Fatalf("history entries = %d, want 1", book.Len())
	}
	if result.Enrichment == nil || result.Enrichment.Enriched != 12 {
		t.Fatalf("enrichment summary not propagated: %+v", result.Enrichment)
	}
}

func TestGenerateEmptyTheme(t *testing.T) {
	t.Parallel()

	book := history.NewBook()
	gen := &fakeGenerator{response: "should not be called"}
	_, err := Generate(context.Background(), Options{
		Theme: "  ", Duration: 60, Policy: schema.Tolerant, Generator: gen, History: book,
	})
	if !errors.Is(err, prompt.ErrEmptyTheme) {
		t.Fatalf("expected ErrEmptyTheme, got %v", err)
	}
	if gen.gotUser != "" {
		t.Fatalf("generator must not be called on invalid input")
	}
	if book.Len() != 0 {
		t.Fatalf("history must stay untouched")
	}
}

func TestGenerateServiceFailureLeavesHistory(t *testing.T) {
	t.Parallel()

	book := history.NewBook()
	book.Append("earlier", 60, schema.ClassPlan{})

	genErr := &ai.GenerationError{Err: errors.New("rate limited")}
	_, err := Generate(context.Background(), Options{
		Theme: "lo-fi", Duration: 60, Policy: schema.Tolerant,
		Generator: &fakeGenerator{err: genErr},
		History:   book,
	})
	var ge *ai.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected generation error, got %v", err)
	}
	if book.Len() != 1 {
		t.Fatalf("prior history must be untouched, len = %d", book.Len())
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	t.Parallel()

	book := history.NewBook()
	_, err := Generate(context.Background(), Options{
		Theme: "lo-fi", Duration: 60, Policy: schema.Tolerant,
		Generator: &fakeGenerator{response: "I'm sorry, I can't produce JSON today."},
		History:   book,
	})
	if !errors.Is(err, ai.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if book.Len() != 0 {
		t.Fatalf("no history entry on malformed response")
	}
}

func TestGenerateWithoutEnricher(t *testing.T) {
	t.Parallel()

	result, err := Generate(context.Background(), Options{
		Theme: "lo-fi", Duration: 60, Policy: schema.Tolerant,
		Generator: &fakeGenerator{response: generatorJSON(t)},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Enrichment != nil {
		t.Fatalf("no enrichment summary expected")
	}
	for _, song := range result.Plan.Sections[schema.SectionSavasana].Songs {
		if song.Verified() {
			t.Fatalf("songs must stay unenriched")
		}
	}
}
