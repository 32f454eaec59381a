package cli

import (
	"context"
	"fmt"
	"time"

	"yoga-playlist/internal/ai"
	"yoga-playlist/internal/config"
	"yoga-playlist/internal/export"
	"yoga-playlist/internal/history"
	"yoga-playlist/internal/output"
	"yoga-playlist/internal/playlist"
	"yoga-playlist/internal/schema"
	"yoga-playlist/internal/spotify"
)

type sessionOptions struct {
	Strict   bool
	NoEnrich bool
	OutDir   string
}

// session holds everything one CLI invocation needs: clients, policy, output
// and the in-memory history book. The book dies with the process.
type session struct {
	cfg       config.Config
	out       *output.Output
	book      *history.Book
	generator playlist.Generator
	enricher  playlist.Enricher
	policy    schema.Policy
	outDir    string
}

func newSession(ctx context.Context, cfg config.Config, out *output.Output, opts sessionOptions) (*session, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not configured; set it in the environment or run \"yoga setup\"")
	}

	client := ai.NewClient(cfg.AnthropicAPIKey, "")
	client.SetModel(cfg.Model)
	client.SetMaxTokens(cfg.MaxTokens)

	s := &session{
		cfg:       cfg,
		out:       out,
		book:      history.NewBook(),
		generator: client,
		policy:    policyFor(opts.Strict),
		outDir:    opts.OutDir,
	}

	if !opts.NoEnrich {
		if cfg.EnrichmentAvailable() {
			s.enricher = spotify.NewClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		} else {
			out.Warn("Spotify credentials not configured; songs will not be verified against the catalog")
		}
	}
	return s, nil
}

// generate runs the pipeline once and renders the outcome.
func (s *session) generate(ctx context.Context, theme, preferences string, duration int) (playlist.Result, error) {
	s.out.Info(fmt.Sprintf("Creating your %d-minute yoga playlist for %q...", duration, theme))
	result, err := playlist.Generate(ctx, playlist.Options{
		Theme:       theme,
		Preferences: preferences,
		Duration:    duration,
		Policy:      s.policy,
		Generator:   s.generator,
		Enricher:    s.enricher,
		History:     s.book,
	})
	if err != nil {
		return playlist.Result{}, err
	}
	for _, warning := range result.Warnings {
		s.out.Warn(warning)
	}
	return result, nil
}

func (s *session) runOnce(ctx context.Context, theme, preferences string, duration int, save bool) error {
	result, err := s.generate(ctx, theme, preferences, duration)
	if err != nil {
		return err
	}

	var savedPath string
	if save {
		savedPath, err = export.Write(s.outDir, result.Plan, result.Theme, result.Duration, time.Now())
		if err != nil {
			return err
		}
	}

	if s.out.JSON {
		return s.out.EmitJSON(jsonResult(result, savedPath))
	}
	renderPlan(s.out, result)
	if savedPath != "" {
		s.out.Success("Saved " + savedPath)
	}
	return nil
}

// jsonResult shapes a run for --json output.
func jsonResult(result playlist.Result, savedPath string) map[string]any {
	payload := map[string]any{
		"theme":    result.Theme,
		"duration": result.Duration,
		"plan":     result.Plan,
	}
	durations := playlist.Aggregate(result.Plan)
	if durations.TotalKnown {
		payload["totalSeconds"] = durations.Total
	}
	if result.Enrichment != nil {
		payload["enriched"] = result.Enrichment.Enriched
		payload["missed"] = result.Enrichment.Missed
	}
	if len(result.Warnings) > 0 {
		payload["warnings"] = result.Warnings
	}
	if savedPath != "" {
		payload["savedTo"] = savedPath
	}
	return payload
}
