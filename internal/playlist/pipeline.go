// Package playlist runs the generation pipeline: build the prompt, call the
// generation service, parse and validate the reply, then optionally enrich
// every song against the catalog.
package playlist

import (
	"context"
	"fmt"

	"yoga-playlist/internal/ai"
	"yoga-playlist/internal/history"
	"yoga-playlist/internal/prompt"
	"yoga-playlist/internal/schema"
	"yoga-playlist/internal/spotify"
)

// Generator produces a raw completion for a system/user prompt pair.
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Enricher resolves a plan's songs against a music catalog.
type Enricher interface {
	EnrichPlan(ctx context.Context, plan *schema.ClassPlan) spotify.Summary
}

// Options configures one pipeline invocation.
type Options struct {
	Theme       string
	Preferences string
	Duration    int
	Policy      schema.Policy

	Generator Generator
	Enricher  Enricher      // nil disables enrichment
	History   *history.Book // nil disables history recording
}

// Result is a completed pipeline run.
type Result struct {
	Plan       schema.ClassPlan
	Theme      string
	Duration   int
	Warnings   []string
	Enrichment *spotify.Summary
}

// Generate runs the pipeline once. Any fatal error (empty theme, service
// failure, malformed or incomplete response) aborts before history is
// touched; enrichment misses degrade individual songs and are reported in
// the result instead.
func Generate(ctx context.Context, opts Options) (Result, error) {
	user, err := prompt.Build(opts.Theme, opts.Preferences, opts.Duration)
	if err != nil {
		return Result{}, err
	}

	raw, err := opts.Generator.Complete(ctx, prompt.System, user)
	if err != nil {
		return Result{}, err
	}

	plan, err := ai.ParsePlan(raw, opts.Policy)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Plan:     plan,
		Theme:    opts.Theme,
		Duration: opts.Duration,
		Warnings: schema.CountWarnings(plan, opts.Policy),
	}

	if opts.Enricher != nil {
		summary := opts.Enricher.EnrichPlan(ctx, &result.Plan)
		for _, miss := range summary.Misses() {
			result.Warnings = append(result.Warnings, miss.String())
		}
		result.Enrichment = &summary
	}

	if opts.History != nil {
		opts.History.Append(opts.Theme, opts.Duration, result.Plan)
	}
	return result, nil
}

// BuildPrompt exposes the exact prompt a run would send, for dry runs.
func BuildPrompt(opts Options) (system, user string, err error) {
	user, err = prompt.Build(opts.Theme, opts.Preferences, opts.Duration)
	if err != nil {
		return "", "", fmt.Errorf("build prompt: %w", err)
	}
	return prompt.System, user, nil
}
