// Package cli wires the pipeline into a cobra command tree: the root command
// generates playlists (one-shot or interactively), and setup stores
// credentials.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"yoga-playlist/internal/config"
	"yoga-playlist/internal/output"
	"yoga-playlist/internal/playlist"
	"yoga-playlist/internal/schema"
)

const version = "1.0.0"

// UsageError marks errors the user can fix by changing arguments; main exits
// with a distinct code for these.
type UsageError struct {
	Msg string
}

func (e UsageError) Error() string {
	return e.Msg
}

type rootFlags struct {
	Preferences string
	Duration    int
	Strict      bool
	NoEnrich    bool
	DryRun      bool
	Save        bool
	OutDir      string
	JSON        bool
	Plain       bool
	Quiet       bool
	Verbose     bool
	NoColor     bool
	NoInput     bool
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:     "yoga [theme]",
	Short:   "Generate themed music playlists for yoga classes",
	Long: `yoga asks an LLM for a playlist covering the six sections of a timed yoga
class, validates the reply, and (when Spotify credentials are configured)
verifies every song against the catalog.

With no theme argument it starts an interactive session that keeps a history
of the playlists generated so far.`,
	Example: `  yoga "lo-fi"
  yoga "calm edm" -p "instrumental only" -d 45 --save
  echo "country" | yoga --json`,
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.SortFlags = false
	f.StringVarP(&flags.Preferences, "preferences", "p", "", "Additional preferences, e.g. \"female vocals, instrumental only\"")
	f.IntVarP(&flags.Duration, "duration", "d", 0, "Class duration in minutes: 45, 60 or 75")
	f.BoolVar(&flags.Strict, "strict", false, "Require exactly 3 songs per section")
	f.BoolVar(&flags.NoEnrich, "no-enrich", false, "Skip Spotify catalog enrichment")
	f.BoolVar(&flags.DryRun, "dry-run", false, "Print the prompt without calling the generation service")
	f.BoolVarP(&flags.Save, "save", "s", false, "Write the playlist JSON file after generating")
	f.StringVarP(&flags.OutDir, "out", "o", "", "Directory for saved playlist files")
	f.BoolVar(&flags.JSON, "json", false, "Output machine-readable JSON")
	f.BoolVar(&flags.Plain, "plain", false, "Disable decorative formatting")
	f.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose diagnostics")
	f.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	f.BoolVar(&flags.NoInput, "no-input", false, "Disable stdin reads/prompts")

	rootCmd.AddCommand(setupCmd)
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	out := output.New(output.Options{
		JSON:    flags.JSON,
		Plain:   flags.Plain,
		Quiet:   flags.Quiet,
		Verbose: flags.Verbose,
		NoColor: flags.NoColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb",
	})

	duration := flags.Duration
	if duration == 0 {
		duration = cfg.DefaultDuration
	}
	outDir := flags.OutDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	theme := strings.TrimSpace(strings.Join(args, " "))
	if theme == "" && !flags.NoInput && !term.IsTerminal(int(os.Stdin.Fd())) {
		theme = readThemeFromStdin()
	}

	if flags.DryRun {
		if theme == "" {
			return UsageError{Msg: "Missing theme for --dry-run.\nExample: yoga \"lo-fi\" --dry-run"}
		}
		system, user, err := playlist.BuildPrompt(playlist.Options{
			Theme: theme, Preferences: flags.Preferences, Duration: duration,
		})
		if err != nil {
			return err
		}
		if flags.JSON {
			return out.EmitJSON(map[string]any{"system": system, "prompt": user})
		}
		out.Print(out.Bold("System instruction:"))
		out.Print(system)
		out.Print("")
		out.Print(out.Bold("Prompt:"))
		out.Print(user)
		return nil
	}

	s, err := newSession(ctx, cfg, out, sessionOptions{
		Strict:   flags.Strict,
		NoEnrich: flags.NoEnrich,
		OutDir:   outDir,
	})
	if err != nil {
		return err
	}

	if theme != "" {
		return s.runOnce(ctx, theme, flags.Preferences, duration, flags.Save)
	}

	if flags.NoInput || !term.IsTerminal(int(os.Stdin.Fd())) {
		return UsageError{Msg: strings.Join([]string{
			"Missing theme.",
			"Examples:",
			"  yoga \"lo-fi\"",
			"  yoga \"calm edm\" -p \"instrumental only\" -d 45",
			"  echo \"country\" | yoga",
			"Run with --help for usage.",
		}, "\n")}
	}
	return s.runInteractive(ctx, duration)
}

func policyFor(strict bool) schema.Policy {
	if strict {
		return schema.Strict
	}
	return schema.Tolerant
}

func readThemeFromStdin() string {
	var b strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(b.String())
}
