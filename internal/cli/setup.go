package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"yoga-playlist/internal/config"
	"yoga-playlist/internal/output"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store API credentials in the local secrets file",
	Long: `setup collects the Anthropic API key and, optionally, Spotify client
credentials, and writes them to ~/.config/yoga-playlist/secrets.json.
Environment variables always take precedence over the stored values.
Press Enter at any prompt to keep the currently stored value.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := output.New(output.Options{
		NoColor: os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb",
	})
	reader := bufio.NewScanner(os.Stdin)
	current := config.CurrentSecrets()

	out.Print(out.Bold("yoga setup"))
	out.Print("Credentials are stored in the local config directory; environment variables override them.")
	out.Print("")

	anthropicKey, err := readSecret(reader, "Anthropic API key", current.AnthropicAPIKey != "")
	if err != nil {
		return err
	}
	if anthropicKey != "" {
		current.AnthropicAPIKey = anthropicKey
	}

	out.Print("")
	out.Print("Spotify credentials enable catalog verification of every song (optional).")
	clientID, ok := promptLine(reader, keepLabel("Spotify client ID", current.SpotifyClientID != ""))
	if !ok {
		return fmt.Errorf("stdin closed")
	}
	if clientID != "" {
		current.SpotifyClientID = clientID
	}
	clientSecret, err := readSecret(reader, "Spotify client secret", current.SpotifyClientSecret != "")
	if err != nil {
		return err
	}
	if clientSecret != "" {
		current.SpotifyClientSecret = clientSecret
	}

	if current.AnthropicAPIKey == "" {
		out.Warn("No Anthropic API key stored; playlist generation will not work until one is configured.")
	}

	path, err := config.SaveSecrets(current)
	if err != nil {
		return err
	}
	out.Success("Credentials saved to " + path)
	return nil
}

func keepLabel(name string, hasCurrent bool) string {
	if hasCurrent {
		return name + " [stored, Enter to keep]: "
	}
	return name + ": "
}

// readSecret reads without echo when stdin is a terminal, else falls back to
// a plain line read so piped setup still works.
func readSecret(reader *bufio.Scanner, name string, hasCurrent bool) (string, error) {
	label := keepLabel(name, hasCurrent)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		value, ok := promptLine(reader, label)
		if !ok {
			return "", fmt.Errorf("stdin closed")
		}
		return value, nil
	}

	fmt.Fprint(os.Stdout, label)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
