// Package config resolves credentials and defaults. Environment variables
// win; anything unset falls back to the secrets/defaults files under
// ~/.config/yoga-playlist/.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	secretsFileName  = "secrets.json"
	defaultsFileName = "config.json"

	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 1500
	defaultDuration  = 60
)

type Config struct {
	AnthropicAPIKey     string
	SpotifyClientID     string
	SpotifyClientSecret string

	Model           string
	MaxTokens       int
	DefaultDuration int
	OutputDir       string
}

// EnrichmentAvailable reports whether both catalog credentials resolved.
func (c Config) EnrichmentAvailable() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

// Secrets is the on-disk credential store written by the setup command.
type Secrets struct {
	AnthropicAPIKey     string `json:"anthropicApiKey"`
	SpotifyClientID     string `json:"spotifyClientId"`
	SpotifyClientSecret string `json:"spotifyClientSecret"`
}

type defaultsFile struct {
	Model           string `json:"model"`
	MaxTokens       int    `json:"maxTokens"`
	DefaultDuration int    `json:"defaultDuration"`
	OutputDir       string `json:"outputDir"`
}

func init() {
	_ = godotenv.Load()
}

// Load resolves the full configuration for this process.
func Load() Config {
	dir, err := Dir()
	if err != nil {
		dir = ""
	}
	return loadFrom(dir)
}

func loadFrom(dir string) Config {
	var secrets Secrets
	var defaults defaultsFile
	if dir != "" {
		secrets = readSecrets(filepath.Join(dir, secretsFileName))
		defaults = readDefaults(filepath.Join(dir, defaultsFileName))
	}

	cfg := Config{
		AnthropicAPIKey:     firstNonEmpty(os.Getenv("ANTHROPIC_API_KEY"), secrets.AnthropicAPIKey),
		SpotifyClientID:     firstNonEmpty(os.Getenv("SPOTIFY_CLIENT_ID"), secrets.SpotifyClientID),
		SpotifyClientSecret: firstNonEmpty(os.Getenv("SPOTIFY_CLIENT_SECRET"), secrets.SpotifyClientSecret),
		Model:               firstNonEmpty(os.Getenv("YOGA_MODEL"), defaults.Model, defaultModel),
		MaxTokens:           defaults.MaxTokens,
		DefaultDuration:     defaults.DefaultDuration,
		OutputDir:           firstNonEmpty(os.Getenv("YOGA_OUTPUT_DIR"), defaults.OutputDir),
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = defaultDuration
	}
	return cfg
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "yoga-playlist"), nil
}

// SaveSecrets writes the credential store, creating the directory if needed.
// The file is user-only since it holds API credentials.
func SaveSecrets(s Secrets) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return saveSecretsTo(dir, s)
}

func saveSecretsTo(dir string, s Secrets) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	buf, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	path := filepath.Join(dir, secretsFileName)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return path, nil
}

// CurrentSecrets returns whatever the secrets file currently holds, without
// applying environment overrides. Used by setup to offer keep-current.
func CurrentSecrets() Secrets {
	dir, err := Dir()
	if err != nil {
		return Secrets{}
	}
	return readSecrets(filepath.Join(dir, secretsFileName))
}

func readSecrets(path string) Secrets {
	b, err := os.ReadFile(path)
	if err != nil {
		return Secrets{}
	}
	var s Secrets
	if err := json.Unmarshal(b, &s); err != nil {
		return Secrets{}
	}
	return s
}

func readDefaults(path string) defaultsFile {
	b, err := os.ReadFile(path)
	if err != nil {
		return defaultsFile{}
	}
	var d defaultsFile
	if err := json.Unmarshal(b, &d); err != nil {
		return defaultsFile{}
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
