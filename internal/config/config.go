package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the root configuration for cv, stored in ~/.curriculo/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	API   APIConfig `json:"api"`
	Theme string    `json:"theme"`
}

// APIConfig holds the résumé backend settings.
type APIConfig struct {
	// BaseURL is the root of the REST backend, without a trailing slash.
	BaseURL string `json:"base_url"`
	// OwnerID scopes every record to one person in the backend.
	OwnerID string `json:"owner_id"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `json:"timeout_seconds"`
}

const (
	// DefaultBaseURL is the public deployment of the résumé backend.
	DefaultBaseURL = "https://curriculo-express-beige.vercel.app"
	// DefaultOwnerID is the person record the app was built for.
	DefaultOwnerID = "22"
	// DefaultTimeoutSeconds bounds requests to a slow serverless backend.
	DefaultTimeoutSeconds = 15
	// DefaultTheme is used when none is configured.
	DefaultTheme = "light"
)

// Environment variables that override the config file.
const (
	EnvHome    = "CURRICULO_HOME"
	EnvBaseURL = "CURRICULO_API_URL"
	EnvOwnerID = "CURRICULO_OWNER_ID"
	EnvTheme   = "CURRICULO_THEME"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			OwnerID:        DefaultOwnerID,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Theme: DefaultTheme,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// cv configuration – ~/.curriculo/config.json
//
// All settings are optional; the defaults below talk to the public backend.
// Environment variables (also read from a .env file in the working
// directory) override this file:
//   CURRICULO_API_URL, CURRICULO_OWNER_ID, CURRICULO_THEME
{
  // ── Résumé REST backend ──────────────────────────────────────────────────
  "api": {
    // Root URL of the backend; collections live at /educacao,
    // /experiencias and /habilidades below it.
    "base_url": "https://curriculo-express-beige.vercel.app",

    // Person record that owns every entry you create.
    "owner_id": "22",

    // Per-request timeout in seconds.
    "timeout_seconds": 15
  },

  // Colour scheme: "light" or "dark". Toggle with "t" in the UI or
  // cv theme <name>.
  "theme": "light"
}
`

// Dir returns the configuration directory: $CURRICULO_HOME or ~/.curriculo.
func Dir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".curriculo"), nil
}

// configFilePath returns the path to config.json.
func configFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads config.json, creating it with annotated defaults on first run,
// then applies .env and environment overrides. Lines starting with // are
// treated as comments and stripped before JSON parsing.
func Load() (Config, error) {
	cfg, err := loadFile()
	applyEnv(&cfg)
	return cfg, err
}

func loadFile() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	def := Default()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.OwnerID == "" {
		cfg.API.OwnerID = def.API.OwnerID
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return cfg, nil
}

// applyEnv loads ./.env without overriding variables that are already set,
// then copies the overrides into cfg.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(EnvOwnerID); v != "" {
		cfg.API.OwnerID = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Save atomically writes cfg to config.json. Comments in an existing file
// are not preserved.
func Save(cfg Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing temp config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}

// SaveTheme records theme in config.json. Environment overrides are not
// written back.
func SaveTheme(theme string) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	cfg.Theme = theme
	return Save(cfg)
}
