// Package config manages the snip configuration file
// (~/.config/snip/config.toml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/snip-dev/snip/internal/search"
)

// Config holds user-wide settings.
type Config struct {
	// DatabasePath locates the SQLite snippet database.
	DatabasePath string `toml:"database_path"`
	// Editor overrides $VISUAL/$EDITOR for add/edit commands.
	Editor string `toml:"editor"`
	// DefaultLimit is applied to searches that do not set one.
	DefaultLimit int `toml:"default_limit"`
	// Languages are the recognised language tags, used to validate the
	// language filter before it reaches the engine.
	Languages []string `toml:"languages"`
	// Search holds the scoring weights for the ranking engine.
	Search search.Weights `toml:"search"`
}

// Default returns sensible defaults.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DatabasePath: filepath.Join(home, ".local", "share", "snip", "snippets.db"),
		DefaultLimit: 20,
		Languages: []string{
			"auto", "bash", "c", "cpp", "csharp", "css", "go", "html",
			"java", "javascript", "json", "kotlin", "lua", "markdown",
			"php", "python", "ruby", "rust", "sql", "swift", "toml",
			"typescript", "xml", "yaml",
		},
		Search: search.DefaultWeights(),
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "snip", "config.toml"), nil
}

// Load reads the config file, applying defaults for any missing values.
// A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine home dir.
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // File doesn't exist yet — use defaults.
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load: %w", err)
	}

	// Let the environment override the database location.
	if v := os.Getenv("SNIP_DB"); v != "" {
		cfg.DatabasePath = v
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EditorCommand returns the editor to use for add/edit.
func (c Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if v := os.Getenv("EDITOR"); v != "" {
		return v
	}
	return "vim"
}

// KnownLanguage reports whether the given language tag is recognised.
// The engine itself treats language as opaque; this is validation for
// the filter value on the way in.
func (c Config) KnownLanguage(language string) bool {
	language = strings.ToLower(strings.TrimSpace(language))
	for _, l := range c.Languages {
		if l == language {
			return true
		}
	}
	return false
}
