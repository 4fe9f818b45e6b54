// Package config manages the user-wide configuration file at
// ~/.config/bitiacora/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-wide settings.
type Config struct {
	Provider   string           `toml:"provider"`
	Model      string           `toml:"model"`
	UserName   string           `toml:"user_name"`
	DataDir    string           `toml:"data_dir"`
	Generation GenerationConfig `toml:"generation"`
	Search     SearchConfig     `toml:"search"`
}

// GenerationConfig controls sampling for the question-answering assistant
// and the interview follow-up generator.
type GenerationConfig struct {
	Temperature     float64 `toml:"temperature"`
	TopP            float64 `toml:"top_p"`
	TopK            int     `toml:"top_k"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
}

// SearchConfig controls how many memories and history turns feed prompts.
type SearchConfig struct {
	TopK         int `toml:"top_k"`
	HistoryTurns int `toml:"history_turns"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		Provider: "gemini",
		Generation: GenerationConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
		Search: SearchConfig{
			TopK:         10,
			HistoryTurns: 6,
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bitiacora", "config.toml"), nil
}

// Load loads the config, applying defaults for any missing values.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine home dir.
	}
	return loadFrom(path, cfg)
}

func loadFrom(path string, cfg Config) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // File doesn't exist yet, use defaults.
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return saveTo(path, cfg)
}

func saveTo(path string, cfg Config) error {
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

// DBPath returns the path to the journal database, honoring DataDir
// when set.
func DBPath(cfg Config) (string, error) {
	if cfg.DataDir != "" {
		return filepath.Join(cfg.DataDir, "bitiacora.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "bitiacora", "bitiacora.db"), nil
}
