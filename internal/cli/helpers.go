package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/db"
	"github.com/angeloromano11/bitiacora/internal/genai"
	"github.com/angeloromano11/bitiacora/internal/keystore"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

// envKeyNames maps a provider to its conventional API key variable.
var envKeyNames = map[string]string{
	genai.ProviderGemini: "GEMINI_API_KEY",
	genai.ProviderClaude: "ANTHROPIC_API_KEY",
	genai.ProviderOpenAI: "OPENAI_API_KEY",
}

// openStore opens the journal database for the given config, creating
// the data directory on first use.
func openStore(cfg config.Config) (*memory.Store, func(), error) {
	dbPath, err := config.DBPath(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return memory.NewStore(database), func() { database.Close() }, nil
}

// resolveAPIKey looks up the provider key: environment first, then the
// keystore. An empty result is not an error; providers report their own
// auth failures.
func resolveAPIKey(provider string) string {
	envName, ok := envKeyNames[provider]
	if !ok {
		return ""
	}
	if v := os.Getenv(envName); v != "" {
		return v
	}

	path, err := keystore.DefaultPath()
	if err != nil {
		return ""
	}
	v, _, _ := keystore.New(path).Load(envName)
	return v
}

// buildGenerator creates a generation provider from config, or nil when
// the provider name is unknown or no credential could be resolved.
// Callers treat nil as not configured: the assistant surfaces it as
// ErrNotConfigured and the interview generator falls back to its fixed
// question pool.
func buildGenerator(cfg config.Config) genai.Generator {
	key := resolveAPIKey(cfg.Provider)
	if key == "" {
		return nil
	}
	gen, err := genai.New(cfg.Provider, cfg.Model, key)
	if err != nil {
		return nil
	}
	return gen
}

// generationParams converts config sampling settings to request params.
func generationParams(cfg config.Config) genai.Params {
	p := genai.DefaultParams()
	if cfg.Generation.Temperature > 0 {
		p.Temperature = cfg.Generation.Temperature
	}
	if cfg.Generation.TopP > 0 {
		p.TopP = cfg.Generation.TopP
	}
	if cfg.Generation.TopK > 0 {
		p.TopK = cfg.Generation.TopK
	}
	if cfg.Generation.MaxOutputTokens > 0 {
		p.MaxOutputTokens = cfg.Generation.MaxOutputTokens
	}
	return p
}

// readLine reads a trimmed line from stdin.
func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// confirmPrompt asks a yes/no question on stdin, defaulting to no.
func confirmPrompt(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line := readLine(bufio.NewReader(os.Stdin))
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

// preview shortens content for list displays, counting runes so accented
// text is never cut mid-character.
func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
