package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/angeloromano11/bitiacora/internal/config"
	"github.com/angeloromano11/bitiacora/internal/keystore"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive first-time configuration",
		Long:  "Configure the generation provider, API key, and your name for interview prompts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			fmt.Println("Welcome to Bitiacora! Let's set up your memory journal.")
			fmt.Println()

			cfg, err := config.Load()
			if err != nil {
				cfg = config.Default()
			}

			fmt.Println("Which generation provider do you want to use?")
			fmt.Println("  [1] Gemini (Google, supports audio responses)")
			fmt.Println("  [2] Claude (Anthropic)")
			fmt.Println("  [3] OpenAI (GPT-4o)")
			fmt.Print("> ")

			switch strings.TrimSpace(readLine(reader)) {
			case "2":
				cfg.Provider = "claude"
			case "3":
				cfg.Provider = "openai"
			default:
				cfg.Provider = "gemini"
			}

			envName := envKeyNames[cfg.Provider]
			fmt.Printf("Enter your API key (or press Enter to set %s later): ", envName)
			keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				// Not a terminal; fall back to a plain read.
				keyBytes = []byte(readLine(reader))
			}
			if key := strings.TrimSpace(string(keyBytes)); key != "" {
				path, err := keystore.DefaultPath()
				if err != nil {
					return err
				}
				if err := keystore.New(path).Save(envName, key); err != nil {
					return fmt.Errorf("save key: %w", err)
				}
				fmt.Println("API key saved.")
			}

			fmt.Print("What should the interviewer call you? (press Enter to skip): ")
			if name := strings.TrimSpace(readLine(reader)); name != "" {
				cfg.UserName = name
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			path, _ := config.Path()
			fmt.Printf("\nConfiguration saved to %s\n", path)
			fmt.Println("Run `bitiacora record` to capture your first memory.")
			return nil
		},
	}
}
