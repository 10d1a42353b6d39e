package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsubasa-k2/gitmuse/internal/prompt"
)

const defaultConfigTemplate = `# gitmuse Configuration File

# Default language for generated messages (en, zh, ja, etc.)
language: en

# Default model to use (must match a key in the models section)
default_model: openai

# LLM Model configurations
# API keys may be omitted entirely: gitmuse falls back to the provider's
# environment variable (e.g. OPENAI_API_KEY) and then to KEY=VALUE entries
# in ~/.gitmuse_credentials.
models:
  openai:
    provider: openai
    model: gpt-4o-mini
    # api_key: ${OPENAI_API_KEY}  # optional, this is the default lookup
    # base_url: https://api.openai.com/v1

  # deepseek:
  #   provider: deepseek
  #   model: deepseek-chat

  # Ollama (local, no key needed)
  # ollama:
  #   provider: ollama
  #   model: llama3.2

  # gemini:
  #   provider: gemini
  #   model: gemini-2.0-flash-exp

  # grok:
  #   provider: grok
  #   model: grok-beta

# Prompt template location (optional)
# prompt:
#   file: ~/.config/gitmuse/prompt.txt

# Retry behavior for transient API failures
# retry:
#   enabled: true
#   max_attempts: 3
#   backoff_base: 1.0
#   backoff_max: 8.0
`

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gitmuse configuration",
	Long: `Create a default configuration file (~/.gitmuse.yaml) and seed the
prompt template (~/.config/gitmuse/prompt.txt) if it does not exist yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configPath := filepath.Join(homeDir, ".gitmuse.yaml")

		// Check if file exists
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
		}

		if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("✅ Configuration file created: %s\n", configPath)

		// Seed the prompt template (no-op if it already exists)
		promptPath, err := prompt.DefaultPath()
		if err != nil {
			return err
		}
		if _, err := prompt.Load(promptPath); err != nil {
			return err
		}
		fmt.Printf("✅ Prompt template ready: %s\n", promptPath)

		fmt.Println("\nNext steps:")
		fmt.Println("  1. Set your API key, e.g. export OPENAI_API_KEY=sk-...")
		fmt.Println("     (or add OPENAI_API_KEY=sk-... to ~/.gitmuse_credentials)")
		fmt.Println("  2. Stage some changes and run 'gitmuse commit'")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
