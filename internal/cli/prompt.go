package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsubasa-k2/gitmuse/internal/config"
	"github.com/tsubasa-k2/gitmuse/internal/prompt"
	"github.com/tsubasa-k2/gitmuse/internal/ui"
)

var promptResetForce bool

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage the commit prompt template",
	Long:  `Commands for inspecting and resetting the prompt template sent to the model.`,
}

var promptShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current prompt template",
	Long:  `Print the prompt template, creating it with the default content on first use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePromptPath()
		if err != nil {
			return err
		}

		template, err := prompt.Load(path)
		if err != nil {
			return err
		}

		fmt.Print(template)
		return nil
	},
}

var promptPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the prompt template path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePromptPath()
		if err != nil {
			return err
		}

		fmt.Println(path)
		return nil
	},
}

var promptResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the prompt template to the default",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePromptPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !promptResetForce {
			confirmed, err := ui.ConfirmWithDefault(
				fmt.Sprintf("Overwrite %s with the default template?", path),
				false, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Reset cancelled.")
				return nil
			}
		}

		if err := prompt.Reset(path); err != nil {
			return err
		}

		fmt.Printf("✅ Prompt template reset: %s\n", path)
		return nil
	},
}

// resolvePromptPath returns the template path, honoring the config override
func resolvePromptPath() (string, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	path, err := cfg.PromptFile()
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	return prompt.DefaultPath()
}

func init() {
	promptResetCmd.Flags().BoolVarP(&promptResetForce, "force", "f", false, "Reset without confirmation")
	promptCmd.AddCommand(promptShowCmd)
	promptCmd.AddCommand(promptPathCmd)
	promptCmd.AddCommand(promptResetCmd)
	rootCmd.AddCommand(promptCmd)
}
