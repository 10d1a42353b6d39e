package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsubasa-k2/gitmuse/internal/config"
	"github.com/tsubasa-k2/gitmuse/internal/credential"
	"github.com/tsubasa-k2/gitmuse/internal/git"
	"github.com/tsubasa-k2/gitmuse/internal/llm"
	"github.com/tsubasa-k2/gitmuse/internal/log"
	"github.com/tsubasa-k2/gitmuse/internal/prompt"
	"github.com/tsubasa-k2/gitmuse/internal/ui"
	"github.com/tsubasa-k2/gitmuse/pkg/lang"
)

var (
	commitContext  string
	commitLanguage string
	commitNoEdit   bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate a commit message and commit staged changes",
	Long: `Generate a commit message from the staged diff using AI.

This command will:
1. Read your staged changes (git diff --cached)
2. Generate a gitmoji commit message
3. Open your editor pre-filled with the message (or commit directly with --no-edit)

Examples:
  gitmuse commit
  gitmuse commit --no-edit
  gitmuse commit -c "part of the login rework"
  gitmuse commit -m deepseek --language ja`,
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().StringVarP(&commitContext, "context", "c", "", "Additional context to help generate a better message")
	commitCmd.Flags().StringVarP(&commitLanguage, "language", "l", "", "Output language (en, zh, ja, etc.)")
	commitCmd.Flags().BoolVarP(&commitNoEdit, "no-edit", "n", false, "Commit with the generated message as-is, without opening the editor")
	rootCmd.AddCommand(commitCmd)
}

// commitPipeline runs the four stages against injected collaborators.
// A diff failure must stop the run before any generation, and a
// generation failure must stop it before any commit.
type commitPipeline struct {
	gitExec   git.Executor
	provider  llm.Provider
	retry     llm.RetryConfig
	template  string
	language  lang.Language
	context   string
	noEdit    bool
	printer   *ui.Printer
	out       io.Writer
	startTime time.Time
}

func (p *commitPipeline) run(ctx context.Context) error {
	diff, err := p.gitExec.DiffCached(ctx)
	if err != nil {
		return fmt.Errorf("failed to get staged changes: %w", err)
	}

	if strings.TrimSpace(diff) == "" {
		fmt.Fprintln(p.out, "No staged changes found.")
		fmt.Fprintln(p.out, "\nTo stage changes, use:")
		fmt.Fprintln(p.out, "  git add <file>")
		fmt.Fprintln(p.out, "  git add -A")
		return nil
	}

	_ = p.printer.PrintThinking("Generating commit message from staged changes...")

	systemPrompt := prompt.BuildSystemPrompt(p.template, p.language)
	userMessage := prompt.BuildUserMessage(diff, p.context)

	result, err := llm.Generate(ctx, p.provider, p.retry, systemPrompt, userMessage)
	if err != nil {
		return fmt.Errorf("failed to generate commit message: %w", err)
	}

	if err := ui.ShowCommitMessage(result.Message, p.out); err != nil {
		return err
	}

	stats := &ui.ExecutionStats{
		StartTime:        p.startTime,
		EndTime:          time.Now(),
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
		TotalTokens:      result.TotalTokens,
	}
	_ = p.printer.PrintStats(stats)

	// Editor mode lets the user adjust the message before the commit
	// is finalized; --no-edit commits the message verbatim.
	if err := p.gitExec.Commit(ctx, result.Message, !p.noEdit); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	_ = p.printer.PrintSuccess("Commit created successfully!")
	return nil
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startTime := time.Now()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.DebugConfig("Configuration", cfg)

	modelConfig, err := cfg.GetModel(modelName)
	if err != nil {
		return fmt.Errorf("failed to get model config: %w", err)
	}

	log.Debug("Using provider: %s (model: %s)", modelConfig.Provider, modelConfig.Model)

	// Load the prompt template, creating the default on first run
	promptPath, err := cfg.PromptFile()
	if err != nil {
		return err
	}
	if promptPath == "" {
		promptPath, err = prompt.DefaultPath()
		if err != nil {
			return err
		}
	}

	template, err := prompt.Load(promptPath)
	if err != nil {
		return err
	}

	log.Debug("Prompt template loaded from %s", promptPath)

	// Resolve the credential; a missing key aborts before any network call
	dotfilePath, err := credential.DefaultDotfilePath()
	if err != nil {
		return err
	}
	if err := modelConfig.ResolveAPIKey(dotfilePath); err != nil {
		return err
	}

	factory := llm.NewProviderFactory()
	provider, err := factory.Create(*modelConfig)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	retryConfigPtr := cfg.GetRetryConfig()
	retryConfig := llm.RetryConfig{
		Enabled:     retryConfigPtr.Enabled,
		MaxAttempts: retryConfigPtr.MaxAttempts,
		BackoffBase: retryConfigPtr.BackoffBase,
		BackoffMax:  retryConfigPtr.BackoffMax,
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	printer := ui.NewPrinter(os.Stdout, ui.WithVerbose(debugMode))
	_ = printer.PrintProgress(fmt.Sprintf("Using %s (%s)", provider.Name(), modelConfig.Model))

	pipeline := &commitPipeline{
		gitExec:   git.NewExecutor(cwd),
		provider:  provider,
		retry:     retryConfig,
		template:  template,
		language:  lang.Parse(cfg.GetLanguage(commitLanguage)),
		context:   commitContext,
		noEdit:    commitNoEdit,
		printer:   printer,
		out:       os.Stdout,
		startTime: startTime,
	}

	return pipeline.run(ctx)
}
