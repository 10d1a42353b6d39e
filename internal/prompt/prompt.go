// Package prompt manages the system-prompt template used for commit
// message generation and builds the messages sent to the model.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsubasa-k2/gitmuse/internal/log"
	"github.com/tsubasa-k2/gitmuse/pkg/lang"
)

// DefaultTemplate is written to the template file on first use.
const DefaultTemplate = `You are the author of the commit messages for this repository.
Analyze the staged diff and write the final commit message.

Format:
<emoji> <title>

<body>

Rules:
- Start the title with the gitmoji that matches the change:
  ✨ new feature     🐛 bug fix         📝 documentation
  ♻️ refactoring     ⚡️ performance     ✅ tests
  🔧 configuration   🎨 formatting      🔥 code removal
  🚑 hotfix          🔒 security        ⬆️ dependency upgrade
- Keep the title at 74 characters or less.
- Use present tense ("add", not "added").
- In the body, explain why the change was made, not just what changed.
- Output only the commit message, nothing else.
`

// DefaultPath returns the per-user template path
// (~/.config/gitmuse/prompt.txt on Linux).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "gitmuse", "prompt.txt"), nil
}

// Load returns the template stored at path. On first use the file does
// not exist yet; the default template is written there and returned.
// Subsequent calls return the file content unchanged.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read prompt template: %w", err)
	}

	if err := Reset(path); err != nil {
		return "", err
	}
	// Info writes to stderr, so stdout consumers stay clean
	log.Info("Created default prompt template at %s", path)
	return DefaultTemplate, nil
}

// Reset writes the default template to path, creating parent directories
// as needed and overwriting any existing file.
func Reset(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prompt template directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write prompt template: %w", err)
	}
	return nil
}

// BuildSystemPrompt combines the template with the output-language
// directive. The template stays untouched on disk; the directive is
// appended per run.
func BuildSystemPrompt(template string, language lang.Language) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(template, "\n"))
	b.WriteString("\n\n")
	b.WriteString(language.Instruction())
	b.WriteString("\n")
	return b.String()
}

// BuildUserMessage formats the staged diff and optional developer
// context into the user message.
func BuildUserMessage(diff, context string) string {
	var b strings.Builder
	b.WriteString("Staged diff:\n")
	b.WriteString(diff)
	b.WriteByte('\n')
	if strings.TrimSpace(context) != "" {
		b.WriteString("\nExtra context from the developer:\n")
		b.WriteString(strings.TrimSpace(context))
		b.WriteByte('\n')
	}
	return b.String()
}
