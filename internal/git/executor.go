package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor exposes the two git operations the pipeline uses, so the
// implementation could later substitute a native library binding
// without changing the pipeline.
type Executor interface {
	// DiffCached returns the diff of staged changes
	DiffCached(ctx context.Context) (string, error)

	// Commit commits the staged changes with the given message. With
	// edit set, the user's editor opens pre-populated with the message;
	// otherwise the message is used verbatim.
	Commit(ctx context.Context, message string, edit bool) error
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command, capturing output. Stdout is returned as
// captured, untrimmed; stderr is folded into the returned error so
// failures surface git's own diagnostics.
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return stdout.String(), nil
}

// runGitInteractive runs a git command attached to the terminal, for
// subcommands that open the user's editor.
func (e *DefaultExecutor) runGitInteractive(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return nil
}

// DiffCached returns the diff of staged changes, exactly as git
// printed it.
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// Commit writes the message (with a trailing newline) to a temporary
// file and runs git commit against it. The file is removed once the
// subprocess returns, on all exit paths.
func (e *DefaultExecutor) Commit(ctx context.Context, message string, edit bool) error {
	file, err := os.CreateTemp("", "gitmuse-commit-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create commit message file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	if _, err := file.WriteString(message); err != nil {
		file.Close()
		return fmt.Errorf("failed to write commit message file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write commit message file: %w", err)
	}

	if edit {
		// Editor mode needs the terminal
		return e.runGitInteractive(ctx, "commit", "-e", "-F", path)
	}

	_, err = e.runGit(ctx, "commit", "-F", path)
	return err
}
