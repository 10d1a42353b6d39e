package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsubasa-k2/gitmuse/internal/config"
	"github.com/tsubasa-k2/gitmuse/internal/llm"
	"github.com/tsubasa-k2/gitmuse/internal/ui"
	"github.com/tsubasa-k2/gitmuse/pkg/lang"
)

// mockExecutor implements git.Executor and records commit invocations
type mockExecutor struct {
	diff        string
	diffErr     error
	commitCalls int
	commitMsg   string
	commitEdit  bool
	commitErr   error
}

func (m *mockExecutor) DiffCached(ctx context.Context) (string, error) {
	if m.diffErr != nil {
		return "", m.diffErr
	}
	return m.diff, nil
}

func (m *mockExecutor) Commit(ctx context.Context, message string, edit bool) error {
	m.commitCalls++
	m.commitMsg = message
	m.commitEdit = edit
	return m.commitErr
}

// stubChatModel returns a canned completion and counts calls
type stubChatModel struct {
	content string
	err     error
	calls   int
}

func (m *stubChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.content}, nil
}

func (m *stubChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *stubChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

// stubProvider counts chat model creations, a proxy for "the network
// layer was touched"
type stubProvider struct {
	chatModel   *stubChatModel
	createCalls int
}

func (p *stubProvider) Name() string {
	return "stub"
}

func (p *stubProvider) GetConfig() config.ModelConfig {
	return config.ModelConfig{Provider: "stub", Model: "stub-model"}
}

func (p *stubProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	p.createCalls++
	return p.chatModel, nil
}

func newTestPipeline(exec *mockExecutor, provider *stubProvider, out *bytes.Buffer) *commitPipeline {
	return &commitPipeline{
		gitExec:   exec,
		provider:  provider,
		retry:     llm.RetryConfig{Enabled: false},
		template:  "Write good commits.",
		language:  lang.English,
		printer:   ui.NewPrinter(out, ui.WithColor(false)),
		out:       out,
		startTime: time.Now(),
	}
}

func TestCommitPipeline_NoEditCommitsVerbatim(t *testing.T) {
	exec := &mockExecutor{diff: "diff --git a/x b/x\n+foo\n"}
	provider := &stubProvider{chatModel: &stubChatModel{content: "✨ add foo\n\nadds foo for clarity\n"}}
	var out bytes.Buffer

	p := newTestPipeline(exec, provider, &out)
	p.noEdit = true

	require.NoError(t, p.run(context.Background()))

	require.Equal(t, 1, exec.commitCalls)
	assert.Equal(t, "✨ add foo\n\nadds foo for clarity", exec.commitMsg)
	assert.False(t, exec.commitEdit)
	assert.Contains(t, out.String(), "✨ add foo")
}

func TestCommitPipeline_EditorModeByDefault(t *testing.T) {
	exec := &mockExecutor{diff: "diff --git a/x b/x\n+foo\n"}
	provider := &stubProvider{chatModel: &stubChatModel{content: "✨ add foo"}}
	var out bytes.Buffer

	p := newTestPipeline(exec, provider, &out)

	require.NoError(t, p.run(context.Background()))
	require.Equal(t, 1, exec.commitCalls)
	assert.True(t, exec.commitEdit)
}

func TestCommitPipeline_DiffFailureSkipsGeneration(t *testing.T) {
	exec := &mockExecutor{diffErr: errors.New("git diff --cached failed: fatal: not a git repository")}
	chat := &stubChatModel{content: "✨ add foo"}
	provider := &stubProvider{chatModel: chat}
	var out bytes.Buffer

	p := newTestPipeline(exec, provider, &out)

	err := p.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")

	// Nothing downstream of the diff may run
	assert.Equal(t, 0, provider.createCalls)
	assert.Equal(t, 0, chat.calls)
	assert.Equal(t, 0, exec.commitCalls)
}

func TestCommitPipeline_RemoteErrorSkipsCommit(t *testing.T) {
	exec := &mockExecutor{diff: "diff --git a/x b/x\n+foo\n"}
	provider := &stubProvider{chatModel: &stubChatModel{err: errors.New("invalid_api_key")}}
	var out bytes.Buffer

	p := newTestPipeline(exec, provider, &out)

	err := p.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_api_key")
	assert.Equal(t, 0, exec.commitCalls)
}

func TestCommitPipeline_NoStagedChanges(t *testing.T) {
	// Whitespace-only diff output counts as empty
	exec := &mockExecutor{diff: "  \n"}
	chat := &stubChatModel{content: "✨ add foo"}
	provider := &stubProvider{chatModel: chat}
	var out bytes.Buffer

	p := newTestPipeline(exec, provider, &out)

	require.NoError(t, p.run(context.Background()))
	assert.Equal(t, 0, provider.createCalls)
	assert.Equal(t, 0, exec.commitCalls)
	assert.Contains(t, out.String(), "No staged changes found.")
}

func TestCommitPipeline_CommitFailureIsReported(t *testing.T) {
	exec := &mockExecutor{
		diff:      "diff --git a/x b/x\n+foo\n",
		commitErr: errors.New("git commit failed: exit status 1"),
	}
	provider := &stubProvider{chatModel: &stubChatModel{content: "✨ add foo"}}
	var out bytes.Buffer

	p := newTestPipeline(exec, provider, &out)
	p.noEdit = true

	err := p.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit")
}
