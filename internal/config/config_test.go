package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsubasa-k2/gitmuse/internal/credential"
)

// writeConfig creates a temporary config file and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".gitmuse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const testConfig = `
default_model: deepseek
language: en

models:
  deepseek:
    provider: deepseek
    api_key: ${DEEPSEEK_API_KEY}
    model: deepseek-chat
  openai:
    provider: openai
    api_key: sk-literal
    model: gpt-4o
    base_url: https://api.openai.com/v1

retry:
  enabled: true
  max_attempts: 2
  backoff_base: 0.5
  backoff_max: 4.0
`

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, testConfig)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "deepseek", cfg.DefaultModel)
	assert.Len(t, cfg.Models, 2)
	assert.Equal(t, "gpt-4o", cfg.Models["openai"].Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Models["openai"].BaseURL)
	require.NotNil(t, cfg.Retry)
	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	// Point HOME at an empty directory and run from one without .gitmuse.yaml
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.DefaultModel)
	require.Contains(t, cfg.Models, "openai")
	assert.Equal(t, "gpt-4o-mini", cfg.Models["openai"].Model)
}

func TestGetModel(t *testing.T) {
	path := writeConfig(t, testConfig)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	t.Run("explicit name wins", func(t *testing.T) {
		t.Setenv("GITMUSE_MODEL", "deepseek")

		model, err := cfg.GetModel("openai")
		require.NoError(t, err)
		assert.Equal(t, "openai", model.Provider)
	})

	t.Run("env variable beats default", func(t *testing.T) {
		t.Setenv("GITMUSE_MODEL", "openai")

		model, err := cfg.GetModel("")
		require.NoError(t, err)
		assert.Equal(t, "openai", model.Provider)
	})

	t.Run("falls back to default model", func(t *testing.T) {
		t.Setenv("GITMUSE_MODEL", "")

		model, err := cfg.GetModel("")
		require.NoError(t, err)
		assert.Equal(t, "deepseek", model.Provider)
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := cfg.GetModel("nope")
		assert.Error(t, err)
	})
}

func TestResolveAPIKey(t *testing.T) {
	dotfile := filepath.Join(t.TempDir(), credential.DotfileName)

	t.Run("literal key", func(t *testing.T) {
		m := ModelConfig{Provider: "openai", Model: "gpt-4o", APIKey: "sk-literal"}
		require.NoError(t, m.ResolveAPIKey(dotfile))
		assert.Equal(t, "sk-literal", m.APIKey)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("MY_KEY", "sk-expanded")

		m := ModelConfig{Provider: "openai", Model: "gpt-4o", APIKey: "${MY_KEY}"}
		require.NoError(t, m.ResolveAPIKey(dotfile))
		assert.Equal(t, "sk-expanded", m.APIKey)
	})

	t.Run("provider env variable", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")

		m := ModelConfig{Provider: "openai", Model: "gpt-4o"}
		require.NoError(t, m.ResolveAPIKey(dotfile))
		assert.Equal(t, "sk-env", m.APIKey)
	})

	t.Run("dotfile fallback", func(t *testing.T) {
		t.Setenv("DEEPSEEK_API_KEY", "")
		require.NoError(t, os.WriteFile(dotfile, []byte("DEEPSEEK_API_KEY=sk-dotfile\n"), 0600))

		m := ModelConfig{Provider: "deepseek", Model: "deepseek-chat"}
		require.NoError(t, m.ResolveAPIKey(dotfile))
		assert.Equal(t, "sk-dotfile", m.APIKey)
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Setenv("XAI_API_KEY", "")

		m := ModelConfig{Provider: "grok", Model: "grok-beta"}
		err := m.ResolveAPIKey(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "XAI_API_KEY")
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		m := ModelConfig{Provider: "ollama", Model: "llama3.2"}
		require.NoError(t, m.ResolveAPIKey(dotfile))
		assert.Empty(t, m.APIKey)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no models",
			cfg:     Config{},
			wantErr: "no models configured",
		},
		{
			name: "unknown default model",
			cfg: Config{
				DefaultModel: "missing",
				Models: map[string]ModelConfig{
					"openai": {Provider: "openai", Model: "gpt-4o"},
				},
			},
			wantErr: "default model",
		},
		{
			name: "unsupported provider",
			cfg: Config{
				Models: map[string]ModelConfig{
					"bad": {Provider: "skynet", Model: "t-800"},
				},
			},
			wantErr: "unsupported provider",
		},
		{
			name: "missing model name",
			cfg: Config{
				Models: map[string]ModelConfig{
					"bad": {Provider: "openai"},
				},
			},
			wantErr: "model is required",
		},
		{
			name: "valid",
			cfg: Config{
				DefaultModel: "openai",
				Models: map[string]ModelConfig{
					"openai": {Provider: "openai", Model: "gpt-4o"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGetLanguage(t *testing.T) {
	cfg := Config{Language: "ja"}

	t.Run("parameter wins", func(t *testing.T) {
		t.Setenv("GITMUSE_LANG", "ko")
		assert.Equal(t, "zh", cfg.GetLanguage("zh"))
	})

	t.Run("env beats config", func(t *testing.T) {
		t.Setenv("GITMUSE_LANG", "ko")
		assert.Equal(t, "ko", cfg.GetLanguage(""))
	})

	t.Run("config value", func(t *testing.T) {
		t.Setenv("GITMUSE_LANG", "")
		assert.Equal(t, "ja", cfg.GetLanguage(""))
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("GITMUSE_LANG", "")
		empty := Config{}
		assert.Equal(t, "en", empty.GetLanguage(""))
	})
}

func TestPromptFile(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		cfg := Config{}
		path, err := cfg.PromptFile()
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("tilde expansion", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		cfg := Config{Prompt: &PromptConfig{File: "~/prompts/commit.txt"}}
		path, err := cfg.PromptFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "prompts", "commit.txt"), path)
	})
}
