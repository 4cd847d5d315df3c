package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "whisper-1", cfg.TranscriptionModel)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaHost)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
	})

	t.Run("with custom provider", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderOllama),
			WithChatModel("llama3.1"),
		)

		assert.Equal(t, ProviderOllama, cfg.Provider)
		assert.Equal(t, "llama3.1", cfg.ChatModel)
	})

	t.Run("with custom embedding", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithEmbeddingModel("embeddinggemma"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderAnthropic),
			WithChatModel("claude-sonnet-4-20250514"),
			WithVisionModel("claude-sonnet-4-20250514"),
			WithAnthropicKey("sk-ant-test"),
			WithOpenAIKey("sk-test"),
			WithTranscriptionModel("whisper-1"),
		)

		assert.Equal(t, ProviderAnthropic, cfg.Provider)
		assert.Equal(t, "claude-sonnet-4-20250514", cfg.ChatModel)
		assert.Equal(t, "claude-sonnet-4-20250514", cfg.VisionModel)
		assert.Equal(t, "sk-ant-test", cfg.AnthropicKey)
		assert.Equal(t, "sk-test", cfg.OpenAIKey)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{
			name:     "already has /v1",
			host:     "http://localhost:11434/v1",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "missing /v1",
			host:     "http://localhost:11434",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "has trailing slash",
			host:     "http://localhost:11434/",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "empty host",
			host:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.EmbeddingHost)
		})
	}

	t.Run("ollama host loses trailing slash only", func(t *testing.T) {
		cfg := &Config{OllamaHost: "http://localhost:11434/"}

		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434", cfg.OllamaHost)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Provider:       ProviderOpenAI,
			ChatModel:      "gpt-4o-mini",
			EmbeddingHost:  "http://localhost:11434",
			EmbeddingModel: "embeddinggemma",
			OpenAIKey:      "sk-test",
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := valid()
		cfg.Provider = "groq"

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})

	t.Run("openai provider without key", func(t *testing.T) {
		cfg := valid()
		cfg.OpenAIKey = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OpenAIKey")
	})

	t.Run("anthropic provider without key", func(t *testing.T) {
		cfg := valid()
		cfg.Provider = ProviderAnthropic

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AnthropicKey")
	})

	t.Run("ollama provider needs no key", func(t *testing.T) {
		cfg := valid()
		cfg.Provider = ProviderOllama
		cfg.OpenAIKey = ""
		cfg.OllamaHost = "http://localhost:11434"

		err := cfg.Validate()
		assert.NoError(t, err)
	})

	t.Run("missing chat model", func(t *testing.T) {
		cfg := valid()
		cfg.ChatModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ChatModel")
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := valid()
		cfg.EmbeddingHost = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := valid()
		cfg.EmbeddingModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})
}

func TestConfigValidate_Integration(t *testing.T) {
	// NewConfig with a key produces a valid configuration out of the box.
	cfg := NewConfig(WithOpenAIKey("sk-test"))
	err := cfg.Validate()
	require.NoError(t, err)
}
