package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/recollect/ai"
)

func testContext(t *testing.T, args map[string]string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", "info", "")
	set.String("data-dir", "data/profiles", "")
	set.String("provider", ai.ProviderOpenAI, "")
	set.String("chat-model", "", "")
	set.String("vision-model", "", "")
	set.String("embedding-host", "", "")
	set.String("embedding-model", "", "")
	set.String("openai-key", "", "")
	set.String("anthropic-key", "", "")
	set.String("ollama-host", "", "")
	for name, value := range args {
		require.NoError(t, set.Set(name, value))
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestBuildAIConfig(t *testing.T) {
	t.Run("defaults survive unset flags", func(t *testing.T) {
		cfg := buildAIConfig(testContext(t, nil))

		assert.Equal(t, ai.ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		cfg := buildAIConfig(testContext(t, map[string]string{
			"provider":        ai.ProviderOllama,
			"chat-model":      "llama3.1",
			"embedding-host":  "http://localhost:11434",
			"embedding-model": "embeddinggemma",
			"ollama-host":     "http://localhost:11434",
		}))

		assert.Equal(t, ai.ProviderOllama, cfg.Provider)
		assert.Equal(t, "llama3.1", cfg.ChatModel)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	})
}

func TestBuildSettings(t *testing.T) {
	settings, err := buildSettings(testContext(t, map[string]string{
		"data-dir": "/tmp/recollect-test",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/recollect-test", settings.DataDir)
	assert.Equal(t, 500, settings.ChunkSize)
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			err := setupLogger(testContext(t, map[string]string{"log-level": level}))
			assert.NoError(t, err, level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(testContext(t, map[string]string{"log-level": "verbose"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one\ntwo"))
	assert.Equal(t, "single", firstLine("single"))
}
