// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Supported provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Provider selects the backend for chat and vision: "openai",
	// "anthropic" or "ollama".
	Provider string

	// ChatModel is the model identifier for conversation.
	// Example: "gpt-4o-mini", "claude-sonnet-4-20250514", "llama3.1"
	ChatModel string

	// VisionModel is the model identifier for image description. For most
	// providers the chat model doubles as the vision model.
	VisionModel string

	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// TranscriptionModel is the speech-to-text model for video audio tracks.
	// Transcription always goes through the OpenAI API.
	TranscriptionModel string

	// OpenAIKey authenticates against the OpenAI API. Local
	// OpenAI-compatible servers usually accept any value.
	OpenAIKey string

	// AnthropicKey authenticates against the Anthropic API.
	AnthropicKey string

	// OllamaHost is the base URL of a local Ollama server.
	// Example: "http://localhost:11434"
	OllamaHost string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider selects the chat/vision backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithChatModel sets the conversation model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithVisionModel sets the image description model identifier.
func WithVisionModel(model string) ConfigOption {
	return func(c *Config) {
		c.VisionModel = model
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithTranscriptionModel sets the speech-to-text model identifier.
func WithTranscriptionModel(model string) ConfigOption {
	return func(c *Config) {
		c.TranscriptionModel = model
	}
}

// WithOpenAIKey sets the OpenAI API key.
func WithOpenAIKey(key string) ConfigOption {
	return func(c *Config) {
		c.OpenAIKey = key
	}
}

// WithAnthropicKey sets the Anthropic API key.
func WithAnthropicKey(key string) ConfigOption {
	return func(c *Config) {
		c.AnthropicKey = key
	}
}

// WithOllamaHost sets the local Ollama server URL.
func WithOllamaHost(host string) ConfigOption {
	return func(c *Config) {
		c.OllamaHost = host
	}
}

// DefaultConfig returns a Config with sensible defaults for the OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Provider:           ProviderOpenAI,
		ChatModel:          "gpt-4o-mini",
		VisionModel:        "gpt-4o-mini",
		EmbeddingHost:      "https://api.openai.com/v1",
		EmbeddingModel:     "text-embedding-3-small",
		TranscriptionModel: "whisper-1",
		OllamaHost:         "http://localhost:11434",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEmbeddingHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("embeddinggemma"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the embedding host if missing,
// which is required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	// Ollama's native API wants the bare host, no /v1.
	c.OllamaHost = strings.TrimSuffix(c.OllamaHost, "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return errors.New("ai config: OpenAIKey is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.AnthropicKey == "" {
			return errors.New("ai config: AnthropicKey is required for the anthropic provider")
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			return errors.New("ai config: OllamaHost is required for the ollama provider")
		}
	default:
		return fmt.Errorf("ai config: unknown provider %q", c.Provider)
	}

	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
