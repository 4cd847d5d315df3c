// Package providers builds concrete AI services from an ai.Config. It is
// the single place that knows which provider name maps to which backend
// package, keeping the callers (CLI, facade) free of that switch.
package providers

import (
	"fmt"

	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/ai/anthropic"
	"github.com/poiesic/recollect/ai/ollama"
	"github.com/poiesic/recollect/ai/openai"
)

// NewChatModel creates the chat model the config's Provider names.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Provider {
	case ai.ProviderOpenAI:
		return openai.NewChatModel(config)
	case ai.ProviderAnthropic:
		return anthropic.NewChatModel(config)
	case ai.ProviderOllama:
		return ollama.NewChatModel(config)
	default:
		return nil, fmt.Errorf("unknown provider %q", config.Provider)
	}
}

// NewVisionAnalyzer creates the vision analyzer the config's Provider names.
func NewVisionAnalyzer(config *ai.Config) (ai.VisionAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Provider {
	case ai.ProviderOpenAI:
		return openai.NewVisionAnalyzer(config)
	case ai.ProviderAnthropic:
		return anthropic.NewVisionAnalyzer(config)
	case ai.ProviderOllama:
		return ollama.NewVisionAnalyzer(config)
	default:
		return nil, fmt.Errorf("unknown provider %q", config.Provider)
	}
}

// NewEmbedder creates the embedding service. Embeddings always go through
// an OpenAI-compatible endpoint, local or hosted, regardless of the chat
// provider.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return openai.NewEmbedder(config)
}

// NewTranscriber creates the speech-to-text service, or nil when no OpenAI
// key is configured: transcription is optional and only the OpenAI API
// offers it.
func NewTranscriber(config *ai.Config) (ai.Transcriber, error) {
	if config.OpenAIKey == "" {
		return nil, nil
	}
	return openai.NewTranscriber(config)
}
