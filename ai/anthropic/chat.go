// Package anthropic implements chat and vision against the Anthropic API
// through langchaingo's anthropic client.
package anthropic

import (
	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/ai/langchain"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// NewChatModel creates a chat model backed by the Anthropic API.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	client, err := anthropic.New(
		anthropic.WithToken(config.AnthropicKey),
		anthropic.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}
	return langchain.NewChatModel(client, "anthropic-chat"), nil
}

// NewVisionAnalyzer creates an image description service backed by an
// Anthropic multimodal model.
//
// Returns ai.VisionAnalyzer interface to enforce abstraction.
func NewVisionAnalyzer(config *ai.Config) (ai.VisionAnalyzer, error) {
	model := config.VisionModel
	if model == "" {
		model = config.ChatModel
	}
	client, err := anthropic.New(
		anthropic.WithToken(config.AnthropicKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return langchain.NewVisionAnalyzer(client, "anthropic-vision"), nil
}
