// Package ollama implements chat and vision against a local Ollama server
// through langchaingo's ollama client.
package ollama

import (
	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/ai/langchain"
	"github.com/tmc/langchaingo/llms/ollama"
)

// NewChatModel creates a chat model backed by a local Ollama server.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	client, err := ollama.New(
		ollama.WithServerURL(config.OllamaHost),
		ollama.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}
	return langchain.NewChatModel(client, "ollama-chat"), nil
}

// NewVisionAnalyzer creates an image description service backed by a local
// multimodal Ollama model (llava, llama3.2-vision and friends).
//
// Returns ai.VisionAnalyzer interface to enforce abstraction.
func NewVisionAnalyzer(config *ai.Config) (ai.VisionAnalyzer, error) {
	model := config.VisionModel
	if model == "" {
		model = config.ChatModel
	}
	client, err := ollama.New(
		ollama.WithServerURL(config.OllamaHost),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return langchain.NewVisionAnalyzer(client, "ollama-vision"), nil
}
