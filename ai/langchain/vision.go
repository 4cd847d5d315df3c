package langchain

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/recollect/ai"
	"github.com/tmc/langchaingo/llms"
)

// VisionAnalyzer adapts a multimodal llms.Model to ai.VisionAnalyzer.
// The image is read from disk and sent inline as a binary part.
type VisionAnalyzer struct {
	client llms.Model
	logger *slog.Logger
}

// NewVisionAnalyzer wraps a multimodal langchaingo model.
func NewVisionAnalyzer(client llms.Model, component string) *VisionAnalyzer {
	return &VisionAnalyzer{
		client: client,
		logger: slog.Default().With("component", component),
	}
}

// Describe sends the image with a description prompt and returns the
// model's account of it.
func (v *VisionAnalyzer) Describe(ctx context.Context, imagePath, hint string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	v.logger.Debug("describing image", "path", imagePath, "bytes", len(data))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(ai.ImageMIMEType(imagePath), data),
				llms.TextPart(ai.VisionPrompt(hint)),
			},
		},
	}
	response, err := v.client.GenerateContent(ctx, content)
	if err != nil {
		v.logger.Error("image description failed", "path", imagePath, "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrNoChoices
	}
	return response.Choices[0].Content, nil
}
