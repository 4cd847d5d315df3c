// Package langchain contains the shared adapters the provider packages are
// built on: anything langchaingo exposes as an llms.Model can serve as a
// Recollect chat model or vision analyzer through the wrappers here.
package langchain

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/recollect/ai"
	"github.com/tmc/langchaingo/llms"
)

// ErrNoChoices is returned when the model responds without any completion.
var ErrNoChoices = errors.New("model returned no choices")

// MessagesToContent converts provider-neutral messages to langchaingo's
// wire representation.
func MessagesToContent(messages []ai.Message) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case ai.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case ai.RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(m.Content)},
		})
	}
	return content
}

// ChatModel adapts an llms.Model to ai.ChatModel.
type ChatModel struct {
	client llms.Model
	logger *slog.Logger
}

// NewChatModel wraps a langchaingo model. The component name shows up in
// log lines so multi-provider setups stay tellable apart.
func NewChatModel(client llms.Model, component string) *ChatModel {
	return &ChatModel{
		client: client,
		logger: slog.Default().With("component", component),
	}
}

// Chat sends the full message history and returns the model's reply.
func (c *ChatModel) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	c.logger.Debug("generating chat completion", "messages", len(messages))

	response, err := c.client.GenerateContent(ctx, MessagesToContent(messages))
	if err != nil {
		c.logger.Error("chat completion failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrNoChoices
	}
	return response.Choices[0].Content, nil
}

// ChatStream is Chat with incremental delivery via fn.
func (c *ChatModel) ChatStream(ctx context.Context, messages []ai.Message, fn func(chunk string) error) (string, error) {
	c.logger.Debug("generating streamed chat completion", "messages", len(messages))

	response, err := c.client.GenerateContent(ctx, MessagesToContent(messages),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			return fn(string(chunk))
		}))
	if err != nil {
		c.logger.Error("streamed chat completion failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrNoChoices
	}
	return response.Choices[0].Content, nil
}
