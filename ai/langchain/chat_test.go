package langchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/poiesic/recollect/ai"
)

// fakeModel implements llms.Model with a canned response, recording the
// content it was called with.
type fakeModel struct {
	response *llms.ContentResponse
	err      error
	content  []llms.MessageContent
	opts     []llms.CallOption
}

func (f *fakeModel) GenerateContent(ctx context.Context, content []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	f.content = content
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	return "", nil
}

func reply(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func TestMessagesToContent(t *testing.T) {
	content := MessagesToContent([]ai.Message{
		{Role: ai.RoleSystem, Content: "be brief"},
		{Role: ai.RoleUser, Content: "hello"},
		{Role: ai.RoleAssistant, Content: "hi"},
	})

	require.Len(t, content, 3)
	assert.Equal(t, llms.ChatMessageTypeSystem, content[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, content[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, content[2].Role)
	assert.Equal(t, llms.TextPart("hello"), content[1].Parts[0])
}

func TestChatModel_Chat(t *testing.T) {
	t.Run("returns the model's reply", func(t *testing.T) {
		model := &fakeModel{response: reply("the answer")}
		chat := NewChatModel(model, "test-chat")

		out, err := chat.Chat(context.Background(), []ai.Message{
			{Role: ai.RoleUser, Content: "question"},
		})

		require.NoError(t, err)
		assert.Equal(t, "the answer", out)
		require.Len(t, model.content, 1)
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		model := &fakeModel{response: &llms.ContentResponse{}}
		chat := NewChatModel(model, "test-chat")

		_, err := chat.Chat(context.Background(), []ai.Message{
			{Role: ai.RoleUser, Content: "question"},
		})

		assert.ErrorIs(t, err, ErrNoChoices)
	})
}

func TestChatModel_ChatStream(t *testing.T) {
	model := &fakeModel{response: reply("streamed answer")}
	chat := NewChatModel(model, "test-chat")

	var chunks []string
	out, err := chat.ChatStream(context.Background(),
		[]ai.Message{{Role: ai.RoleUser, Content: "question"}},
		func(chunk string) error {
			chunks = append(chunks, chunk)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, "streamed answer", out)
	// The fake never invokes the streaming callback; the option must still
	// have been passed through.
	assert.NotEmpty(t, model.opts)
	assert.Empty(t, chunks)
}
