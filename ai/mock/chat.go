package mock

import (
	"context"

	"github.com/poiesic/recollect/ai"
)

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields.
type MockChatModel struct {
	// ChatFunc is called by Chat if set.
	// If nil, returns a canned reply.
	ChatFunc func(ctx context.Context, messages []ai.Message) (string, error)

	// ChatStreamFunc is called by ChatStream if set.
	// If nil, the canned reply is delivered as a single chunk.
	ChatStreamFunc func(ctx context.Context, messages []ai.Message, fn func(chunk string) error) (string, error)

	// Reply is the canned response used by the default behavior.
	Reply string

	callCount int
	lastMsgs  []ai.Message
}

// NewMockChatModel creates a mock chat model with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{Reply: "mock reply"}
}

// Chat returns the canned reply or delegates to ChatFunc.
func (m *MockChatModel) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	m.callCount++
	m.lastMsgs = messages

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return m.Reply, nil
}

// ChatStream delivers the canned reply as one chunk or delegates to
// ChatStreamFunc.
func (m *MockChatModel) ChatStream(ctx context.Context, messages []ai.Message, fn func(chunk string) error) (string, error) {
	m.callCount++
	m.lastMsgs = messages

	if m.ChatStreamFunc != nil {
		return m.ChatStreamFunc(ctx, messages, fn)
	}
	if err := fn(m.Reply); err != nil {
		return "", err
	}
	return m.Reply, nil
}

// CallCount returns the number of times any method was called.
func (m *MockChatModel) CallCount() int {
	return m.callCount
}

// LastMessages returns the history passed to the most recent call.
func (m *MockChatModel) LastMessages() []ai.Message {
	return m.lastMsgs
}

// Reset clears recorded state and injected behavior.
func (m *MockChatModel) Reset() {
	m.callCount = 0
	m.lastMsgs = nil
	m.ChatFunc = nil
	m.ChatStreamFunc = nil
}
