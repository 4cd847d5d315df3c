// Package session runs a retrieval-augmented conversation: each user turn
// pulls relevant memories from the store, folds them into the prompt, and
// keeps a bounded history of the exchange.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/rag"
)

// DefaultMaxHistory bounds how many past messages are replayed per turn.
const DefaultMaxHistory = 20

var (
	// ErrChatModelRequired indicates a session built without a chat model.
	ErrChatModelRequired = errors.New("chat model required")

	// ErrRetrieverRequired indicates a session built without a retriever.
	ErrRetrieverRequired = errors.New("retriever required")
)

// Session holds one conversation with a persona.
// Sessions are not safe for concurrent use; one conversation is one
// goroutine's business.
type Session struct {
	chat         ai.ChatModel
	retriever    *rag.Retriever
	systemPrompt string
	history      []ai.Message
	maxHistory   int
	logger       *slog.Logger
}

// Option configures a Session.
type Option func(*Session) error

// WithMaxHistory caps the replayed history length. Values below 2 keep at
// least one exchange.
func WithMaxHistory(n int) Option {
	return func(s *Session) error {
		if n < 2 {
			n = 2
		}
		s.maxHistory = n
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSession creates a session speaking as systemPrompt's persona.
func NewSession(chat ai.ChatModel, retriever *rag.Retriever, systemPrompt string, opts ...Option) (*Session, error) {
	if chat == nil {
		return nil, ErrChatModelRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	s := &Session{
		chat:         chat,
		retriever:    retriever,
		systemPrompt: systemPrompt,
		maxHistory:   DefaultMaxHistory,
		logger:       slog.Default().With("component", "session"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// History returns a copy of the conversation so far. Entries hold the
// user's bare questions, not the expanded prompts sent to the model.
func (s *Session) History() []ai.Message {
	out := make([]ai.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Chat answers one user turn.
func (s *Session) Chat(ctx context.Context, question string) (string, error) {
	messages, err := s.buildTurn(ctx, question)
	if err != nil {
		return "", err
	}

	reply, err := s.chat.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	s.remember(question, reply)
	return reply, nil
}

// ChatStream answers one user turn, delivering fragments through fn as
// they arrive.
func (s *Session) ChatStream(ctx context.Context, question string, fn func(chunk string) error) (string, error) {
	messages, err := s.buildTurn(ctx, question)
	if err != nil {
		return "", err
	}

	reply, err := s.chat.ChatStream(ctx, messages, fn)
	if err != nil {
		return "", err
	}
	s.remember(question, reply)
	return reply, nil
}

// buildTurn retrieves memories for the question and assembles the message
// list for the model: system prompt, bounded history, then the
// memory-augmented user turn.
func (s *Session) buildTurn(ctx context.Context, question string) ([]ai.Message, error) {
	memories, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("built chat turn", "memories", len(memories), "history", len(s.history))

	messages := make([]ai.Message, 0, len(s.history)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: s.systemPrompt})
	messages = append(messages, s.history...)
	messages = append(messages, ai.Message{
		Role:    ai.RoleUser,
		Content: rag.BuildPrompt(memories, question),
	})
	return messages, nil
}

func (s *Session) remember(question, reply string) {
	s.history = append(s.history,
		ai.Message{Role: ai.RoleUser, Content: question},
		ai.Message{Role: ai.RoleAssistant, Content: reply},
	)
	if len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
}
