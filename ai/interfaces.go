package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Message roles. These are provider-neutral; each backend maps them to its
// own wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// ChatModel generates conversational completions.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Chat sends the full message history and returns the model's reply.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatStream is Chat with incremental delivery: fn is called with each
	// text fragment as it arrives, and the complete reply is returned at
	// the end. A non-nil error from fn aborts the stream.
	ChatStream(ctx context.Context, messages []Message, fn func(chunk string) error) (string, error)
}

// VisionAnalyzer produces a natural-language description of an image file.
// The hint, when non-empty, is user-supplied context folded into the prompt.
type VisionAnalyzer interface {
	Describe(ctx context.Context, imagePath, hint string) (string, error)
}

// Transcriber converts spoken audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
