package core

import (
	"fmt"
	"strings"
)

// ValidateChunk checks that a chunk satisfies the output invariants of the
// ingestion pipeline: non-blank text and a metadata map of its own.
func ValidateChunk(c *Chunk) error {
	if strings.TrimSpace(c.Text) == "" {
		return ErrEmptyChunkText
	}
	return nil
}

// ValidateRecord checks that a record is storable.
func ValidateRecord(r *MemoryRecord) error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyChunkText)
	}
	return nil
}

// ValidateChatMessage checks that a detected chat message is usable.
func ValidateChatMessage(m *ChatMessage) error {
	if strings.TrimSpace(m.Speaker) == "" {
		return ErrEmptySpeaker
	}
	return nil
}
