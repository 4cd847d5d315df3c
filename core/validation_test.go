package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		c := &Chunk{Text: "some text", Metadata: map[string]string{MetaSource: "a.txt"}}
		assert.NoError(t, ValidateChunk(c))
	})

	t.Run("empty text", func(t *testing.T) {
		c := &Chunk{Text: ""}
		assert.ErrorIs(t, ValidateChunk(c), ErrEmptyChunkText)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		c := &Chunk{Text: " \n\t "}
		assert.ErrorIs(t, ValidateChunk(c), ErrEmptyChunkText)
	})
}

func TestValidateRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		r := &MemoryRecord{Text: "stored text"}
		assert.NoError(t, ValidateRecord(r))
	})

	t.Run("blank record", func(t *testing.T) {
		r := &MemoryRecord{Text: "   "}
		err := ValidateRecord(r)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, ErrEmptyChunkText)
	})
}

func TestValidateChatMessage(t *testing.T) {
	t.Run("valid message", func(t *testing.T) {
		m := &ChatMessage{Speaker: "Alice", Text: "hello"}
		assert.NoError(t, ValidateChatMessage(m))
	})

	t.Run("missing speaker", func(t *testing.T) {
		m := &ChatMessage{Text: "orphan line"}
		assert.ErrorIs(t, ValidateChatMessage(m), ErrEmptySpeaker)
	})
}
