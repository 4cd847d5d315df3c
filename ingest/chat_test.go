package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recollect/core"
)

func TestDetectChatLog(t *testing.T) {
	t.Run("whatsapp export", func(t *testing.T) {
		text := "1/2/24, 12:34 - Alice: hello there\n" +
			"1/2/24, 12:35 - Bob: hi, how are you?\n" +
			"1/2/24, 12:36 - Alice: doing great"

		messages := DetectChatLog(text)
		require.Len(t, messages, 3)
		assert.Equal(t, "Alice", messages[0].Speaker)
		assert.Equal(t, "hello there", messages[0].Text)
		assert.Equal(t, "Bob", messages[1].Speaker)
		assert.Equal(t, "hi, how are you?", messages[1].Text)
	})

	t.Run("whatsapp export with am/pm", func(t *testing.T) {
		text := "12/31/2023, 9:05 PM - Alice: happy new year\n" +
			"12/31/2023, 9:06 PM - Bob: almost!\n" +
			"1/1/2024, 12:01 AM - Alice: now it is"

		messages := DetectChatLog(text)
		require.Len(t, messages, 3)
		assert.Equal(t, "happy new year", messages[0].Text)
	})

	t.Run("generic chat with bracketed timestamp", func(t *testing.T) {
		text := "[2024-01-02 10:00] Alice: morning\n" +
			"[2024-01-02 10:01] Bob: morning to you\n" +
			"Alice: coffee?"

		messages := DetectChatLog(text)
		require.Len(t, messages, 3)
		assert.Equal(t, "2024-01-02 10:00", messages[0].Timestamp)
		assert.Equal(t, "Alice", messages[0].Speaker)
		assert.Equal(t, "morning", messages[0].Text)
		assert.Empty(t, messages[2].Timestamp)
	})

	t.Run("prose is not a chat log", func(t *testing.T) {
		text := "This is an ordinary diary entry about my day.\n" +
			"Nothing in here looks like a conversation at all.\n" +
			"It just keeps going for a few more lines.\n" +
			"And then it ends."

		assert.Nil(t, DetectChatLog(text))
	})

	t.Run("under half matching lines is not a chat log", func(t *testing.T) {
		text := "Alice: hello\n" +
			"Bob: hi\n" +
			"A long stretch of narration follows the two quoted lines\n" +
			"and continues without any speaker markers\n" +
			"until the end of the file."

		assert.Nil(t, DetectChatLog(text))
	})

	t.Run("blank lines count against the threshold", func(t *testing.T) {
		text := "Alice: hello\n\n\nBob: hi\n\n\nAlice: bye"
		assert.Nil(t, DetectChatLog(text))
	})

	t.Run("fewer than three lines is never a chat log", func(t *testing.T) {
		assert.Nil(t, DetectChatLog("Alice: hello\nBob: hi"))
	})

	t.Run("long prose before a colon does not match", func(t *testing.T) {
		text := "The quick brown fox jumps over the lazy sleeping dog: onward\n" +
			"The quick brown fox jumps over the lazy sleeping dog: again\n" +
			"The quick brown fox jumps over the lazy sleeping dog: forever"

		assert.Nil(t, DetectChatLog(text))
	})

	t.Run("result is usable by the chat chunker", func(t *testing.T) {
		text := "Alice: hello\nBob: hi\nAlice: bye"
		messages := DetectChatLog(text)
		require.Len(t, messages, 3)

		chunks := ChunkChatMessages(messages, 500, nil)
		require.Len(t, chunks, 1)
		assert.Equal(t, core.FormatChat, chunks[0].Metadata[core.MetaType])
	})
}
