package ingest

import (
	"os"
	"strings"

	"github.com/poiesic/recollect/core"
)

// ingestText handles .txt and .md files. Text that reads like a chat log is
// chunked message-by-message; everything else goes through the paragraph
// chunker.
func (ing *Ingestor) ingestText(path string, meta map[string]string) ([]core.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ToValidUTF8(string(data), "�")

	if messages := DetectChatLog(text); messages != nil {
		meta[core.MetaFormat] = core.FormatChat
		return ChunkChatMessages(messages, ing.settings.ChunkSize, meta), nil
	}

	meta[core.MetaFormat] = core.FormatText
	return ChunkText(text, ing.settings.ChunkSize, ing.settings.ChunkOverlap, meta), nil
}
