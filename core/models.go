package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored memory records.
// It is generated using content-based hashing so that identical content
// maps to the same record across ingestion runs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata keys attached to chunks during ingestion.
const (
	MetaSource     = "source"      // base filename the chunk came from
	MetaSourcePath = "source_path" // full path of the ingested file
	MetaFormat     = "format"      // one of the Format* values
	MetaTags       = "tags"        // comma-joined user-supplied tags
	MetaChunkIndex = "chunk_index" // 0-based ordinal within one ingestion call
	MetaType       = "type"        // "chat" for chat-message chunks
)

// Format values recorded under MetaFormat. This is a closed set; the
// ingestion pipeline never emits anything outside it.
const (
	FormatText     = "text"
	FormatPDF      = "pdf"
	FormatDocx     = "docx"
	FormatDoc      = "doc"
	FormatChat     = "chat"
	FormatChatJSON = "chat_json"
	FormatChatCSV  = "chat_csv"
	FormatPhoto    = "photo"
	FormatVideo    = "video"
)

// Chunk is the unit of ingestion output: a bounded piece of normalized text
// plus its metadata. Chunks are value types; the metadata map is owned by
// the chunk and is never shared with other chunks.
type Chunk struct {
	Text     string
	Metadata map[string]string
}

// ChatMessage is the intermediate representation of one line of a chat log.
// It is produced by chat detection and consumed by the chat chunker; it is
// never persisted. An empty Timestamp means the source line carried none.
type ChatMessage struct {
	Speaker   string
	Text      string
	Timestamp string
}

// Render formats the message the way it appears inside a chat chunk.
func (m ChatMessage) Render() string {
	if m.Timestamp != "" {
		return "[" + m.Timestamp + "] " + m.Speaker + ": " + m.Text
	}
	return m.Speaker + ": " + m.Text
}

// MemoryRecord is a chunk as persisted by the vector store, enriched with
// its embedding vector.
type MemoryRecord struct {
	Id         ID
	Text       string
	Metadata   map[string]string
	Vector     []float32
	InsertedAt time.Time
}

// ScoredMemory is a search hit. Distance is cosine distance (0 = identical
// direction, 2 = opposite); callers that want a similarity score use
// 1 - Distance.
type ScoredMemory struct {
	Record   *MemoryRecord
	Distance float32
}
