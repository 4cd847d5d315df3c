package storage

import (
	"context"

	"github.com/poiesic/recollect/core"
)

// MemoryStore persists ingested chunks as embedded memory records and
// serves similarity search over them.
// Implementations must be thread-safe and support concurrent access.
type MemoryStore interface {
	// AddDocuments embeds and stores chunks, returning how many records
	// were written. Chunks whose content hash already exists are skipped,
	// so re-ingesting the same file is idempotent.
	AddDocuments(ctx context.Context, chunks []core.Chunk) (int, error)

	// Search embeds the query and returns up to topK nearest records,
	// ordered by ascending cosine distance. A non-nil filter restricts
	// results to records whose metadata matches every key/value pair.
	Search(ctx context.Context, query string, topK int, filter map[string]string) ([]core.ScoredMemory, error)

	// Count returns the number of stored memory records.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
