// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/core"
	"github.com/poiesic/recollect/storage"
)

const defaultEmbedBatchSize = 32

// Store implements storage.MemoryStore on BadgerDB. Records are keyed by a
// hash of their content, so re-ingesting the same file writes nothing new.
// Embedding of a batch is fanned out over a worker pool; everything else is
// simple transactional reads and writes.
type Store struct {
	backend   *Backend
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per API call.
func WithBatchSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		s.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore opens a memory store at the given path.
//
// Returns storage.MemoryStore interface to enforce abstraction.
func NewStore(path string, embedder ai.Embedder, opts ...Option) (storage.MemoryStore, error) {
	return newStore(path, false, embedder, opts...)
}

// NewMemoryStore creates an in-memory store for testing.
func NewMemoryStore(embedder ai.Embedder, opts ...Option) (storage.MemoryStore, error) {
	return newStore("", true, embedder, opts...)
}

func newStore(path string, inMemory bool, embedder ai.Embedder, opts ...Option) (*Store, error) {
	if embedder == nil {
		return nil, storage.ErrEmbedderRequired
	}

	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		backend.Close()
		return nil, err
	}

	s := &Store{
		backend:   backend,
		embedder:  embedder,
		pool:      pool,
		batchSize: defaultEmbedBatchSize,
		logger:    slog.Default().With("component", "memory-store"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close releases the worker pool and closes the database.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Release()
	}
	return s.backend.Close()
}

// recordID derives the content hash a chunk is stored under. The source
// path is folded in so the same sentence appearing in two files stays two
// memories.
func recordID(chunk core.Chunk) core.ID {
	return core.IDFromContent(chunk.Text + "\x00" + chunk.Metadata[core.MetaSourcePath])
}

// AddDocuments embeds and stores chunks, returning how many records were
// written. Chunks already present (same content hash) are skipped.
func (s *Store) AddDocuments(ctx context.Context, chunks []core.Chunk) (int, error) {
	if s.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	for i := range chunks {
		if err := core.ValidateChunk(&chunks[i]); err != nil {
			return 0, err
		}
	}

	fresh, err := s.filterExisting(chunks)
	if err != nil {
		return 0, err
	}
	if len(fresh) == 0 {
		s.logger.Debug("all chunks already stored", "total", len(chunks))
		return 0, nil
	}

	vectors, err := s.embedChunks(ctx, fresh)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	written := 0
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		for i, chunk := range fresh {
			record := &core.MemoryRecord{
				Id:         recordID(chunk),
				Text:       chunk.Text,
				Metadata:   chunk.Metadata,
				Vector:     NormalizeVector(vectors[i]),
				InsertedAt: now,
			}
			if err := tx.Set(makeMemoryRecordKey(record.Id), storage.MarshalMemoryRecord(record)); err != nil {
				return err
			}
			written++
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("stored memory records",
		"total", len(chunks), "written", written, "skipped", len(chunks)-written)
	return written, nil
}

// filterExisting drops chunks whose record already exists, and duplicates
// within the batch itself.
func (s *Store) filterExisting(chunks []core.Chunk) ([]core.Chunk, error) {
	fresh := make([]core.Chunk, 0, len(chunks))
	seen := make(map[core.ID]bool, len(chunks))

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			id := recordID(chunk)
			if seen[id] {
				continue
			}
			seen[id] = true

			_, err := tx.Get(makeMemoryRecordKey(id))
			switch {
			case err == nil:
				continue
			case errors.Is(err, badger.ErrKeyNotFound):
				fresh = append(fresh, chunk)
			default:
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// embedChunks generates embeddings for all chunks, fanning batches out over
// the worker pool. The result slice is index-aligned with the input.
func (s *Store) embedChunks(ctx context.Context, chunks []core.Chunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for start := 0; start < len(chunks); start += s.batchSize {
		end := min(start+s.batchSize, len(chunks))
		texts := make([]string, end-start)
		for i, chunk := range chunks[start:end] {
			texts[i] = chunk.Text
		}

		offset := start
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			embedded, err := s.embedder.EmbedTexts(ctx, texts)
			if err == nil && len(embedded) != len(texts) {
				err = storage.ErrSerializationFailed
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			copy(vectors[offset:], embedded)
		})
		if err != nil {
			// Already-submitted batches keep running; wait them out so no
			// worker touches vectors after we return.
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// Search embeds the query and returns up to topK nearest records by cosine
// distance. The filter, when non-nil, must match record metadata exactly.
func (s *Store) Search(ctx context.Context, query string, topK int, filter map[string]string) ([]core.ScoredMemory, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if topK < 1 {
		return nil, storage.ErrInvalidQuery
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	vector = NormalizeVector(vector)

	var results []core.ScoredMemory
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(memoryRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.MemoryRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalMemoryRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}
			if !matchesFilter(record.Metadata, filter) {
				continue
			}

			// Stored vectors are normalized, so the dot product is the
			// cosine similarity.
			similarity := dotProduct(vector, record.Vector)
			results = append(results, core.ScoredMemory{
				Record:   record,
				Distance: 1 - similarity,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by distance ascending (nearest first)
	slices.SortFunc(results, func(a, b core.ScoredMemory) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func matchesFilter(metadata, filter map[string]string) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

// Count returns the number of stored memory records.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(memoryRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}
