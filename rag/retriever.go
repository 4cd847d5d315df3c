// Package rag retrieves stored memories relevant to a question and folds
// them into the prompt a chat model answers from.
package rag

import (
	"context"
	"log/slog"

	"github.com/poiesic/recollect/storage"
)

// RetrievedMemory is one memory selected for a question, with its
// similarity score (1 = identical, 0 = unrelated).
type RetrievedMemory struct {
	Text     string
	Score    float32
	Metadata map[string]string
}

// Retriever runs similarity search over the memory store.
type Retriever struct {
	store  storage.MemoryStore
	topK   int
	logger *slog.Logger
}

// NewRetriever creates a retriever returning up to topK memories per query.
func NewRetriever(store storage.MemoryStore, topK int) *Retriever {
	if topK < 1 {
		topK = 1
	}
	return &Retriever{
		store:  store,
		topK:   topK,
		logger: slog.Default().With("component", "retriever"),
	}
}

// Retrieve returns the memories most similar to the query, best first.
// An empty store yields an empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]RetrievedMemory, error) {
	count, err := r.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		r.logger.Debug("no memories stored yet")
		return nil, nil
	}

	results, err := r.store.Search(ctx, query, r.topK, nil)
	if err != nil {
		return nil, err
	}

	memories := make([]RetrievedMemory, len(results))
	for i, result := range results {
		memories[i] = RetrievedMemory{
			Text:     result.Record.Text,
			Score:    1 - result.Distance,
			Metadata: result.Record.Metadata,
		}
	}
	r.logger.Debug("retrieved memories", "query_len", len(query), "hits", len(memories))
	return memories, nil
}
