package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recollect/ai/mock"
	"github.com/poiesic/recollect/core"
	"github.com/poiesic/recollect/storage/badger"
)

func TestRetriever_Retrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields no memories and no error", func(t *testing.T) {
		store, err := badger.NewMemoryStore(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer store.Close()

		memories, err := NewRetriever(store, 5).Retrieve(ctx, "anything")
		require.NoError(t, err)
		assert.Empty(t, memories)
	})

	t.Run("scores are 1 minus distance", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		}
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil
		}

		store, err := badger.NewMemoryStore(embedder)
		require.NoError(t, err)
		defer store.Close()

		_, err = store.AddDocuments(ctx, []core.Chunk{{
			Text:     "the memory",
			Metadata: map[string]string{core.MetaSourcePath: "a.txt"},
		}})
		require.NoError(t, err)

		memories, err := NewRetriever(store, 5).Retrieve(ctx, "query")
		require.NoError(t, err)
		require.Len(t, memories, 1)
		assert.Equal(t, "the memory", memories[0].Text)
		assert.InDelta(t, 1.0, memories[0].Score, 1e-5)
	})
}

func TestFormatMemories(t *testing.T) {
	t.Run("no memories", func(t *testing.T) {
		assert.Equal(t, "No relevant memories were found.", FormatMemories(nil))
	})

	t.Run("labels media and includes tags and source", func(t *testing.T) {
		out := FormatMemories([]RetrievedMemory{
			{
				Text:  "Photo: beach.jpg\n\nA sunny beach.",
				Score: 0.91,
				Metadata: map[string]string{
					core.MetaFormat: core.FormatPhoto,
					core.MetaTags:   "holiday,beach",
					core.MetaSource: "beach.jpg",
				},
			},
			{
				Text:     "We left at dawn.",
				Score:    0.52,
				Metadata: map[string]string{core.MetaFormat: core.FormatText},
			},
		})

		assert.Contains(t, out, "--- Memory 1 (relevance 0.91) ---")
		assert.Contains(t, out, "[photo] Photo: beach.jpg")
		assert.Contains(t, out, "Tags: holiday,beach")
		assert.Contains(t, out, "Source: beach.jpg")
		assert.Contains(t, out, "--- Memory 2 (relevance 0.52) ---")
		assert.NotContains(t, out, "[video]")
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]RetrievedMemory{
		{Text: "We adopted a dog in 2019.", Score: 0.8, Metadata: map[string]string{}},
	}, "When did we get the dog?")

	require.True(t, strings.HasPrefix(prompt, "Here are memories relevant to the question:"))
	assert.Contains(t, prompt, "We adopted a dog in 2019.")
	assert.True(t, strings.HasSuffix(prompt, "Question: When did we get the dog?"))
}
