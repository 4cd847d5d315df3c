package ingest

import (
	"maps"
	"strconv"
	"strings"

	"github.com/poiesic/recollect/core"
)

// ChunkText splits text into chunks of at most size words, respecting
// paragraph boundaries where possible. Paragraphs are blank-line separated.
// A paragraph that alone exceeds size is split by fixed word windows, with
// each window after the first repeating the last overlap words of the
// previous one.
//
// Every returned chunk has non-blank text and its own copy of meta plus a
// trailing chunk_index. overlap >= size is undefined/degenerate and is not
// validated.
func ChunkText(text string, size, overlap int, meta map[string]string) []core.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []core.Chunk
	current := ""
	currentWords := 0

	for _, para := range paragraphs {
		paraWords := len(strings.Fields(para))

		// An oversized paragraph is flushed separately and split by pure
		// word windows, with no further paragraph awareness.
		if paraWords > size {
			if current != "" {
				chunks = append(chunks, core.Chunk{Text: strings.TrimSpace(current), Metadata: maps.Clone(meta)})
				current = ""
				currentWords = 0
			}
			chunks = append(chunks, splitLongParagraph(para, size, overlap, meta)...)
			continue
		}

		if currentWords+paraWords > size && current != "" {
			chunks = append(chunks, core.Chunk{Text: strings.TrimSpace(current), Metadata: maps.Clone(meta)})
			// Seed the next accumulator with the tail of the one just
			// flushed. overlap = 0 disables carry-over entirely.
			overlapText := ""
			if overlap > 0 {
				words := strings.Fields(current)
				start := len(words) - overlap
				if start < 0 {
					start = 0
				}
				overlapText = strings.Join(words[start:], " ")
			}
			if overlapText != "" {
				current = overlapText + "\n\n" + para
			} else {
				current = para
			}
			currentWords = len(strings.Fields(current))
		} else {
			if current != "" {
				current = current + "\n\n" + para
			} else {
				current = para
			}
			currentWords += paraWords
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, core.Chunk{Text: strings.TrimSpace(current), Metadata: maps.Clone(meta)})
	}

	assignChunkIndices(chunks)
	return chunks
}

// ChunkChatMessages groups rendered chat messages into chunks of at most
// size words, never splitting a single message's line across chunks. Each
// chunk's metadata is a copy of meta plus type=chat and a chunk_index.
func ChunkChatMessages(messages []core.ChatMessage, size int, meta map[string]string) []core.Chunk {
	if len(messages) == 0 {
		return nil
	}

	var chunks []core.Chunk
	var currentLines []string
	currentWords := 0

	flush := func() {
		m := maps.Clone(meta)
		if m == nil {
			m = make(map[string]string)
		}
		m[core.MetaType] = core.FormatChat
		chunks = append(chunks, core.Chunk{
			Text:     strings.Join(currentLines, "\n"),
			Metadata: m,
		})
	}

	for _, msg := range messages {
		speaker := msg.Speaker
		if speaker == "" {
			speaker = "Unknown"
		}
		line := core.ChatMessage{Speaker: speaker, Text: msg.Text, Timestamp: msg.Timestamp}.Render()
		lineWords := len(strings.Fields(line))

		if currentWords+lineWords > size && len(currentLines) > 0 {
			flush()
			currentLines = nil
			currentWords = 0
		}

		currentLines = append(currentLines, line)
		currentWords += lineWords
	}

	if len(currentLines) > 0 {
		flush()
	}

	assignChunkIndices(chunks)
	return chunks
}

// splitLongParagraph splits a paragraph by fixed word windows of length
// size, advancing the window start by size-overlap each step.
func splitLongParagraph(text string, size, overlap int, meta map[string]string) []core.Chunk {
	words := strings.Fields(text)
	step := size
	if overlap > 0 {
		step = size - overlap
	}
	if step < 1 {
		// Degenerate overlap >= size; advance by one word so the walk
		// still terminates.
		step = 1
	}

	var chunks []core.Chunk
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, core.Chunk{
			Text:     strings.Join(words[start:end], " "),
			Metadata: maps.Clone(meta),
		})
	}
	return chunks
}

// assignChunkIndices stamps contiguous 0-based chunk_index values over the
// produced sequence.
func assignChunkIndices(chunks []core.Chunk) {
	for i := range chunks {
		if chunks[i].Metadata == nil {
			chunks[i].Metadata = make(map[string]string)
		}
		chunks[i].Metadata[core.MetaChunkIndex] = strconv.Itoa(i)
	}
}
