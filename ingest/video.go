package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/poiesic/recollect/core"
)

// ingestVideo runs the media pipeline over a video and chunks the merged
// analysis text. Short analyses stay as one chunk; anything longer than the
// configured chunk size goes back through the word chunker so frame
// descriptions and transcript stay retrievable independently.
func (ing *Ingestor) ingestVideo(ctx context.Context, path string, meta map[string]string, opts *FileOptions) ([]core.Chunk, error) {
	lines := []string{"Video: " + filepath.Base(path)}
	if len(opts.Tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(opts.Tags, ", "))
	}
	if opts.Description != "" {
		lines = append(lines, "Description: "+opts.Description)
	}

	if !opts.DisableVision {
		analysis, err := ing.pipeline.AnalyzeVideo(ctx, path, visionHint(opts))
		if err != nil {
			return nil, err
		}
		if analysis != "" {
			lines = append(lines, "", analysis)
		}
	}

	meta[core.MetaFormat] = core.FormatVideo
	text := strings.Join(lines, "\n")

	if len(strings.Fields(text)) > ing.settings.ChunkSize {
		return ChunkText(text, ing.settings.ChunkSize, ing.settings.ChunkOverlap, meta), nil
	}
	meta[core.MetaChunkIndex] = "0"
	return []core.Chunk{{Text: text, Metadata: meta}}, nil
}
