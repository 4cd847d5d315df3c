package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/poiesic/recollect/core"
)

// ingestImage produces a single chunk for a photo: a header naming the
// file, any user-supplied tags and description, and the vision analysis
// when available. A photo is never split across chunks.
func (ing *Ingestor) ingestImage(ctx context.Context, path string, meta map[string]string, opts *FileOptions) ([]core.Chunk, error) {
	lines := []string{"Photo: " + filepath.Base(path)}
	if len(opts.Tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(opts.Tags, ", "))
	}
	if opts.Description != "" {
		lines = append(lines, "Description: "+opts.Description)
	}

	if !opts.DisableVision {
		analysis, err := ing.pipeline.DescribeImage(ctx, path, visionHint(opts))
		if err != nil {
			return nil, err
		}
		if analysis != "" {
			lines = append(lines, "", analysis)
		}
	}

	meta[core.MetaFormat] = core.FormatPhoto
	meta[core.MetaChunkIndex] = "0"
	return []core.Chunk{{Text: strings.Join(lines, "\n"), Metadata: meta}}, nil
}
