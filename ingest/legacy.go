package ingest

import (
	"context"
	"os/exec"
	"strings"

	"github.com/poiesic/recollect/core"
)

// docConverter is one entry in the ordered fallback chain for legacy .doc
// files. Each converts a document to plain text on stdout.
type docConverter struct {
	name string
	args func(path string) []string
}

var docConverters = []docConverter{
	{"antiword", func(path string) []string { return []string{path} }},
	{"catdoc", func(path string) []string { return []string{path} }},
	// macOS ships textutil; everything else needs one of the above.
	{"textutil", func(path string) []string { return []string{"-convert", "txt", "-stdout", path} }},
}

// ingestDoc converts a legacy .doc file via the first available external
// converter and chunks the result as plain text. When no converter is
// installed (or none produces text) it fails with an error naming the
// tools to install; it never silently produces empty text.
func (ing *Ingestor) ingestDoc(ctx context.Context, path string, meta map[string]string) ([]core.Chunk, error) {
	for _, converter := range docConverters {
		if _, err := exec.LookPath(converter.name); err != nil {
			continue
		}

		out, err := ing.runner.Run(ctx, converter.name, converter.args(path)...)
		if err != nil {
			ing.logger.Warn("doc converter failed, trying next", "converter", converter.name, "err", err)
			continue
		}
		text := strings.TrimSpace(string(out))
		if text == "" {
			ing.logger.Warn("doc converter produced no text, trying next", "converter", converter.name)
			continue
		}

		meta[core.MetaFormat] = core.FormatDoc
		return ChunkText(text, ing.settings.ChunkSize, ing.settings.ChunkOverlap, meta), nil
	}

	names := make([]string, len(docConverters))
	for i, converter := range docConverters {
		names[i] = converter.name
	}
	return nil, &ConversionUnavailableError{Name: meta[core.MetaSource], Converters: names}
}
