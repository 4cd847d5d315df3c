package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/poiesic/recollect/core"
)

// ingestPDF extracts per-page text, joins pages with blank-line separators
// and chunks the result as plain text. Conversion is best-effort: pages the
// extractor cannot render are skipped, not fatal.
func (ing *Ingestor) ingestPDF(path string, meta map[string]string) ([]core.Chunk, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", meta[core.MetaSource], err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			ing.logger.Warn("skipping unreadable PDF page", "path", path, "page", i, "err", err)
			continue
		}
		pages = append(pages, text)
	}

	meta[core.MetaFormat] = core.FormatPDF
	return ChunkText(strings.Join(pages, "\n\n"), ing.settings.ChunkSize, ing.settings.ChunkOverlap, meta), nil
}
