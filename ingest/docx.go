package ingest

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/recollect/core"
)

// wordDocument mirrors the parts of word/document.xml we read.
type wordDocument struct {
	Body struct {
		Paragraphs []wordParagraph `xml:"p"`
	} `xml:"body"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text []wordText `xml:"t"`
}

type wordText struct {
	Content string `xml:",chardata"`
}

// ingestDocx extracts the non-empty paragraphs of a .docx document, joins
// them with blank-line separators and chunks the result as plain text.
func (ing *Ingestor) ingestDocx(path string, meta map[string]string) ([]core.Chunk, error) {
	paragraphs, err := docxParagraphs(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", meta[core.MetaSource], err)
	}

	meta[core.MetaFormat] = core.FormatDocx
	return ChunkText(strings.Join(paragraphs, "\n\n"), ing.settings.ChunkSize, ing.settings.ChunkOverlap, meta), nil
}

// docxParagraphs reads word/document.xml out of the docx ZIP container and
// returns the document's non-empty paragraphs.
func docxParagraphs(path string) ([]string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		var doc wordDocument
		if err := xml.Unmarshal(content, &doc); err != nil {
			return nil, err
		}

		var paragraphs []string
		for _, para := range doc.Body.Paragraphs {
			var b strings.Builder
			for _, run := range para.Runs {
				for _, text := range run.Text {
					b.WriteString(text.Content)
				}
			}
			if p := strings.TrimSpace(b.String()); p != "" {
				paragraphs = append(paragraphs, p)
			}
		}
		return paragraphs, nil
	}
	return nil, nil
}
