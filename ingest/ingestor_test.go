package ingest_test

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recollect/ai/mock"
	"github.com/poiesic/recollect/config"
	"github.com/poiesic/recollect/core"
	"github.com/poiesic/recollect/ingest"
	"github.com/poiesic/recollect/media"
)

func newTestIngestor(t *testing.T, opts ...ingest.Option) *ingest.Ingestor {
	t.Helper()
	ing, err := ingest.NewIngestor(config.DefaultSettings(), opts...)
	require.NoError(t, err)
	return ing
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeDocx builds a minimal Open-XML document with one run per paragraph.
func writeDocx(t *testing.T, dir, name string, paragraphs ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)

	fmt.Fprint(doc, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(doc, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	fmt.Fprint(doc, `</w:body></w:document>`)
	require.NoError(t, w.Close())
	return path
}

func TestNewIngestor(t *testing.T) {
	t.Run("requires settings", func(t *testing.T) {
		_, err := ingest.NewIngestor(nil)
		assert.ErrorIs(t, err, ingest.ErrSettingsRequired)
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		settings := config.DefaultSettings()
		settings.ChunkSize = 0
		_, err := ingest.NewIngestor(settings)
		assert.Error(t, err)
	})
}

func TestIngestFile(t *testing.T) {
	ctx := context.Background()

	t.Run("plain text file", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "diary.txt",
			"Went to the lake today.\n\nThe water was freezing but worth it.")

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Contains(t, chunks[0].Text, "lake")
		assert.Equal(t, "diary.txt", chunks[0].Metadata[core.MetaSource])
		assert.Equal(t, path, chunks[0].Metadata[core.MetaSourcePath])
		assert.Equal(t, core.FormatText, chunks[0].Metadata[core.MetaFormat])
		assert.Equal(t, "0", chunks[0].Metadata[core.MetaChunkIndex])
	})

	t.Run("text file that is a chat log", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "export.txt",
			"1/2/24, 12:34 - Alice: hello\n1/2/24, 12:35 - Bob: hi\n1/2/24, 12:36 - Alice: bye")

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, core.FormatChat, chunks[0].Metadata[core.MetaFormat])
		assert.Contains(t, chunks[0].Text, "Alice: hello")
	})

	t.Run("json conversation export", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "chat.json",
			`[{"sender":"Alice","text":"hello","timestamp":"2024-01-02"},{"sender":"Bob","text":"hi"}]`)

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, core.FormatChatJSON, chunks[0].Metadata[core.MetaFormat])
		assert.Contains(t, chunks[0].Text, "[2024-01-02] Alice: hello")
		assert.Contains(t, chunks[0].Text, "Bob: hi")
	})

	t.Run("json without chat shape is chunked as text", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "data.json", `{"place":"Rome","year":2019}`)

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, core.FormatText, chunks[0].Metadata[core.MetaFormat])
		assert.Contains(t, chunks[0].Text, `"place": "Rome"`)
	})

	t.Run("malformed json fails", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "broken.json", `{"unterminated`)

		_, err := ing.IngestFile(ctx, path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.json")
	})

	t.Run("csv chat export", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "messages.csv",
			"sender,message,date\nAlice,hello,2024-01-02\nBob,hi,2024-01-02")

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, core.FormatChatCSV, chunks[0].Metadata[core.MetaFormat])
		assert.Contains(t, chunks[0].Text, "[2024-01-02] Alice: hello")
	})

	t.Run("csv plain table is flattened", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "trips.csv",
			"place,year\nRome,2019\nKyoto,2023")

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, core.FormatText, chunks[0].Metadata[core.MetaFormat])
		assert.Contains(t, chunks[0].Text, "place: Rome | year: 2019")
	})

	t.Run("tags are recorded in metadata", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "diary.md", "A short note.")

		chunks, err := ing.IngestFile(ctx, path, &ingest.FileOptions{Tags: []string{"travel", "2024"}})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "travel,2024", chunks[0].Metadata[core.MetaTags])
	})

	t.Run("docx paragraphs are extracted", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeDocx(t, t.TempDir(), "letter.docx",
			"Dear diary.", "Today was a good day.")

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Dear diary.\n\nToday was a good day.", chunks[0].Text)
		assert.Equal(t, core.FormatDocx, chunks[0].Metadata[core.MetaFormat])
	})

	t.Run("legacy doc without a converter fails with guidance", func(t *testing.T) {
		for _, tool := range []string{"antiword", "catdoc", "textutil"} {
			if _, err := exec.LookPath(tool); err == nil {
				t.Skipf("%s is installed", tool)
			}
		}
		ing := newTestIngestor(t)
		ole2 := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0, 0, 0, 0}
		path := filepath.Join(t.TempDir(), "old.doc")
		require.NoError(t, os.WriteFile(path, ole2, 0o644))

		_, err := ing.IngestFile(ctx, path, nil)
		var unavailable *ingest.ConversionUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "old.doc", unavailable.Name)
		assert.Contains(t, err.Error(), "antiword")
	})

	t.Run("unsupported extension is rejected", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "archive.tar", "whatever")

		_, err := ing.IngestFile(ctx, path, nil)
		assert.ErrorIs(t, err, ingest.ErrUnsupportedType)
	})

	t.Run("mismatched content is rejected before parsing", func(t *testing.T) {
		ing := newTestIngestor(t)
		path := writeFile(t, t.TempDir(), "notes.txt", "%PDF-1.7 binary payload")

		_, err := ing.IngestFile(ctx, path, nil)
		var mismatch *ingest.TypeMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})
}

func TestIngestFileMedia(t *testing.T) {
	ctx := context.Background()

	// Minimal but valid PNG header so type validation passes.
	pngData := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	newMediaIngestor := func(t *testing.T, vision *mock.MockVisionAnalyzer) *ingest.Ingestor {
		t.Helper()
		pipeline, err := media.NewPipeline(media.WithVisionAnalyzer(vision))
		require.NoError(t, err)
		return newTestIngestor(t, ingest.WithMediaPipeline(pipeline))
	}

	t.Run("image produces a single analyzed chunk", func(t *testing.T) {
		vision := mock.NewMockVisionAnalyzer()
		ing := newMediaIngestor(t, vision)

		dir := t.TempDir()
		path := filepath.Join(dir, "beach.png")
		require.NoError(t, os.WriteFile(path, pngData, 0o644))

		chunks, err := ing.IngestFile(ctx, path, &ingest.FileOptions{
			Tags:        []string{"summer"},
			Description: "us at the beach",
		})
		require.NoError(t, err)
		require.Len(t, chunks, 1)

		assert.Contains(t, chunks[0].Text, "Photo: beach.png")
		assert.Contains(t, chunks[0].Text, "Tags: summer")
		assert.Contains(t, chunks[0].Text, "Description: us at the beach")
		assert.Contains(t, chunks[0].Text, "A description of beach.png")
		assert.Equal(t, core.FormatPhoto, chunks[0].Metadata[core.MetaFormat])
		assert.Equal(t, "0", chunks[0].Metadata[core.MetaChunkIndex])
		assert.Equal(t, 1, vision.CallCount())

		// type marks chat-message chunks only; format already says photo.
		assert.NotContains(t, chunks[0].Metadata, core.MetaType)
	})

	t.Run("description and tags both reach the analyzer", func(t *testing.T) {
		vision := mock.NewMockVisionAnalyzer()
		var gotHint string
		vision.DescribeFunc = func(ctx context.Context, imagePath, hint string) (string, error) {
			gotHint = hint
			return "a family at the beach", nil
		}
		ing := newMediaIngestor(t, vision)

		dir := t.TempDir()
		path := filepath.Join(dir, "beach.png")
		require.NoError(t, os.WriteFile(path, pngData, 0o644))

		_, err := ing.IngestFile(ctx, path, &ingest.FileOptions{
			Tags:        []string{"family", "summer"},
			Description: "us at the beach",
		})
		require.NoError(t, err)
		assert.Equal(t, "us at the beach. Tags: family, summer", gotHint)
	})

	t.Run("tags alone still give the analyzer context", func(t *testing.T) {
		vision := mock.NewMockVisionAnalyzer()
		var gotHint string
		vision.DescribeFunc = func(ctx context.Context, imagePath, hint string) (string, error) {
			gotHint = hint
			return "", nil
		}
		ing := newMediaIngestor(t, vision)

		dir := t.TempDir()
		path := filepath.Join(dir, "beach.png")
		require.NoError(t, os.WriteFile(path, pngData, 0o644))

		_, err := ing.IngestFile(ctx, path, &ingest.FileOptions{Tags: []string{"family"}})
		require.NoError(t, err)
		assert.Equal(t, "Tags: family", gotHint)
	})

	t.Run("disable vision skips analysis", func(t *testing.T) {
		vision := mock.NewMockVisionAnalyzer()
		ing := newMediaIngestor(t, vision)

		dir := t.TempDir()
		path := filepath.Join(dir, "beach.png")
		require.NoError(t, os.WriteFile(path, pngData, 0o644))

		chunks, err := ing.IngestFile(ctx, path, &ingest.FileOptions{DisableVision: true})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Photo: beach.png", chunks[0].Text)
		assert.Equal(t, 0, vision.CallCount())
	})

	t.Run("video chunk carries format but not type", func(t *testing.T) {
		ing := newMediaIngestor(t, mock.NewMockVisionAnalyzer())

		dir := t.TempDir()
		path := filepath.Join(dir, "clip.mp4")
		require.NoError(t, os.WriteFile(path, []byte("mp4 payload"), 0o644))

		chunks, err := ing.IngestFile(ctx, path, &ingest.FileOptions{DisableVision: true})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Video: clip.mp4", chunks[0].Text)
		assert.Equal(t, core.FormatVideo, chunks[0].Metadata[core.MetaFormat])
		assert.NotContains(t, chunks[0].Metadata, core.MetaType)
	})

	t.Run("image without an analyzer still ingests", func(t *testing.T) {
		pipeline, err := media.NewPipeline()
		require.NoError(t, err)
		ing := newTestIngestor(t, ingest.WithMediaPipeline(pipeline))

		dir := t.TempDir()
		path := filepath.Join(dir, "beach.png")
		require.NoError(t, os.WriteFile(path, pngData, 0o644))

		chunks, err := ing.IngestFile(ctx, path, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Photo: beach.png", chunks[0].Text)
	})
}

func TestIngestDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("ingests supported files and skips the rest", func(t *testing.T) {
		ing := newTestIngestor(t)
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "First memory about the lake.")
		writeFile(t, dir, "b.md", "Second memory about the mountains.")
		writeFile(t, dir, "ignore.tar", "not ingestible")

		sub := filepath.Join(dir, "nested")
		require.NoError(t, os.Mkdir(sub, 0o755))
		writeFile(t, sub, "c.txt", "Third memory, nested deeper.")

		result, err := ing.IngestDirectory(ctx, dir, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		require.Len(t, result.Chunks, 3)
	})

	t.Run("one bad file does not fail the batch", func(t *testing.T) {
		ing := newTestIngestor(t)
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "A fine memory.")
		writeFile(t, dir, "broken.json", `{"unterminated`)
		writeFile(t, dir, "z.txt", "Another fine memory.")

		result, err := ing.IngestDirectory(ctx, dir, nil)
		require.NoError(t, err)
		require.Len(t, result.Chunks, 2)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, filepath.Join(dir, "broken.json"), result.Errors[0].Path)
		assert.NotEmpty(t, result.Errors[0].Reason)
	})

	t.Run("missing root fails", func(t *testing.T) {
		ing := newTestIngestor(t)
		_, err := ing.IngestDirectory(ctx, filepath.Join(t.TempDir(), "absent"), nil)
		assert.Error(t, err)
	})
}
