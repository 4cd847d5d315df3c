package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/poiesic/recollect/config"
	"github.com/poiesic/recollect/core"
	"github.com/poiesic/recollect/media"
)

// Supported file extensions, grouped by handling category. These are a
// closed, versioned set; anything outside them is rejected with
// ErrUnsupportedType.
var (
	TextExtensions  = exts(".txt", ".md", ".json", ".csv", ".pdf", ".docx", ".doc")
	ImageExtensions = exts(".jpg", ".jpeg", ".png", ".gif", ".webp")
	VideoExtensions = exts(".mp4", ".mov", ".avi", ".mkv", ".webm")
)

// FileOptions carries per-call ingestion parameters.
type FileOptions struct {
	// Tags are user-supplied labels recorded in chunk metadata.
	Tags []string

	// Description is a manual description of media content; it is embedded
	// in photo/video chunks and passed to the vision analyzer as context.
	Description string

	// DisableVision skips AI vision analysis for media files.
	DisableVision bool
}

// visionHint builds the context string handed to the vision analyzer from
// the caller-supplied description and tags.
func visionHint(opts *FileOptions) string {
	var parts []string
	if opts.Description != "" {
		parts = append(parts, opts.Description)
	}
	if len(opts.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(opts.Tags, ", "))
	}
	return strings.Join(parts, ". ")
}

// FileError records why one file in a batch failed.
type FileError struct {
	Path   string
	Reason string
}

// BatchResult aggregates a directory ingestion: the chunks of every file
// that succeeded plus one error entry per file that failed. It is built
// fresh per call and never persisted.
type BatchResult struct {
	Chunks []core.Chunk
	Errors []FileError
}

// Ingestor converts files into normalized chunks. It dispatches by file
// extension after content validation; text-ish formats flow through the
// chunker, media formats through the media pipeline.
//
// Processing is strictly sequential: one file is fully ingested, including
// any blocking external-service calls, before the next begins.
type Ingestor struct {
	settings *config.Settings
	pipeline *media.Pipeline
	runner   media.CommandRunner
	logger   *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithMediaPipeline sets the pipeline used for photo and video files.
// Without one, media files produce chunks with no AI analysis.
func WithMediaPipeline(p *media.Pipeline) Option {
	return func(ing *Ingestor) error {
		ing.pipeline = p
		return nil
	}
}

// WithCommandRunner sets the runner used for external document converters.
func WithCommandRunner(r media.CommandRunner) Option {
	return func(ing *Ingestor) error {
		ing.runner = r
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		ing.logger = logger
		return nil
	}
}

// NewIngestor creates an Ingestor with the given settings.
func NewIngestor(settings *config.Settings, opts ...Option) (*Ingestor, error) {
	if settings == nil {
		return nil, ErrSettingsRequired
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	ing := &Ingestor{
		settings: settings,
		runner:   media.ExecRunner{},
		logger:   slog.Default().With("component", "ingestor"),
	}
	for _, opt := range opts {
		if err := opt(ing); err != nil {
			return nil, err
		}
	}

	if ing.pipeline == nil {
		p, err := media.NewPipeline(media.WithMaxFrames(settings.VideoMaxFrames))
		if err != nil {
			return nil, err
		}
		ing.pipeline = p
	}
	return ing, nil
}

// IngestFile validates and ingests a single file, returning its chunks.
// Ingestion of one file is all-or-nothing: on error no partial chunk list
// is returned.
func (ing *Ingestor) IngestFile(ctx context.Context, path string, opts *FileOptions) ([]core.Chunk, error) {
	if opts == nil {
		opts = &FileOptions{}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !TextExtensions[ext] && !ImageExtensions[ext] && !VideoExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	if err := ValidateFileType(path); err != nil {
		return nil, err
	}

	meta := map[string]string{
		core.MetaSource:     filepath.Base(path),
		core.MetaSourcePath: path,
	}
	if len(opts.Tags) > 0 {
		meta[core.MetaTags] = strings.Join(opts.Tags, ",")
	}

	ing.logger.Debug("ingesting file", "path", path, "ext", ext)

	switch {
	case ext == ".txt" || ext == ".md":
		return ing.ingestText(path, meta)
	case ext == ".json":
		return ing.ingestJSON(path, meta)
	case ext == ".csv":
		return ing.ingestCSV(path, meta)
	case ext == ".pdf":
		return ing.ingestPDF(path, meta)
	case ext == ".docx":
		return ing.ingestDocx(path, meta)
	case ext == ".doc":
		return ing.ingestDoc(ctx, path, meta)
	case ImageExtensions[ext]:
		return ing.ingestImage(ctx, path, meta, opts)
	default:
		return ing.ingestVideo(ctx, path, meta, opts)
	}
}

// IngestDirectory ingests every supported file under root in sorted,
// depth-first order. Per-file failures are downgraded to error entries so
// the batch always completes; chunk and error ordering follows the
// enumeration order.
func (ing *Ingestor) IngestDirectory(ctx context.Context, root string, opts *FileOptions) (*BatchResult, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if TextExtensions[ext] || ImageExtensions[ext] || VideoExtensions[ext] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, path := range files {
		chunks, err := ing.IngestFile(ctx, path, opts)
		if err != nil {
			ing.logger.Warn("skipping file", "path", path, "err", err)
			result.Errors = append(result.Errors, FileError{Path: path, Reason: err.Error()})
			continue
		}
		result.Chunks = append(result.Chunks, chunks...)
	}
	return result, nil
}
