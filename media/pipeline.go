// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// VisionAnalyzer produces a natural-language description of an image.
// The hint carries optional user-supplied context about the image content.
type VisionAnalyzer interface {
	Describe(ctx context.Context, imagePath, hint string) (string, error)
}

// Transcriber converts an audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Pipeline turns photos and videos into text. Photos go straight to the
// vision analyzer; videos are decomposed with ffmpeg into sampled frames
// plus the audio track, each analyzed separately, and the results merged
// into one description.
type Pipeline struct {
	vision      VisionAnalyzer
	transcriber Transcriber
	runner      CommandRunner
	maxFrames   int
	logger      *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithVisionAnalyzer sets the analyzer for photo and frame description.
// Without one, DescribeImage and frame analysis are skipped.
func WithVisionAnalyzer(v VisionAnalyzer) PipelineOption {
	return func(p *Pipeline) error {
		p.vision = v
		return nil
	}
}

// WithTranscriber sets the model used for video audio tracks. Without one,
// audio is not transcribed.
func WithTranscriber(t Transcriber) PipelineOption {
	return func(p *Pipeline) error {
		p.transcriber = t
		return nil
	}
}

// WithRunner sets the external command runner. Default runs ffmpeg and
// ffprobe via os/exec.
func WithRunner(r CommandRunner) PipelineOption {
	return func(p *Pipeline) error {
		p.runner = r
		return nil
	}
}

// WithMaxFrames caps the number of frames sampled per video.
func WithMaxFrames(n int) PipelineOption {
	return func(p *Pipeline) error {
		if n < 1 {
			return fmt.Errorf("%w: max frames %d", ErrInvalidOption, n)
		}
		p.maxFrames = n
		return nil
	}
}

// WithPipelineLogger sets a custom logger. Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a Pipeline with the given options.
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	p := &Pipeline{
		runner:    ExecRunner{},
		maxFrames: 5,
		logger:    slog.Default().With("component", "media"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DescribeImage runs the vision analyzer over a photo. It returns "" with
// no error when no analyzer is configured.
func (p *Pipeline) DescribeImage(ctx context.Context, path, hint string) (string, error) {
	if p.vision == nil {
		p.logger.Debug("no vision analyzer configured, skipping image", "path", path)
		return "", nil
	}
	description, err := p.vision.Describe(ctx, path, hint)
	if err != nil {
		return "", fmt.Errorf("describe %s: %w", filepath.Base(path), err)
	}
	return description, nil
}

// AnalyzeVideo samples frames and extracts the audio track of a video,
// runs vision and transcription over them, and returns the merged text.
// All intermediate files live in a temporary directory that is removed
// before the function returns, on every path including errors.
func (p *Pipeline) AnalyzeVideo(ctx context.Context, path, hint string) (string, error) {
	dir, err := os.MkdirTemp("", "recollect_video_")
	if err != nil {
		return "", fmt.Errorf("analyze %s: %w", filepath.Base(path), err)
	}
	defer os.RemoveAll(dir)

	var sections []string

	if p.vision != nil {
		descriptions, err := p.describeFrames(ctx, path, dir, hint)
		if err != nil {
			return "", err
		}
		sections = append(sections, descriptions...)
	} else {
		p.logger.Debug("no vision analyzer configured, skipping frames", "path", path)
	}

	if p.transcriber != nil {
		audio, err := p.extractAudio(ctx, path, dir)
		if err != nil {
			return "", err
		}
		if audio != "" {
			transcript, err := p.transcriber.Transcribe(ctx, audio)
			if err != nil {
				return "", fmt.Errorf("transcribe %s: %w", filepath.Base(path), err)
			}
			if transcript = strings.TrimSpace(transcript); transcript != "" {
				sections = append(sections, "Audio transcript: "+transcript)
			}
		}
	} else {
		p.logger.Debug("no transcriber configured, skipping audio", "path", path)
	}

	return strings.Join(sections, "\n\n"), nil
}

func (p *Pipeline) describeFrames(ctx context.Context, path, dir, hint string) ([]string, error) {
	total, err := p.countFrames(ctx, path)
	if err != nil {
		return nil, err
	}

	frames, err := p.extractFrames(ctx, path, dir, frameIndices(total, p.maxFrames))
	if err != nil {
		return nil, err
	}
	p.logger.Debug("sampled video frames", "path", path, "total", total, "sampled", len(frames))

	descriptions := make([]string, 0, len(frames))
	for i, frame := range frames {
		description, err := p.vision.Describe(ctx, frame, hint)
		if err != nil {
			return nil, fmt.Errorf("describe frame %d of %s: %w", i+1, filepath.Base(path), err)
		}
		descriptions = append(descriptions,
			fmt.Sprintf("Frame %d of %d: %s", i+1, len(frames), description))
	}
	return descriptions, nil
}
