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


package config

import "errors"

// Settings holds the process-wide ingestion configuration. It is read-only
// once a batch starts; nothing in the pipeline mutates it.
type Settings struct {
	// DataDir is the root directory under which profiles and their
	// databases live.
	DataDir string

	// ChunkSize is the maximum chunk size in words.
	// Default: 500
	ChunkSize int

	// ChunkOverlap is the number of words repeated from the tail of one
	// chunk into the start of the next. Values >= ChunkSize are degenerate
	// and intentionally not corrected.
	// Default: 50
	ChunkOverlap int

	// VideoMaxFrames is the maximum number of frames sampled from a video.
	// Default: 5
	VideoMaxFrames int

	// RetrievalTopK is the number of memories retrieved per chat turn.
	// Default: 5
	RetrievalTopK int
}

// Option is a functional option for configuring Settings.
type Option func(*Settings)

// WithDataDir sets the data directory.
func WithDataDir(dir string) Option {
	return func(s *Settings) {
		s.DataDir = dir
	}
}

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(s *Settings) {
		s.ChunkSize = size
	}
}

// WithChunkOverlap sets the chunk overlap in words.
func WithChunkOverlap(overlap int) Option {
	return func(s *Settings) {
		s.ChunkOverlap = overlap
	}
}

// WithVideoMaxFrames sets the maximum number of sampled video frames.
func WithVideoMaxFrames(max int) Option {
	return func(s *Settings) {
		s.VideoMaxFrames = max
	}
}

// WithRetrievalTopK sets the number of memories retrieved per query.
func WithRetrievalTopK(k int) Option {
	return func(s *Settings) {
		s.RetrievalTopK = k
	}
}

// DefaultSettings returns Settings with the documented defaults.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir:        "data/profiles",
		ChunkSize:      500,
		ChunkOverlap:   50,
		VideoMaxFrames: 5,
		RetrievalTopK:  5,
	}
}

// NewSettings creates Settings with defaults and applies the provided options.
func NewSettings(opts ...Option) *Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.DataDir == "" {
		return errors.New("config: DataDir is required")
	}
	if s.ChunkSize < 1 {
		return errors.New("config: ChunkSize must be at least 1")
	}
	if s.ChunkOverlap < 0 {
		return errors.New("config: ChunkOverlap cannot be negative")
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return errors.New("config: ChunkOverlap must be smaller than ChunkSize")
	}
	if s.VideoMaxFrames < 1 {
		return errors.New("config: VideoMaxFrames must be at least 1")
	}
	if s.RetrievalTopK < 1 {
		return errors.New("config: RetrievalTopK must be at least 1")
	}
	return nil
}
