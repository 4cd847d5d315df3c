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

// Package recollect turns a person's files — notes, chat exports,
// documents, photos and videos — into a searchable semantic memory that a
// persona can answer questions from. This root package is the facade that
// wires the store, the ingestion pipeline and the chat session together
// for library consumers; the subpackages do the actual work.
package recollect

import (
	"log/slog"

	"github.com/poiesic/recollect/ai"
	"github.com/poiesic/recollect/ai/providers"
	"github.com/poiesic/recollect/config"
	"github.com/poiesic/recollect/ingest"
	"github.com/poiesic/recollect/media"
	"github.com/poiesic/recollect/profile"
	"github.com/poiesic/recollect/rag"
	"github.com/poiesic/recollect/session"
	"github.com/poiesic/recollect/storage"
	"github.com/poiesic/recollect/storage/badger"
)

// Memory is one profile's opened memory system: its vector store plus the
// AI services everything downstream shares.
type Memory struct {
	settings *config.Settings
	profile  *profile.Profile
	store    storage.MemoryStore
	aiConfig *ai.Config
	logger   *slog.Logger
}

// MemoryOption configures Open.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(cfg *ai.Config) MemoryOption {
	return func(o *memoryOptions) {
		o.aiConfig = cfg
	}
}

// Open loads a profile and opens its memory database.
func Open(settings *config.Settings, profileName string, opts ...MemoryOption) (*Memory, error) {
	options := &memoryOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	p, err := profile.Load(settings.DataDir, profileName)
	if err != nil {
		return nil, err
	}

	embedder, err := providers.NewEmbedder(options.aiConfig)
	if err != nil {
		return nil, err
	}

	store, err := badger.NewStore(p.DatabaseDir(settings.DataDir), embedder)
	if err != nil {
		return nil, err
	}

	return &Memory{
		settings: settings,
		profile:  p,
		store:    store,
		aiConfig: options.aiConfig,
		logger:   slog.Default(),
	}, nil
}

// Close closes the memory database.
func (m *Memory) Close() error {
	if err := m.store.Close(); err != nil {
		m.logger.Error("error closing memory store", "err", err)
		return err
	}
	return nil
}

// Profile returns the loaded persona profile.
func (m *Memory) Profile() *profile.Profile {
	return m.profile
}

// Store returns the underlying memory store.
func (m *Memory) Store() storage.MemoryStore {
	return m.store
}

// NewIngestor builds the ingestion pipeline for this profile, wiring in
// vision and transcription when the AI config provides them.
func (m *Memory) NewIngestor(opts ...ingest.Option) (*ingest.Ingestor, error) {
	vision, err := providers.NewVisionAnalyzer(m.aiConfig)
	if err != nil {
		return nil, err
	}
	transcriber, err := providers.NewTranscriber(m.aiConfig)
	if err != nil {
		return nil, err
	}

	pipelineOpts := []media.PipelineOption{
		media.WithMaxFrames(m.settings.VideoMaxFrames),
		media.WithVisionAnalyzer(vision),
	}
	if transcriber != nil {
		pipelineOpts = append(pipelineOpts, media.WithTranscriber(transcriber))
	}
	pipeline, err := media.NewPipeline(pipelineOpts...)
	if err != nil {
		return nil, err
	}

	opts = append([]ingest.Option{ingest.WithMediaPipeline(pipeline)}, opts...)
	return ingest.NewIngestor(m.settings, opts...)
}

// NewSession starts a chat session speaking as this profile's persona.
func (m *Memory) NewSession(opts ...session.Option) (*session.Session, error) {
	chat, err := providers.NewChatModel(m.aiConfig)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := m.profile.BuildSystemPrompt(m.settings.DataDir)
	if err != nil {
		return nil, err
	}

	retriever := rag.NewRetriever(m.store, m.settings.RetrievalTopK)
	return session.NewSession(chat, retriever, systemPrompt, opts...)
}
