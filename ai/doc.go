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

// Package ai provides abstractions for the AI services used in Recollect.
//
// It defines provider-neutral interfaces for the four capabilities the
// system needs — text embeddings, conversational chat, image description
// and audio transcription — so that storage, retrieval and ingestion code
// depend on abstractions rather than on any one vendor SDK.
//
// # Interfaces
//
//   - Embedder: generates vector embeddings from text
//   - ChatModel: conversational completion, with and without streaming
//   - VisionAnalyzer: natural-language image description
//   - Transcriber: speech-to-text for audio files
//
// # Implementation Packages
//
//   - ai/openai: OpenAI and OpenAI-compatible APIs (chat, vision,
//     embeddings, Whisper transcription)
//   - ai/anthropic: Anthropic Claude models (chat, vision)
//   - ai/ollama: local Ollama models (chat)
//   - ai/langchain: shared adapters the provider packages are built on
//   - ai/providers: config-driven factory over the above
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors return interface types to enforce abstraction; mock
// constructors return concrete types so tests can inject behavior and make
// call-count assertions.
package ai
