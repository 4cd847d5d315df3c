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

// Package storage provides the storage abstraction layer for recollect.
//
// It defines the MemoryStore interface that decouples ingestion and
// retrieval logic from any particular backend, plus the binary
// serialization used for persisted records.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface type to enforce abstraction and
// keep alternative backends swappable:
//
//	store, err := badger.NewStore(path, embedder)  // returns storage.MemoryStore
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryStore(embedder)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Thread Safety
//
// All store implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All store methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific
// timeout requirements.
package storage
