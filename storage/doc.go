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


// Package storage provides the storage abstraction layer for bidmatch.
//
// This package defines repository interfaces that decouple storage
// implementation from the matching core. The tender store and the trained
// vocabulary model are both rebuildable caches, not sources of truth: the
// interfaces distinguish "absent, rebuild it" (ErrNotFound) from real
// failures, and snapshot replacement explicitly invalidates the cached model
// so staleness is a stated invariant rather than an accidental coupling.
//
// # Snapshot semantics
//
// TenderRepository.ReplaceAll swaps the entire tender set atomically and
// bumps the store generation. A persisted model records the generation it was
// trained from; a mismatch tells the caller to retrain. ListTenders returns
// records in their ingest order, which downstream code relies on for
// deterministic tie-breaking.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
