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


// Package storage defines the hypergraph store contract and serialization
// helpers for atoms.
//
// The AtomStore interface is the boundary the matching engine consumes:
// atom interning, lookup by ID, and incoming-set enumeration. The badger
// subpackage provides the persistent implementation.
//
// # Incoming Sets
//
// The store maintains a back-reference index from every atom to the links
// that list it as a direct child. Enumeration reflects only directly
// containing links, never transitive ones.
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
