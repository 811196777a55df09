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


package fuzzy

import "errors"

var (
	// ErrStoreRequired is returned when an atom store is not provided.
	ErrStoreRequired = errors.New("atom store required")

	// ErrExplorerRequired is returned when an explorer is not provided.
	ErrExplorerRequired = errors.New("explorer required")

	// ErrPatternRequired is returned when a pattern is not provided.
	ErrPatternRequired = errors.New("pattern required")
)
