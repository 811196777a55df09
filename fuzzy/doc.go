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


// Package fuzzy finds the atoms in a corpus most similar to a compiled
// pattern.
//
// The Matcher implements a bounded multi-start search:
//   - Discover starter leaves in the pattern's mandatory clauses
//   - Rank them by incoming-set width (rare first) and depth (specific first)
//   - Explore each starter's incoming set through an exact-matching Explorer
//   - Score the pairings the Explorer reports and keep the best, with ties
//
// Search is best-effort by design: an exhausted starter list or an empty
// corpus yields an empty result, never an error.
package fuzzy
