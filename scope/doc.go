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


// Package scope models bound-variable structures over hypergraph atoms.
//
// A scope atom pairs a variable declaration with one or more scoped terms,
// as in "forall x: P(x)". The package extracts the declaration (explicit,
// adopted from a lambda body, or inferred from free variable occurrences)
// and supports alpha-equivalence: structural equality up to a consistent
// renaming of the bound variables.
package scope
