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


package core

import "fmt"

// ValidateAtom validates an Atom according to domain rules.
//
// Validation rules:
//   - Type must be a known AtomType
//   - Nodes must have a name and no outgoing set
//   - Links must have no name and no nil children
//
// NOT validated:
//   - ID (constructors derive it from content; 0 never occurs for
//     constructor-built atoms but is not rejected here)
//   - Arity constraints of scope types (enforced by the scope package)
func ValidateAtom(atom *Atom) error {
	if atom == nil {
		return fmt.Errorf("%w: atom is nil", ErrInvalidAtom)
	}

	if !atom.Type.IsValid() {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidAtom, ErrInvalidAtomType, atom.Type)
	}

	if atom.Type.IsNode() {
		if atom.Name == "" {
			return fmt.Errorf("%w: %w", ErrInvalidAtom, ErrEmptyName)
		}
		if len(atom.Out) > 0 {
			return fmt.Errorf("%w: %w", ErrInvalidAtom, ErrNodeWithOutgoing)
		}
		return nil
	}

	if atom.Name != "" {
		return fmt.Errorf("%w: %w", ErrInvalidAtom, ErrLinkWithName)
	}
	for i, child := range atom.Out {
		if child == nil {
			return fmt.Errorf("%w: %w: position %d", ErrInvalidAtom, ErrNilChild, i)
		}
	}
	return nil
}
