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

import "errors"

// Domain validation errors
var (
	// ErrInvalidAtom indicates an Atom failed validation.
	ErrInvalidAtom = errors.New("invalid atom")

	// ErrInvalidAtomType indicates an unknown AtomType value.
	ErrInvalidAtomType = errors.New("invalid atom type")

	// ErrEmptyName indicates a node atom with an empty name.
	ErrEmptyName = errors.New("node name cannot be empty")

	// ErrNodeWithOutgoing indicates a node atom carrying an outgoing set.
	ErrNodeWithOutgoing = errors.New("node cannot have an outgoing set")

	// ErrLinkWithName indicates a link atom carrying a name.
	ErrLinkWithName = errors.New("link cannot have a name")

	// ErrNilChild indicates a link with a nil child reference.
	ErrNilChild = errors.New("link child cannot be nil")
)
