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


package scope

import "errors"

var (
	// ErrNotScope indicates an attempt to construct a Scope around an atom
	// whose type is not in the scope family.
	ErrNotScope = errors.New("atom is not a scope type")

	// ErrBadStructure indicates a structurally invalid scope outgoing set.
	ErrBadStructure = errors.New("malformed scope structure")

	// ErrEmptyOutgoing indicates a scope with an empty outgoing set.
	ErrEmptyOutgoing = errors.New("empty outgoing set")

	// ErrMissingBody indicates a scope whose outgoing set holds a variable
	// declaration but no body.
	ErrMissingBody = errors.New("missing body after variable declaration")

	// ErrDuplicateVariable indicates the same variable declared twice.
	ErrDuplicateVariable = errors.New("duplicate variable in declaration")

	// ErrNotVariableDecl indicates a declaration member that is not a
	// variable, glob, or typed variable.
	ErrNotVariableDecl = errors.New("not a variable declaration")
)
