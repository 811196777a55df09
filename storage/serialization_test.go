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


package storage

import (
	"testing"

	"github.com/poiesic/hyperfind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent([]byte("test content"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalAtomRecord(t *testing.T) {
	likes := core.NewNode(core.TypeNode, "Likes")
	pizza := core.NewNode(core.TypeNode, "pizza")
	link := core.NewLink(core.TypeLink, likes, pizza)

	tests := []struct {
		name string
		rec  *core.AtomRecord
	}{
		{
			name: "node record",
			rec:  likes.Record(),
		},
		{
			name: "link record",
			rec:  link.Record(),
		},
		{
			name: "variable record",
			rec:  core.NewNode(core.TypeVariable, "$x").Record(),
		},
		{
			name: "empty link record",
			rec:  core.NewLink(core.TypeLink).Record(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalAtomRecord(tt.rec)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalAtomRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.rec.Id, decoded.Id)
			assert.Equal(t, tt.rec.Type, decoded.Type)
			assert.Equal(t, tt.rec.Name, decoded.Name)
			if len(tt.rec.Outgoing) == 0 {
				assert.Empty(t, decoded.Outgoing)
			} else {
				assert.Equal(t, tt.rec.Outgoing, decoded.Outgoing)
			}
		})
	}
}

func TestUnmarshalAtomRecord_Truncated(t *testing.T) {
	data := MarshalAtomRecord(core.NewNode(core.TypeNode, "truncate-me").Record())

	_, err := UnmarshalAtomRecord(data[:len(data)/2])
	assert.Error(t, err)
}
