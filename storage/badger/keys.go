package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/hyperfind/core"
)

// Key prefixes for different data types
const (
	atomRecordPrefix   = "atrec"
	atomIncomingPrefix = "atinc"
)

// makeAtomKey generates a key for an atom record by ID.
func makeAtomKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", atomRecordPrefix, id))
}

// makeIncomingKey generates a composite key for the incoming-set index.
// Format: prefix:childID:linkID
func makeIncomingKey(childID, linkID core.ID) []byte {
	prefix := atomIncomingPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for childID + 8 bytes for linkID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(childID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(linkID))
	return buf
}

// makePartialIncomingKey generates a partial key for incoming-set scans.
// Format: prefix:childID
func makePartialIncomingKey(childID core.ID) []byte {
	prefix := atomIncomingPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for childID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(childID))
	return buf
}
