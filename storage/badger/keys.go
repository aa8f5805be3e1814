package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	tenderPositionPrefix = "tenpos"
	tenderIDPrefix       = "tenid"
	generationKey        = "tengen"
	modelKey             = "vocmod"
)

// makeTenderPositionKey generates the primary key for a tender by its
// position in the snapshot. Positions are written in BigEndian order so
// lexicographic iteration preserves ingest order.
func makeTenderPositionKey(position uint64) []byte {
	prefix := tenderPositionPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// makeTenderIDKey generates the secondary index key for a tender by its
// portal identifier. The value is the BigEndian position.
func makeTenderIDKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", tenderIDPrefix, id))
}

// encodePosition encodes a snapshot position for storage as an index value.
func encodePosition(position uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, position)
	return buf
}

// decodePosition decodes a snapshot position from an index value.
func decodePosition(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("position index value has %d bytes, want 8", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
