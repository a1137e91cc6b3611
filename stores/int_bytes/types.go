package int_bytes

import (
	"encoding/binary"
)

// Keys are big endian so the tree iterates non-negative keys in numeric
// order.
func SerializeInt32(i int32) []byte {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, uint32(i))
	return bytes
}

func DeserializeInt32(bytes []byte) int32 {
	return int32(binary.BigEndian.Uint32(bytes))
}

// Values point into the mapped file, copy them before the next operation.
func copyBytes(bytes []byte) []byte {
	cp := make([]byte, len(bytes))
	copy(cp, bytes)
	return cp
}
