package midinotes

import (
	"encoding/binary"
	"math/bits"
)

// SMF stores every multi-byte integer big-endian. Fields are read in the
// host's native order and then passed through these to get their value.

var hostIsLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// Reverses the byte order of *n.
func SwapEndianness16(n *uint16) {
	*n = bits.ReverseBytes16(*n)
}

// Reverses the byte order of *n.
func SwapEndianness32(n *uint32) {
	*n = bits.ReverseBytes32(*n)
}

// Reverses the byte order of *n.
func SwapEndianness64(n *uint64) {
	*n = bits.ReverseBytes64(*n)
}

// Converts a big-endian value that was read in native order into its actual
// value.
func bigEndianToHost16(n uint16) uint16 {
	if hostIsLittleEndian {
		SwapEndianness16(&n)
	}
	return n
}

func bigEndianToHost32(n uint32) uint32 {
	if hostIsLittleEndian {
		SwapEndianness32(&n)
	}
	return n
}
