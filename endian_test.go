package midinotes

import (
	"encoding/binary"
	"testing"
)

func TestSwapEndianness(t *testing.T) {
	a := uint16(0x1234)
	SwapEndianness16(&a)
	if a != 0x3412 {
		t.Fatalf("16-bit swap gave 0x%04x", a)
	}
	b := uint32(0x12345678)
	SwapEndianness32(&b)
	if b != 0x78563412 {
		t.Fatalf("32-bit swap gave 0x%08x", b)
	}
	c := uint64(0x0102030405060708)
	SwapEndianness64(&c)
	if c != 0x0807060504030201 {
		t.Fatalf("64-bit swap gave 0x%016x", c)
	}
	SwapEndianness64(&c)
	if c != 0x0102030405060708 {
		t.Fatalf("Swapping twice gave 0x%016x", c)
	}
}

func TestBigEndianToHost(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x01, 0xe0}
	native := binary.NativeEndian.Uint32(raw)
	if bigEndianToHost32(native) != 480 {
		t.Fatalf("Got %d instead of 480", bigEndianToHost32(native))
	}
	native16 := binary.NativeEndian.Uint16(raw[2:])
	if bigEndianToHost16(native16) != 480 {
		t.Fatalf("Got %d instead of 480", bigEndianToHost16(native16))
	}
}
