// Package binary replaces the encoding/binary package in the standard library for little endian encoding using generics.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/exp/constraints"
)

// Enc is the little-endian binary encoder. Do not change this.
var Enc = binary.LittleEndian

// Number is any fixed width value that can be stored in a level file.
type Number interface {
	constraints.Integer | constraints.Float
}

// Size returns the number of bytes T occupies on the wire.
func Size[T Number]() int {
	var r T // This is only used for type detection.
	switch any(r).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Get gets any Number from a []byte slice.
func Get[T Number](b []byte) T {
	_ = b[len(b)-1] // bounds check hint to compiler; see golang.org/issue/14808

	var r T // This is only used for type detction.
	switch any(r).(type) {
	case int8:
		return T(int8(b[0]))
	case int16:
		return T(int16(uint16(b[0]) | uint16(b[1])<<8))
	case int32:
		return T(int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24))
	case int64:
		return T(int64(Enc.Uint64(b)))
	case uint8:
		return T(b[0])
	case uint16:
		return T(uint16(b[0]) | uint16(b[1])<<8)
	case uint32:
		return T(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
	case uint64:
		return T(Enc.Uint64(b))
	case float32:
		return T(math.Float32frombits(Enc.Uint32(b)))
	case float64:
		return T(math.Float64frombits(Enc.Uint64(b)))
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Put puts any Number into a []byte slice.
func Put[T Number](b []byte, v T) {
	switch x := any(v).(type) {
	case int8:
		b[0] = byte(x)
	case uint8:
		b[0] = x
	case int16:
		Enc.PutUint16(b, uint16(x))
	case uint16:
		Enc.PutUint16(b, x)
	case int32:
		Enc.PutUint32(b, uint32(x))
	case uint32:
		Enc.PutUint32(b, x)
	case float32:
		Enc.PutUint32(b, math.Float32bits(x))
	case int64:
		Enc.PutUint64(b, uint64(x))
	case uint64:
		Enc.PutUint64(b, x)
	case float64:
		Enc.PutUint64(b, math.Float64bits(x))
	default:
		panic(fmt.Sprintf("unsupported type that passed the type constraint %T", v))
	}
}

// PutBuffer encodes a Number into the passed Writer.
func PutBuffer[T Number](w io.Writer, v T) error {
	var b [8]byte
	n := Size[T]()
	Put(b[:n], v)
	_, err := w.Write(b[:n])
	return err
}
