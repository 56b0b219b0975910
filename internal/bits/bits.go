// Package bits reads values packed into the bitfields of unsigned integers.
package bits

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// GetValue returns the bits of "store" selected by "bitMask", shifted down by "start".
func GetValue[U, U1 constraints.Unsigned](store U, bitMask U, start uint64) U1 {
	return U1((store & bitMask) >> start)
}

// GetBit gets a single bit value from "store" in position "pos". true if set, false if not.
func GetBit[U constraints.Unsigned](store U, pos uint8) bool {
	if uint64(pos) >= size(store) {
		panic(fmt.Sprintf("can't GetBit() a %d bit number at position %d", size(store), pos))
	}
	return store&(1<<pos) != 0
}

// Mask creates a mask for getting a set of bits.
// start is the bit location you wish to start at and end is the bit you wish to end at (exclusive).
// Index starts at 0.  So Mask(1, 4) will create a mask that includes bits at location 1 to 3.
// If start >= end or end is larger than U, this will panic.
func Mask[U constraints.Unsigned](start, end uint64) U {
	var u U
	if start >= end {
		panic("start cannot be >= end")
	}
	if end > size(u) {
		panic(fmt.Sprintf("end cannot be %d, as that is the largest amount of bits in an %d bit number", end, size(u)))
	}

	var r U
	for x := start; x < end; x++ {
		r |= U(1) << x
	}
	return r
}

func size[U constraints.Unsigned](n U) uint64 {
	switch any(n).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	case uint64:
		return 64
	case uint:
		return bits.UintSize
	}
	panic(fmt.Sprintf("n must be of type uint8/uint16/uint32/uint64, was %T", n))
}
