package codec

import (
	"github.com/bearlytools/trc/internal/binary"
)

// Func decodes one value of T from a Reader.
type Func[T any] func(r *Reader) (T, error)

// Scalar reads one little-endian T, advancing the cursor by exactly its width.
func Scalar[T binary.Number](r *Reader) (T, error) {
	b, err := r.next(binary.Size[T]())
	if err != nil {
		return 0, err
	}
	return binary.Get[T](b), nil
}

// Element decoders for the scalar types the level format uses.
var (
	U8  Func[uint8]   = Scalar[uint8]
	I8  Func[int8]    = Scalar[int8]
	U16 Func[uint16]  = Scalar[uint16]
	I16 Func[int16]   = Scalar[int16]
	U32 Func[uint32]  = Scalar[uint32]
	I32 Func[int32]   = Scalar[int32]
	F32 Func[float32] = Scalar[float32]
)

// Array fills dst with len(dst) values decoded by dec. It is used for fixed size arrays,
// which carry no length on the wire.
func Array[T any](r *Reader, dst []T, dec Func[T]) error {
	for i := range dst {
		v, err := dec(r)
		if err != nil {
			return wrapIndex(err, i)
		}
		dst[i] = v
	}
	return nil
}
