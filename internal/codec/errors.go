package codec

import (
	"fmt"

	"github.com/bearlytools/trc/internal/errors"
)

var (
	// ErrUnexpectedEOF is returned when fewer bytes remain than a value requires.
	ErrUnexpectedEOF = errors.New("unexpected EOF")
	// ErrDecompression is returned when a compressed section cannot be inflated or inflates
	// to a different size than its header declares.
	ErrDecompression = errors.New("decompression error")
	// ErrInvalidDiscriminant is reserved for strict enumeration fields. The level schema has
	// none, the sign discriminated union is total.
	ErrInvalidDiscriminant = errors.New("invalid discriminant")
	// ErrSizeLimit is returned when a declared size is larger than the configured limits.
	ErrSizeLimit = errors.New("size limit exceeded")
	// ErrBug is returned when the schema asks the engine for something it cannot do.
	ErrBug = errors.New("bug")
)

// DecodeError reports where in a stream decoding failed.
type DecodeError struct {
	// Offset is the byte offset, within the cursor that failed, where the failing read began.
	Offset int64
	// Depth is the number of compressed sections enclosing the cursor. 0 is the outer stream.
	Depth int
	// Section is the index of the compressed section the cursor reads, -1 for the outer stream.
	Section int
	// Err is the underlying error, usually one of the sentinels in this package.
	Err error
}

// Error implements error.
func (e *DecodeError) Error() string {
	if e.Section < 0 {
		return fmt.Sprintf("offset %d: %s", e.Offset, e.Err)
	}
	return fmt.Sprintf("section %d offset %d: %s", e.Section, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
