package trc

import (
	"github.com/gostdlib/base/context"

	"github.com/bearlytools/trc/internal/codec"
	"github.com/bearlytools/trc/internal/errors"
)

// Errors returned by Decode. Use errors.Is to test for them. The returned error also carries a
// *DecodeError locating the failure, which errors.As can extract.
var (
	// ErrUnexpectedEOF means the file, or the inflated bytes of a section, ended before a
	// value was complete.
	ErrUnexpectedEOF = codec.ErrUnexpectedEOF
	// ErrDecompression means a compressed section was not valid zlib data or did not inflate
	// to the size its header declares.
	ErrDecompression = codec.ErrDecompression
	// ErrInvalidDiscriminant is reserved for strict enumeration fields. No field of the
	// current format returns it.
	ErrInvalidDiscriminant = codec.ErrInvalidDiscriminant
	// ErrSizeLimit means a declared size was larger than the configured limits.
	ErrSizeLimit = codec.ErrSizeLimit
)

// DecodeError locates a decode failure. Offset is relative to the cursor that failed: the file
// when Section is -1, otherwise the inflated bytes of that compressed section.
type DecodeError = codec.DecodeError

// classify converts a decode failure into an errors.Error with a category and type.
func classify(ctx context.Context, err error) error {
	var (
		c errors.Category
		t errors.Type
	)
	switch {
	case errors.Is(err, codec.ErrUnexpectedEOF):
		c, t = errors.CatUser, errors.TypeUnexpectedEOF
	case errors.Is(err, codec.ErrDecompression):
		c, t = errors.CatUser, errors.TypeDecompression
	case errors.Is(err, codec.ErrInvalidDiscriminant):
		c, t = errors.CatUser, errors.TypeInvalidDiscriminant
	case errors.Is(err, codec.ErrSizeLimit):
		c, t = errors.CatUser, errors.TypeSizeLimit
	case errors.Is(err, codec.ErrBug):
		c, t = errors.CatInternal, errors.TypeBug
	default:
		c, t = errors.CatInternal, errors.TypeRead
	}
	return errors.E(ctx, c, t, err, errors.WithCallNum(3))
}
