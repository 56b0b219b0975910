// Package errors provides the error taxonomy for level decoding along with the
// sentinel helpers the decoder packages use.
package errors

import (
	"github.com/gostdlib/base/context"
	"github.com/gostdlib/base/errors"
)

// Category represents the category of the error.
type Category uint32

func (c Category) Category() string {
	return c.String()
}

func (c Category) String() string {
	switch c {
	case CatUser:
		return "User"
	case CatInternal:
		return "Internal"
	}
	return "Unknown"
}

const (
	// CatUnknown represents an unknown category. This should not be used.
	CatUnknown Category = Category(0) // Unknown
	// CatUser represents an error that is caused by the input, such as a truncated or corrupt file.
	CatUser Category = Category(1) // User
	// CatInternal represents an internal error.
	CatInternal Category = Category(2) // Internal
)

// Type represents the type of the error.
type Type uint16

func (t Type) Type() string {
	return t.String()
}

func (t Type) String() string {
	switch t {
	case TypeBug:
		return "Bug"
	case TypeRead:
		return "Read"
	case TypeUnexpectedEOF:
		return "UnexpectedEOF"
	case TypeDecompression:
		return "Decompression"
	case TypeInvalidDiscriminant:
		return "InvalidDiscriminant"
	case TypeSizeLimit:
		return "SizeLimit"
	}
	return "Unknown"
}

const (
	// TypeUnknown represents an unknown type.
	TypeUnknown Type = Type(0) // Unknown
	// TypeBug represents a bug in the calling code. This is only bugs that are known bugs and
	// not because of bad input. An example would be a list with a count strategy that
	// was never set.
	TypeBug Type = Type(1) // Bug
	// TypeRead represents an error returned by the byte source itself.
	TypeRead Type = Type(2) // Read

	// TypeUnexpectedEOF represents a source that ended before a value was complete.
	TypeUnexpectedEOF Type = Type(100) // UnexpectedEOF
	// TypeDecompression represents a compressed section that could not be inflated.
	TypeDecompression Type = Type(101) // Decompression
	// TypeInvalidDiscriminant represents a strict enumeration field holding an unknown value.
	TypeInvalidDiscriminant Type = Type(102) // InvalidDiscriminant
	// TypeSizeLimit represents a declared size larger than the decoder is configured to allocate.
	TypeSizeLimit Type = Type(103) // SizeLimit
)

// Error is the error type for this module. Error implements github.com/gostdlib/base/errors.E .
type Error = errors.Error

// EOption is an optional argument for E().
type EOption = errors.EOption

// WithCallNum is used if you need to set the runtime.CallNum() in order to get the correct filename and line.
// This can happen if you create a call wrapper around E(), because you would then need to look up one more stack frame
// for every wrapper. This defaults to 1 which sets to the frame of the caller of E().
func WithCallNum(i int) EOption {
	return errors.WithCallNum(i)
}

// E creates a new Error with the given parameters.
func E(ctx context.Context, c errors.Category, t errors.Type, msg error, options ...errors.EOption) Error {
	// This makes sure we do the correct call number since we are a wrapper. Now, if they set the
	// call number, this will not override it.
	opts := make([]errors.EOption, 0, len(options)+1)
	opts = append(opts, WithCallNum(2))
	opts = append(opts, options...)

	return errors.E(ctx, c, t, msg, opts...)
}

// New returns a sentinel error. Sentinels are compared with Is.
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
