// Package codec is a generic little-endian decoding engine. A Reader is a cursor over either an
// io.Reader or an in memory buffer. Scalars, lists, unions and compressed sections are decoded
// through it by Func values, which record types compose to describe their layout field by field.
package codec

import (
	"fmt"
	"io"

	"github.com/gostdlib/base/context"
	"github.com/gostdlib/base/values/sizes"
)

const (
	// DefaultMaxSectionSize is the largest inflated section accepted by default.
	DefaultMaxSectionSize = 64 * sizes.MiB
	// DefaultMaxBufferSize is the largest single buffer read from a stream of unknown length.
	DefaultMaxBufferSize = 64 * sizes.MiB

	// unsizedPrealloc caps list preallocation when the remaining length is unknown.
	unsizedPrealloc = 4096
)

// SectionInfo describes a compressed section after it was decoded.
type SectionInfo struct {
	// Index is the order the section was read in, starting at 0.
	Index int
	// Depth is the nesting level of the section. Top level sections have depth 1.
	Depth int
	// Offset is where the section header started in the enclosing cursor.
	Offset int64
	// Compressed is the number of compressed bytes.
	Compressed int
	// Inflated is the number of bytes the section inflated to.
	Inflated int
	// Trailing is the number of inflated bytes the section's value did not consume.
	Trailing int
}

// Config configures a Reader. The zero value is usable.
type Config struct {
	// MaxSectionSize caps the declared inflated size of a section.
	MaxSectionSize int
	// MaxBufferSize caps a single allocation when reading from an io.Reader of unknown length.
	MaxBufferSize int
	// OnSection, if set, is called after each compressed section is decoded.
	OnSection func(SectionInfo)
}

// env is shared by a Reader and every Reader derived from it.
type env struct {
	ctx      context.Context
	cfg      Config
	sections int
}

// Reader is a cursor over a byte source. It is not safe for concurrent use.
type Reader struct {
	env *env

	// src is used when buf is nil.
	src io.Reader
	buf []byte

	off  int64
	base int64
	size int64 // -1 if unknown

	depth   int
	section int

	saved map[string]int

	scratch [8]byte
}

// NewReader returns a Reader over src. If src reports its remaining length through a
// Len() int method (bytes.Reader, strings.Reader, bytes.Buffer), list and buffer lengths
// are checked against it before allocating.
func NewReader(ctx context.Context, src io.Reader, cfg Config) *Reader {
	r := &Reader{env: newEnv(ctx, cfg), src: src, size: -1, section: -1, saved: map[string]int{}}
	if l, ok := src.(interface{ Len() int }); ok {
		r.size = int64(l.Len())
	}
	return r
}

// NewBytesReader returns a Reader over b. Byte buffers read from it share b's memory.
func NewBytesReader(ctx context.Context, b []byte, cfg Config) *Reader {
	if b == nil {
		b = []byte{}
	}
	return &Reader{env: newEnv(ctx, cfg), buf: b, size: int64(len(b)), section: -1, saved: map[string]int{}}
}

func newEnv(ctx context.Context, cfg Config) *env {
	if cfg.MaxSectionSize <= 0 {
		cfg.MaxSectionSize = DefaultMaxSectionSize
	}
	if cfg.MaxBufferSize <= 0 {
		cfg.MaxBufferSize = DefaultMaxBufferSize
	}
	return &env{ctx: ctx, cfg: cfg}
}

// Context returns the Context the Reader was created with.
func (r *Reader) Context() context.Context {
	return r.env.ctx
}

// Offset returns the number of bytes consumed, relative to the start of the cursor.
func (r *Reader) Offset() int64 {
	return r.base + r.off
}

// Remaining returns the number of unread bytes, or -1 if that is unknown.
func (r *Reader) Remaining() int64 {
	if r.size < 0 {
		return -1
	}
	return r.size - r.off
}

// Depth returns the number of compressed sections enclosing the cursor.
func (r *Reader) Depth() int {
	return r.depth
}

// Save records a length under key so that a later list can derive its count from it.
func (r *Reader) Save(key string, n int) {
	r.saved[key] = n
}

// Saved returns the length recorded under key.
func (r *Reader) Saved(key string) (int, bool) {
	n, ok := r.saved[key]
	return n, ok
}

// fail wraps err in a DecodeError located at off.
func (r *Reader) fail(off int64, err error) error {
	return &DecodeError{Offset: r.base + off, Depth: r.depth, Section: r.section, Err: err}
}

// next consumes n bytes. The returned slice is only valid until the next read unless the
// Reader is backed by a buffer. n must be at most len(r.scratch) for stream readers.
func (r *Reader) next(n int) ([]byte, error) {
	if r.buf != nil {
		if int64(n) > r.size-r.off {
			return nil, r.fail(r.off, ErrUnexpectedEOF)
		}
		b := r.buf[r.off : r.off+int64(n)]
		r.off += int64(n)
		return b, nil
	}
	b := r.scratch[:n]
	if err := r.readFull(b); err != nil {
		return nil, err
	}
	return b, nil
}

// readFull fills p from the stream source.
func (r *Reader) readFull(p []byte) error {
	at := r.off
	n, err := io.ReadFull(r.src, p)
	r.off += int64(n)
	switch {
	case err == nil:
		return nil
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return r.fail(at, ErrUnexpectedEOF)
	}
	return r.fail(at, err)
}

// admit checks that n more bytes can be read before anything is allocated for them.
func (r *Reader) admit(n int) error {
	if n < 0 {
		return r.fail(r.off, fmt.Errorf("%w: negative length %d", ErrBug, n))
	}
	if r.size >= 0 {
		if int64(n) > r.size-r.off {
			return r.fail(r.off, ErrUnexpectedEOF)
		}
		return nil
	}
	if n > r.env.cfg.MaxBufferSize {
		return r.fail(r.off, fmt.Errorf("%w: %d bytes, limit %d", ErrSizeLimit, n, r.env.cfg.MaxBufferSize))
	}
	return nil
}

// prealloc returns the capacity to allocate for a list of n elements.
func (r *Reader) prealloc(n int) int {
	if r.size < 0 && n > unsizedPrealloc {
		return unsizedPrealloc
	}
	return n
}

// Skip advances the cursor by n bytes without producing a value. It is used for reserved
// and padding regions.
func (r *Reader) Skip(n int) error {
	if r.buf != nil || n <= len(r.scratch) {
		_, err := r.next(n)
		return err
	}
	if err := r.admit(n); err != nil {
		return err
	}
	at := r.off
	m, err := io.CopyN(io.Discard, r.src, int64(n))
	r.off += m
	switch {
	case err == nil:
		return nil
	case err == io.EOF:
		return r.fail(at, ErrUnexpectedEOF)
	}
	return r.fail(at, err)
}

// Bytes reads n bytes into a buffer owned by the caller. For buffer backed Readers the
// result shares memory with the buffer and is capped so appends cannot overwrite it.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.admit(n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if r.buf != nil {
		b := r.buf[r.off : r.off+int64(n) : r.off+int64(n)]
		r.off += int64(n)
		return b, nil
	}
	b := make([]byte, n)
	if err := r.readFull(b); err != nil {
		return nil, err
	}
	return b, nil
}

// sub returns a Reader over the next n bytes and advances r past them. The sub Reader
// reports offsets in r's coordinates and shares r's saved lengths.
func (r *Reader) sub(n int) (*Reader, error) {
	at := r.off
	b, err := r.Bytes(n)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return &Reader{
		env:     r.env,
		buf:     b,
		base:    r.base + at,
		size:    int64(n),
		depth:   r.depth,
		section: r.section,
		saved:   r.saved,
	}, nil
}
