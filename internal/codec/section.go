package codec

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bearlytools/trc/internal/compress"
)

// Section reads a compressed section and decodes a T from its inflated bytes.
//
// A section is framed as a uint32 inflated size, a uint32 compressed size and the compressed
// bytes. The outer cursor always ends up exactly past the compressed bytes once they are read,
// whatever happens while inflating or decoding. T is decoded by a new cursor that starts at
// offset 0 of the inflated buffer. Inflated bytes that T does not use are ignored.
func Section[T any](r *Reader, dec Func[T]) (T, error) {
	var zero T

	at := r.off
	inflated, err := U32(r)
	if err != nil {
		return zero, err
	}
	compressed, err := U32(r)
	if err != nil {
		return zero, err
	}
	if int64(inflated) > int64(r.env.cfg.MaxSectionSize) {
		return zero, r.fail(at, fmt.Errorf("%w: section inflates to %d bytes, limit %d", ErrSizeLimit, inflated, r.env.cfg.MaxSectionSize))
	}
	packed, err := r.Bytes(int(compressed))
	if err != nil {
		return zero, err
	}

	index := r.env.sections
	r.env.sections++

	out, err := compress.Decompress(r.env.ctx, compress.CmpZlib, packed, int(inflated))
	if err != nil {
		return zero, r.fail(at, fmt.Errorf("%w: %w", ErrDecompression, err))
	}
	if len(out) != int(inflated) {
		return zero, r.fail(at, fmt.Errorf("%w: inflated size does not match header (got %d, want %d)", ErrDecompression, len(out), inflated))
	}

	child := &Reader{
		env:     r.env,
		buf:     out,
		size:    int64(len(out)),
		depth:   r.depth + 1,
		section: index,
		saved:   map[string]int{},
	}
	if child.buf == nil {
		child.buf = []byte{}
	}

	v, err := dec(child)
	if err != nil {
		return zero, errors.Wrapf(err, "section %d", index)
	}

	if r.env.cfg.OnSection != nil {
		r.env.cfg.OnSection(SectionInfo{
			Index:      index,
			Depth:      child.depth,
			Offset:     r.base + at,
			Compressed: len(packed),
			Inflated:   len(out),
			Trailing:   int(child.Remaining()),
		})
	}
	return v, nil
}

// SectionOf returns a Func that reads a Section.
func SectionOf[T any](dec Func[T]) Func[T] {
	return func(r *Reader) (T, error) {
		return Section(r, dec)
	}
}
