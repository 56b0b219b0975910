package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

func wrapIndex(err error, i int) error {
	return errors.Wrapf(err, "[%d]", i)
}

// List reads a sequence of elements whose count comes from c. A list is read whole or not at
// all: on error no elements are returned. An empty list is nil.
func List[T any](r *Reader, c Count, dec Func[T]) ([]T, error) {
	n, err := c.resolve(r)
	if err != nil {
		return nil, err
	}
	return list(r, n, dec)
}

// ListOf returns a Func that reads a List.
func ListOf[T any](c Count, dec Func[T]) Func[[]T] {
	return func(r *Reader) ([]T, error) {
		return List(r, c, dec)
	}
}

// list decodes n elements. Every element occupies at least one byte, so a count larger than
// the remaining bytes fails before anything is allocated.
func list[T any](r *Reader, n int, dec Func[T]) ([]T, error) {
	if err := r.admit(n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	items := make([]T, 0, r.prealloc(n))
	for i := 0; i < n; i++ {
		v, err := dec(r)
		if err != nil {
			return nil, wrapIndex(err, i)
		}
		items = append(items, v)
	}
	return items, nil
}

// Grid reads two uint16 counts, rows then columns, followed by rows*columns elements in row
// major order.
func Grid[T any](r *Reader, dec Func[T]) ([][]T, error) {
	rows, err := U16(r)
	if err != nil {
		return nil, err
	}
	cols, err := U16(r)
	if err != nil {
		return nil, err
	}
	if err := r.admit(int(rows) * int(cols)); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, nil
	}

	grid := make([][]T, rows)
	for i := range grid {
		row, err := list(r, int(cols), dec)
		if err != nil {
			return nil, wrapIndex(err, i)
		}
		grid[i] = row
	}
	return grid, nil
}

// GridOf returns a Func that reads a Grid.
func GridOf[T any](dec Func[T]) Func[[][]T] {
	return func(r *Reader) ([][]T, error) {
		return Grid(r, dec)
	}
}

// Bytes reads a raw buffer whose length in bytes comes from c. The bytes are kept as they are.
func Bytes(r *Reader, c Count) ([]byte, error) {
	n, err := c.resolve(r)
	if err != nil {
		return nil, err
	}
	return r.Bytes(n)
}

// BytesOf returns a Func that reads Bytes.
func BytesOf(c Count) Func[[]byte] {
	return func(r *Reader) ([]byte, error) {
		return Bytes(r, c)
	}
}

// Bounded reads elements back to back from a region whose size is c times unit bytes, until
// the region is used up. After each element the cursor is moved to the next multiple of align,
// measured from the start of the region. It returns the elements and the offset of each one
// within the region.
func Bounded[T any](r *Reader, c Count, unit, align int, dec Func[T]) ([]T, []uint32, error) {
	n, err := c.resolve(r)
	if err != nil {
		return nil, nil, err
	}
	if unit <= 0 || align <= 0 {
		return nil, nil, r.fail(r.off, fmt.Errorf("%w: bounded list with unit %d align %d", ErrBug, unit, align))
	}
	region, err := r.sub(n * unit)
	if err != nil {
		return nil, nil, err
	}

	var (
		items   []T
		offsets []uint32
	)
	for i := 0; region.Remaining() > 0; i++ {
		offsets = append(offsets, uint32(region.off))
		v, err := dec(region)
		if err != nil {
			return nil, nil, wrapIndex(err, i)
		}
		items = append(items, v)

		pad := int((int64(align) - region.off%int64(align)) % int64(align))
		if int64(pad) > region.Remaining() {
			break
		}
		if err := region.Skip(pad); err != nil {
			return nil, nil, err
		}
	}
	return items, offsets, nil
}
