package codec

import (
	"github.com/pkg/errors"
)

// Fields decodes the fields of one record in declaration order. After the first failure
// every later call does nothing, and Err returns the failure prefixed with the field name.
//
//	f := codec.NewFields(r)
//	codec.Field(f, "x", &v.X, codec.I32)
//	f.Skip(2)
//	codec.Field(f, "items", &v.Items, codec.ListOf(codec.Prefix16, readItem))
//	return v, f.Err()
type Fields struct {
	r   *Reader
	err error
}

// NewFields returns a Fields reading from r.
func NewFields(r *Reader) *Fields {
	return &Fields{r: r}
}

// Field decodes one field into dst.
func Field[T any](f *Fields, name string, dst *T, dec Func[T]) {
	if f.err != nil {
		return
	}
	v, err := dec(f.r)
	if err != nil {
		f.err = errors.Wrap(err, name)
		return
	}
	*dst = v
}

// ArrayField decodes len(dst) values into dst. It is used for fixed size arrays.
func ArrayField[T any](f *Fields, name string, dst []T, dec Func[T]) {
	if f.err != nil {
		return
	}
	if err := Array(f.r, dst, dec); err != nil {
		f.err = errors.Wrap(err, name)
	}
}

// Skip discards n bytes of padding.
func (f *Fields) Skip(n int) {
	if f.err != nil {
		return
	}
	if err := f.r.Skip(n); err != nil {
		f.err = errors.Wrapf(err, "padding(%d)", n)
	}
}

// Save records n under key for a later Saved count.
func (f *Fields) Save(key string, n int) {
	if f.err != nil {
		return
	}
	f.r.Save(key, n)
}

// Reader returns the underlying Reader.
func (f *Fields) Reader() *Reader {
	return f.r
}

// Err returns the first error encountered.
func (f *Fields) Err() error {
	return f.err
}
