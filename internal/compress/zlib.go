package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gostdlib/base/concurrency/sync"
	"github.com/gostdlib/base/context"
	"github.com/gostdlib/base/values/sizes"
	"github.com/klauspost/compress/zlib"
)

const (
	// maxRatio is the largest expansion deflate can produce: a 258 byte match in under two bits.
	maxRatio = 1032
	// expectRatio is the expansion the output is first sized for.
	expectRatio = 4
	minInitial  = 64 * sizes.KiB
)

// inflater holds a zlib reader so its window and huffman tables can be reused between sections.
type inflater struct {
	src bytes.Reader
	zr  io.ReadCloser
}

// Reset implements the Resetter interface for sync.Pool.
func (i *inflater) Reset() {
	i.src.Reset(nil)
}

var inflaters = sync.NewPool[*inflater](
	context.Background(),
	"compress.inflaters",
	func() *inflater {
		return &inflater{}
	},
	sync.WithBuffer(10),
)

// Zlib implements Compressor using zlib, which is what level files use for their texture
// and level data sections.
type Zlib struct {
	// Level is the compression level used by Compress. If 0, defaults to zlib.DefaultCompression.
	Level int
}

// Type returns the compression type.
func (z *Zlib) Type() Compression {
	return CmpZlib
}

// Compress compresses data using zlib.
func (z *Zlib) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	level := z.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream. The output grows as the stream is read and holds at most
// size+1 bytes, so a stream longer than size is reported by the extra byte. A size that data
// could never inflate to is an error. The adler32 checksum is verified whenever the stream is
// read to its end.
func (z *Zlib) Decompress(ctx context.Context, data []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative size %d", size)
	}
	if size > maxRatio*len(data) {
		return nil, fmt.Errorf("%d compressed bytes cannot inflate to %d bytes", len(data), size)
	}

	in := inflaters.Get(ctx)
	defer inflaters.Put(ctx, in)

	in.src.Reset(data)
	if in.zr == nil {
		zr, err := zlib.NewReader(&in.src)
		if err != nil {
			return nil, err
		}
		in.zr = zr
	} else if err := in.zr.(zlib.Resetter).Reset(&in.src, nil); err != nil {
		return nil, err
	}

	// ReadFrom stops without error at a clean end of stream, a truncated deflate stream is
	// still an error.
	buf := bytes.NewBuffer(make([]byte, 0, initialSize(len(data), size)))
	if _, err := buf.ReadFrom(io.LimitReader(in.zr, int64(size)+1)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// initialSize is the capacity the output starts with. It is at most a few times the
// compressed size, so a header cannot force a large allocation by itself.
func initialSize(compressed, size int) int {
	return min(size+1, max(expectRatio*compressed, minInitial))
}
