// Package compress provides the decompressors used for compressed sections of a level file.
// Level files only use zlib, but the registry allows tests and tools to substitute their own
// implementation.
package compress

import (
	"fmt"

	"github.com/gostdlib/base/concurrency/sync"
	"github.com/gostdlib/base/context"
)

// Compression is the compression algorithm used by a section.
type Compression uint8

const (
	// CmpUnknown is the zero value and has no compressor.
	CmpUnknown Compression = 0
	// CmpZlib is a zlib (RFC 1950) stream.
	CmpZlib Compression = 1
)

func (c Compression) String() string {
	switch c {
	case CmpZlib:
		return "zlib"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// Compressor defines the interface for compression algorithms.
type Compressor interface {
	// Compress compresses data. Returns compressed data or error.
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data. size is the number of bytes the caller expects, which
	// is used to allocate the output once. The returned slice holds every byte the stream
	// produced up to size+1, so a caller can detect streams longer than declared.
	Decompress(ctx context.Context, data []byte, size int) ([]byte, error)

	// Type returns the compression type.
	Type() Compression
}

var (
	registry   = map[Compression]Compressor{}
	registryMu sync.RWMutex
)

// Register adds a compressor to the registry. This can be used to register
// custom compressors or override built-in compressors. Thread-safe.
func Register(c Compressor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.Type()] = c
}

// Get returns the compressor for the given type, or nil if not found.
func Get(t Compression) Compressor {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[t]
}

// Decompress inflates data with the registered compressor for t. See Compressor.Decompress
// for the meaning of size.
func Decompress(ctx context.Context, t Compression, data []byte, size int) ([]byte, error) {
	c := Get(t)
	if c == nil {
		return nil, fmt.Errorf("compressor not registered for type %s", t)
	}
	return c.Decompress(ctx, data, size)
}

func init() {
	Register(&Zlib{})
}
