package trc

import (
	"os"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/metric"

	"github.com/bearlytools/trc/internal/codec"
)

// config holds configuration for a Decoder.
type config struct {
	// Largest inflated size a compressed section may declare.
	maxSectionSize int

	// Largest single buffer read from a source of unknown length.
	maxBufferSize int

	// Read buffer size for bufio.Reader.
	readBufferSize int

	logger *log.Logger

	// MeterProvider for metrics. If nil, uses context.Meter().
	meterProvider metric.MeterProvider

	tracing bool
}

func defaultConfig() *config {
	l := log.NewWithOptions(os.Stderr, log.Options{Prefix: "trc"})
	l.SetLevel(log.WarnLevel)

	return &config{
		maxSectionSize: codec.DefaultMaxSectionSize,
		maxBufferSize:  codec.DefaultMaxBufferSize,
		readBufferSize: 64 * 1024, // 64KB
		logger:         l,
		tracing:        true,
	}
}

// Option configures a Decoder.
type Option func(*config)

// WithMaxSectionSize caps the inflated size a compressed section may declare. Sections
// declaring more fail with ErrSizeLimit before anything is inflated.
// Default is 64MiB.
func WithMaxSectionSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.maxSectionSize = size
		}
	}
}

// WithMaxBufferSize caps any single byte buffer or list read from a source whose length is
// not known up front. Sources with a Len() method, and byte slices, are checked against
// their real length instead.
// Default is 64MiB.
func WithMaxBufferSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.maxBufferSize = size
		}
	}
}

// WithReadBufferSize sets the read buffer size for the bufio.Reader placed in front of
// sources that are not already in memory.
// Default is 64KB.
func WithReadBufferSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.readBufferSize = size
		}
	}
}

// WithLogger sets the logger. Sections and decode results are logged at debug level.
// Default logs warnings and above to stderr.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMeterProvider sets the MeterProvider used for metrics.
// If not set, the Meter attached to the Context passed to NewDecoder is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithTracing turns the span around each decode on or off.
// Default is on.
func WithTracing(enabled bool) Option {
	return func(c *config) {
		c.tracing = enabled
	}
}
