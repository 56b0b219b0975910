package trc

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gostdlib/base/context"
	"github.com/gostdlib/base/telemetry/otel/trace/span"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bearlytools/trc/internal/codec"
)

// Decoder decodes level files. A Decoder holds no per decode state and can be used by
// multiple goroutines at once.
type Decoder struct {
	cfg     *config
	metrics *metrics
}

// NewDecoder creates a new Decoder. Metric instruments are created from the MeterProvider
// option, or from the Meter attached to ctx.
func NewDecoder(ctx context.Context, options ...Option) (*Decoder, error) {
	cfg := defaultConfig()
	for _, o := range options {
		o(cfg)
	}

	m, err := newMetrics(ctx, cfg.meterProvider)
	if err != nil {
		return nil, err
	}
	return &Decoder{cfg: cfg, metrics: m}, nil
}

// Decode reads a level from src. src is read once, front to back. Sources that are not
// already in memory are buffered.
//
// On failure the returned Level is nil and the error is an errors.Error whose type names the
// failure. errors.Is matches ErrUnexpectedEOF, ErrDecompression and ErrSizeLimit against it.
func (d *Decoder) Decode(ctx context.Context, src io.Reader) (*Level, error) {
	if _, ok := src.(interface{ Len() int }); !ok {
		src = bufio.NewReaderSize(src, d.cfg.readBufferSize)
	}
	return d.decode(ctx, func(ctx context.Context, cfg codec.Config) *codec.Reader {
		return codec.NewReader(ctx, src, cfg)
	})
}

// DecodeBytes reads a level from b. Byte buffers in the Level that are stored uncompressed
// in the file, such as Sample.Data, share memory with b.
func (d *Decoder) DecodeBytes(ctx context.Context, b []byte) (*Level, error) {
	return d.decode(ctx, func(ctx context.Context, cfg codec.Config) *codec.Reader {
		return codec.NewBytesReader(ctx, b, cfg)
	})
}

func (d *Decoder) decode(ctx context.Context, newReader func(context.Context, codec.Config) *codec.Reader) (*Level, error) {
	start := time.Now()

	var sp span.Span
	if d.cfg.tracing {
		ctx, sp = span.New(ctx,
			span.WithName("trc.Decode"),
			span.WithSpanStartOption(trace.WithSpanKind(trace.SpanKindInternal)),
		)
		defer sp.End()
	}

	logger := d.cfg.logger
	r := newReader(ctx, codec.Config{
		MaxSectionSize: d.cfg.maxSectionSize,
		MaxBufferSize:  d.cfg.maxBufferSize,
		OnSection: func(info codec.SectionInfo) {
			d.metrics.section(ctx, info)
			logger.Debug(
				"section decoded",
				"index", info.Index,
				"depth", info.Depth,
				"offset", info.Offset,
				"compressed", info.Compressed,
				"inflated", info.Inflated,
			)
			if info.Trailing > 0 {
				logger.Debug("section has unused bytes", "index", info.Index, "trailing", info.Trailing)
			}
		},
	})

	l, err := readLevel(r)
	d.metrics.decode(ctx, start, err)
	if err != nil {
		logger.Debug("decode failed", "offset", r.Offset(), "err", err)
		return nil, classify(ctx, err)
	}

	if d.cfg.tracing {
		sp.Span.SetAttributes(
			attribute.Int64("trc.version", int64(l.Version)),
			attribute.Int("trc.rooms", len(l.LevelData.Rooms)),
			attribute.Int64("trc.bytes_read", r.Offset()),
		)
	}
	if logger.GetLevel() <= log.DebugLevel {
		logger.Debug(
			"level decoded",
			"version", l.Version,
			"rooms", len(l.LevelData.Rooms),
			"meshes", len(l.LevelData.Meshes),
			"samples", len(l.Samples),
			"bytes", r.Offset(),
			"took", time.Since(start),
		)
	}
	return l, nil
}

// Decode reads a level from src with a Decoder built from options.
func Decode(ctx context.Context, src io.Reader, options ...Option) (*Level, error) {
	d, err := NewDecoder(ctx, options...)
	if err != nil {
		return nil, err
	}
	return d.Decode(ctx, src)
}
