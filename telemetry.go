package trc

import (
	"time"

	"github.com/gostdlib/base/context"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bearlytools/trc/internal/codec"
)

const meterName = "github.com/bearlytools/trc"

// metrics holds the OTEL instruments of a Decoder.
type metrics struct {
	duration metric.Float64Histogram
	inflated metric.Int64Counter
	sections metric.Int64Counter
}

func newMetrics(ctx context.Context, mp metric.MeterProvider) (*metrics, error) {
	var meter metric.Meter
	if mp != nil {
		meter = mp.Meter(meterName)
	} else {
		meter = context.Meter(ctx)
	}

	m := &metrics{}
	var err error

	m.duration, err = meter.Float64Histogram(
		"trc.decode.duration",
		metric.WithDescription("Duration of level decodes in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	m.inflated, err = meter.Int64Counter(
		"trc.section.inflated_bytes",
		metric.WithDescription("Total bytes produced by inflating compressed sections"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	m.sections, err = meter.Int64Counter(
		"trc.section.count",
		metric.WithDescription("Total number of compressed sections decoded"),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *metrics) section(ctx context.Context, info codec.SectionInfo) {
	attrs := metric.WithAttributes(attribute.Int("depth", info.Depth))
	m.sections.Add(ctx, 1, attrs)
	m.inflated.Add(ctx, int64(info.Inflated), attrs)
}

func (m *metrics) decode(ctx context.Context, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.duration.Record(
		ctx,
		float64(time.Since(start).Milliseconds()),
		metric.WithAttributes(attribute.String("status", status)),
	)
}
