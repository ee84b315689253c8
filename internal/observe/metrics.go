// Package observe provides the OpenTelemetry metric instruments for phonix.
//
// Instruments are created through a [metric.MeterProvider]. [Default] uses the
// global provider, which is a no-op unless the process installs an SDK
// provider; tests should use [NewMetrics] with their own provider.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/f3rmion/phonix"

// Status attribute values.
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusCache = "cache"
)

// Metrics holds all instruments. The zero value is not usable; nil is, and
// records nothing.
type Metrics struct {
	// BuildDuration tracks corpus fetch + parse time. Attribute: status.
	BuildDuration metric.Float64Histogram

	// DictionaryEntries is the entry count of the last successful build.
	DictionaryEntries metric.Int64Gauge

	// Requests counts highlight requests. Attribute: status.
	Requests metric.Int64Counter

	// LookupMisses counts words absent from the dictionary.
	LookupMisses metric.Int64Counter

	// HighlightedWords counts words with at least one marked letter.
	HighlightedWords metric.Int64Counter
}

var buildBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.BuildDuration, err = m.Float64Histogram("phonix.corpus.build.duration",
		metric.WithDescription("Time to build the alignment dictionary."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(buildBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DictionaryEntries, err = m.Int64Gauge("phonix.corpus.entries",
		metric.WithDescription("Number of words in the alignment dictionary."),
	); err != nil {
		return nil, err
	}
	if met.Requests, err = m.Int64Counter("phonix.highlight.requests",
		metric.WithDescription("Highlight requests."),
	); err != nil {
		return nil, err
	}
	if met.LookupMisses, err = m.Int64Counter("phonix.highlight.lookup_misses",
		metric.WithDescription("Words passed through because they are not in the dictionary."),
	); err != nil {
		return nil, err
	}
	if met.HighlightedWords, err = m.Int64Counter("phonix.highlight.words",
		metric.WithDescription("Words with at least one highlighted letter."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide Metrics backed by the global provider.
func Default() *Metrics {
	defaultOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			m, _ = NewMetrics(noop.NewMeterProvider())
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordBuild records one dictionary build.
func (m *Metrics) RecordBuild(ctx context.Context, d time.Duration, entries int, status string) {
	if m == nil {
		return
	}
	m.BuildDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("status", status)))
	if status != StatusError {
		m.DictionaryEntries.Record(ctx, int64(entries))
	}
}

// RecordRequest records one highlight request.
func (m *Metrics) RecordRequest(ctx context.Context, status string, misses, highlighted int) {
	if m == nil {
		return
	}
	m.Requests.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if misses > 0 {
		m.LookupMisses.Add(ctx, int64(misses))
	}
	if highlighted > 0 {
		m.HighlightedWords.Add(ctx, int64(highlighted))
	}
}
