package querymap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting decode metrics.
// The prommetrics subpackage provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordDecode is called after each structured decode.
	// source names the input format, keys is the number of keys decoded,
	// err is nil if successful.
	RecordDecode(source string, keys int, duration time.Duration, err error)

	// RecordParse is called after each query string parse.
	// entries is the number of key=value segments consumed.
	RecordParse(entries int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDecode(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordParse(int, time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe for concurrent use.
type BasicMetricsCollector struct {
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeKeys       atomic.Int64
	DecodeTotalNanos atomic.Int64
	ParseCount       atomic.Int64
	ParseErrors      atomic.Int64
	ParseEntries     atomic.Int64
	ParseTotalNanos  atomic.Int64
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(_ string, keys int, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeKeys.Add(int64(keys))
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(entries int, duration time.Duration, err error) {
	b.ParseCount.Add(1)
	b.ParseEntries.Add(int64(entries))
	b.ParseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ParseErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		DecodeCount:    b.DecodeCount.Load(),
		DecodeErrors:   b.DecodeErrors.Load(),
		DecodeKeys:     b.DecodeKeys.Load(),
		DecodeAvgNanos: avgNanos(b.DecodeTotalNanos.Load(), b.DecodeCount.Load()),
		ParseCount:     b.ParseCount.Load(),
		ParseErrors:    b.ParseErrors.Load(),
		ParseEntries:   b.ParseEntries.Load(),
		ParseAvgNanos:  avgNanos(b.ParseTotalNanos.Load(), b.ParseCount.Load()),
	}
}

// Reset zeroes all counters.
func (b *BasicMetricsCollector) Reset() {
	b.DecodeCount.Store(0)
	b.DecodeErrors.Store(0)
	b.DecodeKeys.Store(0)
	b.DecodeTotalNanos.Store(0)
	b.ParseCount.Store(0)
	b.ParseErrors.Store(0)
	b.ParseEntries.Store(0)
	b.ParseTotalNanos.Store(0)
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	DecodeCount    int64
	DecodeErrors   int64
	DecodeKeys     int64
	DecodeAvgNanos int64
	ParseCount     int64
	ParseErrors    int64
	ParseEntries   int64
	ParseAvgNanos  int64
}
