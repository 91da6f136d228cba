// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/metricore/metricore/pkg/buckets"
	"github.com/metricore/metricore/pkg/seriestore"
)

// A Histogram counts observations into configurable buckets and keeps their
// sum and count. Bucket bounds are fixed at declaration; the +Inf bucket is
// implicit.
type Histogram struct {
	reg    *Registry
	desc   *Desc
	decl   *seriestore.Declaration
	bounds []float64
}

// NewHistogram declares the histogram with the given bucket upper bounds.
// Nil or empty bounds select buckets.Default.
func NewHistogram(reg *Registry, name, help string, bounds []float64, labelNames ...string) (*Histogram, error) {
	desc, err := NewDesc(name, help, KindHistogram, labelNames...)
	if err != nil {
		return nil, err
	}
	if len(bounds) == 0 {
		bounds = buckets.Default
	}
	decl, err := reg.Store().Declare(name, seriestore.KindHistogram, labelNames, seriestore.WithBounds(bounds...))
	if err != nil {
		return nil, err
	}
	h := &Histogram{reg: reg, desc: desc, decl: decl, bounds: decl.Bounds()}
	if err := reg.Register(h); err != nil {
		_ = reg.Store().Drop(name)
		return nil, err
	}
	return h, nil
}

func MustNewHistogram(reg *Registry, name, help string, bounds []float64, labelNames ...string) *Histogram {
	h, err := NewHistogram(reg, name, help, bounds, labelNames...)
	if err != nil {
		panic(err)
	}
	return h
}

// Bounds returns the bucket upper bounds. The returned slice must not be
// mutated.
func (h *Histogram) Bounds() []float64 { return h.bounds }

// A HistogramSeries is the write handle of one series.
type HistogramSeries struct {
	s *seriestore.Series
}

// Observe records one sample. Panics on NaN or infinite values.
func (hs HistogramSeries) Observe(v float64) {
	if err := hs.s.Observe(v); err != nil {
		panic(err)
	}
}

// ObserveSince records the seconds elapsed since start.
func (hs HistogramSeries) ObserveSince(start time.Time) {
	hs.Observe(time.Since(start).Seconds())
}

// Point snapshots the series: cumulative bucket counts, sum and count, all
// mutually consistent.
func (hs HistogramSeries) Point() seriestore.HistogramPoint {
	return *hs.s.Point().Histogram
}

// Reset zeroes this one series.
func (hs HistogramSeries) Reset() { hs.s.Reset() }

func (h *Histogram) GetWithLabelValues(labelValues ...string) (HistogramSeries, error) {
	s, err := h.decl.Series(labelValues...)
	if err != nil {
		return HistogramSeries{}, err
	}
	return HistogramSeries{s: s}, nil
}

func (h *Histogram) WithLabelValues(labelValues ...string) HistogramSeries {
	hs, err := h.GetWithLabelValues(labelValues...)
	if err != nil {
		panic(err)
	}
	return hs
}

func (h *Histogram) Observe(v float64) { h.WithLabelValues().Observe(v) }

func (h *Histogram) ObserveSince(start time.Time) { h.WithLabelValues().ObserveSince(start) }

func (h *Histogram) Point() seriestore.HistogramPoint { return h.WithLabelValues().Point() }

func (h *Histogram) Reset() { h.decl.Reset() }

func (h *Histogram) Remove(labelValues ...string) bool {
	ok, err := h.decl.Remove(labelValues...)
	return err == nil && ok
}

func (h *Histogram) Describe(_ context.Context, emit func(*Desc) error) error {
	return emit(h.desc)
}

func (h *Histogram) Collect(_ context.Context, desc *Desc, emit func(Sample) error) error {
	if desc != h.desc {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, desc.Name())
	}
	return collectDeclaration(h.decl, emit)
}

func (h *Histogram) Cleanup(context.Context) {
	_ = h.reg.Store().Drop(h.desc.Name())
}
