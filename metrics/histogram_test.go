// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metricore/metricore/pkg/buckets"
	"github.com/metricore/metricore/pkg/seriestore"
)

func TestHistogramDefaultBounds(t *testing.T) {
	reg := NewRegistry("test")
	h := MustNewHistogram(reg, "latency_seconds", "", nil)
	assert.Equal(t, buckets.Default, h.Bounds())
}

func TestHistogramObserve(t *testing.T) {
	reg := NewRegistry("test")
	h := MustNewHistogram(reg, "latency_seconds", "", []float64{0.1, 0.5, 1})

	h.Observe(0.05)
	h.Observe(0.3)
	h.Observe(0.3)
	h.Observe(2)

	p := h.Point()
	assert.Equal(t, uint64(4), p.Count)
	assert.InDelta(t, 2.65, p.Sum, 1e-9)
	require.Len(t, p.Buckets, 3)
	assert.Equal(t, uint64(1), p.Buckets[0].CumulativeCount)
	assert.Equal(t, uint64(3), p.Buckets[1].CumulativeCount)
	assert.Equal(t, uint64(3), p.Buckets[2].CumulativeCount)
}

func TestHistogramLabeled(t *testing.T) {
	reg := NewRegistry("test")
	h := MustNewHistogram(reg, "latency_seconds", "", []float64{1, 2}, "path")

	h.WithLabelValues("/").Observe(0.5)
	h.WithLabelValues("/api").Observe(1.5)

	assert.Panics(t, func() { h.Observe(1) })

	hs, err := h.GetWithLabelValues("/")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), hs.Point().Count)

	_, err = h.GetWithLabelValues("/", "extra")
	require.ErrorIs(t, err, ErrLabelMismatch)
}

func TestHistogramObserveSince(t *testing.T) {
	reg := NewRegistry("test")
	h := MustNewHistogram(reg, "latency_seconds", "", []float64{10})

	h.ObserveSince(time.Now().Add(-time.Millisecond))
	p := h.Point()
	assert.Equal(t, uint64(1), p.Count)
	assert.Greater(t, p.Sum, 0.0)
	assert.Equal(t, uint64(1), p.Buckets[0].CumulativeCount)
}

func TestHistogramRejectsInvalidObserve(t *testing.T) {
	reg := NewRegistry("test")
	h := MustNewHistogram(reg, "latency_seconds", "", []float64{1})

	assert.Panics(t, func() { h.Observe(math.NaN()) })
	assert.Panics(t, func() { h.Observe(math.Inf(1)) })
	assert.Zero(t, h.Point().Count)
}

func TestHistogramInvalidBounds(t *testing.T) {
	reg := NewRegistry("test")

	_, err := NewHistogram(reg, "latency_seconds", "", []float64{3, 1, 2})
	require.ErrorIs(t, err, ErrInvalidBuckets)
	_, err = NewHistogram(reg, "latency_seconds", "", []float64{1, 2, math.Inf(1)})
	require.ErrorIs(t, err, ErrInvalidBuckets)

	// the reserved bucket label cannot be a series label
	_, err = NewHistogram(reg, "latency_seconds", "", []float64{1}, "le")
	require.Error(t, err)
}

func TestHistogramCollect(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")
	h := MustNewHistogram(reg, "latency_seconds", "Request latency.", []float64{1, 2}, "path")

	h.WithLabelValues("/").Observe(0.5)
	h.WithLabelValues("/").Observe(5)

	fams, err := CollectAll(ctx, reg)
	require.NoError(t, err)
	require.Len(t, fams, 1)

	f := fams[0]
	assert.Equal(t, KindHistogram, f.Kind)
	require.Len(t, f.Samples, 1)

	hp := f.Samples[0].Histogram
	require.NotNil(t, hp)
	assert.Equal(t, uint64(2), hp.Count)
	assert.InDelta(t, 5.5, hp.Sum, 1e-9)
	assert.Equal(t, []seriestore.BucketPoint{
		{UpperBound: 1, CumulativeCount: 1},
		{UpperBound: 2, CumulativeCount: 1},
	}, hp.Buckets)
}

func TestHistogramGeneratedBounds(t *testing.T) {
	reg := NewRegistry("test")

	linear, err := buckets.Linear(0.1, 0.1, 5)
	require.NoError(t, err)
	h := MustNewHistogram(reg, "linear_seconds", "", linear)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, h.Bounds(), 1e-9)

	exp, err := buckets.Exponential(1, 2, 4)
	require.NoError(t, err)
	h2 := MustNewHistogram(reg, "exp_seconds", "", exp)
	assert.Equal(t, []float64{1, 2, 4, 8}, h2.Bounds())
}
