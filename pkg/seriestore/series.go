// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// A Series is one label-value combination of a declared metric. Scalar kinds
// keep their value in a single atomic cell; histogram kinds keep bucket
// counts, sum and count under one per-series mutex. Distinct series never
// share a lock.
type Series struct {
	decl   *Declaration
	values []string // label values, declaration order

	bits atomic.Uint64 // scalar kinds: float64 bits (boolean: 0 or 1)

	mu      sync.Mutex // histogram kinds
	buckets []uint64   // per-bound counts, +Inf excluded
	sum     float64
	count   uint64
}

// LabelValues returns the series label values in declaration order.
// The returned slice must not be mutated.
func (s *Series) LabelValues() []string { return s.values }

// Add adds delta to a counter or gauge series. Counters reject negative
// deltas.
func (s *Series) Add(delta float64) error {
	switch s.decl.kind {
	case KindCounter:
		if err := checkFiniteSample(delta); err != nil {
			return fmt.Errorf("%w: %s", err, s.decl.name)
		}
		if delta < 0 {
			return fmt.Errorf("%w: %s: %v", ErrNegativeCounterDelta, s.decl.name, delta)
		}
	case KindGauge:
		if err := checkFiniteSample(delta); err != nil {
			return fmt.Errorf("%w: %s", err, s.decl.name)
		}
	default:
		return fmt.Errorf("%w: %s is a %s", ErrKindMismatch, s.decl.name, s.decl.kind)
	}
	s.add(delta)
	return nil
}

// Set stores the current value of a gauge series.
func (s *Series) Set(v float64) error {
	if s.decl.kind != KindGauge {
		return fmt.Errorf("%w: %s is a %s", ErrKindMismatch, s.decl.name, s.decl.kind)
	}
	if err := checkFiniteSample(v); err != nil {
		return fmt.Errorf("%w: %s", err, s.decl.name)
	}
	s.set(v)
	return nil
}

// SetBool stores the current state of a boolean series.
func (s *Series) SetBool(v bool) error {
	if s.decl.kind != KindBoolean {
		return fmt.Errorf("%w: %s is a %s", ErrKindMismatch, s.decl.name, s.decl.kind)
	}
	s.setBool(v)
	return nil
}

// Toggle flips a boolean series and returns the new state.
func (s *Series) Toggle() (bool, error) {
	if s.decl.kind != KindBoolean {
		return false, fmt.Errorf("%w: %s is a %s", ErrKindMismatch, s.decl.name, s.decl.kind)
	}
	return s.toggle(), nil
}

// Observe records one sample into a histogram series.
func (s *Series) Observe(v float64) error {
	if s.decl.kind != KindHistogram {
		return fmt.Errorf("%w: %s is a %s", ErrKindMismatch, s.decl.name, s.decl.kind)
	}
	if err := checkFiniteSample(v); err != nil {
		return fmt.Errorf("%w: %s", err, s.decl.name)
	}
	s.observe(v)
	return nil
}

// Value reads the current value of a scalar series. Booleans read as 0 or 1;
// histogram series always read 0, use Point instead.
func (s *Series) Value() float64 {
	if s.decl.kind == KindHistogram {
		return 0
	}
	return s.scalar()
}

func (s *Series) add(delta float64) {
	for {
		old := s.bits.Load()
		cur := math.Float64frombits(old)
		if s.bits.CompareAndSwap(old, math.Float64bits(cur+delta)) {
			return
		}
	}
}

func (s *Series) set(v float64) {
	s.bits.Store(math.Float64bits(v))
}

func (s *Series) setBool(v bool) {
	if v {
		s.bits.Store(math.Float64bits(1))
	} else {
		s.bits.Store(0)
	}
}

// toggle flips the boolean cell and returns the new state.
func (s *Series) toggle() bool {
	for {
		old := s.bits.Load()
		var next uint64
		if old == 0 {
			next = math.Float64bits(1)
		}
		if s.bits.CompareAndSwap(old, next) {
			return next != 0
		}
	}
}

func (s *Series) scalar() float64 {
	return math.Float64frombits(s.bits.Load())
}

func (s *Series) observe(v float64) {
	idx := findBucket(s.decl.bounds, v)
	s.mu.Lock()
	if idx < len(s.buckets) {
		s.buckets[idx]++
	}
	s.sum += v
	s.count++
	s.mu.Unlock()
}

// Reset zeroes the series payload in place, keeping the series live.
func (s *Series) Reset() {
	if s.decl.kind == KindHistogram {
		s.mu.Lock()
		for i := range s.buckets {
			s.buckets[i] = 0
		}
		s.sum = 0
		s.count = 0
		s.mu.Unlock()
		return
	}
	s.bits.Store(0)
}

// Point captures the state of one series at one instant.
type Point struct {
	LabelValues []string
	Value       float64         // scalar kinds; booleans read 0 or 1
	Histogram   *HistogramPoint // histogram kinds only
}

// A HistogramPoint is an internally consistent histogram snapshot. Bucket
// counts are cumulative; the +Inf bucket is implicit, its cumulative count
// equals Count.
type HistogramPoint struct {
	Buckets []BucketPoint
	Sum     float64
	Count   uint64
}

type BucketPoint struct {
	UpperBound      float64
	CumulativeCount uint64
}

// Point snapshots the series. Histogram snapshots are taken in one critical
// section, so bucket counts, sum and count are mutually consistent.
func (s *Series) Point() Point {
	p := Point{LabelValues: s.values}
	if s.decl.kind != KindHistogram {
		p.Value = s.scalar()
		return p
	}

	hp := &HistogramPoint{Buckets: make([]BucketPoint, len(s.decl.bounds))}
	s.mu.Lock()
	var cum uint64
	for i, n := range s.buckets {
		cum += n
		hp.Buckets[i] = BucketPoint{UpperBound: s.decl.bounds[i], CumulativeCount: cum}
	}
	hp.Sum = s.sum
	hp.Count = s.count
	s.mu.Unlock()
	p.Histogram = hp
	return p
}
