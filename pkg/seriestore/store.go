// SPDX-License-Identifier: GPL-3.0-or-later

// Package seriestore implements the concurrent value store behind the typed
// metric facades: named declarations, label-keyed series, and lock-free
// scalar cells.
//
// The declaration table is copy-on-write and published through an atomic
// pointer, so the instrumentation hot path resolves a metric name without
// taking any lock. Declare and Drop serialize on one store mutex, copy the
// table and publish the copy; in-flight updates of already declared metrics
// never block on them.
package seriestore

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/metricore/metricore/pkg/buckets"
)

type Store struct {
	mu    sync.Mutex // serializes Declare/Drop
	decls atomic.Pointer[declTable]
}

// declTable is the immutable published name index.
type declTable struct {
	byName map[string]*Declaration
}

func NewStore() *Store {
	s := &Store{}
	s.decls.Store(&declTable{byName: make(map[string]*Declaration)})
	return s
}

// Declare registers a new metric under a unique name and returns its live
// series table. Histogram declarations require strictly ascending finite
// bucket bounds via WithBounds; the +Inf bucket is implicit. Label values are
// joined with a reserved separator byte to form series identities; values
// containing that byte can collide.
func (s *Store) Declare(name string, kind Kind, labelNames []string, opts ...DeclareOption) (*Declaration, error) {
	cfg := declareConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}

	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidMetricName)
	}
	if err := checkLabelNames(labelNames); err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}
	for _, ln := range labelNames {
		if ln == BucketLabel {
			return nil, fmt.Errorf("%w: %q is reserved for histogram buckets", ErrInvalidLabelName, BucketLabel)
		}
	}

	var bounds []float64
	if kind == KindHistogram {
		if len(cfg.bounds) == 0 {
			return nil, fmt.Errorf("%w: %s: bounds are required", ErrInvalidBuckets, name)
		}
		if err := buckets.Validate(cfg.bounds); err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidBuckets, name, err)
		}
		bounds = cfg.bounds
	} else if len(cfg.bounds) != 0 {
		return nil, fmt.Errorf("%w: %s is a %s", ErrInvalidBuckets, name, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.decls.Load()
	if _, ok := old.byName[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateMetric, name)
	}

	d := newDeclaration(name, kind, labelNames, bounds)

	next := &declTable{byName: make(map[string]*Declaration, len(old.byName)+1)}
	for k, v := range old.byName {
		next.byName[k] = v
	}
	next.byName[name] = d
	s.decls.Store(next)
	return d, nil
}

// Drop removes a declaration and all its series.
func (s *Store) Drop(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.decls.Load()
	if _, ok := old.byName[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}

	next := &declTable{byName: make(map[string]*Declaration, len(old.byName)-1)}
	for k, v := range old.byName {
		if k != name {
			next.byName[k] = v
		}
	}
	s.decls.Store(next)
	return nil
}

// Lookup resolves a declaration by name. Lock-free.
func (s *Store) Lookup(name string) (*Declaration, error) {
	d := s.decls.Load().byName[name]
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	return d, nil
}

// Names returns the declared metric names in unspecified order.
func (s *Store) Names() []string {
	t := s.decls.Load()
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	return names
}

func (s *Store) lookupKind(name string, kinds ...Kind) (*Declaration, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if d.kind == k {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s is a %s", ErrKindMismatch, name, d.kind)
}

// Increment adds delta to a counter or gauge series, creating the series on
// first use. Counters reject negative deltas.
func (s *Store) Increment(name string, labelValues []string, delta float64) error {
	d, err := s.lookupKind(name, KindCounter, KindGauge)
	if err != nil {
		return err
	}
	if err := checkFiniteSample(delta); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	if d.kind == KindCounter && delta < 0 {
		return fmt.Errorf("%w: %s: %v", ErrNegativeCounterDelta, name, delta)
	}
	sr, err := d.Series(labelValues...)
	if err != nil {
		return err
	}
	sr.add(delta)
	return nil
}

// Decrement subtracts delta from a gauge series.
func (s *Store) Decrement(name string, labelValues []string, delta float64) error {
	d, err := s.lookupKind(name, KindGauge)
	if err != nil {
		return err
	}
	if err := checkFiniteSample(delta); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	sr, err := d.Series(labelValues...)
	if err != nil {
		return err
	}
	sr.add(-delta)
	return nil
}

// Set stores the current value of a gauge series.
func (s *Store) Set(name string, labelValues []string, value float64) error {
	d, err := s.lookupKind(name, KindGauge)
	if err != nil {
		return err
	}
	if err := checkFiniteSample(value); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	sr, err := d.Series(labelValues...)
	if err != nil {
		return err
	}
	sr.set(value)
	return nil
}

// SetBool stores the current state of a boolean series.
func (s *Store) SetBool(name string, labelValues []string, value bool) error {
	d, err := s.lookupKind(name, KindBoolean)
	if err != nil {
		return err
	}
	sr, err := d.Series(labelValues...)
	if err != nil {
		return err
	}
	sr.setBool(value)
	return nil
}

// Toggle flips a boolean series and returns the new state.
func (s *Store) Toggle(name string, labelValues []string) (bool, error) {
	d, err := s.lookupKind(name, KindBoolean)
	if err != nil {
		return false, err
	}
	sr, err := d.Series(labelValues...)
	if err != nil {
		return false, err
	}
	return sr.toggle(), nil
}

// Observe records one sample into a histogram series.
func (s *Store) Observe(name string, labelValues []string, value float64) error {
	d, err := s.lookupKind(name, KindHistogram)
	if err != nil {
		return err
	}
	if err := checkFiniteSample(value); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	sr, err := d.Series(labelValues...)
	if err != nil {
		return err
	}
	sr.observe(value)
	return nil
}

// Value reads the current value of a scalar series without creating it.
// Booleans read as 0 or 1.
func (s *Store) Value(name string, labelValues []string) (float64, error) {
	d, err := s.lookupKind(name, KindCounter, KindGauge, KindBoolean)
	if err != nil {
		return 0, err
	}
	sr, err := d.lookupSeries(labelValues)
	if err != nil {
		return 0, err
	}
	return sr.scalar(), nil
}

// Reset zeroes every series of a metric, keeping series identities.
func (s *Store) Reset(name string) error {
	d, err := s.Lookup(name)
	if err != nil {
		return err
	}
	d.Reset()
	return nil
}

// ResetSeries zeroes one series in place, reporting whether it existed.
// A combination that has never been written stays unmaterialized.
func (s *Store) ResetSeries(name string, labelValues []string) (bool, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return false, err
	}
	return d.ResetSeries(labelValues...)
}

// Remove deletes one series and reports whether it existed.
func (s *Store) Remove(name string, labelValues []string) (bool, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return false, err
	}
	return d.Remove(labelValues...)
}

// Enumerate snapshots each live series of a metric in turn. See
// Declaration.Enumerate for the consistency contract.
func (s *Store) Enumerate(name string, fn func(Point) bool) error {
	d, err := s.Lookup(name)
	if err != nil {
		return err
	}
	d.Enumerate(fn)
	return nil
}
