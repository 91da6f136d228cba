// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"fmt"

	"github.com/metricore/metricore/pkg/seriestore"
)

// A Counter is a monotonically increasing value: requests served, errors
// seen, bytes moved. It only goes up, except for the explicit Reset.
//
// A Counter declared without label names is used directly through Inc/Add;
// one declared with label names is a vector, addressed per series through
// WithLabelValues (panics on misuse) or GetWithLabelValues (returns errors).
type Counter struct {
	reg  *Registry
	desc *Desc
	decl *seriestore.Declaration
}

// NewCounter declares the counter in the registry's store and registers it
// as a collector.
func NewCounter(reg *Registry, name, help string, labelNames ...string) (*Counter, error) {
	desc, err := NewDesc(name, help, KindCounter, labelNames...)
	if err != nil {
		return nil, err
	}
	decl, err := reg.Store().Declare(name, seriestore.KindCounter, labelNames)
	if err != nil {
		return nil, err
	}
	c := &Counter{reg: reg, desc: desc, decl: decl}
	if err := reg.Register(c); err != nil {
		_ = reg.Store().Drop(name)
		return nil, err
	}
	return c, nil
}

func MustNewCounter(reg *Registry, name, help string, labelNames ...string) *Counter {
	c, err := NewCounter(reg, name, help, labelNames...)
	if err != nil {
		panic(err)
	}
	return c
}

// A CounterSeries is the write handle of one series. Its mutators panic on
// invalid use; the error-returning path is Store.Increment.
type CounterSeries struct {
	s *seriestore.Series
}

func (cs CounterSeries) Inc() { cs.Add(1) }

// Add increments the series by delta. It panics when delta is negative or
// not finite.
func (cs CounterSeries) Add(delta float64) {
	if err := cs.s.Add(delta); err != nil {
		panic(err)
	}
}

func (cs CounterSeries) Value() float64 { return cs.s.Value() }

// Reset zeroes this one series.
func (cs CounterSeries) Reset() { cs.s.Reset() }

// GetWithLabelValues returns the series handle for the given label values,
// creating the series on first use.
func (c *Counter) GetWithLabelValues(labelValues ...string) (CounterSeries, error) {
	s, err := c.decl.Series(labelValues...)
	if err != nil {
		return CounterSeries{}, err
	}
	return CounterSeries{s: s}, nil
}

// WithLabelValues is GetWithLabelValues that panics on error.
func (c *Counter) WithLabelValues(labelValues ...string) CounterSeries {
	cs, err := c.GetWithLabelValues(labelValues...)
	if err != nil {
		panic(err)
	}
	return cs
}

// Inc increments the unlabeled series. Panics when the counter was declared
// with label names.
func (c *Counter) Inc() { c.WithLabelValues().Inc() }

// Add increments the unlabeled series by delta.
func (c *Counter) Add(delta float64) { c.WithLabelValues().Add(delta) }

// Value reads the unlabeled series.
func (c *Counter) Value() float64 { return c.WithLabelValues().Value() }

// Reset zeroes every series, keeping identities. This is the one sanctioned
// break of monotonicity.
func (c *Counter) Reset() { c.decl.Reset() }

// Remove deletes the series for the given label values, reporting whether it
// existed. Wrong arity reports false.
func (c *Counter) Remove(labelValues ...string) bool {
	ok, err := c.decl.Remove(labelValues...)
	return err == nil && ok
}

func (c *Counter) Describe(_ context.Context, emit func(*Desc) error) error {
	return emit(c.desc)
}

func (c *Counter) Collect(_ context.Context, desc *Desc, emit func(Sample) error) error {
	if desc != c.desc {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, desc.Name())
	}
	return collectDeclaration(c.decl, emit)
}

// Cleanup drops the declaration and all its series.
func (c *Counter) Cleanup(context.Context) {
	_ = c.reg.Store().Drop(c.desc.Name())
}

// collectDeclaration streams every live series point of a declaration.
func collectDeclaration(decl *seriestore.Declaration, emit func(Sample) error) error {
	var err error
	decl.Enumerate(func(p seriestore.Point) bool {
		err = emit(p)
		return err == nil
	})
	return err
}
