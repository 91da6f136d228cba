// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"fmt"

	"github.com/metricore/metricore/pkg/seriestore"
)

// A Boolean is a two-state flag: up/down, leader/follower, open/closed.
// It enumerates as a 0/1 scalar.
type Boolean struct {
	reg  *Registry
	desc *Desc
	decl *seriestore.Declaration
}

func NewBoolean(reg *Registry, name, help string, labelNames ...string) (*Boolean, error) {
	desc, err := NewDesc(name, help, KindBoolean, labelNames...)
	if err != nil {
		return nil, err
	}
	decl, err := reg.Store().Declare(name, seriestore.KindBoolean, labelNames)
	if err != nil {
		return nil, err
	}
	b := &Boolean{reg: reg, desc: desc, decl: decl}
	if err := reg.Register(b); err != nil {
		_ = reg.Store().Drop(name)
		return nil, err
	}
	return b, nil
}

func MustNewBoolean(reg *Registry, name, help string, labelNames ...string) *Boolean {
	b, err := NewBoolean(reg, name, help, labelNames...)
	if err != nil {
		panic(err)
	}
	return b
}

// A BooleanSeries is the write handle of one series.
type BooleanSeries struct {
	s *seriestore.Series
}

func (bs BooleanSeries) Set(v bool) {
	if err := bs.s.SetBool(v); err != nil {
		panic(err)
	}
}

// Toggle flips the series and returns the new state.
func (bs BooleanSeries) Toggle() bool {
	on, err := bs.s.Toggle()
	if err != nil {
		panic(err)
	}
	return on
}

func (bs BooleanSeries) Value() bool { return bs.s.Value() != 0 }

// Reset sets this one series to false.
func (bs BooleanSeries) Reset() { bs.s.Reset() }

func (b *Boolean) GetWithLabelValues(labelValues ...string) (BooleanSeries, error) {
	s, err := b.decl.Series(labelValues...)
	if err != nil {
		return BooleanSeries{}, err
	}
	return BooleanSeries{s: s}, nil
}

func (b *Boolean) WithLabelValues(labelValues ...string) BooleanSeries {
	bs, err := b.GetWithLabelValues(labelValues...)
	if err != nil {
		panic(err)
	}
	return bs
}

func (b *Boolean) Set(v bool) { b.WithLabelValues().Set(v) }

func (b *Boolean) Toggle() bool { return b.WithLabelValues().Toggle() }

func (b *Boolean) Value() bool { return b.WithLabelValues().Value() }

func (b *Boolean) Reset() { b.decl.Reset() }

func (b *Boolean) Remove(labelValues ...string) bool {
	ok, err := b.decl.Remove(labelValues...)
	return err == nil && ok
}

func (b *Boolean) Describe(_ context.Context, emit func(*Desc) error) error {
	return emit(b.desc)
}

func (b *Boolean) Collect(_ context.Context, desc *Desc, emit func(Sample) error) error {
	if desc != b.desc {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, desc.Name())
	}
	return collectDeclaration(b.decl, emit)
}

func (b *Boolean) Cleanup(context.Context) {
	_ = b.reg.Store().Drop(b.desc.Name())
}
