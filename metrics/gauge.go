// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/metricore/metricore/pkg/seriestore"
)

// A Gauge is a value that goes up and down: queue depth, connection count,
// temperature.
type Gauge struct {
	reg  *Registry
	desc *Desc
	decl *seriestore.Declaration
}

func NewGauge(reg *Registry, name, help string, labelNames ...string) (*Gauge, error) {
	desc, err := NewDesc(name, help, KindGauge, labelNames...)
	if err != nil {
		return nil, err
	}
	decl, err := reg.Store().Declare(name, seriestore.KindGauge, labelNames)
	if err != nil {
		return nil, err
	}
	g := &Gauge{reg: reg, desc: desc, decl: decl}
	if err := reg.Register(g); err != nil {
		_ = reg.Store().Drop(name)
		return nil, err
	}
	return g, nil
}

func MustNewGauge(reg *Registry, name, help string, labelNames ...string) *Gauge {
	g, err := NewGauge(reg, name, help, labelNames...)
	if err != nil {
		panic(err)
	}
	return g
}

// A GaugeSeries is the write handle of one series. Mutators panic on
// non-finite values.
type GaugeSeries struct {
	s *seriestore.Series
}

func (gs GaugeSeries) Set(v float64) {
	if err := gs.s.Set(v); err != nil {
		panic(err)
	}
}

func (gs GaugeSeries) Inc() { gs.Add(1) }
func (gs GaugeSeries) Dec() { gs.Add(-1) }

func (gs GaugeSeries) Add(delta float64) {
	if err := gs.s.Add(delta); err != nil {
		panic(err)
	}
}

func (gs GaugeSeries) Sub(delta float64) { gs.Add(-delta) }

// SetToCurrentTime sets the series to the current Unix time in seconds.
func (gs GaugeSeries) SetToCurrentTime() {
	gs.Set(float64(time.Now().UnixNano()) / 1e9)
}

func (gs GaugeSeries) Value() float64 { return gs.s.Value() }

// Reset zeroes this one series.
func (gs GaugeSeries) Reset() { gs.s.Reset() }

func (g *Gauge) GetWithLabelValues(labelValues ...string) (GaugeSeries, error) {
	s, err := g.decl.Series(labelValues...)
	if err != nil {
		return GaugeSeries{}, err
	}
	return GaugeSeries{s: s}, nil
}

func (g *Gauge) WithLabelValues(labelValues ...string) GaugeSeries {
	gs, err := g.GetWithLabelValues(labelValues...)
	if err != nil {
		panic(err)
	}
	return gs
}

func (g *Gauge) Set(v float64) { g.WithLabelValues().Set(v) }

func (g *Gauge) Inc() { g.WithLabelValues().Inc() }

func (g *Gauge) Dec() { g.WithLabelValues().Dec() }

func (g *Gauge) Add(delta float64) { g.WithLabelValues().Add(delta) }

func (g *Gauge) Sub(delta float64) { g.WithLabelValues().Sub(delta) }

func (g *Gauge) SetToCurrentTime() { g.WithLabelValues().SetToCurrentTime() }

func (g *Gauge) Value() float64 { return g.WithLabelValues().Value() }

func (g *Gauge) Reset() { g.decl.Reset() }

func (g *Gauge) Remove(labelValues ...string) bool {
	ok, err := g.decl.Remove(labelValues...)
	return err == nil && ok
}

func (g *Gauge) Describe(_ context.Context, emit func(*Desc) error) error {
	return emit(g.desc)
}

func (g *Gauge) Collect(_ context.Context, desc *Desc, emit func(Sample) error) error {
	if desc != g.desc {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, desc.Name())
	}
	return collectDeclaration(g.decl, emit)
}

func (g *Gauge) Cleanup(context.Context) {
	_ = g.reg.Store().Drop(g.desc.Name())
}
