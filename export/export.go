// SPDX-License-Identifier: GPL-3.0-or-later

// Package export drives periodic collection passes over a registry and hands
// the resulting families to a sink. A circuit breaker around the sink keeps a
// failing destination from being hammered every interval.
package export

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/metricore/metricore/logger"
	"github.com/metricore/metricore/metrics"
	"github.com/metricore/metricore/pkg/famfilter"
)

// A Sink receives the families of one collection pass, one at a time, in
// pass order. Returning an error aborts the pass.
type Sink interface {
	Write(ctx context.Context, fam *metrics.Family) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, fam *metrics.Family) error

func (f SinkFunc) Write(ctx context.Context, fam *metrics.Family) error { return f(ctx, fam) }

// breakerTimeout is how long the sink circuit stays open before a probe pass
// is allowed through.
const breakerTimeout = 30 * time.Second

func New(reg *metrics.Registry, sink Sink) *Exporter {
	e := &Exporter{
		Logger: logger.New().With(
			slog.String("component", "exporter"),
			slog.String("registry", reg.Name()),
		),
		Registry: reg,
		Sink:     sink,
		Every:    10 * time.Second,
	}
	e.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        reg.Name() + " export sink",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.Warningf("sink circuit '%s' changed state from %s to %s", name, from, to)
		},
	})
	return e
}

// Exporter periodically collects a registry and streams the allowed families
// to the sink. Every and Filter may be adjusted before Run is called.
type Exporter struct {
	*logger.Logger

	Registry *metrics.Registry
	Sink     Sink
	Every    time.Duration
	Filter   *famfilter.Filter

	breaker *gobreaker.CircuitBreaker
}

// Run exports every interval until ctx is canceled. Pass errors are logged,
// never fatal to the loop.
func (e *Exporter) Run(ctx context.Context) {
	e.Info("instance is started")
	defer func() { e.Info("instance is stopped") }()

	tk := time.NewTicker(e.Every)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			e.export(ctx)
		}
	}
}

func (e *Exporter) export(ctx context.Context) {
	_, err := e.breaker.Execute(func() (any, error) {
		return nil, e.pass(ctx)
	})
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState):
		e.Debug("sink circuit open, pass skipped")
	case errors.Is(err, context.Canceled):
	default:
		e.Errorf("collection pass failed: %v", err)
	}
}

func (e *Exporter) pass(ctx context.Context) error {
	return metrics.Collect(ctx, e.Registry, func(fam *metrics.Family) error {
		if !e.Filter.Allowed(fam.Name) {
			return nil
		}
		return e.Sink.Write(ctx, fam)
	})
}

// State returns the sink circuit state.
func (e *Exporter) State() gobreaker.State {
	return e.breaker.State()
}
