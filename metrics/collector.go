// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"

	"github.com/metricore/metricore/logger"
)

// Collector is the contract between metric sources and the dispatcher.
// The typed metric facades implement it; application code implements it to
// expose state that has no backing series, such as runtime introspection.
//
// Collectors must be comparable: the registry tracks them by identity.
type Collector interface {
	// Describe emits the descriptor of every family this collector produces.
	// It must be cheap and side-effect free; the dispatcher calls it at the
	// start of every collection pass. Returning the emit error unchanged
	// aborts the pass.
	Describe(ctx context.Context, emit func(*Desc) error) error

	// Collect emits one sample per live series of the given family, which is
	// one of the descriptors Describe emitted during this pass. Samples for
	// one family must be fully emitted before Collect returns; the dispatcher
	// materializes them into a single Family.
	Collect(ctx context.Context, desc *Desc, emit func(Sample) error) error

	// Cleanup releases whatever the collector holds. The registry calls it
	// once on Unregister; the collector is not collected afterwards.
	Cleanup(ctx context.Context)
}

// Base is a helper struct for application collectors to embed. It carries the
// logger so collector code logs through the standard pipeline.
type Base struct {
	*logger.Logger
}

func (b *Base) GetBase() *Base { return b }
