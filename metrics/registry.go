// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"errors"
	"sync"

	"github.com/metricore/metricore/pkg/seriestore"
)

// A Registry is a named, ordered set of collectors plus the value store their
// metrics live in. Registries are independent: declaring a name in one never
// affects another.
type Registry struct {
	name  string
	store *seriestore.Store

	mu  sync.Mutex
	set map[Collector]struct{}
	// order preserves registration order for deterministic passes
	order []Collector
}

func NewRegistry(name string) *Registry {
	return &Registry{
		name:  name,
		store: seriestore.NewStore(),
		set:   make(map[Collector]struct{}),
	}
}

func (r *Registry) Name() string { return r.name }

// Store returns the registry's value store. The typed facades declare into
// it; direct use is for name-addressed instrumentation.
func (r *Registry) Store() *seriestore.Store { return r.store }

// Register adds a collector. Collectors are tracked by identity; registering
// the same one twice fails.
func (r *Registry) Register(c Collector) error {
	if c == nil {
		return errors.New("metrics: register of nil collector")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.set[c]; ok {
		return ErrAlreadyRegistered
	}
	r.set[c] = struct{}{}
	r.order = append(r.order, c)
	return nil
}

// MustRegister registers collectors and panics on failure.
func (r *Registry) MustRegister(cs ...Collector) {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Unregister removes a collector and then runs its Cleanup. A second call
// for the same collector fails with ErrNotRegistered. Passes already in
// flight iterate their own snapshot and are not disturbed.
func (r *Registry) Unregister(ctx context.Context, c Collector) error {
	r.mu.Lock()
	if _, ok := r.set[c]; !ok {
		r.mu.Unlock()
		return ErrNotRegistered
	}
	delete(r.set, c)
	for i, rc := range r.order {
		if rc == c {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	// Cleanup runs outside the registry lock so collector teardown can use
	// the registry again.
	c.Cleanup(ctx)
	return nil
}

// Collectors returns a registration-ordered snapshot of the current
// collectors.
func (r *Registry) Collectors() []Collector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Collector(nil), r.order...)
}

// Default is the package-level registry used by the shorthand functions.
var Default = NewRegistry("default")

// Register registers a collector in the Default registry.
func Register(c Collector) error { return Default.Register(c) }

// MustRegister registers collectors in the Default registry, panicking on
// failure.
func MustRegister(cs ...Collector) { Default.MustRegister(cs...) }

// Unregister removes a collector from the Default registry.
func Unregister(ctx context.Context, c Collector) error { return Default.Unregister(ctx, c) }
