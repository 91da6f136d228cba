// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

type DeclareOption interface {
	apply(*declareConfig)
}

type optionFunc func(*declareConfig)

func (f optionFunc) apply(cfg *declareConfig) { f(cfg) }

type declareConfig struct {
	bounds []float64
}

// WithBounds sets the bucket upper bounds of a histogram declaration.
// Declare rejects bounds on any other kind.
func WithBounds(bounds ...float64) DeclareOption {
	return optionFunc(func(cfg *declareConfig) {
		cfg.bounds = append([]float64(nil), bounds...)
	})
}
