// SPDX-License-Identifier: GPL-3.0-or-later

// Package famfilter selects metric families by name using doublestar glob
// patterns.
package famfilter

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Config lists include and exclude glob patterns for family names.
type Config struct {
	Include []string `yaml:"include,omitempty" json:"include"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude"`
}

// Filter decides which metric families an export pass lets through.
// Exclude patterns win over include patterns. An empty include list
// allows every family not excluded.
type Filter struct {
	include []string
	exclude []string
}

// New validates every pattern in cfg and returns a ready filter.
func New(cfg Config) (*Filter, error) {
	if err := validatePatterns(cfg.Include); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Exclude); err != nil {
		return nil, err
	}
	return &Filter{
		include: append([]string{}, cfg.Include...),
		exclude: append([]string{}, cfg.Exclude...),
	}, nil
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("famfilter: invalid pattern '%s'", p)
		}
	}
	return nil
}

// Allowed reports whether the family name passes the filter. A nil filter
// allows everything.
func (f *Filter) Allowed(name string) bool {
	if f == nil {
		return true
	}
	for _, p := range f.exclude {
		if ok, _ := doublestar.Match(p, name); ok {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, p := range f.include {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
