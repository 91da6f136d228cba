// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"fmt"
	"sort"

	"github.com/metricore/metricore/pkg/seriestore"
)

// Collect runs one collection pass over the registry and streams the result
// to onFamily, one fully materialized family at a time. Memory stays bounded
// by the largest single family, not the registry.
//
// The pass is two-phase per collector: Describe yields the family
// descriptors, then Collect fills each family's samples. Collectors run in
// registration order; samples are ordered by label values. The first error
// aborts the pass and is returned unchanged, whether it came from a collector
// or from onFamily itself. Nothing is suppressed.
func Collect(ctx context.Context, reg *Registry, onFamily func(*Family) error) error {
	seen := make(map[string]struct{})

	for _, c := range reg.Collectors() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var descs []*Desc
		err := c.Describe(ctx, func(d *Desc) error {
			if d == nil {
				return fmt.Errorf("%w: nil descriptor", ErrInvalidDesc)
			}
			if _, dup := seen[d.Name()]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateFamily, d.Name())
			}
			seen[d.Name()] = struct{}{}
			descs = append(descs, d)
			return nil
		})
		if err != nil {
			return err
		}

		for _, d := range descs {
			if err := ctx.Err(); err != nil {
				return err
			}

			fam := &Family{
				Name:       d.Name(),
				Help:       d.Help(),
				Kind:       d.Kind(),
				LabelNames: d.LabelNames(),
			}
			err := c.Collect(ctx, d, func(s Sample) error {
				if len(s.LabelValues) != len(fam.LabelNames) {
					return &seriestore.LabelMismatchError{
						Name: fam.Name,
						Want: len(fam.LabelNames),
						Got:  len(s.LabelValues),
					}
				}
				fam.Samples = append(fam.Samples, s)
				return nil
			})
			if err != nil {
				return err
			}

			sortSamples(fam.Samples)
			if err := onFamily(fam); err != nil {
				return err
			}
		}
	}
	return nil
}

// CollectAll materializes a whole pass. Meant for tests and small exporters;
// large registries should stream through Collect.
func CollectAll(ctx context.Context, reg *Registry) ([]*Family, error) {
	var fams []*Family
	err := Collect(ctx, reg, func(f *Family) error {
		fams = append(fams, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fams, nil
}

func sortSamples(samples []Sample) {
	sort.Slice(samples, func(i, j int) bool {
		return lessLabelValues(samples[i].LabelValues, samples[j].LabelValues)
	})
}

func lessLabelValues(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
