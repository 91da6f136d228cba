// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import "sync"

// A Declaration is the live series table of one declared metric. Series are
// sharded by a hash of the packed label-value key; each shard holds its own
// lock, so inserts of distinct series rarely contend and updates of existing
// series take no shard write lock at all.
type Declaration struct {
	name       string
	kind       Kind
	labelNames []string
	bounds     []float64 // histogram kinds, strictly ascending, +Inf implicit

	zero   *Series // the single series of a zero-label metric, set at declare
	shards [seriesShards]seriesShard
}

type seriesShard struct {
	mu sync.RWMutex
	m  map[string]*Series
}

func newDeclaration(name string, kind Kind, labelNames []string, bounds []float64) *Declaration {
	d := &Declaration{
		name:       name,
		kind:       kind,
		labelNames: append([]string(nil), labelNames...),
		bounds:     append([]float64(nil), bounds...),
	}
	for i := range d.shards {
		d.shards[i].m = make(map[string]*Series)
	}
	if len(labelNames) == 0 {
		// Zero-label metrics materialize their single series eagerly, so a
		// declared but never written counter still enumerates as 0.
		d.zero = d.newSeries(nil)
		d.shards[0].m[""] = d.zero
	}
	return d
}

func (d *Declaration) Name() string         { return d.name }
func (d *Declaration) Kind() Kind           { return d.kind }
func (d *Declaration) LabelNames() []string { return d.labelNames }

// Bounds returns the histogram bucket upper bounds, nil for scalar kinds.
// The returned slice must not be mutated.
func (d *Declaration) Bounds() []float64 { return d.bounds }

func (d *Declaration) newSeries(values []string) *Series {
	s := &Series{decl: d, values: append([]string(nil), values...)}
	if d.kind == KindHistogram {
		s.buckets = make([]uint64, len(d.bounds))
	}
	return s
}

// Series returns the series for the given label values, creating it on first
// use. The number of values must match the declared label names.
func (d *Declaration) Series(labelValues ...string) (*Series, error) {
	if len(labelValues) != len(d.labelNames) {
		return nil, &LabelMismatchError{Name: d.name, Want: len(d.labelNames), Got: len(labelValues)}
	}
	if d.zero != nil {
		return d.zero, nil
	}

	key := packLabelValues(labelValues)
	sh := &d.shards[seriesShardIndex(key)]

	sh.mu.RLock()
	s := sh.m[key]
	sh.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	sh.mu.Lock()
	s = sh.m[key]
	if s == nil {
		s = d.newSeries(labelValues)
		sh.m[key] = s
	}
	sh.mu.Unlock()
	return s, nil
}

// lookupSeries returns an existing series without creating one.
func (d *Declaration) lookupSeries(labelValues []string) (*Series, error) {
	if len(labelValues) != len(d.labelNames) {
		return nil, &LabelMismatchError{Name: d.name, Want: len(d.labelNames), Got: len(labelValues)}
	}
	if d.zero != nil {
		return d.zero, nil
	}
	key := packLabelValues(labelValues)
	sh := &d.shards[seriesShardIndex(key)]
	sh.mu.RLock()
	s := sh.m[key]
	sh.mu.RUnlock()
	if s == nil {
		return nil, ErrUnknownSeries
	}
	return s, nil
}

// Remove deletes the series for the given label values and reports whether it
// existed. The eagerly materialized series of a zero-label metric is reset
// instead of deleted, so the declared metric keeps enumerating as 0.
func (d *Declaration) Remove(labelValues ...string) (bool, error) {
	if len(labelValues) != len(d.labelNames) {
		return false, &LabelMismatchError{Name: d.name, Want: len(d.labelNames), Got: len(labelValues)}
	}
	if d.zero != nil {
		d.zero.Reset()
		return true, nil
	}
	key := packLabelValues(labelValues)
	sh := &d.shards[seriesShardIndex(key)]
	sh.mu.Lock()
	_, ok := sh.m[key]
	if ok {
		delete(sh.m, key)
	}
	sh.mu.Unlock()
	return ok, nil
}

// ResetSeries zeroes the series for the given label values in place,
// reporting whether it existed. A combination that has never been written
// stays unmaterialized.
func (d *Declaration) ResetSeries(labelValues ...string) (bool, error) {
	if len(labelValues) != len(d.labelNames) {
		return false, &LabelMismatchError{Name: d.name, Want: len(d.labelNames), Got: len(labelValues)}
	}
	if d.zero != nil {
		d.zero.Reset()
		return true, nil
	}
	key := packLabelValues(labelValues)
	sh := &d.shards[seriesShardIndex(key)]
	sh.mu.RLock()
	s := sh.m[key]
	sh.mu.RUnlock()
	if s == nil {
		return false, nil
	}
	s.Reset()
	return true, nil
}

// Reset zeroes every live series. Series identities survive; this is the one
// sanctioned break of counter monotonicity.
func (d *Declaration) Reset() {
	for i := range d.shards {
		sh := &d.shards[i]
		sh.mu.RLock()
		series := make([]*Series, 0, len(sh.m))
		for _, s := range sh.m {
			series = append(series, s)
		}
		sh.mu.RUnlock()
		for _, s := range series {
			s.Reset()
		}
	}
}

// Len returns the number of live series.
func (d *Declaration) Len() int {
	n := 0
	for i := range d.shards {
		sh := &d.shards[i]
		sh.mu.RLock()
		n += len(sh.m)
		sh.mu.RUnlock()
	}
	return n
}

// Enumerate snapshots each live series and passes it to fn, stopping early
// when fn returns false. Each point is internally consistent; no consistency
// across points is promised, and order is unspecified. Shard locks are not
// held while fn runs.
func (d *Declaration) Enumerate(fn func(Point) bool) {
	for i := range d.shards {
		sh := &d.shards[i]
		sh.mu.RLock()
		series := make([]*Series, 0, len(sh.m))
		for _, s := range sh.m {
			series = append(series, s)
		}
		sh.mu.RUnlock()
		for _, s := range series {
			if !fn(s.Point()) {
				return
			}
		}
	}
}
