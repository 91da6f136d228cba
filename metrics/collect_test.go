// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCollector is a hand-rolled Collector with overridable behavior.
type mockCollector struct {
	DescribeFunc func(ctx context.Context, emit func(*Desc) error) error
	CollectFunc  func(ctx context.Context, desc *Desc, emit func(Sample) error) error
	CleanupDone  bool
}

func (m *mockCollector) Describe(ctx context.Context, emit func(*Desc) error) error {
	if m.DescribeFunc == nil {
		return nil
	}
	return m.DescribeFunc(ctx, emit)
}

func (m *mockCollector) Collect(ctx context.Context, desc *Desc, emit func(Sample) error) error {
	if m.CollectFunc == nil {
		return nil
	}
	return m.CollectFunc(ctx, desc, emit)
}

func (m *mockCollector) Cleanup(context.Context) { m.CleanupDone = true }

func staticCollector(desc *Desc, samples ...Sample) *mockCollector {
	return &mockCollector{
		DescribeFunc: func(_ context.Context, emit func(*Desc) error) error {
			return emit(desc)
		},
		CollectFunc: func(_ context.Context, _ *Desc, emit func(Sample) error) error {
			for _, s := range samples {
				if err := emit(s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func TestCollectPass(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")

	reqs := MustNewCounter(reg, "requests_total", "Served requests.", "method")
	reqs.WithLabelValues("GET").Add(3)
	reqs.WithLabelValues("DELETE").Inc()
	reqs.WithLabelValues("POST").Add(2)

	up := MustNewBoolean(reg, "up", "Service is reachable.")
	up.Set(true)

	fams, err := CollectAll(ctx, reg)
	require.NoError(t, err)
	require.Len(t, fams, 2)

	// registration order
	require.Equal(t, "requests_total", fams[0].Name)
	require.Equal(t, "up", fams[1].Name)

	// samples ordered by label values
	rf := fams[0]
	assert.Equal(t, KindCounter, rf.Kind)
	assert.Equal(t, []string{"method"}, rf.LabelNames)
	require.Len(t, rf.Samples, 3)
	assert.Equal(t, []string{"DELETE"}, rf.Samples[0].LabelValues)
	assert.Equal(t, []string{"GET"}, rf.Samples[1].LabelValues)
	assert.Equal(t, []string{"POST"}, rf.Samples[2].LabelValues)
	assert.EqualValues(t, 1, rf.Samples[0].Value)
	assert.EqualValues(t, 3, rf.Samples[1].Value)
	assert.EqualValues(t, 2, rf.Samples[2].Value)

	uf := fams[1]
	assert.Equal(t, "Service is reachable.", uf.Help)
	require.Len(t, uf.Samples, 1)
	assert.EqualValues(t, 1, uf.Samples[0].Value)
}

func TestCollectEmptyRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")

	calls := 0
	require.NoError(t, Collect(ctx, reg, func(*Family) error {
		calls++
		return nil
	}))
	assert.Zero(t, calls)
}

func TestCollectStreamsOneFamilyAtATime(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")
	MustNewCounter(reg, "a_total", "")
	MustNewCounter(reg, "b_total", "")

	var order []string
	require.NoError(t, Collect(ctx, reg, func(f *Family) error {
		order = append(order, f.Name)
		return nil
	}))
	assert.Equal(t, []string{"a_total", "b_total"}, order)
}

func TestCollectErrorPropagation(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	tests := map[string]struct {
		setup   func(reg *Registry)
		wantErr error
	}{
		"describe error aborts the pass": {
			setup: func(reg *Registry) {
				reg.MustRegister(&mockCollector{
					DescribeFunc: func(context.Context, func(*Desc) error) error { return sentinel },
				})
			},
			wantErr: sentinel,
		},
		"collect error aborts the pass": {
			setup: func(reg *Registry) {
				desc := MustNewDesc("m_total", "", KindCounter)
				reg.MustRegister(&mockCollector{
					DescribeFunc: func(_ context.Context, emit func(*Desc) error) error { return emit(desc) },
					CollectFunc: func(context.Context, *Desc, func(Sample) error) error {
						return sentinel
					},
				})
			},
			wantErr: sentinel,
		},
		"nil descriptor is rejected": {
			setup: func(reg *Registry) {
				reg.MustRegister(&mockCollector{
					DescribeFunc: func(_ context.Context, emit func(*Desc) error) error { return emit(nil) },
				})
			},
			wantErr: ErrInvalidDesc,
		},
		"duplicate family name across collectors is rejected": {
			setup: func(reg *Registry) {
				reg.MustRegister(staticCollector(MustNewDesc("dup_total", "", KindCounter)))
				reg.MustRegister(staticCollector(MustNewDesc("dup_total", "", KindCounter)))
			},
			wantErr: ErrDuplicateFamily,
		},
		"sample arity mismatch is rejected": {
			setup: func(reg *Registry) {
				desc := MustNewDesc("m_total", "", KindCounter, "zone")
				reg.MustRegister(staticCollector(desc, Sample{LabelValues: []string{"a", "b"}, Value: 1}))
			},
			wantErr: ErrLabelMismatch,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			reg := NewRegistry("test")
			test.setup(reg)
			err := Collect(ctx, reg, func(*Family) error { return nil })
			require.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestCollectCallbackErrorAborts(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")
	MustNewCounter(reg, "a_total", "")
	MustNewCounter(reg, "b_total", "")

	sentinel := errors.New("sink full")
	var seen int
	err := Collect(ctx, reg, func(*Family) error {
		seen++
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, seen)
}

func TestCollectContextCancellation(t *testing.T) {
	reg := NewRegistry("test")
	MustNewCounter(reg, "a_total", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Collect(ctx, reg, func(*Family) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollectUnregisterMidPass(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")
	MustNewCounter(reg, "a_total", "")
	b := MustNewCounter(reg, "b_total", "")
	MustNewCounter(reg, "c_total", "")

	// unregistering a later collector during the pass must not disturb the
	// in-flight snapshot
	var names []string
	err := Collect(ctx, reg, func(f *Family) error {
		if f.Name == "a_total" {
			require.NoError(t, reg.Unregister(ctx, b))
		}
		names = append(names, f.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a_total", "b_total", "c_total"}, names)

	// the next pass no longer sees it
	names = names[:0]
	require.NoError(t, Collect(ctx, reg, func(f *Family) error {
		names = append(names, f.Name)
		return nil
	}))
	assert.Equal(t, []string{"a_total", "c_total"}, names)
}

func TestCollectEagerZeroLabelSample(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")

	// a never-written zero-label counter still exports one 0 sample
	MustNewCounter(reg, "starts_total", "")
	// a never-written labeled counter exports an empty family
	MustNewCounter(reg, "requests_total", "", "method")

	fams, err := CollectAll(ctx, reg)
	require.NoError(t, err)
	require.Len(t, fams, 2)

	require.Len(t, fams[0].Samples, 1)
	assert.Empty(t, fams[0].Samples[0].LabelValues)
	assert.Zero(t, fams[0].Samples[0].Value)

	assert.Empty(t, fams[1].Samples)
}
