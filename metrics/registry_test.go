// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry("test")
	c := &mockCollector{}

	require.NoError(t, reg.Register(c))
	require.ErrorIs(t, reg.Register(c), ErrAlreadyRegistered)

	// a distinct instance of the same type is fine
	require.NoError(t, reg.Register(&mockCollector{}))

	require.Error(t, reg.Register(nil))

	assert.Panics(t, func() { reg.MustRegister(c) })
}

func TestRegistryUnregister(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry("test")
	c := &mockCollector{}

	require.NoError(t, reg.Register(c))
	require.NoError(t, reg.Unregister(ctx, c))
	assert.True(t, c.CleanupDone, "cleanup must run on unregister")

	require.ErrorIs(t, reg.Unregister(ctx, c), ErrNotRegistered)
	require.ErrorIs(t, reg.Unregister(ctx, &mockCollector{}), ErrNotRegistered)
}

func TestRegistryCollectorsSnapshot(t *testing.T) {
	reg := NewRegistry("test")
	a := &mockCollector{}
	b := &mockCollector{}
	c := &mockCollector{}
	reg.MustRegister(a, b, c)

	got := reg.Collectors()
	require.Len(t, got, 3)
	assert.Same(t, a, got[0].(*mockCollector))
	assert.Same(t, b, got[1].(*mockCollector))
	assert.Same(t, c, got[2].(*mockCollector))

	// the snapshot is detached from later mutation
	require.NoError(t, reg.Unregister(context.Background(), b))
	require.Len(t, got, 3)
	require.Len(t, reg.Collectors(), 2)
}

func TestRegistryIndependence(t *testing.T) {
	a := NewRegistry("a")
	b := NewRegistry("b")

	MustNewCounter(a, "shared_name_total", "")
	// the same name declares cleanly in an unrelated registry
	MustNewCounter(b, "shared_name_total", "")

	require.NoError(t, a.Store().Increment("shared_name_total", nil, 5))

	v, err := b.Store().Value("shared_name_total", nil)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestDefaultRegistry(t *testing.T) {
	c := &mockCollector{}
	require.NoError(t, Register(c))
	require.ErrorIs(t, Register(c), ErrAlreadyRegistered)
	require.NoError(t, Unregister(context.Background(), c))

	assert.Equal(t, "default", Default.Name())
}
