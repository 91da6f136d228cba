// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDeclare(t *testing.T, s *Store, name string, kind Kind, labelNames []string, opts ...DeclareOption) *Declaration {
	t.Helper()
	d, err := s.Declare(name, kind, labelNames, opts...)
	require.NoError(t, err, "declare %s", name)
	return d
}

func mustValue(t *testing.T, s *Store, name string, labelValues []string, want float64) {
	t.Helper()
	got, err := s.Value(name, labelValues)
	require.NoError(t, err, "value for %s", name)
	require.Equal(t, want, got, "unexpected value for %s", name)
}

func collectPoints(d *Declaration) []Point {
	var pts []Point
	d.Enumerate(func(p Point) bool {
		pts = append(pts, p)
		return true
	})
	return pts
}
