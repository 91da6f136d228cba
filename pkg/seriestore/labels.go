// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import "strings"

// checkLabelNames validates a declaration's label name list. Syntactic name
// rules live with the caller; the store only enforces its own invariants.
func checkLabelNames(names []string) error {
	for i, name := range names {
		if name == "" {
			return ErrInvalidLabelName
		}
		for j := 0; j < i; j++ {
			if names[j] == name {
				return ErrDuplicateLabelName
			}
		}
	}
	return nil
}

// packLabelValues joins label values into one stable series identity key.
// Values are joined with a separator that cannot appear in metric names;
// values containing the separator byte are accepted, the collision risk is
// documented on Declare.
func packLabelValues(values []string) string {
	if len(values) == 0 {
		return ""
	}
	if len(values) == 1 {
		return values[0]
	}
	var b strings.Builder
	n := len(values) - 1
	for _, v := range values {
		n += len(v)
	}
	b.Grow(n)
	for i, v := range values {
		if i > 0 {
			b.WriteByte('\xff')
		}
		b.WriteString(v)
	}
	return b.String()
}
