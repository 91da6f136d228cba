// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import "math"

func checkFiniteSample(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidSampleValue
	}
	return nil
}
