// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import (
	"math"
	"sort"
	"strconv"
)

// BucketLabel is the conventional label name carrying a bucket upper bound.
// Declarations reject it as a user label name to keep the namespace free for
// exporters.
const BucketLabel = "le"

// findBucket returns the index of the bucket for value, or len(bounds) for
// the implicit +Inf bucket.
func findBucket(bounds []float64, value float64) int {
	n := len(bounds)
	if n == 0 {
		return 0
	}
	if value <= bounds[0] {
		return 0
	}
	if value > bounds[n-1] {
		return n
	}
	if n < 35 {
		for i, b := range bounds {
			if value <= b {
				return i
			}
		}
		return n
	}
	return sort.SearchFloat64s(bounds, value)
}

// FormatBucketLabel renders a bucket upper bound the way exporters print it.
func FormatBucketLabel(v float64) string {
	if math.IsInf(v, +1) {
		return "+Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
