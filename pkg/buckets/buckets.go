// SPDX-License-Identifier: GPL-3.0-or-later

// Package buckets generates and validates histogram bucket upper bounds.
package buckets

import (
	"errors"
	"math"
)

// Default are the default histogram buckets. They are tailored to broadly
// measure the response time (in seconds) of a network service. Most likely,
// however, you will be required to define buckets customized to your use case.
var Default = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// A ValueError reports a bucket parameter that failed validation.
type ValueError struct {
	Value  float64
	Reason string
}

func (e *ValueError) Error() string { return e.Reason }

// Linear creates 'count' buckets, each 'width' wide, where the lowest bucket
// has an upper bound of 'start'. The final +Inf bucket is not counted and not
// included in the returned slice.
func Linear(start, width float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, &ValueError{Value: float64(count), Reason: "Buckets count should be positive"}
	}
	bounds := make([]float64, count)
	for i := range bounds {
		bounds[i] = start
		start += width
	}
	return bounds, nil
}

// Exponential creates 'count' buckets, where the lowest bucket has an upper
// bound of 'start' and each following bucket's upper bound is 'factor' times
// the previous bucket's upper bound. The final +Inf bucket is not counted and
// not included in the returned slice.
func Exponential(start, factor float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, &ValueError{Value: float64(count), Reason: "Buckets count should be positive"}
	}
	if start <= 0 {
		return nil, &ValueError{Value: start, Reason: "Buckets start should be positive"}
	}
	if factor <= 1 {
		return nil, &ValueError{Value: factor, Reason: "Buckets factor should be greater than 1"}
	}
	bounds := make([]float64, count)
	for i := range bounds {
		bounds[i] = start
		start *= factor
	}
	return bounds, nil
}

// Validate reports whether bounds form a usable bucket list: non-empty,
// every bound finite, strictly ascending. The +Inf bucket is implicit and
// must not appear in the list.
func Validate(bounds []float64) error {
	if len(bounds) == 0 {
		return errors.New("empty buckets list")
	}
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return &ValueError{Value: b, Reason: "Buckets bounds should be finite"}
		}
		if i > 0 && b <= bounds[i-1] {
			return &ValueError{Value: b, Reason: "Buckets bounds should be strictly ascending"}
		}
	}
	return nil
}
