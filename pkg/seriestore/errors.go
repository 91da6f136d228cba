// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateMetric      = errors.New("seriestore: metric already declared")
	ErrUnknownMetric        = errors.New("seriestore: unknown metric")
	ErrInvalidMetricName    = errors.New("seriestore: invalid metric name")
	ErrUnknownSeries        = errors.New("seriestore: unknown series")
	ErrKindMismatch         = errors.New("seriestore: metric kind mismatch")
	ErrLabelMismatch        = errors.New("seriestore: label values count does not match label names")
	ErrInvalidLabelName     = errors.New("seriestore: invalid label name")
	ErrDuplicateLabelName   = errors.New("seriestore: duplicate label name")
	ErrInvalidSampleValue   = errors.New("seriestore: invalid sample value (NaN/Inf)")
	ErrNegativeCounterDelta = errors.New("seriestore: counter delta cannot be negative")
	ErrInvalidBuckets       = errors.New("seriestore: invalid histogram buckets")
)

// A LabelMismatchError reports a label value list whose arity does not match
// the metric declaration. It matches ErrLabelMismatch under errors.Is.
type LabelMismatchError struct {
	Name string
	Want int
	Got  int
}

func (e *LabelMismatchError) Error() string {
	return fmt.Sprintf("seriestore: %s expects %d label values, got %d", e.Name, e.Want, e.Got)
}

func (e *LabelMismatchError) Is(target error) bool { return target == ErrLabelMismatch }
