// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"errors"

	"github.com/metricore/metricore/pkg/seriestore"
)

var (
	ErrAlreadyRegistered = errors.New("metrics: collector already registered")
	ErrNotRegistered     = errors.New("metrics: collector is not registered")
	ErrInvalidDesc       = errors.New("metrics: invalid metric descriptor")
	ErrDuplicateFamily   = errors.New("metrics: duplicate family name in one pass")
)

// Store failure modes re-exported so callers match errors without importing
// the engine package.
var (
	ErrDuplicateMetric      = seriestore.ErrDuplicateMetric
	ErrUnknownMetric        = seriestore.ErrUnknownMetric
	ErrLabelMismatch        = seriestore.ErrLabelMismatch
	ErrKindMismatch         = seriestore.ErrKindMismatch
	ErrInvalidSampleValue   = seriestore.ErrInvalidSampleValue
	ErrNegativeCounterDelta = seriestore.ErrNegativeCounterDelta
	ErrInvalidBuckets       = seriestore.ErrInvalidBuckets
)
