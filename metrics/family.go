// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"github.com/prometheus/common/model"

	"github.com/metricore/metricore/pkg/seriestore"
)

// A Sample is one series of a family at collection time: its label values
// and either a scalar value or a histogram point.
type Sample = seriestore.Point

// A Family is the point-in-time snapshot of one metric family. Families are
// materialized during a collection pass and handed to the consumer one at a
// time; they are never retained by the dispatcher.
type Family struct {
	Name       string
	Help       string
	Kind       Kind
	LabelNames []string
	Samples    []Sample // ordered by label values
}

// MetricType returns the exposition type of the family.
func (f *Family) MetricType() model.MetricType { return metricType(f.Kind) }
