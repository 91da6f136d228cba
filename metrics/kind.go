// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"github.com/prometheus/common/model"

	"github.com/metricore/metricore/pkg/seriestore"
)

// Kind and its values are re-exported from the store so collector code only
// imports this package.
type Kind = seriestore.Kind

const (
	KindCounter   = seriestore.KindCounter
	KindGauge     = seriestore.KindGauge
	KindHistogram = seriestore.KindHistogram
	KindBoolean   = seriestore.KindBoolean
)

// metricType maps a kind onto the exposition metric type. Booleans have no
// exposition equivalent and map to unknown.
func metricType(k Kind) model.MetricType {
	switch k {
	case KindCounter:
		return model.MetricTypeCounter
	case KindGauge:
		return model.MetricTypeGauge
	case KindHistogram:
		return model.MetricTypeHistogram
	default:
		return model.MetricTypeUnknown
	}
}
