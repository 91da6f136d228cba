// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

// Kind identifies the value semantics of a declared metric.
type Kind uint8

const (
	KindCounter Kind = iota
	KindGauge
	KindHistogram
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}
