// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/common/model"
)

// A Desc is the immutable descriptor of one metric family: name, help text,
// kind and the ordered label names every series of the family must carry.
type Desc struct {
	name       string
	help       string
	kind       Kind
	labelNames []string
}

// NewDesc validates the family name and label names against the classic
// exposition naming rules and returns the descriptor. Label names must not
// use the reserved "__" prefix.
func NewDesc(name, help string, kind Kind, labelNames ...string) (*Desc, error) {
	if !model.MetricNameRE.MatchString(name) {
		return nil, fmt.Errorf("%w: bad metric name %q", ErrInvalidDesc, name)
	}
	for _, ln := range labelNames {
		if !model.LabelNameRE.MatchString(ln) {
			return nil, fmt.Errorf("%w: %s: bad label name %q", ErrInvalidDesc, name, ln)
		}
		if strings.HasPrefix(ln, model.ReservedLabelPrefix) {
			return nil, fmt.Errorf("%w: %s: label name %q is reserved", ErrInvalidDesc, name, ln)
		}
	}
	return &Desc{
		name:       name,
		help:       help,
		kind:       kind,
		labelNames: append([]string(nil), labelNames...),
	}, nil
}

func MustNewDesc(name, help string, kind Kind, labelNames ...string) *Desc {
	d, err := NewDesc(name, help, kind, labelNames...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Desc) Name() string { return d.name }
func (d *Desc) Help() string { return d.help }
func (d *Desc) Kind() Kind   { return d.kind }

// LabelNames returns the ordered label names. The returned slice must not be
// mutated.
func (d *Desc) LabelNames() []string { return d.labelNames }

// MetricType returns the exposition type of the family.
func (d *Desc) MetricType() model.MetricType { return metricType(d.kind) }

func (d *Desc) String() string {
	return fmt.Sprintf("%s{%s %s}", d.name, d.kind, strings.Join(d.labelNames, ","))
}
