// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/metricore/metricore/logger"
	"github.com/metricore/metricore/metrics"
	"github.com/metricore/metricore/pkg/seriestore"
)

// LogSink writes family summaries through the logger, one line per family
// and one debug line per sample. It is the default destination for demos
// and local debugging.
type LogSink struct {
	*logger.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{
		Logger: logger.New().With(slog.String("component", "log sink")),
	}
}

func (s *LogSink) Write(_ context.Context, fam *metrics.Family) error {
	s.Infof("%s type=%s samples=%d", fam.Name, fam.MetricType(), len(fam.Samples))
	for _, smp := range fam.Samples {
		s.Debug(formatSample(fam, smp))
	}
	return nil
}

func formatSample(fam *metrics.Family, smp metrics.Sample) string {
	var sb strings.Builder

	sb.WriteString(fam.Name)
	if len(fam.LabelNames) > 0 {
		sb.WriteByte('{')
		for i, ln := range fam.LabelNames {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%s=%q", ln, smp.LabelValues[i])
		}
		sb.WriteByte('}')
	}

	if smp.Histogram == nil {
		sb.WriteByte(' ')
		sb.WriteString(formatValue(smp.Value))
		return sb.String()
	}

	fmt.Fprintf(&sb, " count=%d sum=%s buckets=", smp.Histogram.Count, formatValue(smp.Histogram.Sum))
	for i, b := range smp.Histogram.Buckets {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s:%d", seriestore.FormatBucketLabel(b.UpperBound), b.CumulativeCount)
	}
	if len(smp.Histogram.Buckets) > 0 {
		sb.WriteByte(',')
	}
	fmt.Fprintf(&sb, "+Inf:%d", smp.Histogram.Count)

	return sb.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
