// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics is the instrumentation facade: typed metric families
// declared in a Registry, mutated from any goroutine, and walked by Collect
// to produce point-in-time family snapshots.
//
// Application code declares metrics once and writes through handles:
//
//	reg := metrics.NewRegistry("app")
//	reqs := metrics.MustNewCounter(reg, "http_requests_total", "Served requests.", "method", "code")
//	reqs.WithLabelValues("GET", "200").Inc()
//
// An exporter drains the registry one family at a time:
//
//	err := metrics.Collect(ctx, reg, func(f *metrics.Family) error {
//		return sink.Write(ctx, f)
//	})
//
// Counter, Gauge, Histogram and Boolean are all Collectors themselves;
// custom Collectors expose state that has no backing series.
package metrics
