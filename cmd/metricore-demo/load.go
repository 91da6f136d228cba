// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/metricore/metricore/metrics"
)

var methods = []string{"GET", "POST", "PUT", "DELETE"}

// workload instruments a pretend request-serving backend. It exists to put
// every metric kind under concurrent write load.
type workload struct {
	requests *metrics.Counter
	inflight *metrics.Gauge
	latency  *metrics.Histogram
	healthy  *metrics.Boolean
}

func newWorkload(reg *metrics.Registry) *workload {
	w := &workload{
		requests: metrics.MustNewCounter(reg, "demo_requests_total", "Simulated requests served.", "method"),
		inflight: metrics.MustNewGauge(reg, "demo_requests_inflight", "Simulated requests currently in flight."),
		latency:  metrics.MustNewHistogram(reg, "demo_request_seconds", "Simulated request latency.", nil, "method"),
		healthy:  metrics.MustNewBoolean(reg, "demo_backend_healthy", "Simulated backend health probe."),
	}
	w.healthy.Set(true)
	return w
}

func (w *workload) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(10+rand.Intn(40)) * time.Millisecond):
		}

		method := methods[rand.Intn(len(methods))]

		w.inflight.Inc()
		start := time.Now()
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)

		w.latency.WithLabelValues(method).ObserveSince(start)
		w.requests.WithLabelValues(method).Inc()
		w.inflight.Dec()

		if rand.Intn(100) == 0 {
			w.healthy.Toggle()
		}
	}
}
