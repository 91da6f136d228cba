// SPDX-License-Identifier: GPL-3.0-or-later

// Package goruntime exposes Go runtime statistics as metric families. It is
// a plain collector with no backing series: each collection pass takes one
// stats snapshot and synthesizes every sample from it.
package goruntime

import (
	"context"
	"fmt"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/metricore/metricore/metrics"
)

type snapshot struct {
	mem        runtime.MemStats
	goroutines int
	threads    int
}

var families = []struct {
	desc *metrics.Desc
	read func(*snapshot) float64
}{
	{
		desc: metrics.MustNewDesc("go_goroutines", "Number of goroutines that currently exist.", metrics.KindGauge),
		read: func(s *snapshot) float64 { return float64(s.goroutines) },
	},
	{
		desc: metrics.MustNewDesc("go_threads", "Number of OS threads created.", metrics.KindGauge),
		read: func(s *snapshot) float64 { return float64(s.threads) },
	},
	{
		desc: metrics.MustNewDesc("go_heap_alloc_bytes", "Bytes of allocated heap objects.", metrics.KindGauge),
		read: func(s *snapshot) float64 { return float64(s.mem.HeapAlloc) },
	},
	{
		desc: metrics.MustNewDesc("go_heap_objects", "Number of allocated heap objects.", metrics.KindGauge),
		read: func(s *snapshot) float64 { return float64(s.mem.HeapObjects) },
	},
	{
		desc: metrics.MustNewDesc("go_heap_sys_bytes", "Bytes of heap memory obtained from the OS.", metrics.KindGauge),
		read: func(s *snapshot) float64 { return float64(s.mem.HeapSys) },
	},
	{
		desc: metrics.MustNewDesc("go_gc_pause_seconds_total", "Total stop-the-world GC pause time.", metrics.KindCounter),
		read: func(s *snapshot) float64 { return float64(s.mem.PauseTotalNs) / 1e9 },
	},
	{
		desc: metrics.MustNewDesc("go_gc_cycles_total", "Number of completed GC cycles.", metrics.KindCounter),
		read: func(s *snapshot) float64 { return float64(s.mem.NumGC) },
	},
	{
		desc: metrics.MustNewDesc("go_mallocs_total", "Cumulative count of heap objects allocated.", metrics.KindCounter),
		read: func(s *snapshot) float64 { return float64(s.mem.Mallocs) },
	},
	{
		desc: metrics.MustNewDesc("go_frees_total", "Cumulative count of heap objects freed.", metrics.KindCounter),
		read: func(s *snapshot) float64 { return float64(s.mem.Frees) },
	},
}

func New() *Collector {
	return &Collector{}
}

// Collector implements metrics.Collector over the runtime's memory and
// scheduler statistics. All families are zero-label.
type Collector struct {
	metrics.Base

	mu   sync.Mutex
	snap snapshot
}

func (c *Collector) Describe(_ context.Context, emit func(*metrics.Desc) error) error {
	for _, fam := range families {
		if err := emit(fam.desc); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) Collect(_ context.Context, desc *metrics.Desc, emit func(metrics.Sample) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// one stats snapshot per pass, taken when the first described family
	// is collected
	if desc == families[0].desc {
		c.refresh()
	}

	for _, fam := range families {
		if fam.desc == desc {
			return emit(metrics.Sample{Value: fam.read(&c.snap)})
		}
	}
	return fmt.Errorf("%w: %s", metrics.ErrUnknownMetric, desc.Name())
}

func (c *Collector) Cleanup(context.Context) {}

func (c *Collector) refresh() {
	runtime.ReadMemStats(&c.snap.mem)
	c.snap.goroutines = runtime.NumGoroutine()
	c.snap.threads = pprof.Lookup("threadcreate").Count()
}
