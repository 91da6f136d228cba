// SPDX-License-Identifier: GPL-3.0-or-later

// metricore-demo generates synthetic instrumentation load and exports the
// resulting families through the log sink. It exercises every metric kind,
// the runtime collector, family filtering and the export circuit breaker.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/metricore/metricore/collectors/goruntime"
	"github.com/metricore/metricore/export"
	"github.com/metricore/metricore/logger"
	"github.com/metricore/metricore/metrics"
	"github.com/metricore/metricore/pkg/buildinfo"
	"github.com/metricore/metricore/pkg/famfilter"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("metricore-demo, version: %s\n", buildinfo.Version)
		return
	}

	cfg, err := loadConfig(opts.ConfFile)
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}

	if cfg.LogLevel != "" {
		logger.Level.SetByName(cfg.LogLevel)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	filter, err := famfilter.New(cfg.Filter)
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}

	reg := metrics.NewRegistry("demo")
	reg.MustRegister(goruntime.New())
	w := newWorkload(reg)

	e := export.New(reg, export.NewLogSink())
	e.Every = time.Duration(cfg.UpdateEvery) * time.Second
	e.Filter = filter

	e.Infof("demo: version=%s, export every %s, workers %d", buildinfo.Version, e.Every, cfg.Workers)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := pool.New().WithMaxGoroutines(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		p.Go(func() { w.run(ctx) })
	}

	e.Run(ctx)
	p.Wait()
}

func parseCLI() *Option {
	opt, err := Parse(os.Args)
	if err != nil {
		if IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}
