// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/metricore/metricore/pkg/famfilter"
)

type config struct {
	UpdateEvery int              `yaml:"update_every"`
	Workers     int              `yaml:"workers"`
	LogLevel    string           `yaml:"log_level"`
	Filter      famfilter.Config `yaml:"filter"`
}

func defaultConfig() config {
	return config{
		UpdateEvery: 2,
		Workers:     4,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file '%s': %w", path, err)
	}

	if cfg.UpdateEvery <= 0 {
		cfg.UpdateEvery = defaultConfig().UpdateEvery
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultConfig().Workers
	}

	return cfg, nil
}
