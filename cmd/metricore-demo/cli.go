// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/jessevdk/go-flags"
)

// Option defines command line options.
type Option struct {
	ConfFile string `short:"c" long:"config" description:"demo config file to read"`
	Debug    bool   `short:"d" long:"debug" description:"debug mode"`
	Version  bool   `short:"v" long:"version" description:"display the version and exit"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "metricore-demo"
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
