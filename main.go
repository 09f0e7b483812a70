// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arxivtools/a2p/internal/command"
	mylog "github.com/arxivtools/a2p/internal/log"
	"github.com/arxivtools/a2p/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments keeps the classic single-argument invocation working:
// `a2p 2303.08774` is rewritten to `a2p prompt 2303.08774`.
func mangleArguments(args []string) []string {
	known := map[string]bool{
		"prompt": true, "fetch": true, "check": true, "completion": true,
	}
	if known[args[1]] || strings.HasPrefix(args[1], "-") {
		return args
	}

	mangled := make([]string, 0, len(args)+1)
	mangled = append(mangled, args[0], "prompt")
	mangled = append(mangled, args[1:]...)
	return mangled
}
