// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/arxivtools/a2p/internal/config"
	"github.com/arxivtools/a2p/internal/meta"
	"github.com/urfave/cli/v3"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// The arg[1] immediately following the binary (arg[0]) is the a2p
	// subcommand and also the namespace key used when retrieving config
	// values. arg[1] could be -h/--help, so ignore it if it appears to be a
	// flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load()
	cfg.Namespace = ns
	config.Config.Namespace = ns

	m := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:  "a2p",
		Usage: "download and flatten LaTeX source from arXiv papers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "a2p version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		PromptCommandBuilder(m),
		FetchCommandBuilder(m),
		CheckCommandBuilder(m),
		CompletionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
