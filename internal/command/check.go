// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/arxivtools/a2p/internal/arxiv"
	"github.com/arxivtools/a2p/internal/cache"
	"github.com/arxivtools/a2p/internal/meta"
)

// CheckCommandAction is the action handler for the "check" subcommand. It
// reports whether TeX source is available upstream and whether a valid
// cache entry already exists locally, without downloading anything.
func CheckCommandAction(ctx context.Context, cmd *cli.Command) error {
	id, err := ArxivID(cmd)
	if err != nil {
		return err
	}

	client := arxiv.NewClient()
	available, err := client.SourceAvailable(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("source available: %v\n", available)

	entry, err := cache.EntryPath(cmd.String("cache-dir"), id)
	if err != nil {
		return err
	}
	fmt.Printf("cached: %v\n", cache.IsValid(entry))
	return nil
}

// CheckCommandBuilder constructs the cli.Command definition for the "check"
// command.
func CheckCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "probe source availability and cache state for a paper",
		UsageText: `a2p check <arxiv-id> [options]`,
		Flags:     NewGlobalFlags("check"),
		Metadata:  map[string]interface{}{"meta": m},
		Action:    CheckCommandAction,
	}
}
