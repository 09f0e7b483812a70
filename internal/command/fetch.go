// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/arxivtools/a2p/internal/meta"
)

// FetchCommandAction is the action handler for the "fetch" subcommand. It
// ensures the paper's source is cached and prints the entry directory, for
// callers that want the tree without the flattened document.
func FetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	id, err := ArxivID(cmd)
	if err != nil {
		return err
	}

	c, err := BuildCache(cmd)
	if err != nil {
		return err
	}

	if !c.Ensure(ctx, id, CacheOptions(cmd)) {
		return fmt.Errorf("failed to fetch source for %s", id)
	}

	fmt.Println(c.EntryDir(id))
	return nil
}

// FetchCommandBuilder constructs the cli.Command definition for the "fetch"
// command.
func FetchCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "download a paper's source into the cache",
		UsageText: `a2p fetch <arxiv-id> [options]`,
		Flags:     NewGlobalFlags("fetch"),
		Metadata:  map[string]interface{}{"meta": m},
		Action:    FetchCommandAction,
	}
}
