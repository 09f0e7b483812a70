// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/arxivtools/a2p/internal/arxiv"
	"github.com/arxivtools/a2p/internal/cache"
	"github.com/arxivtools/a2p/internal/meta"
)

// GetMeta retrieves the Meta stashed in the command metadata by the builder.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ArxivID returns the single required positional argument.
func ArxivID(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.New("exactly one arXiv id is required (do not include the version, e.g. v1)")
	}
	return cmd.Args().First(), nil
}

// BuildCache constructs the download cache for this invocation, wiring the
// arXiv client in as the probe and fetch functions.
func BuildCache(cmd *cli.Command) (*cache.Cache, error) {
	client := arxiv.NewClient()
	c, err := cache.New(cmd.String("cache-dir"), client.SourceAvailable, client.FetchSource)
	if err != nil {
		return nil, err
	}
	log.Debugf("cache root: %s", c.Root())
	return c, nil
}

// CacheOptions maps the common flags onto cache options.
func CacheOptions(cmd *cli.Command) cache.Options {
	timeout := cmd.Duration("lock-timeout")
	if timeout <= 0 {
		timeout = cache.DefaultLockTimeout
	}
	return cache.Options{
		UseCache:    cmd.Bool("use-cache"),
		RepairStale: cmd.Bool("repair"),
		LockTimeout: timeout,
	}
}
