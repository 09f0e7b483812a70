// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/arxivtools/a2p/internal/cache"
	"github.com/arxivtools/a2p/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var cfg config.Type

// NewGlobalFlags builds the flags shared by the subcommands that touch the
// cache. params[0] is the subcommand name, used as the config namespace so
// e.g. "prompt.cache_dir" overrides "cache_dir".
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	// Durations come through config.GetDuration rather than an altsrc chain
	// so that bare integers in a2p.yaml still read as seconds.
	lockTimeout, _ := config.GetDuration("lock_timeout", cache.DefaultLockTimeout)

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache-dir",
			Aliases: []string{"d"},
			Usage:   "directory for downloaded sources",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("A2P_CACHE_DIR"),
				yaml.YAML(params[0]+"."+"cache_dir", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache_dir", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "use-cache",
			Aliases: []string{"C"},
			Usage:   "serve an existing valid entry without re-downloading",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"use_cache", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("use_cache", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.BoolWithInverseFlag{
			Name:  "repair",
			Usage: "rebuild a cache entry that fails validation",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"repair", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("repair", altsrc.StringSourcer(cfg.Source)),
			),
			Value: true,
		},
		&cli.DurationFlag{
			Name:  "lock-timeout",
			Usage: "how long to wait for a concurrent download of the same paper",
			Value: lockTimeout,
			Validator: func(value time.Duration) error {
				return FlagValidators(value, TimeoutValidator)
			},
		},
	}
	return
}
