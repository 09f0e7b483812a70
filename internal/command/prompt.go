// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/arxivtools/a2p/internal/latex"
	"github.com/arxivtools/a2p/internal/meta"
	"github.com/arxivtools/a2p/internal/output"
)

// PromptCommandAction is the action handler for the "prompt" subcommand. It
// ensures the paper's source is cached, flattens the LaTeX tree into a
// single document, and writes it to stdout or --output.
func PromptCommandAction(ctx context.Context, cmd *cli.Command) error {
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
	dir := c.EntryDir(id)

	mainFile, err := latex.FindMainFile(dir)
	if err != nil {
		return err
	}
	log.Debugf("main file for %s: %s", id, mainFile)

	content := latex.Flatten(dir, mainFile)
	if cmd.Bool("no-comments") {
		content = latex.StripComments(content)
	}

	return output.Spit(cmd.String("output"), content)
}

// PromptCommandBuilder constructs the cli.Command definition for the
// "prompt" command, wiring flags, metadata, and the action handler.
func PromptCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "prompt",
		Usage:     "download a paper's LaTeX source and print it flattened",
		UsageText: `a2p prompt <arxiv-id> [options]`,
		Flags: append(NewGlobalFlags("prompt"),
			&cli.BoolFlag{
				Name:  "no-comments",
				Usage: "remove LaTeX comments from the output",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the document to a file instead of stdout",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
		),
		Metadata: map[string]interface{}{"meta": m},
		Action:   PromptCommandAction,
	}
}
