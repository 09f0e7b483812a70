// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

// Package output writes the final document wherever the user asked for it.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
)

// Spit writes content to target. An empty target or "-" means stdout; any
// other value is an output file written atomically so a half-flattened
// document never lands on disk.
func Spit(target, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if target == "" || target == "-" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}

	if err := atomic.WriteFile(target, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	log.Debugf("wrote %s (%s)", target, humanize.Bytes(uint64(len(content))))
	return nil
}
