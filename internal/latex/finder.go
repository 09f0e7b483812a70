// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

// ErrNoMainFile is returned when no top-level .tex file contains a
// \documentclass declaration.
var ErrNoMainFile = errors.New("main .tex file not found")

// FindMainFile returns the name of the main document in dir: the longest
// top-level .tex file containing \documentclass. Shorter candidates are
// typically conference templates or supplements, not the manuscript.
func FindMainFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var mainFile string
	maxLines := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".tex") {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(dir, e.Name()))
		if readErr != nil {
			log.Warnf("could not read %s: %v", e.Name(), readErr)
			continue
		}
		if !bytes.Contains(data, []byte(`\documentclass`)) {
			continue
		}
		if lines := bytes.Count(data, []byte{'\n'}) + 1; lines > maxLines {
			mainFile = e.Name()
			maxLines = lines
		}
	}

	if mainFile == "" {
		return "", ErrNoMainFile
	}
	return mainFile, nil
}
