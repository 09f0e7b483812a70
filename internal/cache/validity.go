// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MarkerName is the sentinel file written into an entry as the very last
// step before publish. Entries written by the old ".a2p-done" convention are
// deliberately not recognized; they validate false and get repaired.
const MarkerName = ".a2p-complete"

// IsValid reports whether entryDir is a usable cache entry: it exists, is a
// directory, carries the completion marker, and holds at least one .tex
// file somewhere in its tree. It never touches the network, so it is cheap
// enough for every cache-hit path.
func IsValid(entryDir string) bool {
	info, err := os.Stat(entryDir)
	if err != nil || !info.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(entryDir, MarkerName)); err != nil {
		return false
	}
	return hasPayload(entryDir)
}

// hasPayload walks dir and reports whether any regular .tex file exists.
// The walk stops at the first hit.
func hasPayload(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree; keep looking elsewhere.
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tex") {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}
