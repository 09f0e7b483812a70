// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// rename is swappable so tests can fail the publish rename sequence.
var rename = os.Rename

// run executes one staging/publish sequence for key with the per-key lock
// already held: check the existing entry, fetch, extract, validate, publish.
func (c *Cache) run(ctx context.Context, key string, opts Options) error {
	entryDir := c.EntryDir(key)

	// CHECK_EXISTING
	if _, err := os.Stat(entryDir); err == nil && opts.UseCache {
		if IsValid(entryDir) {
			log.Debugf("cache hit for %s at %s", key, entryDir)
			return nil
		}
		if !opts.RepairStale {
			return fmt.Errorf("%w: %s (rerun with repair enabled to rebuild)", ErrStaleEntry, entryDir)
		}
		log.Infof("cache entry for %s is stale, rebuilding", key)
	}

	return c.refresh(ctx, key, entryDir)
}

// refresh builds a fresh entry in staging and publishes it over whatever is
// at entryDir. The staging directory is removed on every path out.
func (c *Cache) refresh(ctx context.Context, key, entryDir string) error {
	// FETCH
	available, err := c.probe(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: probe: %v", ErrUnavailable, err)
	}
	if !available {
		return fmt.Errorf("%w: %s", ErrUnavailable, key)
	}

	data, err := c.fetch(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	log.Debugf("fetched %s (%s)", key, humanize.Bytes(uint64(len(data))))

	// The uuid suffix makes collisions with concurrent stagings and with
	// leftovers from crashed runs structurally impossible.
	stagingName := strings.ReplaceAll(key, "/", "_") + "." + uuid.NewString()
	staging := filepath.Join(c.root, stagingDirName, stagingName)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer removeBestEffort(staging)

	// EXTRACT
	tree := filepath.Join(staging, "tree")
	if err := os.MkdirAll(tree, 0o755); err != nil {
		return fmt.Errorf("create staging tree: %w", err)
	}
	if err := extractArchive(data, tree); err != nil {
		return err
	}

	// POST_VALIDATE. The marker is written only after the payload check, and
	// atomically, so a crash can never leave a marked-but-empty tree.
	if !hasPayload(tree) {
		return fmt.Errorf("%w: %s", ErrEmptyArchive, key)
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := atomic.WriteFile(filepath.Join(tree, MarkerName), bytes.NewReader([]byte(stamp))); err != nil {
		return fmt.Errorf("write completion marker: %w", err)
	}

	// PUBLISH
	if err := c.publish(tree, entryDir); err != nil {
		return err
	}
	log.Infof("published %s to %s", key, entryDir)
	return nil
}

// publish renames the staged tree into the canonical entryDir. A prior
// entry is first renamed aside to a unique backup and restored if the swap
// fails. The canonical path is never a partially written tree; at worst it
// is briefly absent between the two renames.
func (c *Cache) publish(staged, entryDir string) error {
	if err := os.MkdirAll(filepath.Dir(entryDir), 0o755); err != nil {
		return &PublishError{Err: fmt.Errorf("create entry parent: %w", err)}
	}

	var backup string
	if _, err := os.Stat(entryDir); err == nil {
		backup = entryDir + ".old." + uuid.NewString()
		if err := rename(entryDir, backup); err != nil {
			return &PublishError{Err: fmt.Errorf("displace previous entry: %w", err)}
		}
	}

	if err := rename(staged, entryDir); err != nil {
		pubErr := &PublishError{Err: fmt.Errorf("swap in staged tree: %w", err)}
		if backup != "" {
			if rbErr := rename(backup, entryDir); rbErr != nil {
				pubErr.RollbackErr = fmt.Errorf("restore %s: %w", backup, rbErr)
			}
		}
		return pubErr
	}

	if backup != "" {
		// Leftover backups are cosmetic debt, not a correctness problem.
		if err := os.RemoveAll(backup); err != nil {
			log.Warnf("remove backup %s: %v", backup, err)
		}
	}
	return nil
}

// removeBestEffort deletes dir and everything under it, logging rather than
// failing. CLEANUP must never mask the pipeline's own result.
func removeBestEffort(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		log.Warnf("cleanup %s: %v", dir, err)
	}
}
