// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
)

const (
	lockDirName    = ".locks"
	stagingDirName = ".staging"
)

// DefaultLockTimeout bounds how long Ensure waits for a concurrent
// staging/publish on the same key to finish.
const DefaultLockTimeout = 30 * time.Second

// ProbeFunc asks the remote whether a source archive exists for key without
// transferring it. It is called once per fetch attempt.
type ProbeFunc func(ctx context.Context, key string) (bool, error)

// FetchFunc downloads the raw archive bytes for key.
type FetchFunc func(ctx context.Context, key string) ([]byte, error)

// Options control a single Ensure call.
type Options struct {
	// UseCache serves an existing valid entry without any network traffic.
	// When false the entry is always re-fetched.
	UseCache bool

	// RepairStale allows Ensure to rebuild an existing entry that fails
	// validation. When false a stale entry is an error, never a silent
	// rebuild.
	RepairStale bool

	// LockTimeout bounds the wait for the per-key lock. Zero means
	// DefaultLockTimeout.
	LockTimeout time.Duration
}

// Cache is the facade over the download cache rooted at one directory.
// A single instance is safe for concurrent use, as are multiple instances
// (in the same or different processes) sharing the same root.
type Cache struct {
	root  string
	probe ProbeFunc
	fetch FetchFunc
}

// DefaultDir resolves the base cache directory.
// Precedence:
//  1. A2P_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/a2p
//
// Returns ("", false) if a base cannot be resolved.
func DefaultDir() (string, bool) {
	if c, ok := os.LookupEnv("A2P_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "a2p"), true
	}
	return "", false
}

// New builds a Cache rooted at root, creating the root and its lock/staging
// subdirectories if absent. An empty root falls back to DefaultDir.
func New(root string, probe ProbeFunc, fetch FetchFunc) (*Cache, error) {
	if root == "" {
		base, ok := DefaultDir()
		if !ok {
			return nil, errors.New("no cache directory could be resolved")
		}
		root = base
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve cache root: %w", err)
	}

	for _, dir := range []string{abs, filepath.Join(abs, lockDirName), filepath.Join(abs, stagingDirName)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	return &Cache{root: abs, probe: probe, fetch: fetch}, nil
}

// Root returns the absolute cache root.
func (c *Cache) Root() string { return c.root }

// EntryDir returns the canonical directory for key. The entry may or may
// not exist or be valid; see IsValid.
func (c *Cache) EntryDir(key string) string {
	return filepath.Join(c.root, filepath.FromSlash(key))
}

// EntryPath resolves the canonical entry directory for key under root
// without constructing a Cache, so it creates nothing on disk. An empty
// root falls back to DefaultDir.
func EntryPath(root, key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	if root == "" {
		base, ok := DefaultDir()
		if !ok {
			return "", errors.New("no cache directory could be resolved")
		}
		root = base
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve cache root: %w", err)
	}
	return filepath.Join(abs, filepath.FromSlash(key)), nil
}

// Ensure makes the entry for key present and valid, downloading and
// publishing a fresh copy when needed. It returns true only when the entry
// is usable afterwards; every failure is logged and returns false rather
// than propagating. A failed Ensure never damages a pre-existing valid
// entry.
func (c *Cache) Ensure(ctx context.Context, key string, opts Options) bool {
	if err := c.ensure(ctx, key, opts); err != nil {
		var pubErr *PublishError
		if errors.As(err, &pubErr) && !pubErr.RolledBack() {
			log.Errorf("ensure %s needs operator attention: %v", key, err)
		} else {
			log.Errorf("ensure %s: %v", key, err)
		}
		return false
	}
	return true
}

// ensure is the error-carrying form of Ensure.
func (c *Cache) ensure(ctx context.Context, key string, opts Options) error {
	if err := checkKey(key); err != nil {
		return err
	}

	timeout := opts.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}

	return withKeyLock(c.root, key, timeout, func() error {
		return c.run(ctx, key, opts)
	})
}

// checkKey rejects keys that would escape or alias cache-internal paths.
// Slashes are allowed (old-style arXiv ids like "hep-th/9901001" contain
// one) and simply nest the entry one level down.
func checkKey(key string) error {
	if key == "" {
		return errors.New("empty cache key")
	}
	if strings.HasPrefix(key, "/") || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid cache key %q", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("invalid cache key %q", key)
		}
	}
	return nil
}
