// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/apex/log"
)

// lockRetryInterval is how often a blocked caller re-attempts the flock.
const lockRetryInterval = 10 * time.Millisecond

// withKeyLock runs body while holding an exclusive advisory flock(2) on
// <root>/.locks/<md5(key)>.lock. The lock serializes staging/publish across
// OS processes as well as goroutines (each caller opens its own descriptor,
// and flock locks belong to the open file description). Callers for
// different keys use different lock files and never block each other.
//
// Acquisition is non-blocking attempts polled every lockRetryInterval until
// timeout; on expiry ErrLockTimeout is returned and body is never invoked.
// The lock is released on every exit path.
func withKeyLock(root, key string, timeout time.Duration, body func() error) error {
	lockDir := filepath.Join(root, lockDirName)
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(lockDir, encodeKey(key)+".lock")
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		flockErr := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if flockErr == nil {
			break
		}
		if !errors.Is(flockErr, syscall.EWOULDBLOCK) && !errors.Is(flockErr, syscall.EINTR) {
			_ = file.Close()
			return fmt.Errorf("flock %s: %w", lockPath, flockErr)
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return fmt.Errorf("%w: %s held for more than %s", ErrLockTimeout, key, timeout)
		}
		time.Sleep(lockRetryInterval)
	}

	defer func() {
		if unlockErr := syscall.Flock(int(file.Fd()), syscall.LOCK_UN); unlockErr != nil {
			log.Warnf("unlock %s: %v", lockPath, unlockErr)
		}
		_ = file.Close()
	}()

	return body()
}
