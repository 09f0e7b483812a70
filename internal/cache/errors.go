// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by Ensure. All of them are recovered at the facade
// and turned into a false return plus a log record; none escapes as a panic.
var (
	// ErrUnavailable means the remote reported no usable source archive for
	// the key. Not retried automatically.
	ErrUnavailable = errors.New("source not available")

	// ErrTransferFailed is a network or I/O error during the fetch itself.
	ErrTransferFailed = errors.New("transfer failed")

	// ErrUnsafeArchive means the archive contained an absolute path, a parent
	// traversal, or a link entry. Nothing is extracted in that case.
	ErrUnsafeArchive = errors.New("unsafe archive entry")

	// ErrEmptyArchive means extraction succeeded but no .tex payload was
	// found, so the tree must not be published.
	ErrEmptyArchive = errors.New("archive contains no tex files")

	// ErrStaleEntry means an existing entry failed validation and the caller
	// did not allow a repair.
	ErrStaleEntry = errors.New("stale cache entry")

	// ErrLockTimeout means another operation held the per-key lock for longer
	// than the caller was willing to wait.
	ErrLockTimeout = errors.New("lock timeout")
)

// PublishError reports a failed rename sequence during publish. RollbackErr
// is nil when the previous entry was left (or put back) intact; non-nil means
// the rollback also failed and the canonical name is now contested, which
// needs operator attention.
type PublishError struct {
	Err         error
	RollbackErr error
}

func (e *PublishError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("publish failed (%v) and rollback failed (%v)", e.Err, e.RollbackErr)
	}
	return fmt.Sprintf("publish failed, previous entry intact: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// RolledBack reports whether the previous entry survived the failure.
func (e *PublishError) RolledBack() bool { return e.RollbackErr == nil }
