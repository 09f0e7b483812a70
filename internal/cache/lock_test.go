// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithKeyLockSerializes(t *testing.T) {
	root := t.TempDir()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := withKeyLock(root, "2303.08774", 10*time.Second, func() error {
				n := atomic.AddInt32(&inside, 1)
				if n > atomic.LoadInt32(&maxInside) {
					atomic.StoreInt32(&maxInside, n)
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside, "two bodies ran under the same key lock")
}

func TestWithKeyLockTimeout(t *testing.T) {
	root := t.TempDir()

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = withKeyLock(root, "2303.08774", time.Second, func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	start := time.Now()
	err := withKeyLock(root, "2303.08774", 100*time.Millisecond, func() error {
		t.Error("body ran despite lock timeout")
		return nil
	})
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrLockTimeout)
	assert.Less(t, elapsed, time.Second, "timeout did not bound the wait")
}

func TestWithKeyLockDifferentKeys(t *testing.T) {
	root := t.TempDir()

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = withKeyLock(root, "2303.08774", time.Second, func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	// A different key must not block behind the held lock.
	ran := false
	err := withKeyLock(root, "1706.03762", 100*time.Millisecond, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithKeyLockReleasesOnError(t *testing.T) {
	root := t.TempDir()

	err := withKeyLock(root, "2303.08774", time.Second, func() error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	// Lock must be free again immediately.
	err = withKeyLock(root, "2303.08774", 50*time.Millisecond, func() error { return nil })
	assert.NoError(t, err)
}
