// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"crypto/md5"
	"encoding/hex"
)

// encodeKey hashes k with MD5 and returns the hex string. Keys may contain
// characters that are awkward in filenames (old-style arXiv ids have a
// slash); the hash is fixed-length and filesystem-safe everywhere.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
