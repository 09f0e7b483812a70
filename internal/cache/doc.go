// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

// Package cache is the crash-safe, concurrent download cache for arXiv source
// archives. An entry lives at <root>/<key> and is only ever handed out when
// it carries the completion marker and at least one .tex payload file. New
// content is built in an isolated staging directory, validated, and then
// renamed into place under a per-key flock, so readers never observe a
// half-written tree and a failed refresh never destroys a good entry.
package cache
