// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

// Package latex locates the main document inside an extracted arXiv source
// tree, flattens \input/\include directives into one string, and optionally
// strips comments. It operates purely on a local directory handed to it by
// the cache layer.
package latex
