// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

// Package arxiv implements the thin HTTP client for arxiv.org: probing the
// format page for TeX source availability and downloading e-print archives.
package arxiv
