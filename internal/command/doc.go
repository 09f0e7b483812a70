// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

// Package command wires the a2p CLI: the prompt/fetch/check subcommands,
// their flags (with config-file fallbacks), and the glue that binds the
// arXiv client to the download cache.
package command
