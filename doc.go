// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

// a2p is the main package for the a2p command line tool. It wires the CLI,
// delegates to internal packages, and serves as the entry point.
package main
