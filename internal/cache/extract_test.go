// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tarMember describes one member for the test archive builders.
type tarMember struct {
	name     string
	body     string
	typeflag byte
	linkname string
}

func buildTar(t *testing.T, members []tarMember) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		flag := m.typeflag
		if flag == 0 {
			flag = tar.TypeReg
		}
		hdr := &tar.Header{
			Name:     m.name,
			Mode:     0o644,
			Size:     int64(len(m.body)),
			Typeflag: flag,
			Linkname: m.linkname,
		}
		if flag == tar.TypeDir {
			hdr.Mode = 0o755
			hdr.Size = 0
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if flag == tar.TypeReg {
			_, err := tw.Write([]byte(m.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func buildTarGz(t *testing.T, members []tarMember) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(buildTar(t, members))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// texArchive is the canonical happy-path archive used across the cache tests.
func texArchive(t *testing.T) []byte {
	return buildTarGz(t, []tarMember{
		{name: "main.tex", body: "\\documentclass{article}\n\\begin{document}hi\\end{document}\n"},
		{name: "sections/", typeflag: tar.TypeDir},
		{name: "sections/intro.tex", body: "\\section{Intro}\n"},
	})
}

func TestExtractArchiveGzip(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, extractArchive(texArchive(t), dest))

	data, err := os.ReadFile(filepath.Join(dest, "main.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `\documentclass`)

	_, err = os.Stat(filepath.Join(dest, "sections", "intro.tex"))
	assert.NoError(t, err)
}

func TestExtractArchivePlainTar(t *testing.T) {
	dest := t.TempDir()
	plain := buildTar(t, []tarMember{{name: "paper.tex", body: `\documentclass{book}`}})
	require.NoError(t, extractArchive(plain, dest))

	_, err := os.Stat(filepath.Join(dest, "paper.tex"))
	assert.NoError(t, err)
}

func TestExtractArchiveRejectsUnsafeMembers(t *testing.T) {
	tests := []struct {
		name   string
		member tarMember
	}{
		{"parent traversal", tarMember{name: "../evil.tex", body: "x"}},
		{"nested traversal", tarMember{name: "figs/../../evil.tex", body: "x"}},
		{"absolute path", tarMember{name: "/etc/evil.tex", body: "x"}},
		{"symlink", tarMember{name: "link.tex", typeflag: tar.TypeSymlink, linkname: "/etc/passwd"}},
		{"hardlink", tarMember{name: "hard.tex", typeflag: tar.TypeLink, linkname: "main.tex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := t.TempDir()
			// A benign member first proves the pre-scan runs before any write.
			data := buildTarGz(t, []tarMember{
				{name: "ok.tex", body: `\documentclass{article}`},
				tt.member,
			})

			err := extractArchive(data, dest)
			require.ErrorIs(t, err, ErrUnsafeArchive)

			// Nothing at all may have been extracted.
			entries, readErr := os.ReadDir(dest)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "partial extraction left behind")
		})
	}
}

func TestExtractArchiveCorruptGzip(t *testing.T) {
	dest := t.TempDir()
	err := extractArchive([]byte{0x1f, 0x8b, 0xff, 0x00}, dest)
	assert.Error(t, err)
}
