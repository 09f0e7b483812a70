// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFindMainFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "template.tex", "\\documentclass{ieee}\n")
	writeFile(t, dir, "main.tex", "\\documentclass{article}\nline\nline\nline\n")
	writeFile(t, dir, "notes.tex", "no class here\n")
	writeFile(t, dir, "data.bib", "@article{}\n")

	// The longest candidate with \documentclass wins.
	name, err := FindMainFile(dir)
	require.NoError(t, err)
	assert.Equal(t, "main.tex", name)
}

func TestFindMainFileNone(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.tex", "just a fragment\n")

	_, err := FindMainFile(dir)
	assert.ErrorIs(t, err, ErrNoMainFile)
}

func TestFlattenResolvesInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.tex", "\\documentclass{article}\n\\input{intro}\n\\include{body.tex}\n\\end{document}\n")
	writeFile(t, dir, "intro.tex", "INTRO\n")
	writeFile(t, dir, "body.tex", "BODY \\input{intro}\n")

	out := Flatten(dir, "main.tex")
	assert.Contains(t, out, "INTRO")
	assert.Contains(t, out, "BODY")
	// intro.tex was already inlined once; the second reference is dropped.
	assert.Equal(t, 1, strings.Count(out, "INTRO"))
	assert.NotContains(t, out, `\input{`)
}

func TestFlattenMissingInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.tex", "start\n\\input{ghost}\nend\n")

	out := Flatten(dir, "main.tex")
	assert.Contains(t, out, "start")
	assert.Contains(t, out, "end")
	assert.NotContains(t, out, "ghost")
}

func TestStripComments(t *testing.T) {
	in := strings.Join([]string{
		`\documentclass{article} % preamble`,
		`% whole line comment`,
		`100\% escaped stays`,
		`text`,
	}, "\n")

	out := StripComments(in)
	assert.Equal(t, strings.Join([]string{
		`\documentclass{article}`,
		`100\% escaped stays`,
		`text`,
	}, "\n"), out)
}
