// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package latex

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/apex/log"
)

var inputRe = regexp.MustCompile(`\\(?:input|include)\{([^}]+)\}`)

// Flatten combines the document rooted at mainFile into a single string,
// replacing every \input and \include directive with the referenced file's
// (recursively flattened) contents. Each file is inlined at most once;
// repeats and cycles flatten to nothing. Unreadable references are logged
// and dropped rather than failing the whole document.
func Flatten(dir, mainFile string) string {
	processed := make(map[string]bool)
	return flattenFile(dir, filepath.Join(dir, mainFile), processed)
}

func flattenFile(dir, path string, processed map[string]bool) string {
	if processed[path] {
		return ""
	}
	processed[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("error processing file %s: %v", path, err)
		return ""
	}

	return inputRe.ReplaceAllStringFunc(string(data), func(m string) string {
		name := inputRe.FindStringSubmatch(m)[1]
		if !strings.HasSuffix(name, ".tex") {
			name += ".tex"
		}
		return flattenFile(dir, filepath.Join(dir, name), processed)
	})
}
