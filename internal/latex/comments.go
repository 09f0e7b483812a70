// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package latex

import "strings"

// StripComments removes LaTeX comments: lines that are pure comments are
// dropped entirely, and an unescaped % cuts the rest of its line. Escaped
// percents (\%) survive.
func StripComments(text string) string {
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "%") {
			continue
		}

		var cleaned strings.Builder
		inCommand := false
	scan:
		for _, ch := range line {
			switch {
			case ch == '\\':
				inCommand = true
				cleaned.WriteRune(ch)
			case inCommand:
				inCommand = false
				cleaned.WriteRune(ch)
			case ch == '%':
				break scan
			default:
				cleaned.WriteRune(ch)
			}
		}
		result = append(result, strings.TrimRight(cleaned.String(), " \t"))
	}
	return strings.Join(result, "\n")
}
