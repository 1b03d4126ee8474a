// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package normalize cleans provider text: show titles, whitespace and
// invisible characters.
package normalize

import (
	"strings"
	"unicode"
)

// Space trims Unicode whitespace and invisible edge characters and collapses
// inner whitespace runs to a single space.
func Space(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) ||
			r == '\u200B' || // Zero Width Space
			r == '\u200C' || // Zero Width Non-Joiner
			r == '\u200D' || // Zero Width Joiner
			r == '\uFEFF' // Zero Width Non-Breaking Space (BOM)
	})
	return strings.Join(strings.Fields(s), " ")
}
