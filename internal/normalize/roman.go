// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrRoman is returned for strings that are not a canonical Roman numeral
// and for integers outside 1..3999.
var ErrRoman = errors.New("invalid roman numeral")

var canonicalRoman = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// IsRoman reports whether s is a non-empty canonical Roman numeral.
func IsRoman(s string) bool {
	return s != "" && canonicalRoman.MatchString(s)
}

// RomanToInt decodes a canonical Roman numeral, honouring the subtractive
// pairs IV, IX, XL, XC, CD and CM.
func RomanToInt(s string) (int, error) {
	if !IsRoman(s) {
		return 0, fmt.Errorf("%w: %q", ErrRoman, s)
	}
	total := 0
	for i := 0; i < len(s); i++ {
		v := romanValues[s[i]]
		if i+1 < len(s) && v < romanValues[s[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	return total, nil
}

// IntToRoman encodes n in 1..3999.
func IntToRoman(n int) (string, error) {
	if n < 1 || n > 3999 {
		return "", fmt.Errorf("%w: %d out of range", ErrRoman, n)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String(), nil
}
