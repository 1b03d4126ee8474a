// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoman_RoundTrip(t *testing.T) {
	for n := 1; n <= 3999; n++ {
		s, err := IntToRoman(n)
		require.NoError(t, err)
		got, err := RomanToInt(s)
		require.NoError(t, err, "decode %q", s)
		if got != n {
			t.Fatalf("RomanToInt(IntToRoman(%d)) = %d (%s)", n, got, s)
		}
	}
}

func TestRomanToInt(t *testing.T) {
	tests := map[string]int{
		"I": 1, "II": 2, "III": 3, "IV": 4, "IX": 9, "XL": 40, "XC": 90,
		"CD": 400, "CM": 900, "MCMXCVII": 1997, "MMMCMXCIX": 3999,
	}
	for in, want := range tests {
		got, err := RomanToInt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestRomanToInt_Invalid(t *testing.T) {
	for _, in := range []string{"", "IIII", "IC", "VX", "MMMM", "iii", "A", "XIIV"} {
		_, err := RomanToInt(in)
		assert.ErrorIs(t, err, ErrRoman, in)
	}
}

func TestIntToRoman_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, 4000} {
		_, err := IntToRoman(n)
		assert.ErrorIs(t, err, ErrRoman)
	}
}
