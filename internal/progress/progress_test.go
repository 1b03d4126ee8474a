// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForWriter_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := ForWriter(&buf)
	assert.IsType(t, Nop{}, r)
	assert.False(t, IsTerminal(&buf))
}

func TestBar_Renders(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)

	// no-ops before Start
	b.Step("ignored")
	b.Finish()
	assert.Empty(t, buf.String())

	b.Start("Updating guide", 2)
	b.Step("ČT1")
	b.Step("Jednotka")
	b.Finish()

	out := buf.String()
	assert.Contains(t, out, "Updating guide")
	assert.Contains(t, out, "2/2")
}
