// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

var (
	emptyCredits = regexp.MustCompile(`(?m)^[ \t]*<credits(?:></credits>|/>)\n?`)
	emptyRole    = []byte(` role=""`)
)

// Render serializes tv and applies Finalize.
func Render(tv *TV) ([]byte, error) {
	out, err := xml.MarshalIndent(tv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal xmltv: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(xmlHeader) + len(out) + 1)
	buf.WriteString(xmlHeader)
	buf.Write(out)
	buf.WriteByte('\n')
	return Finalize(buf.Bytes()), nil
}

// Finalize is the text pass over a serialized guide: underscores become
// hyphens, empty credits blocks and empty actor role attributes are removed.
func Finalize(doc []byte) []byte {
	doc = bytes.ReplaceAll(doc, []byte("_"), []byte("-"))
	doc = emptyCredits.ReplaceAll(doc, nil)
	return bytes.ReplaceAll(doc, emptyRole, nil)
}
