// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	unorm "golang.org/x/text/unicode/norm"

	"github.com/ManuGH/epg365/internal/catalog"
)

// channelAliases maps provider ids that share a canonical channel.
// 805 (ČT art) broadcasts on the ČT :D slot.
var channelAliases = map[string]string{
	"805": "804",
}

// CanonicalChannelID resolves provider id aliases.
func CanonicalChannelID(id string) string {
	if canonical, ok := channelAliases[id]; ok {
		return canonical
	}
	return id
}

// CanonicalChannels rewrites aliased ids to their canonical id and keeps one
// entry per canonical id. The canonical channel's own name and logo win over
// an alias seen earlier in the list.
func CanonicalChannels(channels []catalog.Channel) []catalog.Channel {
	out := make([]catalog.Channel, 0, len(channels))
	index := make(map[string]int, len(channels))
	for _, ch := range channels {
		canonical := CanonicalChannelID(ch.ID)
		if i, seen := index[canonical]; seen {
			if ch.ID == canonical {
				out[i] = ch
			}
			continue
		}
		index[canonical] = len(out)
		ch.ID = canonical
		out = append(out, ch)
	}
	return out
}

// ChannelID builds the XMLTV channel id: the provider id joined with a slug
// of the display name.
func ChannelID(id, name string) string {
	return id + "-" + slug(name)
}

var slugReplacer = strings.NewReplacer("+", "plus")

// slug lowercases, strips diacritics, turns whitespace and periods into
// hyphens and drops the remaining punctuation.
func slug(name string) string {
	s := strings.ToLower(stripDiacritics(name))
	s = slugReplacer.Replace(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '.':
			b.WriteByte('-')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripDiacritics decomposes s, drops combining marks and recomposes it.
func stripDiacritics(s string) string {
	t := transform.Chain(unorm.NFD, runes.Remove(runes.In(unicode.Mn)), unorm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
