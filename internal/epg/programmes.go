// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ManuGH/epg365/internal/catalog"
	"github.com/ManuGH/epg365/internal/normalize"
)

var (
	countrySeparator = regexp.MustCompile(`/|,\s`)
	roleEllipsis     = regexp.MustCompile(`\s?/\s(?:\.\.\.|…)`)
)

// formatTimestamp keeps the digits of a provider timestamp and appends the
// fixed UTC offset: "2024-03-09 20:15:00" -> "20240309201500 +0200".
func formatTimestamp(raw, offset string) string {
	return catalog.RefDigits(raw) + " " + offset
}

// buildCategories returns the ordered category list of a programme: the news
// pair, the description category with its English label, then every genre
// with its English cluster. Duplicates are dropped.
func buildCategories(lang, listingCategory string, desc catalog.ShowDescription) []Text {
	var out []Text
	add := func(t Text) {
		for _, existing := range out {
			if existing == t {
				return
			}
		}
		out = append(out, t)
	}

	if listingCategory == NewsMarker {
		add(Text{Lang: lang, Value: News[0]})
		add(Text{Lang: "en", Value: News[1]})
	}
	if desc.Category != "" {
		add(Text{Lang: lang, Value: desc.Category})
		if en, ok := MapCategory(desc.Category); ok {
			add(Text{Lang: "en", Value: en})
		}
	}
	for _, g := range desc.Genres {
		add(Text{Lang: lang, Value: capitalize(g)})
		if en, ok := MapGenre(g); ok {
			add(Text{Lang: "en", Value: en})
		}
	}
	return out
}

func buildCountries(lang, raw string) []Text {
	if raw == "" {
		return nil
	}
	var out []Text
	for _, part := range countrySeparator.Split(raw, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, Text{Lang: lang, Value: part})
		}
	}
	return out
}

func buildCredits(credits []catalog.Credit) Credits {
	var c Credits
	for _, cr := range credits {
		switch cr.Role {
		case catalog.RoleDirector:
			c.Directors = append(c.Directors, cr.Name)
		case catalog.RoleWriter:
			c.Writers = append(c.Writers, cr.Name)
		case catalog.RoleMusic:
			c.Music = append(c.Music, cr.Name)
		case catalog.RoleCamera:
			c.Camera = append(c.Camera, cr.Name)
		case catalog.RoleProducer:
			c.Producers = append(c.Producers, cr.Name)
		case catalog.RoleActor:
			c.Actors = append(c.Actors, Actor{Name: cr.Name, Role: cleanRole(cr.Character)})
		}
	}
	return c
}

// cleanRole strips the " / ..." continuation markers the provider appends to
// character names.
func cleanRole(role string) string {
	return normalize.Space(roleEllipsis.ReplaceAllString(role, ""))
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.Czech).String(s[:size]) + cases.Lower(language.Czech).String(s[size:])
}
