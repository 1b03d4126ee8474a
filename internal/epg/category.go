// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"maps"
	"slices"
	"strings"
)

// NewsMarker is the listing category code of news programmes.
const NewsMarker = "Z"

// News is the category pair added for listings carrying NewsMarker.
var News = [2]string{"Zprávy", "News / Current affairs"}

var categories = map[string]string{
	"Dětem":    "Children's / Youth programmes",
	"Dokument": "Documentary",
	"Film":     "Movie / Drama",
	"Sport":    "Sports",
	"Zábava":   "Show / Game show",
	"Zprávy":   "News / Current affairs",
}

const (
	genreAdventure = "Adventure / Western / War"
	genreComedy    = "Comedy"
	genreSerious   = "Serious / Classical / Religious / Historical movie / Drama"
	genreRomance   = "Romance"
	genreSoap      = "Soap / Melodrama / Folkloric"
	genreAdult     = "Adult movie / Drama"
	genreCartoons  = "Cartoons / Puppets"
	genreSciFi     = "Science fiction / Fantasy / Horror"
	genreThriller  = "Detective / Thriller"
)

var genres = map[string]string{
	"dobrodružný":   genreAdventure,
	"western":       genreAdventure,
	"válečný":       genreAdventure,
	"komedie":       genreComedy,
	"historický":    genreSerious,
	"drama":         genreSerious,
	"psychologický": genreSerious,
	"romantický":    genreRomance,
	"rodinný":       genreSoap,
	"erotický":      genreAdult,
	"pohádka":       genreCartoons,
	"sci-fi":        genreSciFi,
	"fantasy":       genreSciFi,
	"horor":         genreSciFi,
	"krimi":         genreThriller,
	"mysteriozní":   genreThriller,
	"thriller":      genreThriller,
}

// MapCategory returns the English label of a Czech description category.
func MapCategory(cz string) (string, bool) {
	en, ok := categories[cz]
	return en, ok
}

// MapGenre returns the English genre cluster of a Czech genre tag.
func MapGenre(cz string) (string, bool) {
	en, ok := genres[strings.ToLower(cz)]
	return en, ok
}

// CategoryKeys lists the mapped categories in sorted order.
func CategoryKeys() []string { return slices.Sorted(maps.Keys(categories)) }

// GenreKeys lists the mapped genre tags in sorted order.
func GenreKeys() []string { return slices.Sorted(maps.Keys(genres)) }
