// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FilmCategory is the description category that disables episode handling.
const FilmCategory = "film"

var (
	repeatMarker   = regexp.MustCompile(`\(R\)|/R/`)
	premiereMarker = regexp.MustCompile(`\(P\)|/P/`)
	flagMarkers    = regexp.MustCompile(`\(R\)|/R/|\(P\)|/P/`)

	// (N or (N/M) ; N is the 1-based episode, M the episode count
	episodeMarker = regexp.MustCompile(`\((\d+)(?:/(\d+)\))?`)
	// everything from the episode marker to the end of the title
	episodeTail = regexp.MustCompile(`\s\(\d.*$`)
)

// TitleInfo is the structure extracted from a raw show title.
type TitleInfo struct {
	// Title is the display title without episode, series and flag markers.
	Title string
	// Series is the zero-based series number, nil when the title has none.
	Series *int
	// Episode is the zero-based episode index, nil when the title has none.
	Episode *int
	// EpisodeCount is the "/M" suffix or "".
	EpisodeCount string
	// EpisodeNum is the xmltv_ns episode string, "" when absent.
	EpisodeNum string
	Premiere   bool
	Repeat     bool
}

// IsFilm reports whether category is the film marker.
func IsFilm(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), FilmCategory)
}

// Title extracts series and episode structure and the premiere/repeat flags
// from a raw title. Films keep their title untouched apart from flag markers
// and never get an episode number.
func Title(raw, category string) TitleInfo {
	info := TitleInfo{
		Repeat:   repeatMarker.MatchString(raw),
		Premiere: premiereMarker.MatchString(raw),
	}
	unflagged := flagMarkers.ReplaceAllString(raw, " ")

	var seriesToken string
	seriesToken, info.Series = findSeries(unflagged)

	if m := episodeMarker.FindStringSubmatch(unflagged); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			ep := max(n-1, 0)
			info.Episode = &ep
			if m[2] != "" {
				info.EpisodeCount = "/" + m[2]
			}
		}
	}

	film := IsFilm(category)
	title := unflagged
	if !film {
		title = episodeTail.ReplaceAllString(title, "")
		if seriesToken != "" {
			title = stripSeriesSuffix(title, seriesToken)
		}
	}
	info.Title = Space(title)

	if !film {
		info.EpisodeNum = episodeNum(info.Series, info.Episode, info.EpisodeCount)
	}
	return info
}

// findSeries looks for a Roman numeral as the last word of the title once the
// episode marker and any trailing parenthetical are removed.
func findSeries(title string) (string, *int) {
	base := title
	if loc := episodeMarker.FindStringIndex(base); loc != nil {
		base = base[:loc[0]] + " " + base[loc[1]:]
	}
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}

	fields := strings.Fields(base)
	if len(fields) < 2 {
		return "", nil
	}
	token := strings.TrimSuffix(fields[len(fields)-1], ".")
	n, err := RomanToInt(token)
	if err != nil {
		return "", nil
	}
	series := n - 1
	return token, &series
}

func stripSeriesSuffix(title, token string) string {
	re := regexp.MustCompile(`\s+` + regexp.QuoteMeta(token) + `\.?\s*$`)
	return re.ReplaceAllString(strings.TrimRight(title, " \t"), "")
}

func episodeNum(series, episode *int, count string) string {
	switch {
	case series != nil && episode != nil:
		return fmt.Sprintf("%d.%d%s.0/1", *series, *episode, count)
	case series != nil:
		return fmt.Sprintf("%d.0.0/1", *series)
	case episode != nil:
		return fmt.Sprintf("0.%d%s.0/1", *episode, count)
	default:
		return ""
	}
}
