// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package epg assembles the XMLTV guide document.
package epg

import "encoding/xml"

type TV struct {
	XMLName      xml.Name    `xml:"tv"`
	Generator    string      `xml:"generator-info-name,attr,omitempty"`
	GeneratorURL string      `xml:"generator-info-url,attr,omitempty"`
	Channels     []Channel   `xml:"channel"`
	Programmes   []Programme `xml:"programme"`
}

type Channel struct {
	ID          string `xml:"id,attr"`
	DisplayName []Text `xml:"display-name"`
	Icon        *Icon  `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

// Text is character data with an optional language attribute.
type Text struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

type Programme struct {
	Start           string      `xml:"start,attr"`
	Stop            string      `xml:"stop,attr"`
	Channel         string      `xml:"channel,attr"`
	Title           Text        `xml:"title"`
	SubTitle        *Text       `xml:"sub-title,omitempty"`
	Desc            *Text       `xml:"desc,omitempty"`
	Categories      []Text      `xml:"category"`
	Length          *Length     `xml:"length,omitempty"`
	Date            string      `xml:"date,omitempty"`
	Countries       []Text      `xml:"country"`
	EpisodeNum      *EpisodeNum `xml:"episode-num,omitempty"`
	Rating          *Rating     `xml:"rating,omitempty"`
	Premiere        *Flag       `xml:"premiere,omitempty"`
	PreviouslyShown *Flag       `xml:"previously-shown,omitempty"`
	// Credits is always serialized; Finalize drops it when empty.
	Credits Credits `xml:"credits"`
}

type Length struct {
	Units string `xml:"units,attr"`
	Value string `xml:",chardata"`
}

type EpisodeNum struct {
	System string `xml:"system,attr"`
	Value  string `xml:",chardata"`
}

type Rating struct {
	Value string `xml:"value"`
}

// Flag is an empty marker element such as <premiere/>.
type Flag struct{}

type Credits struct {
	Directors []string `xml:"director"`
	Writers   []string `xml:"writer"`
	Music     []string `xml:"music"`
	Camera    []string `xml:"camera"`
	Producers []string `xml:"producer"`
	Actors    []Actor  `xml:"actor"`
}

// Actor always carries the role attribute; Finalize removes it when empty.
type Actor struct {
	Role string `xml:"role,attr"`
	Name string `xml:",chardata"`
}

// Empty reports whether no person is credited.
func (c Credits) Empty() bool {
	return len(c.Directors)+len(c.Writers)+len(c.Music)+len(c.Camera)+len(c.Producers)+len(c.Actors) == 0
}
