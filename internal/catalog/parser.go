// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package catalog parses the three provider documents (channel list, listing
// index, show description) into typed records.
package catalog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html/charset"
)

// Schema names used in ParseError.
const (
	SchemaChannels    = "channels"
	SchemaListing     = "listing"
	SchemaDescription = "description"
)

// ParseError reports a document that does not match the expected schema.
type ParseError struct {
	Schema string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Schema, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultGroups are the regional channel groups kept by FilterGroups.
var DefaultGroups = []string{"Slovenské", "České", "Ostatní"}

type xmlChannel struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"n"`
	Logo  string `xml:"o"`
	Group string `xml:"p"`
}

type xmlListing struct {
	Ref      *string `xml:"o,attr"`
	Category string  `xml:"t"`
}

type xmlPerson struct {
	Name string `xml:",chardata"`
	Role string `xml:"role,attr"`
}

type xmlCreditGroup struct {
	Code   string      `xml:"t,attr"`
	People []xmlPerson `xml:"j"`
}

type xmlDescription struct {
	Title    string `xml:"n"`
	Subtitle string `xml:"b"`
	Desc     string `xml:"p>d"`
	Info     struct {
		Category string           `xml:"t"`
		Genres   []string         `xml:"st>tt"`
		Country  string           `xml:"z"`
		Length   string           `xml:"d"`
		Year     string           `xml:"r"`
		Rating   string           `xml:"p"`
		Credits  []xmlCreditGroup `xml:"l>o"`
	} `xml:"i"`
	Schedule struct {
		Start string `xml:"o,attr"`
		Stop  string `xml:"d,attr"`
	} `xml:"s"`
}

// ParseChannels parses the channel list: a <s loga="..."> element and any
// number of <a id="..."> channel elements.
func ParseChannels(data []byte) (ChannelList, error) {
	var (
		list    ChannelList
		sawRoot bool
	)
	err := walk(data, func(dec *xml.Decoder, se xml.StartElement) error {
		switch se.Name.Local {
		case "s":
			if !sawRoot {
				sawRoot = true
				list.LogoBase = attr(se, "loga")
			}
		case "a":
			var ch xmlChannel
			if err := dec.DecodeElement(&ch, &se); err != nil {
				return err
			}
			ch.ID = strings.TrimSpace(ch.ID)
			if ch.ID == "" {
				return errors.New("channel without id")
			}
			list.Channels = append(list.Channels, Channel{
				ID:    ch.ID,
				Name:  strings.TrimSpace(ch.Name),
				Logo:  strings.TrimSpace(ch.Logo),
				Group: strings.TrimSpace(ch.Group),
			})
		}
		return nil
	})
	if err == nil && !sawRoot {
		err = errors.New("missing <s> element")
	}
	if err != nil {
		return ChannelList{}, &ParseError{Schema: SchemaChannels, Err: err}
	}
	return list, nil
}

// ParseListings parses a per-day listing index: every <p o="..."><t>..</t></p>.
func ParseListings(data []byte) ([]ListingEntry, error) {
	var entries []ListingEntry
	err := walk(data, func(dec *xml.Decoder, se xml.StartElement) error {
		if se.Name.Local != "p" {
			return nil
		}
		var l xmlListing
		if err := dec.DecodeElement(&l, &se); err != nil {
			return err
		}
		if l.Ref == nil || strings.TrimSpace(*l.Ref) == "" {
			return errors.New("listing entry without date reference")
		}
		entries = append(entries, ListingEntry{
			AirDateKey: strings.TrimSpace(*l.Ref),
			Category:   strings.TrimSpace(l.Category),
		})
		return nil
	})
	if err != nil {
		return nil, &ParseError{Schema: SchemaListing, Err: err}
	}
	return entries, nil
}

// ParseDescription parses the first <a> element of a show description.
func ParseDescription(data []byte) (ShowDescription, error) {
	var (
		raw   xmlDescription
		found bool
	)
	err := walk(data, func(dec *xml.Decoder, se xml.StartElement) error {
		if found || se.Name.Local != "a" {
			return nil
		}
		found = true
		return dec.DecodeElement(&raw, &se)
	})
	switch {
	case err != nil:
	case !found:
		err = errors.New("missing <a> element")
	case strings.TrimSpace(raw.Title) == "":
		err = errors.New("missing title")
	case raw.Schedule.Start == "" || raw.Schedule.Stop == "":
		err = errors.New("missing start/stop")
	}
	if err != nil {
		return ShowDescription{}, &ParseError{Schema: SchemaDescription, Err: err}
	}

	desc := ShowDescription{
		Title:    strings.TrimSpace(raw.Title),
		Subtitle: strings.TrimSpace(raw.Subtitle),
		Desc:     strings.TrimSpace(raw.Desc),
		Category: strings.TrimSpace(raw.Info.Category),
		Country:  strings.TrimSpace(raw.Info.Country),
		Length:   strings.TrimSpace(raw.Info.Length),
		Year:     strings.TrimSpace(raw.Info.Year),
		Rating:   strings.TrimSpace(raw.Info.Rating),
		Start:    raw.Schedule.Start,
		Stop:     raw.Schedule.Stop,
	}
	for _, g := range raw.Info.Genres {
		if g = strings.TrimSpace(g); g != "" {
			desc.Genres = append(desc.Genres, g)
		}
	}
	// group by role in output order, keeping document order inside a role
	for _, role := range CreditRoles {
		for _, group := range raw.Info.Credits {
			if creditCodes[group.Code] != role {
				continue
			}
			for _, p := range group.People {
				name := strings.TrimSpace(p.Name)
				if name == "" {
					continue
				}
				c := Credit{Role: role, Name: name}
				if role == RoleActor {
					c.Character = strings.TrimSpace(p.Role)
				}
				desc.Credits = append(desc.Credits, c)
			}
		}
	}
	return desc, nil
}

// FilterGroups keeps the channels whose group is one of groups.
func FilterGroups(channels []Channel, groups []string) []Channel {
	out := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if slices.Contains(groups, ch.Group) {
			out = append(out, ch)
		}
	}
	return out
}

// RefDigits reduces an air date reference to its digits, the form used in
// description URLs and cache keys.
func RefDigits(ref string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, ref)
}

// walk streams the document and calls visit for every start element that is
// not consumed by a previous visit. A document without any element is an error.
func walk(data []byte, visit func(*xml.Decoder, xml.StartElement) error) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	sawElement := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		if err := visit(dec, se); err != nil {
			return err
		}
	}
	if !sawElement {
		return errors.New("empty document")
	}
	return nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
