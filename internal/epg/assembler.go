// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"errors"
	"fmt"

	"github.com/ManuGH/epg365/internal/catalog"
	"github.com/ManuGH/epg365/internal/normalize"
)

const (
	DefaultGenerator = "epg365"
	DefaultLang      = "cz"
	DefaultOffset    = "+0200"
)

var (
	// ErrUnknownChannel is returned for programmes of a channel that was not added.
	ErrUnknownChannel = errors.New("epg: programme for unknown channel")
	// ErrNoSchedule is returned for descriptions without usable start/stop digits.
	ErrNoSchedule = errors.New("epg: description has no start/stop time")
)

// Options configures an Assembler.
type Options struct {
	GeneratorName string
	GeneratorURL  string
	Lang          string // language of provider text, "cz" by default
	Offset        string // UTC offset appended to timestamps, "+0200" by default
}

// Assembler accumulates channels and programmes into one TV document.
// It is not safe for concurrent use.
type Assembler struct {
	opts     Options
	tv       TV
	channels map[string]string // canonical provider id -> XMLTV channel id
	perChan  map[string]int
}

// NewAssembler returns an empty Assembler.
func NewAssembler(opts Options) *Assembler {
	if opts.GeneratorName == "" {
		opts.GeneratorName = DefaultGenerator
	}
	if opts.Lang == "" {
		opts.Lang = DefaultLang
	}
	if opts.Offset == "" {
		opts.Offset = DefaultOffset
	}
	return &Assembler{
		opts: opts,
		tv: TV{
			Generator:    opts.GeneratorName,
			GeneratorURL: opts.GeneratorURL,
			Channels:     []Channel{},
			Programmes:   []Programme{},
		},
		channels: make(map[string]string),
		perChan:  make(map[string]int),
	}
}

// AddChannel emits a channel block and returns its XMLTV id. Aliased provider
// ids resolve to their canonical channel; a channel whose canonical id is
// already present is not emitted again and added is false.
func (a *Assembler) AddChannel(ch catalog.Channel, logoBase string) (id string, added bool) {
	canonical := CanonicalChannelID(ch.ID)
	if existing, ok := a.channels[canonical]; ok {
		return existing, false
	}
	id = ChannelID(canonical, ch.Name)
	block := Channel{
		ID:          id,
		DisplayName: []Text{{Lang: a.opts.Lang, Value: ch.Name}},
	}
	if ch.Logo != "" {
		block.Icon = &Icon{Src: logoBase + ch.Logo}
	}
	a.tv.Channels = append(a.tv.Channels, block)
	a.channels[canonical] = id
	return id, true
}

// AddProgramme normalizes one show and appends its programme block to the
// channel identified by the provider id (aliases allowed).
func (a *Assembler) AddProgramme(channelID string, entry catalog.ListingEntry, desc catalog.ShowDescription) (Programme, error) {
	canonical := CanonicalChannelID(channelID)
	xmlID, ok := a.channels[canonical]
	if !ok {
		return Programme{}, fmt.Errorf("%w: %s", ErrUnknownChannel, channelID)
	}
	if catalog.RefDigits(desc.Start) == "" || catalog.RefDigits(desc.Stop) == "" {
		return Programme{}, ErrNoSchedule
	}

	lang := a.opts.Lang
	info := normalize.Title(desc.Title, desc.Category)

	p := Programme{
		Start:      formatTimestamp(desc.Start, a.opts.Offset),
		Stop:       formatTimestamp(desc.Stop, a.opts.Offset),
		Channel:    xmlID,
		Title:      Text{Lang: lang, Value: info.Title},
		Categories: buildCategories(lang, entry.Category, desc),
		Date:       desc.Year,
		Countries:  buildCountries(lang, desc.Country),
		Credits:    buildCredits(desc.Credits),
	}
	if desc.Subtitle != "" {
		p.SubTitle = &Text{Lang: lang, Value: desc.Subtitle}
	}
	if desc.Desc != "" {
		p.Desc = &Text{Lang: lang, Value: desc.Desc}
	}
	if desc.Length != "" {
		p.Length = &Length{Units: "minutes", Value: desc.Length}
	}
	if info.EpisodeNum != "" {
		p.EpisodeNum = &EpisodeNum{System: "xmltv_ns", Value: info.EpisodeNum}
	}
	if desc.Rating != "" {
		p.Rating = &Rating{Value: desc.Rating}
	}
	if info.Premiere {
		p.Premiere = &Flag{}
	}
	if info.Repeat {
		p.PreviouslyShown = &Flag{}
	}

	a.tv.Programmes = append(a.tv.Programmes, p)
	a.perChan[xmlID]++
	return p, nil
}

// Document returns the assembled document. The Assembler keeps ownership;
// callers must not modify it.
func (a *Assembler) Document() *TV { return &a.tv }

// ProgrammeCount returns the number of programmes emitted for an XMLTV channel id.
func (a *Assembler) ProgrammeCount(xmlID string) int { return a.perChan[xmlID] }
