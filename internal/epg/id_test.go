// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuGH/epg365/internal/catalog"
)

func TestChannelID(t *testing.T) {
	tests := []struct {
		id, name, want string
	}{
		{"804", "ČT :D", "804-ct-d"},
		{"300", "Prima+1", "300-primaplus1"},
		{"1", "ČT1", "1-ct1"},
		{"51", "Jednotka", "51-jednotka"},
		{"7", "Nova (Cinema)!", "7-nova-cinema"},
		{"8", "TV Barrandov.", "8-tv-barrandov-"},
		{"9", "Šlágr TV", "9-slagr-tv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChannelID(tt.id, tt.name))
		})
	}
}

func TestCanonicalChannelID(t *testing.T) {
	assert.Equal(t, "804", CanonicalChannelID("805"))
	assert.Equal(t, "804", CanonicalChannelID("804"))
	assert.Equal(t, "1", CanonicalChannelID("1"))
}

func TestCanonicalChannels(t *testing.T) {
	in := []catalog.Channel{
		{ID: "1", Name: "ČT1"},
		{ID: "805", Name: "ČT art", Logo: "ctart.png"},
		{ID: "804", Name: "ČT :D", Logo: "ctd.png"},
		{ID: "51", Name: "Jednotka"},
	}
	got := CanonicalChannels(in)
	want := []catalog.Channel{
		{ID: "1", Name: "ČT1"},
		{ID: "804", Name: "ČT :D", Logo: "ctd.png"},
		{ID: "51", Name: "Jednotka"},
	}
	assert.Equal(t, want, got)

	// alias alone still maps to the canonical id
	got = CanonicalChannels([]catalog.Channel{{ID: "805", Name: "ČT art"}})
	assert.Equal(t, []catalog.Channel{{ID: "804", Name: "ČT art"}}, got)
}
