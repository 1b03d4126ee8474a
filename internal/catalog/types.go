// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package catalog

// Channel is one entry of the provider channel list.
type Channel struct {
	ID    string
	Name  string
	Logo  string // path relative to ChannelList.LogoBase
	Group string // regional group, e.g. "České"
}

// ChannelList is the parsed channel list document.
type ChannelList struct {
	LogoBase string
	Channels []Channel
}

// ListingEntry is one show in a per-day, per-channel listing index.
type ListingEntry struct {
	// AirDateKey is the opaque date reference used to fetch the description.
	AirDateKey string
	// Category is a single-letter or word code; "Z" marks news.
	Category string
}

// CreditRole identifies the kind of a credit entry.
type CreditRole string

const (
	RoleDirector CreditRole = "director"
	RoleWriter   CreditRole = "writer"
	RoleMusic    CreditRole = "music"
	RoleCamera   CreditRole = "camera"
	RoleProducer CreditRole = "producer"
	RoleActor    CreditRole = "actor"
)

// CreditRoles lists the roles in output order.
var CreditRoles = []CreditRole{RoleDirector, RoleWriter, RoleMusic, RoleCamera, RoleProducer, RoleActor}

// creditCodes maps the provider's o@t codes to roles.
var creditCodes = map[string]CreditRole{
	"r": RoleDirector,
	"s": RoleWriter,
	"m": RoleMusic,
	"k": RoleCamera,
	"p": RoleProducer,
	"h": RoleActor,
}

// Credit is one person credited on a show.
type Credit struct {
	Role      CreditRole
	Name      string
	Character string // actors only, raw provider text
}

// ShowDescription is the parsed per-show description document.
// Start and Stop are raw provider timestamps.
type ShowDescription struct {
	Title    string
	Subtitle string
	Desc     string
	Category string
	Genres   []string
	Country  string
	Length   string // minutes
	Year     string
	Rating   string
	Start    string
	Stop     string
	Credits  []Credit
}
