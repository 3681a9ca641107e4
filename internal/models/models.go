package models

import "strconv"

// Kind selects which extraction pipeline a page goes through.
type Kind string

const (
	KindCheckins Kind = "checkins"
	KindTaps     Kind = "taps"
)

// ParseKind maps a user-supplied page kind onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindCheckins, KindTaps:
		return Kind(s), true
	}
	return "", false
}

// EmptyBeer is the beer name of a tap slot with nothing on it.
const EmptyBeer = "N/A"

// CheckinRecord holds the scraped data for a single check-in.
type CheckinRecord struct {
	UserName    string `json:"userName"`
	UserAvatar  string `json:"userAvatar"`
	TimeAgo     string `json:"timeAgo"`
	BeerName    string `json:"beerName"`
	BreweryName string `json:"breweryName"`
	BeerIcon    string `json:"beerIcon"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	BeerPhoto   string `json:"beerPhoto"`
}

// TapRecord holds the scraped data for a single tap slot.
type TapRecord struct {
	TapNumber  string `json:"tapNumber"`
	Brewery    string `json:"brewery"`
	Beer       string `json:"beer"`
	Style      string `json:"style"`
	BLG        string `json:"blg"`
	ABV        string `json:"abv"`
	Price      string `json:"price"`
	OnTap      string `json:"onTap"`
	IsNew      bool   `json:"isNew"`
	IsPremiere bool   `json:"isPremiere"`
	IsEmpty    bool   `json:"isEmpty"`
}

// EmptyTap returns the placeholder record for a slot with no beer.
func EmptyTap(slot int) TapRecord {
	return TapRecord{
		TapNumber: strconv.Itoa(slot),
		Beer:      EmptyBeer,
		IsEmpty:   true,
	}
}
