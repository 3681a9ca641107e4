// Package checkins extracts check-in records from a venue's public activity feed.
package checkins

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"mspro-labs/tapboard/internal/config"
	"mspro-labs/tapboard/internal/document"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/normalize"
)

// MaxCheckins is how many check-ins the display has room for.
const MaxCheckins = 4

// minDescriptionLen is the shortest comment kept; anything shorter is layout residue.
const minDescriptionLen = 10

// Href markers of the links inside a check-in caption.
const (
	userMarker  = "/user/"
	beerMarker  = "/b/"
	venueMarker = "/v/"
)

// Comment text from the first of these phrases onwards is feed boilerplate.
var boilerplateMarkers = []string{"Purchased at", "Drinking at", "Tagged Friends", "Translate"}

var reBoilerplate = compileMarkers(boilerplateMarkers)

func compileMarkers(markers []string) *regexp.Regexp {
	quoted := make([]string, len(markers))
	for i, m := range markers {
		quoted[i] = regexp.QuoteMeta(m)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}

// Extractor pulls CheckinRecords out of a feed page. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	sel config.CheckinSelectors
	now func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the reference time used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// New creates an Extractor using the given selectors.
func New(sel config.CheckinSelectors, opts ...Option) *Extractor {
	e := &Extractor{sel: sel, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse loads html and extracts its check-ins.
func (e *Extractor) Parse(html string) ([]models.CheckinRecord, error) {
	doc, err := document.Load(html)
	if err != nil {
		return nil, err
	}
	return e.Extract(doc), nil
}

// Extract returns the first MaxCheckins check-ins of doc in document order.
func (e *Extractor) Extract(doc *goquery.Document) []models.CheckinRecord {
	records := make([]models.CheckinRecord, 0, MaxCheckins)
	now := e.now()

	doc.Find(e.sel.Item).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		records = append(records, e.extractItem(s, now))
		return len(records) < MaxCheckins
	})

	return records
}

func (e *Extractor) extractItem(s *goquery.Selection, now time.Time) models.CheckinRecord {
	var rec models.CheckinRecord

	rec.UserName = firstText(s, e.sel.UserName)
	rec.UserAvatar = firstAttr(s, e.sel.UserAvatar, "src")
	rec.TimeAgo = normalize.RelativeTime(firstText(s, e.sel.Time), now)
	rec.BeerName, rec.BreweryName = BeerAndBrewery(captionLinks(s.Find(e.sel.Caption)))
	rec.BeerIcon = firstAttr(s, e.sel.BeerIcon, "src")
	// Rating is kept as the raw attribute value.
	rec.Rating, _ = s.Find(e.sel.Rating).First().Attr("data-rating")
	rec.Description = e.description(s)
	rec.BeerPhoto = firstAttr(s, e.sel.Photo, "src")

	return rec
}

// BeerAndBrewery resolves the beer and brewery names from the caption links.
// The beer is the first beer link; the brewery is the first link after it
// that points at neither a user, a beer nor a venue. No beer means no brewery.
func BeerAndBrewery(links []normalize.Link) (beer, brewery string) {
	bi := normalize.FirstLink(links, isBeerLink)
	if bi < 0 {
		return "", ""
	}
	beer = links[bi].Text

	if ri := normalize.LinkAfter(links, bi, isBreweryLink); ri >= 0 {
		brewery = links[ri].Text
	}
	return beer, brewery
}

func isBeerLink(l normalize.Link) bool {
	return l.Text != "" && l.HrefContainsAny(beerMarker)
}

func isBreweryLink(l normalize.Link) bool {
	return l.Text != "" && !l.HrefContainsAny(userMarker, beerMarker, venueMarker)
}

func captionLinks(caption *goquery.Selection) []normalize.Link {
	var links []normalize.Link
	caption.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		links = append(links, normalize.Link{Href: href, Text: normalize.Text(a.Text())})
	})
	return links
}

// description reads the comment with badges, tags and links stripped from a
// detached copy of it.
func (e *Extractor) description(s *goquery.Selection) string {
	comment := s.Find(e.sel.Comment).First()
	if comment.Length() == 0 {
		return ""
	}
	clone := comment.Clone()
	clone.Find(e.sel.CommentJunk).Remove()
	return CleanDescription(clone.Text())
}

// CleanDescription collapses whitespace, cuts the text at the first
// boilerplate phrase and drops what is left if it is too short to be a comment.
func CleanDescription(text string) string {
	text = normalize.Text(text)
	if loc := reBoilerplate.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[:loc[0]])
	}
	if utf8.RuneCountInString(text) < minDescriptionLen {
		return ""
	}
	return text
}

func firstText(s *goquery.Selection, selector string) string {
	var text string
	s.Find(selector).EachWithBreak(func(_ int, m *goquery.Selection) bool {
		text = strings.TrimSpace(m.Text())
		return text == ""
	})
	return text
}

func firstAttr(s *goquery.Selection, selector, attr string) string {
	v, _ := s.Find(selector).First().Attr(attr)
	return strings.TrimSpace(v)
}
