// Package taplist extracts the venue's tap list into a fixed set of slots.
package taplist

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mspro-labs/tapboard/internal/config"
	"mspro-labs/tapboard/internal/document"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/normalize"
)

// Tag labels that set the flags on a tap.
const (
	tagNew      = "New"
	tagPremiere = "Premiere"
)

var (
	breweryIndicators = []string{" Brewery", " Browar"}
	beerIndicators    = []string{"Polska"}
)

// Extractor pulls TapRecords out of a tap-list page. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	sel config.TapSelectors
}

// New creates an Extractor using the given selectors.
func New(sel config.TapSelectors) *Extractor {
	return &Extractor{sel: sel}
}

// Parse loads html and extracts its tap list.
func (e *Extractor) Parse(html string) ([]models.TapRecord, error) {
	doc, err := document.Load(html)
	if err != nil {
		return nil, err
	}
	return e.Extract(doc), nil
}

// Extract returns exactly SlotCount records, one per tap.
func (e *Extractor) Extract(doc *goquery.Document) []models.TapRecord {
	return Reconcile(e.Panels(doc))
}

// Panels returns one record per usable panel, in document order, before
// any slot reconciliation.
func (e *Extractor) Panels(doc *goquery.Document) []models.TapRecord {
	var taps []models.TapRecord
	doc.Find(e.sel.Panel).Each(func(_ int, panel *goquery.Selection) {
		if tap, ok := e.extractPanel(panel); ok {
			taps = append(taps, tap)
		}
	})
	return taps
}

func (e *Extractor) extractPanel(panel *goquery.Selection) (models.TapRecord, bool) {
	body := panel.Find(e.sel.Body).First()
	if body.Length() == 0 {
		return models.TapRecord{}, false
	}

	number := normalize.Text(panel.Find(e.sel.TapNumber).First().Text())
	if number == "" {
		return models.TapRecord{}, false
	}

	block := splitBeerBlock(body.Find(e.sel.BeerBlock).First())

	brewery := block.brewery
	if b := panel.Find(e.sel.Brewery).First(); b.Length() > 0 {
		brewery = normalize.Text(b.Text())
	}

	beer := CleanBeerName(block.beer)
	if isEmptyBeer(beer) {
		empty := models.EmptyTap(0)
		empty.TapNumber = number
		return empty, true
	}

	blg, abv := ParseSpecs(block.specs)
	tags := e.tags(panel)

	return models.TapRecord{
		TapNumber:  number,
		Brewery:    CleanBrewery(brewery),
		Beer:       beer,
		Style:      normalize.Text(body.Find(e.sel.Style).First().Text()),
		BLG:        blg,
		ABV:        abv,
		Price:      normalize.Text(panel.Find(e.sel.Price).First().Text()),
		OnTap:      normalize.Text(panel.Find(e.sel.OnTap).First().Text()),
		IsNew:      tags[tagNew],
		IsPremiere: tags[tagPremiere],
	}, true
}

func (e *Extractor) tags(panel *goquery.Selection) map[string]bool {
	tags := make(map[string]bool)
	panel.Find(e.sel.Tags).Each(func(_ int, s *goquery.Selection) {
		tags[normalize.Text(s.Text())] = true
	})
	return tags
}

// beerBlock is the line-broken brewery / beer / specs element.
type beerBlock struct {
	brewery string
	beer    string
	specs   string
}

func splitBeerBlock(s *goquery.Selection) beerBlock {
	parts := document.SplitText(s, 3)
	return beerBlock{
		brewery: normalize.Text(parts[0]),
		beer:    normalize.Text(parts[1]),
		specs:   parts[2],
	}
}

// CleanBrewery drops a trailing " Brewery" or " Browar".
func CleanBrewery(s string) string {
	return normalize.StripSuffix(s, breweryIndicators...)
}

// CleanBeerName drops a trailing "Polska" from the beer name.
func CleanBeerName(s string) string {
	return strings.TrimSpace(normalize.StripSuffix(normalize.Text(s), beerIndicators...))
}
