package taplist

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/normalize"
)

// reBeerLine matches "1. Brewery: X ; Beer: Y ; Style: Z ; Blg: 16 ; ABV: 6%".
var reBeerLine = regexp.MustCompile(`^(\d+)\.\s*Brewery:\s*(.+?)\s*;\s*Beer:\s*(.+?)\s*;\s*Style:\s*(.+?)\s*;\s*Blg:\s*(.+?)\s*;\s*ABV:\s*(.+?)$`)

// ParseBeersFile reads a hand-maintained tap list, one numbered line per tap,
// and reconciles it onto the tap slots. Lines that do not match the format
// are skipped.
func ParseBeersFile(r io.Reader) ([]models.TapRecord, error) {
	var taps []models.TapRecord

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := reBeerLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		taps = append(taps, models.TapRecord{
			TapNumber: m[1],
			Brewery:   CleanBrewery(normalize.Text(m[2])),
			Beer:      CleanBeerName(m[3]),
			Style:     normalize.Text(m[4]),
			BLG:       normalize.Decimal(strings.TrimSuffix(m[5], "°")),
			ABV:       percent(m[6]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read beers file: %w", err)
	}

	return Reconcile(taps), nil
}

func percent(s string) string {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return ""
	}
	return normalize.Decimal(s) + "%"
}
