package taplist

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/normalize"
)

// SlotCount is the number of physical taps at the venue.
const SlotCount = 16

var (
	reBLG = regexp.MustCompile(`(\d+(?:[.,]\d+)?)°`)
	reABV = regexp.MustCompile(`(\d+(?:[.,]\d+)?)%`)
)

// Reconcile maps parsed panels onto slots 1..SlotCount. Each slot takes the
// first panel whose tap number equals it; slots with no panel, or whose panel
// carries no beer, become empty placeholders. Panels numbered outside the
// slot range are dropped.
func Reconcile(panels []models.TapRecord) []models.TapRecord {
	slots := make([]models.TapRecord, SlotCount)
	for i := range slots {
		slot := i + 1
		slots[i] = models.EmptyTap(slot)

		for _, p := range panels {
			if SlotNumber(p.TapNumber) != slot {
				continue
			}
			if !p.IsEmpty && !isEmptyBeer(p.Beer) {
				p.TapNumber = strconv.Itoa(slot)
				slots[i] = p
			}
			break
		}
	}
	return slots
}

// SlotNumber reads the leading integer of a tap badge ("7", " 07 ", "3a").
// It returns 0 when the text does not start with a digit.
func SlotNumber(s string) int {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ParseSpecs extracts BLG and ABV from a specs line such as "16°·6,1%".
// BLG is returned bare with a period decimal separator; ABV keeps its "%".
func ParseSpecs(specs string) (blg, abv string) {
	specs = strings.ReplaceAll(specs, "&nbsp;", "")
	specs = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, specs)

	if m := reBLG.FindStringSubmatch(specs); m != nil {
		blg = normalize.Decimal(m[1])
	}
	if m := reABV.FindStringSubmatch(specs); m != nil {
		abv = normalize.Decimal(m[1]) + "%"
	}
	return blg, abv
}

func isEmptyBeer(beer string) bool {
	return beer == "" || beer == models.EmptyBeer
}
