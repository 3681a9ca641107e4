package taplist_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mspro-labs/tapboard/internal/document"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/taplist"
)

func mustLoad(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := document.Load(html)
	require.NoError(t, err)
	return doc
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	t.Run("no panels gives sixteen placeholders", func(t *testing.T) {
		t.Parallel()

		slots := taplist.Reconcile(nil)
		requireSlots(t, slots)
		for i, s := range slots {
			assert.Equal(t, models.EmptyTap(i+1), s)
		}
	})

	t.Run("panels land on their slot regardless of order", func(t *testing.T) {
		t.Parallel()

		slots := taplist.Reconcile([]models.TapRecord{
			{TapNumber: "16", Beer: "Last"},
			{TapNumber: "1", Beer: "First"},
			{TapNumber: "8", Beer: "Middle"},
		})
		requireSlots(t, slots)
		assert.Equal(t, "First", slots[0].Beer)
		assert.Equal(t, "Middle", slots[7].Beer)
		assert.Equal(t, "Last", slots[15].Beer)
		assert.True(t, slots[1].IsEmpty)
	})

	t.Run("first duplicate wins", func(t *testing.T) {
		t.Parallel()

		slots := taplist.Reconcile([]models.TapRecord{
			{TapNumber: "2", Beer: "Winner"},
			{TapNumber: "2", Beer: "Loser"},
		})
		assert.Equal(t, "Winner", slots[1].Beer)
	})

	t.Run("tap numbers are rewritten canonically", func(t *testing.T) {
		t.Parallel()

		slots := taplist.Reconcile([]models.TapRecord{{TapNumber: " 09 ", Beer: "Padded"}})
		assert.Equal(t, "9", slots[8].TapNumber)
		assert.Equal(t, "Padded", slots[8].Beer)
	})

	t.Run("panels without a beer become placeholders", func(t *testing.T) {
		t.Parallel()

		slots := taplist.Reconcile([]models.TapRecord{
			{TapNumber: "4", Brewery: "Stray", Beer: models.EmptyBeer, Price: "10 zł"},
			{TapNumber: "5", Brewery: "Stray", Style: "Lager"},
		})
		assert.Equal(t, models.EmptyTap(4), slots[3])
		assert.Equal(t, models.EmptyTap(5), slots[4])
	})

	t.Run("out of range and non-numeric panels are dropped", func(t *testing.T) {
		t.Parallel()

		slots := taplist.Reconcile([]models.TapRecord{
			{TapNumber: "0", Beer: "Zero"},
			{TapNumber: "17", Beer: "Seventeen"},
			{TapNumber: "x", Beer: "Letter"},
		})
		requireSlots(t, slots)
		for _, s := range slots {
			assert.True(t, s.IsEmpty)
		}
	})
}

func TestSlotNumber(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"7", 7},
		{" 07 ", 7},
		{"3a", 3},
		{"16", 16},
		{"", 0},
		{"#3", 0},
		{"-2", 0},
		{"99999999999999999999999", 0},
	}

	for _, tc := range testCases {
		if got := taplist.SlotNumber(tc.input); got != tc.expected {
			t.Errorf("SlotNumber(%q): expected %d, got %d", tc.input, tc.expected, got)
		}
	}
}

func TestParseSpecs(t *testing.T) {
	testCases := []struct {
		input   string
		wantBLG string
		wantABV string
	}{
		{"5,5°", "5.5", ""},
		{"12%", "", "12%"},
		{"16°·6%", "16", "6%"},
		{"16° · 6,1 %", "16", "6.1%"},
		{"12.5°&nbsp;5%", "12.5", "5%"},
		{"13 °  5.2%", "13", "5.2%"},
		{"", "", ""},
		{"no specs listed", "", ""},
	}

	for _, tc := range testCases {
		blg, abv := taplist.ParseSpecs(tc.input)
		if blg != tc.wantBLG || abv != tc.wantABV {
			t.Errorf("ParseSpecs(%q): expected (%q, %q), got (%q, %q)", tc.input, tc.wantBLG, tc.wantABV, blg, abv)
		}
	}
}

func TestParseBeersFile(t *testing.T) {
	t.Parallel()

	const beers = `1. Brewery: Pinta Browar ; Beer: Atak Chmielu ; Style: American IPA ; Blg: 16 ; ABV: 6,1%
# tap 2 is being cleaned
3. Brewery: Example Brewery ; Beer: Hazy Polska ; Style: NEIPA ; Blg: 14,5° ; ABV: 6

21. Brewery: Nowhere ; Beer: Too Far ; Style: Lager ; Blg: 12 ; ABV: 5%
`
	taps, err := taplist.ParseBeersFile(strings.NewReader(beers))
	require.NoError(t, err)
	requireSlots(t, taps)

	assert.Equal(t, models.TapRecord{
		TapNumber: "1", Brewery: "Pinta", Beer: "Atak Chmielu", Style: "American IPA", BLG: "16", ABV: "6.1%",
	}, taps[0])
	assert.True(t, taps[1].IsEmpty)
	assert.Equal(t, models.TapRecord{
		TapNumber: "3", Brewery: "Example", Beer: "Hazy", Style: "NEIPA", BLG: "14.5", ABV: "6%",
	}, taps[2])
}
