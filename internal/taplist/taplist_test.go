package taplist_test

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mspro-labs/tapboard/internal/config"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/taplist"
)

const tapsHTML = `
<html>
<body>
<div class="container">
  <div class="panel panel-default">
    <div class="panel-heading">
      <span class="badge">3</span>
      <small class="label label-success">New</small>
      <small class="label label-warning"> Premiere </small>
    </div>
    <div class="panel-body">
      <h4><span class="brewery">Pinta Browar</span><br><b>Atak Chmielu Polska</b><br>16&deg;&nbsp;&middot;&nbsp;6,1%</h4>
      <div class="style">Style: <b>American
        IPA</b></div>
      <div class="on-tap">On tap: <span class="label">2 days</span></div>
    </div>
    <div class="panel-footer"><span class="price">18 zł  / 0.5l</span></div>
  </div>

  <div class="panel panel-default">
    <div class="panel-heading"><span class="badge">1</span></div>
    <div class="panel-body">
      <h4><span class="brewery">Example Brewery</span><br/>Pale Ale<br/>12,5°&nbsp;5%</h4>
      <div class="style"><b>Pale Ale</b></div>
    </div>
    <div class="panel-footer"><span class="price">15 zł</span></div>
  </div>

  <div class="panel panel-default">
    <div class="panel-heading"><span class="badge">5</span><small class="label">New</small></div>
    <div class="panel-body">
      <h4><span class="brewery">Leftover Browar</span><br>N/A<br>0°</h4>
      <div class="style"><b>Stray</b></div>
    </div>
    <div class="panel-footer"><span class="price">10 zł</span></div>
  </div>

  <div class="panel panel-default">
    <div class="panel-heading"><span class="badge">7</span></div>
  </div>

  <div class="panel panel-default">
    <div class="panel-heading"><span class="badge">  </span></div>
    <div class="panel-body"><h4>Ghost<br>Phantom Stout<br>20°</h4></div>
  </div>

  <div class="panel panel-default">
    <div class="panel-heading"><span class="badge">3</span></div>
    <div class="panel-body"><h4>Dup<br>Second Three<br>11°</h4></div>
  </div>

  <div class="panel panel-default">
    <div class="panel-heading"><span class="badge">20</span></div>
    <div class="panel-body"><h4>Far<br>Out Of Range<br>11°</h4></div>
  </div>

  <div class="panel panel-default">
    <div class="panel-heading"><span class="badge">02</span></div>
    <div class="panel-body"><h4>Browar Y Browar<br>Hazy Polska<br>14°</h4></div>
  </div>
</div>
</body>
</html>`

func newExtractor() *taplist.Extractor {
	return taplist.New(config.DefaultTapSelectors())
}

func TestPanels(t *testing.T) {
	t.Parallel()

	doc := mustLoad(t, tapsHTML)
	got := newExtractor().Panels(doc)

	want := []models.TapRecord{
		{
			TapNumber:  "3",
			Brewery:    "Pinta",
			Beer:       "Atak Chmielu",
			Style:      "American IPA",
			BLG:        "16",
			ABV:        "6.1%",
			Price:      "18 zł / 0.5l",
			OnTap:      "2 days",
			IsNew:      true,
			IsPremiere: true,
		},
		{
			TapNumber: "1",
			Brewery:   "Example",
			Beer:      "Pale Ale",
			Style:     "Pale Ale",
			BLG:       "12.5",
			ABV:       "5%",
			Price:     "15 zł",
		},
		{TapNumber: "5", Beer: models.EmptyBeer, IsEmpty: true},
		{TapNumber: "3", Brewery: "Dup", Beer: "Second Three", BLG: "11"},
		{TapNumber: "20", Brewery: "Far", Beer: "Out Of Range", BLG: "11"},
		{TapNumber: "02", Brewery: "Browar Y", Beer: "Hazy", BLG: "14"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Panels() mismatch (-want +got):\n%s", diff)
	}
}

func TestPanels_LineBreakMarkup(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		block string
	}{
		{"attributes", `Pinta Browar<br class="hidden-xs">Atak Chmielu<br class="hidden-xs">16°·6%`},
		{"upper case", `Pinta Browar<BR>Atak Chmielu<BR/>16°·6%`},
		{"inside inline element", `<span>Pinta Browar<br>Atak Chmielu</span><br data-line="3">16°·6%`},
	}

	want := []models.TapRecord{{TapNumber: "1", Brewery: "Pinta", Beer: "Atak Chmielu", BLG: "16", ABV: "6%"}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			page := `<div class="panel"><div class="panel-heading"><span class="badge">1</span></div>` +
				`<div class="panel-body"><h4>` + tc.block + `</h4></div></div>`
			got := newExtractor().Panels(mustLoad(t, page))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Panels() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	taps, err := newExtractor().Parse(tapsHTML)
	require.NoError(t, err)
	requireSlots(t, taps)

	assert.Equal(t, "Pale Ale", taps[0].Beer)
	assert.Equal(t, "Hazy", taps[1].Beer)
	assert.Equal(t, "2", taps[1].TapNumber)
	assert.Equal(t, "Atak Chmielu", taps[2].Beer, "first panel numbered 3 wins")
	assert.Equal(t, models.EmptyTap(5), taps[4])
	assert.Equal(t, models.EmptyTap(7), taps[6])

	for _, tap := range taps {
		assert.NotEqual(t, "Phantom Stout", tap.Beer, "unnumbered panel must not take a slot")
		assert.NotEqual(t, "Out Of Range", tap.Beer)
	}
}

func TestExtract_AlwaysSixteenSlots(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"empty document": "",
		"no panels":      "<html><body><h1>Closed for renovation</h1></body></html>",
		"garbage":        "<div class=panel><div class=panel-body><<<>>>",
	}
	for _, n := range []int{1, 16, 17, 40} {
		var b strings.Builder
		for i := n; i > 0; i-- {
			fmt.Fprintf(&b, `<div class="panel"><div class="panel-heading"><span class="badge">%d</span></div><div class="panel-body"><h4>B<br>Beer %d<br>%d°</h4></div></div>`, i, i, i)
		}
		inputs[fmt.Sprintf("%d reversed panels", n)] = b.String()
	}

	for name, html := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			taps, err := newExtractor().Parse(html)
			require.NoError(t, err)
			requireSlots(t, taps)
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	e := newExtractor()
	first, err := e.Parse(tapsHTML)
	require.NoError(t, err)
	second, err := e.Parse(tapsHTML)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestTapRecordJSON(t *testing.T) {
	out, err := json.Marshal(models.EmptyTap(4))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"tapNumber": "4", "brewery": "", "beer": "N/A", "style": "", "blg": "", "abv": "",
		"price": "", "onTap": "", "isNew": false, "isPremiere": false, "isEmpty": true
	}`, string(out))
}

func TestCleanBrewery(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Browar Przykładowy Browar", "Browar Przykładowy"},
		{"Example Brewery", "Example"},
		{"Browar Stu Mostów", "Browar Stu Mostów"},
		{"Some BREWERY", "Some BREWERY"},
	}

	for _, tc := range testCases {
		if got := taplist.CleanBrewery(tc.input); got != tc.expected {
			t.Errorf("CleanBrewery(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestCleanBeerName(t *testing.T) {
	assert.Equal(t, "Hazy", taplist.CleanBeerName("Hazy Polska"))
	assert.Equal(t, "Polska Pils", taplist.CleanBeerName("Polska Pils"))
	assert.Equal(t, "Atak Chmielu", taplist.CleanBeerName("  Atak\n Chmielu "))
}

func requireSlots(t *testing.T, taps []models.TapRecord) {
	t.Helper()

	require.Len(t, taps, taplist.SlotCount)
	for i, tap := range taps {
		require.Equal(t, strconv.Itoa(i+1), tap.TapNumber)
		if tap.IsEmpty {
			require.Equal(t, models.EmptyTap(i+1), tap, "empty slot %d carries residual data", i+1)
		}
	}
}
