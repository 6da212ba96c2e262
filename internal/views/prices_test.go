package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/remote"
)

func hourlyPrices(date string, hours int) []remote.PricePoint {
	points := make([]remote.PricePoint, hours)
	for h := range points {
		points[h] = remote.PricePoint{
			Time:  fmt.Sprintf("%sT%02d:00:00Z", date, h),
			Price: remote.NewValue(fmt.Sprintf("%d.5", 60+h)),
		}
	}
	return points
}

func TestPrices_GroupsByDate(t *testing.T) {
	points := append(hourlyPrices("2025-05-02", 6), hourlyPrices("2025-05-01", 24)...)

	screen := Prices("Germany", "10Y1001A1001A82H", points)

	if !strings.HasPrefix(screen.Text, "📊 Market Prices for Germany:") {
		t.Errorf("Text header = %q", strings.SplitN(screen.Text, "\n", 2)[0])
	}

	first := strings.Index(screen.Text, "📅 2025-05-01")
	second := strings.Index(screen.Text, "📅 2025-05-02")
	if first < 0 || second < 0 || first > second {
		t.Errorf("dates missing or out of order:\n%s", screen.Text)
	}
	if got := strings.Count(screen.Text, "• "); got != 30 {
		t.Errorf("price lines = %d, want 30", got)
	}
	if !strings.Contains(screen.Text, "• 03:00 - 63.5 €/MWh") {
		t.Errorf("missing formatted line:\n%s", screen.Text)
	}

	want := []callback.Action{callback.ShowPrices{CountryCode: "10Y1001A1001A82H"}, callback.ChangeCountry{}}
	buttons := screen.Buttons()
	if len(buttons) != 2 || buttons[0].Action != want[0] || buttons[1].Action != want[1] {
		t.Errorf("buttons = %#v, want refresh and change country", buttons)
	}
}

func TestPrices_Caps(t *testing.T) {
	var points []remote.PricePoint
	points = append(points, hourlyPrices("2025-05-01", 24)...)
	points = append(points, hourlyPrices("2025-05-01", 4)...) // duplicates beyond the cap
	points = append(points, hourlyPrices("2025-05-02", 24)...)
	points = append(points, hourlyPrices("2025-05-03", 24)...)

	screen := Prices("Greece", "10YGR-HTSO-----Y", points)

	if strings.Contains(screen.Text, "2025-05-03") {
		t.Error("at most two dates should be shown")
	}
	if got := strings.Count(screen.Text, "• "); got != 48 {
		t.Errorf("price lines = %d, want 48", got)
	}
}

func TestPrices_UsesTimestampOffset(t *testing.T) {
	points := []remote.PricePoint{{Time: "2025-05-01T23:30:00+02:00", Price: remote.NewValue("10")}}

	screen := Prices("Greece", "10YGR-HTSO-----Y", points)
	if !strings.Contains(screen.Text, "📅 2025-05-01") || !strings.Contains(screen.Text, "• 23:30 - 10 €/MWh") {
		t.Errorf("date should follow the timestamp's own offset:\n%s", screen.Text)
	}
}

func TestPrices_Empty(t *testing.T) {
	for _, points := range [][]remote.PricePoint{nil, {{Time: "not a time"}}} {
		screen := Prices("Spain", "10YES-REE------0", points)
		if screen.Text != TextPricesEmpty {
			t.Errorf("Text = %q, want %q", screen.Text, TextPricesEmpty)
		}
		if !screen.HasAction(callback.ChangeCountry{}) {
			t.Error("empty price screen should still offer change country")
		}
	}
}

func TestPrices_MissingPrice(t *testing.T) {
	points := []remote.PricePoint{{Time: "2025-05-01T00:00:00Z"}}
	screen := Prices("Italy", "10Y1001A1001A44P", points)
	if !strings.Contains(screen.Text, "• 00:00 - N/A €/MWh") {
		t.Errorf("missing price should render placeholder:\n%s", screen.Text)
	}
}
