package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/config"
	"github.com/energyops/assetbot/internal/remote"
)

// Price display caps
const (
	MaxPriceDates    = 2
	MaxPricesPerDate = 24
)

const (
	priceDateLayout  = "2006-01-02"
	priceClockLayout = "15:04"
)

var priceTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parsePriceTime(s string) (time.Time, bool) {
	for _, layout := range priceTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CountryMenu lists every country in registry order.
func CountryMenu(countries []config.Country) Screen {
	rows := make([][]Button, 0, len(countries))
	for _, c := range countries {
		action := callback.ShowPrices{CountryCode: c.Code}
		if callback.Fits(action) {
			rows = append(rows, row(c.Name, action))
		}
	}
	return Screen{Text: TextSelectCountry, Rows: rows}
}

func priceNav(countryCode string) [][]Button {
	return [][]Button{
		row(LabelRefresh, callback.ShowPrices{CountryCode: countryCode}),
		row(LabelChangeCountry, callback.ChangeCountry{}),
	}
}

// Prices groups day-ahead prices by calendar date, in each timestamp's own
// offset. At most MaxPriceDates dates are shown, earliest first, with at most
// MaxPricesPerDate entries each. Entries with an unparseable time are dropped.
func Prices(countryName, countryCode string, points []remote.PricePoint) Screen {
	byDate := make(map[string][]string)
	for _, p := range points {
		t, ok := parsePriceTime(p.Time)
		if !ok {
			continue
		}
		date := t.Format(priceDateLayout)
		if len(byDate[date]) >= MaxPricesPerDate {
			continue
		}
		byDate[date] = append(byDate[date],
			fmt.Sprintf("• %s - %s €/MWh", t.Format(priceClockLayout), p.Price.Or(Placeholder)))
	}

	if len(byDate) == 0 {
		return Screen{Text: TextPricesEmpty, Rows: priceNav(countryCode)}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > MaxPriceDates {
		dates = dates[:MaxPriceDates]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Market Prices for %s:\n\n", countryName)
	for _, d := range dates {
		fmt.Fprintf(&b, "📅 %s\n", d)
		b.WriteString(strings.Join(byDate[d], "\n"))
		b.WriteString("\n\n")
	}

	return Screen{Text: strings.TrimRight(b.String(), "\n"), Rows: priceNav(countryCode)}
}

// PricesFailed reports a failed price fetch; the buttons still work.
func PricesFailed(countryCode string) Screen {
	return Screen{Text: TextPricesFailure, Rows: priceNav(countryCode)}
}
