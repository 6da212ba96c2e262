package bot

import (
	"context"

	"github.com/energyops/assetbot/internal/remote"
	"github.com/energyops/assetbot/internal/views"
)

func (b *Bot) countryMenu(ctx context.Context, in *interaction) {
	in.show(ctx, views.CountryMenu(b.countries.All()))
}

// prices shows day-ahead prices. Codes outside the registry are still
// queried and shown under the raw code.
func (b *Bot) prices(ctx context.Context, in *interaction, countryCode string) {
	name, ok := b.countries.NameFor(countryCode)
	if !ok {
		name = countryCode
	}

	in.show(ctx, views.Screen{Text: views.TextPricesLoading})

	points, err := b.api.DayAheadPrices(ctx, countryCode)
	if err != nil {
		in.fail(remote.PathMarketPrices, err)
		in.show(ctx, views.PricesFailed(countryCode))
		return
	}

	in.show(ctx, views.Prices(name, countryCode, points))
}
