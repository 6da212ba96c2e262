package bot

import (
	"context"

	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/remote"
	"github.com/energyops/assetbot/internal/views"
)

// listHandler is the shared fetch-and-render policy for every list.
type listHandler[T any] struct {
	resource string          // Used in the placeholder text
	path     string          // Logged on failure
	retry    callback.Action // Re-runs the same list
	fetch    func(context.Context) ([]T, error)
	render   func([]T) views.Screen
}

// run shows the placeholder, fetches and replaces the placeholder with the
// rendered list or a failure screen. Nothing is cached between runs.
func (l listHandler[T]) run(ctx context.Context, in *interaction) {
	in.show(ctx, views.Loading(l.resource))

	items, err := l.fetch(ctx)
	if err != nil {
		in.fail(l.path, err)
		in.show(ctx, views.ListFailure(err, l.retry))
		return
	}

	in.show(ctx, l.render(items))
}

func (b *Bot) listSystems(ctx context.Context, in *interaction) {
	listHandler[remote.Asset]{
		resource: "systems",
		path:     remote.PathSystems,
		retry:    callback.ShowSystemList{},
		fetch:    b.api.ListSystems,
		render:   views.Systems,
	}.run(ctx, in)
}

func (b *Bot) listSites(ctx context.Context, in *interaction) {
	listHandler[remote.Asset]{
		resource: "site",
		path:     remote.PathSites,
		retry:    callback.ShowSiteList{},
		fetch:    b.api.ListSites,
		render:   views.Sites,
	}.run(ctx, in)
}

func (b *Bot) listVehicles(ctx context.Context, in *interaction) {
	listHandler[remote.Asset]{
		resource: "vehicles",
		path:     remote.PathVehicles,
		retry:    callback.ShowVehicleList{},
		fetch:    b.api.ListVehicles,
		render:   views.Vehicles,
	}.run(ctx, in)
}

func (b *Bot) listDevices(ctx context.Context, in *interaction) {
	listHandler[remote.Device]{
		resource: "devices",
		path:     remote.PathDevices,
		retry:    callback.ShowDeviceList{},
		fetch:    b.api.ListDevices,
		render:   views.Devices,
	}.run(ctx, in)
}
