package bot

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/config"
	"github.com/energyops/assetbot/internal/events"
	"github.com/energyops/assetbot/internal/logging"
	"github.com/energyops/assetbot/internal/remote"
	"github.com/energyops/assetbot/internal/views"
)

// Bot dispatches interactions. It is safe for concurrent use.
type Bot struct {
	messenger Messenger
	api       API
	countries *config.CountryRegistry
	events    events.Publisher

	newID func() string
	now   func() time.Time

	active   atomic.Int64
	handled  atomic.Uint64
	failures atomic.Uint64
}

// Stats is a snapshot of interaction counters.
type Stats struct {
	Active   int64  `json:"active"`
	Handled  uint64 `json:"handled"`
	Failures uint64 `json:"failures"`
}

// New creates a Bot. A nil registry falls back to the default countries.
func New(messenger Messenger, api API, countries *config.CountryRegistry) *Bot {
	if countries == nil {
		countries = config.DefaultCountries()
	}
	return &Bot{
		messenger: messenger,
		api:       api,
		countries: countries,
		events:    events.Nop{},
		newID:     func() string { return uuid.NewString() },
		now:       time.Now,
	}
}

// SetPublisher sets where mode change events are sent.
func (b *Bot) SetPublisher(p events.Publisher) {
	if p == nil {
		p = events.Nop{}
	}
	b.events = p
}

// Stats returns the current counters.
func (b *Bot) Stats() Stats {
	return Stats{
		Active:   b.active.Load(),
		Handled:  b.handled.Load(),
		Failures: b.failures.Load(),
	}
}

// interaction is the state of one command or tap.
type interaction struct {
	bot    *Bot
	id     string
	chatID int64
	tag    callback.Tag
	msg    *MessageRef // nil until a message has been sent
}

func (b *Bot) begin(chatID int64, kind, detail string) *interaction {
	in := &interaction{bot: b, id: b.newID(), chatID: chatID, tag: callback.TagUnknown}
	b.active.Add(1)
	logging.LogInteraction(in.id, chatID, kind, detail)
	return in
}

// end recovers a panicking handler so the user still gets a screen.
func (b *Bot) end(ctx context.Context, in *interaction) {
	if r := recover(); r != nil {
		in.fail("", fmt.Errorf("panic: %v", r))
		in.show(ctx, views.InternalFailure())
	}
	b.active.Add(-1)
	b.handled.Add(1)
}

// show edits the interaction's message, or sends one if there is none yet.
// Transport failures are logged; the interaction carries on.
func (in *interaction) show(ctx context.Context, screen views.Screen) {
	m := in.bot.messenger
	if in.msg != nil {
		if err := m.Edit(ctx, *in.msg, screen); err != nil {
			logging.Warn("Failed to edit message",
				zap.String("interaction_id", in.id),
				zap.Int64("chat_id", in.chatID),
				zap.Error(err),
			)
		}
		return
	}

	ref, err := m.Send(ctx, in.chatID, screen)
	if err != nil {
		logging.Warn("Failed to send message",
			zap.String("interaction_id", in.id),
			zap.Int64("chat_id", in.chatID),
			zap.Error(err),
		)
		return
	}
	in.msg = &ref
}

// fail records a caught failure. The path recorded on a REST error wins over
// the handler's fallback.
func (in *interaction) fail(fallback string, err error) {
	in.bot.failures.Add(1)
	path := remote.PathOf(err)
	if path == "" {
		path = fallback
	}
	logging.LogFailure(in.id, string(in.tag), path, err, zap.Bool("timeout", remote.IsTimeout(err)))
}

// HandleCommand runs a typed command. Replies are sent as new messages.
func (b *Bot) HandleCommand(ctx context.Context, cmd Command) {
	in := b.begin(cmd.ChatID, "command", cmd.Name)
	defer b.end(ctx, in)

	switch cmd.Name {
	case "start", "help":
		in.show(ctx, views.StartMenu())
	case "devices":
		in.tag = callback.TagShowDeviceList
		b.listDevices(ctx, in)
	case "sites":
		in.tag = callback.TagShowSiteList
		b.listSites(ctx, in)
	case "systems":
		in.tag = callback.TagShowSystemList
		b.listSystems(ctx, in)
	case "vehicles":
		in.tag = callback.TagShowVehicleList
		b.listVehicles(ctx, in)
	case "marketprices":
		in.tag = callback.TagChangeCountry
		b.countryMenu(ctx, in)
	default:
		in.fail("", fmt.Errorf("unknown command %q", cmd.Name))
		in.show(ctx, views.UnknownCommand())
	}
}

// HandleCallback runs a button tap. The tap is acknowledged first and the
// tapped message is edited in place.
func (b *Bot) HandleCallback(ctx context.Context, cb Callback) {
	in := b.begin(cb.Message.ChatID, "callback", cb.Data)
	in.msg = &cb.Message
	defer b.end(ctx, in)

	if err := b.messenger.Answer(ctx, cb.ID); err != nil {
		logging.Warn("Failed to answer callback",
			zap.String("interaction_id", in.id),
			zap.Error(err),
		)
	}

	action, err := callback.Decode(cb.Data)
	if err != nil {
		var decErr *callback.DecodeError
		if errors.As(err, &decErr) {
			in.tag = decErr.Tag
		}
		in.fail("", err)
		if callback.IsInvalid(err) {
			in.show(ctx, views.InvalidRequest())
		} else {
			in.show(ctx, views.UnknownCommand())
		}
		return
	}

	in.tag = action.Tag()
	b.dispatch(ctx, in, action)
}

// dispatch routes a decoded action to its handler.
func (b *Bot) dispatch(ctx context.Context, in *interaction, action callback.Action) {
	switch a := action.(type) {
	case callback.ShowDeviceList:
		b.listDevices(ctx, in)
	case callback.ShowSiteList:
		b.listSites(ctx, in)
	case callback.ShowVehicleList:
		b.listVehicles(ctx, in)
	case callback.ShowSystemList:
		b.listSystems(ctx, in)
	case callback.ShowDeviceControls:
		b.showControls(ctx, in, a.DeviceID)
	case callback.ShowDeviceDetails:
		// No separate details screen exists; details open the controls.
		b.showControls(ctx, in, a.DeviceID)
	case callback.SetOperationMode:
		b.setMode(ctx, in, a.DeviceID, a.Mode)
	case callback.ShowBatteryStatus:
		b.batteryStatus(ctx, in, a.DeviceID)
	case callback.ShowPrices:
		b.prices(ctx, in, a.CountryCode)
	case callback.ChangeCountry:
		b.countryMenu(ctx, in)
	case callback.ShowSite:
		in.show(ctx, views.NotImplemented("Site details", callback.ShowSiteList{}))
	case callback.ShowVehicle:
		in.show(ctx, views.NotImplemented("Vehicle details", callback.ShowVehicleList{}))
	default:
		in.fail("", fmt.Errorf("no handler for %T", action))
		in.show(ctx, views.UnknownCommand())
	}
}
