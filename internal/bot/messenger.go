package bot

import (
	"context"

	"github.com/energyops/assetbot/internal/remote"
	"github.com/energyops/assetbot/internal/views"
)

// MessageRef identifies a message already shown in a chat.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Messenger is the chat platform boundary.
type Messenger interface {
	// Send posts a new message and returns a reference for later edits.
	Send(ctx context.Context, chatID int64, screen views.Screen) (MessageRef, error)
	// Edit replaces the text and buttons of an existing message.
	Edit(ctx context.Context, msg MessageRef, screen views.Screen) error
	// Answer acknowledges a button tap so the client stops waiting.
	Answer(ctx context.Context, callbackID string) error
}

// API is the part of the REST client the bot uses. *remote.Client
// implements it.
type API interface {
	ListSystems(ctx context.Context) ([]remote.Asset, error)
	ListSites(ctx context.Context) ([]remote.Asset, error)
	ListVehicles(ctx context.Context) ([]remote.Asset, error)
	ListDevices(ctx context.Context) ([]remote.Device, error)
	GetBattery(ctx context.Context, externalCode string) (*remote.BatteryStatus, error)
	SetOperationMode(ctx context.Context, externalCode string, mode remote.OperationMode) error
	DayAheadPrices(ctx context.Context, countryCode string) ([]remote.PricePoint, error)
}

var _ API = (*remote.Client)(nil)

// Command is a typed command such as /devices, without the slash.
type Command struct {
	ChatID int64
	Name   string
}

// Callback is a button tap.
type Callback struct {
	ID      string     // Platform id used to acknowledge the tap
	Message MessageRef // Message carrying the tapped button
	Data    string     // Callback token
}

// CommandInfo describes a command for platform menus.
type CommandInfo struct {
	Name        string
	Description string
}

// Commands lists every supported command in menu order.
var Commands = []CommandInfo{
	{"start", "Show the main menu"},
	{"devices", "List batteries and control them"},
	{"sites", "List sites"},
	{"systems", "List systems"},
	{"vehicles", "List vehicles"},
	{"marketprices", "Day-ahead market prices"},
}
