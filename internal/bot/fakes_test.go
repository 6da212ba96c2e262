package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/energyops/assetbot/internal/events"
	"github.com/energyops/assetbot/internal/remote"
	"github.com/energyops/assetbot/internal/views"
)

type op struct {
	kind       string // "send", "edit" or "answer"
	chatID     int64
	messageID  int
	callbackID string
	screen     views.Screen
}

type fakeMessenger struct {
	mu      sync.Mutex
	ops     []op
	nextID  int
	sendErr error
}

func (m *fakeMessenger) Send(_ context.Context, chatID int64, screen views.Screen) (MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return MessageRef{}, m.sendErr
	}
	m.nextID++
	m.ops = append(m.ops, op{kind: "send", chatID: chatID, messageID: m.nextID, screen: screen})
	return MessageRef{ChatID: chatID, MessageID: m.nextID}, nil
}

func (m *fakeMessenger) Edit(_ context.Context, msg MessageRef, screen views.Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op{kind: "edit", chatID: msg.ChatID, messageID: msg.MessageID, screen: screen})
	return nil
}

func (m *fakeMessenger) Answer(_ context.Context, callbackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op{kind: "answer", callbackID: callbackID})
	return nil
}

func (m *fakeMessenger) all() []op {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]op(nil), m.ops...)
}

// last returns the final screen shown.
func (m *fakeMessenger) last() views.Screen {
	ops := m.all()
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].kind != "answer" {
			return ops[i].screen
		}
	}
	return views.Screen{}
}

type modeCall struct {
	deviceID string
	mode     remote.OperationMode
}

type fakeAPI struct {
	mu sync.Mutex

	systems  []remote.Asset
	sites    []remote.Asset
	vehicles []remote.Asset
	devices  []remote.Device
	battery  *remote.BatteryStatus
	prices   []remote.PricePoint
	err      error // returned by every call when set
	panicMsg string

	modeCalls    []modeCall
	priceQueries []string
}

func (f *fakeAPI) ListSystems(context.Context) ([]remote.Asset, error) {
	return f.systems, f.err
}

func (f *fakeAPI) ListSites(context.Context) ([]remote.Asset, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.sites, f.err
}

func (f *fakeAPI) ListVehicles(context.Context) ([]remote.Asset, error) {
	return f.vehicles, f.err
}

func (f *fakeAPI) ListDevices(context.Context) ([]remote.Device, error) {
	return f.devices, f.err
}

func (f *fakeAPI) GetBattery(context.Context, string) (*remote.BatteryStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.battery, nil
}

func (f *fakeAPI) SetOperationMode(_ context.Context, deviceID string, mode remote.OperationMode) error {
	f.mu.Lock()
	f.modeCalls = append(f.modeCalls, modeCall{deviceID, mode})
	f.mu.Unlock()
	return f.err
}

func (f *fakeAPI) DayAheadPrices(_ context.Context, code string) ([]remote.PricePoint, error) {
	f.mu.Lock()
	f.priceQueries = append(f.priceQueries, code)
	f.mu.Unlock()
	return f.prices, f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.ModeChanged
	err    error
}

func (p *fakePublisher) PublishModeChanged(_ context.Context, ev events.ModeChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

var errBoom = errors.New("boom")
