package console

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/energyops/assetbot/internal/bot"
	"github.com/energyops/assetbot/internal/views"
)

// ErrNotAttached is returned when the console program is not running.
var ErrNotAttached = errors.New("console: no program attached")

// screenMsg delivers a new or edited message to the model.
type screenMsg struct {
	ref    bot.MessageRef
	screen views.Screen
	edit   bool
}

// answeredMsg reports that a button tap was acknowledged.
type answeredMsg struct {
	callbackID string
}

// sender is the part of *tea.Program the messenger needs.
type sender interface {
	Send(msg tea.Msg)
}

// Messenger implements bot.Messenger by posting messages into the running
// console program.
type Messenger struct {
	mu     sync.Mutex
	prog   sender
	nextID int
}

var _ bot.Messenger = (*Messenger)(nil)

// NewMessenger returns a Messenger with no program attached. Run attaches one.
func NewMessenger() *Messenger {
	return &Messenger{}
}

func (m *Messenger) attach(s sender) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prog = s
}

func (m *Messenger) program() sender {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prog
}

// Send implements bot.Messenger.
func (m *Messenger) Send(_ context.Context, chatID int64, screen views.Screen) (bot.MessageRef, error) {
	m.mu.Lock()
	p := m.prog
	m.nextID++
	ref := bot.MessageRef{ChatID: chatID, MessageID: m.nextID}
	m.mu.Unlock()

	if p == nil {
		return bot.MessageRef{}, ErrNotAttached
	}
	p.Send(screenMsg{ref: ref, screen: screen})
	return ref, nil
}

// Edit implements bot.Messenger.
func (m *Messenger) Edit(_ context.Context, ref bot.MessageRef, screen views.Screen) error {
	p := m.program()
	if p == nil {
		return ErrNotAttached
	}
	p.Send(screenMsg{ref: ref, screen: screen, edit: true})
	return nil
}

// Answer implements bot.Messenger.
func (m *Messenger) Answer(_ context.Context, callbackID string) error {
	p := m.program()
	if p == nil {
		return ErrNotAttached
	}
	p.Send(answeredMsg{callbackID: callbackID})
	return nil
}
