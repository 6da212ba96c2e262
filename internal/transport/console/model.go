package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/energyops/assetbot/internal/bot"
	"github.com/energyops/assetbot/internal/views"
)

// maxMessages bounds the transcript kept on screen.
const maxMessages = 8

// Handler receives simulated updates. *bot.Bot implements it.
type Handler interface {
	HandleCommand(ctx context.Context, cmd bot.Command)
	HandleCallback(ctx context.Context, cb bot.Callback)
}

type focusArea int

const (
	focusInput focusArea = iota
	focusButtons
)

// keyMap defines key bindings for the console
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Tap    key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Up, k.Down, k.Tap, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Tap, k.Switch, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next row"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev button"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next button"),
		),
		Tap: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send / tap"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "input/buttons"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

type entry struct {
	ref    bot.MessageRef
	screen views.Screen
}

// Model is the console chat simulator.
type Model struct {
	ctx     context.Context
	handler Handler
	chatID  int64

	messages []entry
	focus    focusArea
	row, col int
	taps     int
	status   string
	errored  bool // status reports a problem

	Input textinput.Model
	Help  help.Model
	keys  keyMap
	Width int
}

// NewModel creates a console model that sends interactions to h as chatID.
func NewModel(ctx context.Context, h Handler, chatID int64) Model {
	input := textinput.New()
	input.Placeholder = "/start"
	input.Prompt = "> "
	input.CharLimit = 64
	input.Focus()

	return Model{
		ctx:     ctx,
		handler: h,
		chatID:  chatID,
		Input:   input,
		Help:    help.New(),
		keys:    defaultKeyMap(),
		Width:   GetTerminalWidth(),
	}
}

// Init sends /start so the main menu is shown on launch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.command("start"))
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = min(msg.Width, MaxContentWidth)
		return m, nil

	case screenMsg:
		m.apply(msg)
		return m, nil

	case answeredMsg:
		m.status, m.errored = "", false
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Switch) {
			return m.toggleFocus(), nil
		}
		if m.focus == focusButtons {
			return m.updateButtons(msg)
		}
		if key.Matches(msg, m.keys.Tap) {
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// apply adds a sent message or replaces an edited one.
func (m *Model) apply(msg screenMsg) {
	if msg.edit {
		for i := range m.messages {
			if m.messages[i].ref == msg.ref {
				m.messages[i].screen = msg.screen
				m.clampSelection()
				return
			}
		}
	}

	m.messages = append(m.messages, entry{ref: msg.ref, screen: msg.screen})
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
	m.row, m.col = 0, 0
	m.clampSelection()
}

// active returns the index of the newest message with buttons, or -1.
func (m Model) active() int {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if len(m.messages[i].screen.Rows) > 0 {
			return i
		}
	}
	return -1
}

func (m *Model) clampSelection() {
	idx := m.active()
	if idx < 0 {
		m.row, m.col = 0, 0
		return
	}
	rows := m.messages[idx].screen.Rows
	m.row = max(0, min(m.row, len(rows)-1))
	m.col = max(0, min(m.col, len(rows[m.row])-1))
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput && m.active() >= 0 {
		m.focus = focusButtons
		m.Input.Blur()
		m.clampSelection()
		return m
	}
	m.focus = focusInput
	m.Input.Focus()
	return m
}

func (m Model) updateButtons(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.row--
		m.col = 0
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.col = 0
	case key.Matches(msg, m.keys.Left):
		m.col--
	case key.Matches(msg, m.keys.Right):
		m.col++
	case key.Matches(msg, m.keys.Tap):
		return m.tap()
	}
	m.clampSelection()
	return m, nil
}

// submit sends the input line as a command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.Input.Value())
	m.Input.Reset()
	if text == "" {
		return m, nil
	}
	if !strings.HasPrefix(text, "/") {
		m.status, m.errored = "Commands start with /, e.g. /devices", true
		return m, nil
	}

	name := strings.TrimPrefix(strings.Fields(text)[0], "/")
	m.status, m.errored = "", false
	return m, m.command(name)
}

func (m Model) command(name string) tea.Cmd {
	ctx, h, chatID := m.ctx, m.handler, m.chatID
	return func() tea.Msg {
		h.HandleCommand(ctx, bot.Command{ChatID: chatID, Name: name})
		return nil
	}
}

// tap presses the selected button of the active message.
func (m Model) tap() (tea.Model, tea.Cmd) {
	idx := m.active()
	if idx < 0 {
		return m, nil
	}
	e := m.messages[idx]
	b := e.screen.Rows[m.row][m.col]

	data, err := b.Data()
	if err != nil {
		m.status, m.errored = fmt.Sprintf("Cannot tap %q: %v", b.Label, err), true
		return m, nil
	}

	m.taps++
	cb := bot.Callback{ID: fmt.Sprintf("console-%d", m.taps), Message: e.ref, Data: data}
	m.status, m.errored = "⏳ "+b.Label, false
	ctx, h := m.ctx, m.handler
	return m, func() tea.Msg {
		h.HandleCallback(ctx, cb)
		return nil
	}
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("assetbot console"))
	b.WriteString("\n\n")

	active := m.active()
	inner := max(m.Width-4, 20)
	for i, e := range m.messages {
		style := MessageStyle
		if i == active {
			style = ActiveMessageStyle
		}
		body := lipgloss.NewStyle().Width(inner).Render(displayText(e.screen))
		if len(e.screen.Rows) > 0 {
			body += "\n" + m.renderButtons(e.screen, i == active && m.focus == focusButtons)
		}
		b.WriteString(style.Render(body))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := StatusStyle
		if m.errored {
			style = ErrorStatusStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.Input.View())
	b.WriteString("\n")
	b.WriteString(m.Help.View(m.keys))
	return b.String()
}

func (m Model) renderButtons(screen views.Screen, selectable bool) string {
	lines := make([]string, 0, len(screen.Rows))
	for r, row := range screen.Rows {
		cells := make([]string, 0, len(row))
		for c, btn := range row {
			style := ButtonStyle
			if selectable && r == m.row && c == m.col {
				style = SelectedButtonStyle
			}
			cells = append(cells, style.Render(btn.Label))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// displayText strips legacy Markdown markers from Markdown screens.
func displayText(s views.Screen) string {
	if !s.Markdown {
		return s.Text
	}

	var b strings.Builder
	escaped, inCode := false, false
	for _, r := range s.Text {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '`':
			inCode = !inCode
		case inCode:
			b.WriteRune(r)
		case r == '\\':
			escaped = true
		case r == '*' || r == '_':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Run starts the console program and blocks until the user quits or ctx is
// canceled. The messenger is attached for the lifetime of the program.
func Run(ctx context.Context, m *Messenger, h Handler, chatID int64) error {
	if !IsTerminal() {
		return fmt.Errorf("console requires an interactive terminal")
	}

	p := tea.NewProgram(NewModel(ctx, h, chatID), tea.WithAltScreen(), tea.WithContext(ctx))
	m.attach(p)
	defer m.attach(nil)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
