package views

import (
	"strings"

	"github.com/energyops/assetbot/internal/callback"
)

// Placeholder is rendered for any absent field.
const Placeholder = "N/A"

// Button is an inline button and the action it triggers.
type Button struct {
	Label  string
	Action callback.Action
}

// Data encodes the button's action as callback data.
func (b Button) Data() (string, error) {
	return callback.Encode(b.Action)
}

// Screen is the rendered unit sent to (or edited into) a chat.
type Screen struct {
	Text     string
	Markdown bool       // Text uses the platform's legacy Markdown
	Rows     [][]Button // One slice per keyboard row
}

// Buttons returns all buttons in row order.
func (s Screen) Buttons() []Button {
	var out []Button
	for _, row := range s.Rows {
		out = append(out, row...)
	}
	return out
}

// HasAction reports whether any button targets a.
func (s Screen) HasAction(a callback.Action) bool {
	for _, b := range s.Buttons() {
		if b.Action == a {
			return true
		}
	}
	return false
}

// row builds a single-button keyboard row.
func row(label string, a callback.Action) []Button {
	return []Button{{Label: label, Action: a}}
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// escape makes s safe to embed in legacy Markdown text.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// code renders s as an inline code span. Backticks cannot be escaped inside
// a span, so they are dropped.
func code(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "") + "`"
}
