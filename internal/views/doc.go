// Package views turns REST payloads into Screens: the text and inline
// button layout shown to the user after every interaction.
//
// Renderers are pure. They never perform I/O and never fail; a missing field
// renders as Placeholder. Buttons carry callback.Action values, which the
// transport encodes when the screen is sent.
package views
