package renderer

import (
	"eightcircuits/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTitle
	StyleRealm
	StyleKey
	StyleStatus
	StyleWarning
	StyleSubtle
	StyleSelected
	StylePlayer
)

// Renderer defines the interface for game rendering backends
// Implementations are the terminal front-end and the Ebiten window.
type Renderer interface {
	// Init initializes the renderer (colors, fonts, window, etc.)
	Init() error

	// Run drives the frame loop until the session quits or the window closes.
	Run(g *state.Game) error

	// RenderFrame renders a complete game frame
	// This includes the scene, status lines, messages and any open menu
	RenderFrame(g *state.Game)

	// StyleText applies a style to text and returns the styled string
	// For TUI this applies ANSI colors, for GUI it returns the plain text
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// FormatText formats a message with markup
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return PlainText(msg, args...)
}
