package ebiten

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/renderer"
	"eightcircuits/pkg/game/state"
)

// New creates a new Ebiten renderer sized from the current configuration
func New() *EbitenRenderer {
	d := config.Current().Display
	return &EbitenRenderer{
		windowWidth:   d.Width,
		windowHeight:  d.Height,
		pixelsPerUnit: d.PixelsPerUnit,
		keys:          windowKeys(),
	}
}

// Init loads the font and sets up the window
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return fmt.Errorf("cannot load font: %w", err)
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("The Eight Circuits")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fps := config.Current().Display.FrameRate; fps > 0 {
		ebiten.SetTPS(fps)
	}
	return nil
}

// Run starts the Ebiten game loop. It returns when the session quits or the
// window is closed.
func (e *EbitenRenderer) Run(g *state.Game) error {
	e.g = g
	e.last = time.Now()
	// Update returns ebiten.Termination on quit, which RunGame reports as nil.
	return ebiten.RunGame(e)
}

// RenderFrame points the renderer at g. Drawing happens in Draw, which
// Ebiten calls once per frame.
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.g = g
}

// Layout returns the game's logical screen size, which tracks the window
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
	}
	return e.windowWidth, e.windowHeight
}

// StyleText returns the text as-is; the window colours whole lines instead.
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// FormatText formats a message and reduces markup to plain text
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	return renderer.PlainText(msg, args...)
}
