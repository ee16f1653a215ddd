package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"eightcircuits/pkg/game/state"
)

// keyCode pairs a window key with the code the binding table knows it by.
type keyCode struct {
	key  ebiten.Key
	code string
}

// EbitenRenderer is the window front-end. The simulation runs inside
// Ebiten's Update, so no state is shared across goroutines.
type EbitenRenderer struct {
	g *state.Game

	windowWidth  int
	windowHeight int

	// pixelsPerUnit is the current zoom
	pixelsPerUnit float64

	keys []keyCode

	last       time.Time // wall time of the previous Update
	dragging   bool      // look button held
	lastCursor [2]int

	windowOpenedLogged bool

	monoFontSource *text.GoTextFaceSource // Monospace font for glyphs and UI text

	// Cached font faces (invalidated on zoom)
	cachedMonoFace     *text.GoTextFace
	cachedTileFontSize float64
	cachedUIFace       *text.GoTextFace
}
