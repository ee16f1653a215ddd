package ebiten

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// loadFonts parses the embedded Go Mono font.
func (e *EbitenRenderer) loadFonts() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return err
	}
	e.monoFontSource = src
	return nil
}

// getTileFontSize returns the font size for node glyphs, scaled to the zoom
func (e *EbitenRenderer) getTileFontSize() float64 {
	size := baseFontSize * e.pixelsPerUnit / 8.0
	if size < 8 {
		size = 8
	}
	return size
}

// getMonoFontFace returns a cached monospace font face for node glyphs
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	size := e.getTileFontSize()
	if e.cachedMonoFace == nil || e.cachedTileFontSize != size {
		e.cachedTileFontSize = size
		e.cachedMonoFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   size,
		}
	}
	return e.cachedMonoFace
}

// getUIFontFace returns the face for HUD and menu text, which does not zoom
func (e *EbitenRenderer) getUIFontFace() *text.GoTextFace {
	if e.cachedUIFace == nil {
		e.cachedUIFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   uiFontSize,
		}
	}
	return e.cachedUIFace
}

// invalidateFontCache clears cached glyph faces (call when the zoom changes)
func (e *EbitenRenderer) invalidateFontCache() {
	e.cachedMonoFace = nil
}
