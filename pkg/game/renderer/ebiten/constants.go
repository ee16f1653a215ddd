// Package ebiten provides an Ebiten-based 2D graphical renderer for the eight circuits.
package ebiten

import "image/color"

// Color palette for the window chrome. Scene nodes carry their own colours.
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorPlayer          = color.RGBA{0, 255, 0, 255}     // Bright green
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorTitle           = color.RGBA{255, 255, 255, 255}
	colorStatus          = color.RGBA{140, 255, 140, 255}
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorFocusBackground = color.RGBA{60, 80, 100, 200}   // Selected menu entry
	colorOverlay         = color.RGBA{0, 0, 0, 140}
	colorBarEmpty        = color.RGBA{50, 50, 70, 255}
)

const PlayerIcon = "@"

// Zoom constraints, in pixels per world unit
const (
	minPixelsPerUnit  = 2.0
	maxPixelsPerUnit  = 48.0
	pixelsPerUnitStep = 2.0
	baseFontSize      = 16.0
	uiFontSize        = 14.0
)

// Layout of the HUD
const (
	hudMargin      = 12.0
	hudLineSpacing = 1.3
	loadingBarW    = 400.0
	loadingBarH    = 18.0
	menuPadding    = 16.0
)
