package ebiten

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/gameplay"
	"eightcircuits/pkg/game/renderer"
	"eightcircuits/pkg/game/state"
)

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	g := e.g
	if g == nil || e.monoFontSource == nil {
		screen.Fill(colorBackground)
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	if g.Phase == state.PhaseLoading {
		screen.Fill(colorBackground)
		e.drawLoading(screen, w, h)
	} else {
		if r := g.Coordinator.Active(); r != nil {
			screen.Fill(toRGBA(r.Scene().Sky, 255))
		} else {
			screen.Fill(colorBackground)
		}
		e.drawScene(screen, w, h)
	}
	e.drawHUD(screen, w, h)
	if g.Menu != nil {
		e.drawMenu(screen, w, h)
	}
}

func toRGBA(c scene.Color, alpha uint8) color.RGBA {
	r, g, b := c.Bytes()
	return color.RGBA{r, g, b, alpha}
}

// drawScene draws the live realm from above, centred on the view.
func (e *EbitenRenderer) drawScene(screen *ebiten.Image, w, h int) {
	g := e.g
	r := g.Coordinator.Active()
	if r == nil {
		return
	}
	v := renderer.ViewOf(g)
	cx, cy := float64(w)/2, float64(h)/2
	ppu := e.pixelsPerUnit

	for _, n := range renderer.DrawList(r.Scene()) {
		x, y := v.Project(n.Position)
		px, py := float32(cx+x*ppu), float32(cy+y*ppu)
		if px < -50 || py < -50 || px > float32(w)+50 || py > float32(h)+50 {
			continue
		}
		c := renderer.Dim(n)
		radius := float32(math.Max(2, n.Scale*ppu/2))
		switch n.Kind {
		case scene.KindLight:
			// A soft halo; brighter lights reach further.
			halo := radius * float32(1+n.Intensity)
			vector.DrawFilledCircle(screen, px, py, halo, toRGBA(c, 60), true)
		case scene.KindParticles:
			e.drawGlyph(screen, string(n.Glyph), px, py, toRGBA(c, 255))
		default:
			if n.Wireframe {
				vector.StrokeCircle(screen, px, py, radius, 1.5, toRGBA(c, 255), true)
			} else {
				vector.DrawFilledCircle(screen, px, py, radius, toRGBA(c, 200), true)
			}
			e.drawGlyph(screen, string(n.Glyph), px, py, colorTitle)
		}
	}

	if g.Mode == state.ModePlayer && g.Player != nil {
		x, y := v.Project(g.Player.Position())
		px, py := float32(cx+x*ppu), float32(cy+y*ppu)
		vector.DrawFilledCircle(screen, px, py, float32(ppu/2+2), color.RGBA{0, 0, 0, 180}, true)
		e.drawGlyph(screen, PlayerIcon, px, py, colorPlayer)
	}
}

// drawGlyph centres s on (x, y) in the zoomed glyph face.
func (e *EbitenRenderer) drawGlyph(screen *ebiten.Image, s string, x, y float32, clr color.Color) {
	face := e.getMonoFontFace()
	tw, th := text.Measure(s, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)-tw/2, float64(y)-th/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawLine draws one HUD line at (x, y) and returns the y of the next line.
func (e *EbitenRenderer) drawLine(screen *ebiten.Image, s string, x, y float64, clr color.Color) float64 {
	face := e.getUIFontFace()
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
	return y + face.Size*hudLineSpacing
}

// drawLoading draws the progress bar in the middle of the window.
func (e *EbitenRenderer) drawLoading(screen *ebiten.Image, w, h int) {
	g := e.g
	x := (float64(w) - loadingBarW) / 2
	y := float64(h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), loadingBarW, loadingBarH, colorBarEmpty, false)
	filled := loadingBarW * float64(g.Loading) / state.MaxLoading
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(filled), loadingBarH, colorAction, false)

	label := fmt.Sprintf("%d%%", g.Loading*100/state.MaxLoading)
	face := e.getUIFontFace()
	tw, _ := text.Measure(label, face, 0)
	e.drawLine(screen, label, (float64(w)-tw)/2, y+loadingBarH+8, colorText)
}

// drawHUD draws the header and status at the top, messages and hints at the bottom.
func (e *EbitenRenderer) drawHUD(screen *ebiten.Image, w, h int) {
	g := e.g
	y := hudMargin
	y = e.drawLine(screen, renderer.PlainMarkup(gameplay.Header(g)), hudMargin, y, colorTitle)
	if g.Phase == state.PhasePlaying {
		y = e.drawLine(screen, gameplay.PlayerLine(g), hudMargin, y, colorSubtle)
		for _, s := range g.Status {
			y = e.drawLine(screen, s, hudMargin, y, colorStatus)
		}
	}

	hints := gameplay.Hints(g)
	lineH := e.getUIFontFace().Size * hudLineSpacing
	y = float64(h) - hudMargin - lineH*float64(len(g.Messages)+len(hints))
	for _, m := range g.Messages {
		y = e.drawLine(screen, m, hudMargin, y, colorText)
	}
	for _, hint := range hints {
		y = e.drawLine(screen, renderer.PlainMarkup(hint), hudMargin, y, colorAction)
	}
}

// drawMenu draws the open menu in a panel over a dimmed scene.
func (e *EbitenRenderer) drawMenu(screen *ebiten.Image, w, h int) {
	m := e.g.Menu
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), colorOverlay, false)

	face := e.getUIFontFace()
	lines := m.Lines()
	lineH := face.Size * hudLineSpacing
	panelW := 0.0
	for _, l := range lines {
		if tw, _ := text.Measure(l, face, 0); tw > panelW {
			panelW = tw
		}
	}
	panelW += 2 * menuPadding
	panelH := lineH*float64(len(lines)) + 2*menuPadding
	px := (float64(w) - panelW) / 2
	py := (float64(h) - panelH) / 2
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(panelW), float32(panelH), colorPanelBackground, false)

	y := py + menuPadding
	for i, l := range lines {
		clr := colorText
		switch {
		case i == 0:
			clr = colorTitle
		case len(l) > 2 && l[:2] == "> ":
			vector.DrawFilledRect(screen, float32(px), float32(y-2), float32(panelW), float32(lineH), colorFocusBackground, false)
			clr = colorTitle
		}
		y = e.drawLine(screen, l, px+menuPadding, y, clr)
	}
}
