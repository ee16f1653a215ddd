package tui

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"

	"eightcircuits/pkg/engine/input"
	"eightcircuits/pkg/engine/terminal"
	"eightcircuits/pkg/game/gameplay"
	"eightcircuits/pkg/game/renderer"
	"eightcircuits/pkg/game/state"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 7
	ViewportMinCols = 15
	// Lines needed outside the map:
	// - Header + blank (2)
	// - Player line (1)
	// - Messages (up to 5)
	// - Hints (2)
	// - Blank separators (2)
	ViewportTopMargin = 12
)

// loadingBarWidth is the inner width of the loading progress bar.
const loadingBarWidth = 40

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	keys *input.KeyReader
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init checks that the session runs in a terminal.
func (t *TUIRenderer) Init() error {
	if !terminal.IsTerminal() {
		return errors.New("the terminal front-end needs an interactive terminal")
	}
	renderer.InitColors()
	return nil
}

// Run reads keys in raw mode and redraws on every frame tick until the
// session quits or stdin closes. Key presses pulse held controls, since
// terminals report no key releases.
func (t *TUIRenderer) Run(g *state.Game) error {
	keys, err := input.StartKeyReader()
	if err != nil {
		return err
	}
	t.keys = keys
	defer keys.Restore()

	terminal.ClearScreen(os.Stdout)
	terminal.HideCursor(os.Stdout)
	defer terminal.ShowCursor(os.Stdout)

	fps := g.Config.Display.FrameRate
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	t.RenderFrame(g)
	for !g.Quit {
		select {
		case raw, ok := <-keys.Events():
			if !ok {
				return nil
			}
			intent := input.MapToIntent(input.NewDebouncedInput(raw))
			gameplay.Dispatch(g, intent, g.Config.Display.HeldPulseSeconds)
		case now := <-ticker.C:
			gameplay.Advance(g, now.Sub(last))
			last = now
			t.RenderFrame(g)
		}
	}
	terminal.ClearScreen(os.Stdout)
	return nil
}

// RenderFrame draws the whole frame in place.
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	terminal.WriteFrame(os.Stdout, t.frameLines(g))
}

// frameLines builds the frame for a terminal of the current size.
func (t *TUIRenderer) frameLines(g *state.Game) []string {
	width, height := terminal.GetSize()
	return BuildFrame(g, width, height)
}

// BuildFrame lays out one frame for a width by height terminal.
func BuildFrame(g *state.Game, width, height int) []string {
	lines := []string{renderer.FormatMarkup(gameplay.Header(g)), ""}

	switch g.Phase {
	case state.PhaseLoading:
		lines = append(lines, "  "+renderer.LoadingBar(g.Loading, state.MaxLoading, loadingBarWidth), "")
	case state.PhasePaused:
		lines = append(lines, menuLines(g)...)
		lines = append(lines, "")
	default:
		lines = append(lines, mapLines(g, width, height)...)
		lines = append(lines, "", renderer.ColorSubtle.Sprint(gameplay.PlayerLine(g)))
		for _, s := range g.Status {
			lines = append(lines, renderer.ColorStatus.Sprint(s))
		}
		lines = append(lines, "")
	}

	lines = append(lines, g.Messages...)
	for _, h := range gameplay.Hints(g) {
		lines = append(lines, renderer.FormatMarkup(h))
	}
	return lines
}

// mapLines rasterises the live scene to fit the terminal.
func mapLines(g *state.Game, width, height int) []string {
	rows := height - ViewportTopMargin - len(g.Status)
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}
	cols := width
	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}

	grid := renderer.Raster(g, cols, rows, g.Config.Display.CellSize)
	lines := make([]string, 0, len(grid))
	for _, row := range grid {
		var sb strings.Builder
		for _, c := range row {
			switch {
			case c.Glyph == 0:
				sb.WriteByte(' ')
			case c.Player:
				sb.WriteString(renderer.ColorPlayer.Sprint("@"))
			default:
				r, gr, b := c.Color.Bytes()
				sb.WriteString(color.RGB(r, gr, b).Sprint(string(c.Glyph)))
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// menuLines renders the open menu, highlighting the selected entry.
func menuLines(g *state.Game) []string {
	if g.Menu == nil {
		return nil
	}
	lines := g.Menu.Lines()
	for i, l := range lines {
		switch {
		case i == 0:
			lines[i] = renderer.ColorTitle.Sprint(l)
		case strings.HasPrefix(l, "> "):
			lines[i] = renderer.ColorSelected.Sprint(l)
		}
	}
	return lines
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	return renderer.StyleFor(style).Sprint(text)
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	return renderer.FormatString(msg, args...)
}
