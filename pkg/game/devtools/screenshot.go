package devtools

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"

	"eightcircuits/pkg/game/renderer"
	"eightcircuits/pkg/game/state"
)

// Screenshot map dimensions, in cells.
const (
	screenshotCols = 61
	screenshotRows = 31
)

// SaveScreenshotHTML saves the current top-down view as an HTML file and
// returns its name.
func SaveScreenshotHTML(g *state.Game) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("screenshot-%s.html", timestamp)
	if err := os.WriteFile(filename, []byte(ScreenshotHTML(g)), 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// ScreenshotHTML renders the current top-down view, status lines and
// messages as a standalone HTML page.
func ScreenshotHTML(g *state.Game) string {
	var sb strings.Builder

	sky := "#1a1a2e"
	name, description := "", ""
	if g.Coordinator != nil && g.Coordinator.Active() != nil {
		r := g.Coordinator.Active()
		sky = colorHex(r.Scene().Sky)
		name, description = r.Name(), r.Description()
	}

	sb.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Eight Circuits - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .realm-description {
            color: #888;
            margin-bottom: 20px;
        }
        .map-container {
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .player { color: #00ff00; font-weight: bold; }
        .status { color: #8f8; margin: 5px 0; }
        .messages {
            margin-top: 20px;
            border-top: 1px solid #333;
            padding-top: 10px;
        }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)

	// Header
	sb.WriteString(fmt.Sprintf(`    <div class="header">%s</div>`+"\n", html.EscapeString(name)))
	sb.WriteString(fmt.Sprintf(`    <div class="realm-description">%s</div>`+"\n", html.EscapeString(description)))

	// Map container, painted with the realm's sky colour
	sb.WriteString(fmt.Sprintf(`    <div class="map-container" style="background-color:%s">`+"\n", sky))
	for _, row := range renderer.Raster(g, screenshotCols, screenshotRows, g.Config.Display.CellSize) {
		sb.WriteString(`        <div class="map-row">`)
		for _, c := range row {
			switch {
			case c.Glyph == 0:
				sb.WriteString(" ")
			case c.Player:
				sb.WriteString(`<span class="player">@</span>`)
			default:
				sb.WriteString(fmt.Sprintf(`<span style="color:%s">%s</span>`, colorHex(c.Color), html.EscapeString(string(c.Glyph))))
			}
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString(`    </div>` + "\n")

	// Status
	for _, line := range g.Status {
		sb.WriteString(fmt.Sprintf(`    <div class="status">%s</div>`+"\n", html.EscapeString(line)))
	}

	// Messages
	if len(g.Messages) > 0 {
		sb.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range g.Messages {
			// Strip ANSI codes for HTML output
			cleanMsg := color.ClearCode(msg)
			sb.WriteString(fmt.Sprintf(`        <div class="message">%s</div>`+"\n", html.EscapeString(cleanMsg)))
		}
		sb.WriteString(`    </div>` + "\n")
	}

	sb.WriteString(`</body>
</html>
`)
	return sb.String()
}
