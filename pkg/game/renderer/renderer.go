package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
)

var (
	ColorTitle    color.Style
	ColorRealm    color.Style
	ColorKey      color.Style
	ColorKeyShort color.Style
	ColorStatus   color.Style
	ColorWarning  color.Style
	ColorSubtle   color.Style
	ColorSelected color.Style
	ColorPlayer   color.Style

	regexpStringFunctions = regexp.MustCompile(`([A-Z_]+){([^{}]+)}`)
)

// dynamicGet is used for runtime translation key lookups from markup.
var dynamicGet = gotext.Get

// InitColors initializes the color styles
func InitColors() {
	ColorTitle = color.Style{color.FgLightWhite, color.OpBold}
	ColorRealm = color.Style{color.FgCyan, color.OpBold}
	ColorKey = color.Style{color.FgMagenta}
	ColorKeyShort = color.Style{color.FgMagenta, color.OpBold}
	ColorStatus = color.Style{color.FgGreen}
	ColorWarning = color.Style{color.FgRed, color.OpBold}
	ColorSubtle = color.Style{color.FgGray}
	ColorSelected = color.Style{color.FgBlack, color.BgCyan}
	ColorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
}

func init() {
	InitColors()
}

// StyleFor returns the terminal style of a text style.
func StyleFor(style TextStyle) color.Style {
	switch style {
	case StyleTitle:
		return ColorTitle
	case StyleRealm:
		return ColorRealm
	case StyleKey:
		return ColorKeyShort
	case StyleStatus:
		return ColorStatus
	case StyleWarning:
		return ColorWarning
	case StyleSubtle:
		return ColorSubtle
	case StyleSelected:
		return ColorSelected
	case StylePlayer:
		return ColorPlayer
	default:
		return color.Style{}
	}
}

// ExpandMarkup replaces every FUNC{operand} span of msg with the result of
// style. The functions are GT (translate), REALM, KEY, STATUS, WARN and SUBTLE.
func ExpandMarkup(msg string, style func(function, operand string) string) string {
	return regexpStringFunctions.ReplaceAllStringFunc(msg, func(match string) string {
		sub := regexpStringFunctions.FindStringSubmatch(match)
		return style(sub[1], sub[2])
	})
}

// sprintf leaves msg untouched when there are no arguments, so text that
// arrives already formatted keeps its percent signs.
func sprintf(msg string, a ...any) string {
	if len(a) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, a...)
}

func ansiMarkup(function, operand string) string {
	switch function {
	case "GT":
		return dynamicGet(operand)
	case "REALM":
		return ColorRealm.Sprint(operand)
	case "KEY":
		return ColorKeyShort.Sprint(operand[0:1]) + ColorKey.Sprint(operand[1:])
	case "STATUS":
		return ColorStatus.Sprint(operand)
	case "WARN":
		return ColorWarning.Sprint(operand)
	case "SUBTLE":
		return ColorSubtle.Sprint(operand)
	default:
		return operand
	}
}

func plainMarkup(function, operand string) string {
	if function == "GT" {
		return dynamicGet(operand)
	}
	return operand
}

// FormatMarkup renders the markup of already formatted text as ANSI colors.
func FormatMarkup(text string) string {
	return ExpandMarkup(text, ansiMarkup)
}

// PlainMarkup reduces the markup of already formatted text to its operands.
func PlainMarkup(text string) string {
	return ExpandMarkup(text, plainMarkup)
}

// FormatString formats a string with special markup as ANSI colors
func FormatString(msg string, a ...any) string {
	return FormatMarkup(sprintf(msg, a...))
}

// PlainText formats msg and reduces markup to its operands.
func PlainText(msg string, a ...any) string {
	return PlainMarkup(sprintf(msg, a...))
}

// ApplyMarkup formats a message for the message log with the current renderer.
func ApplyMarkup(msg string, a ...any) string {
	return FormatText(msg, a...)
}

// VisibleLen returns the printed width of s without ANSI codes.
func VisibleLen(s string) int {
	return len([]rune(color.ClearCode(s)))
}

// PadRight pads s with spaces to width printed columns.
func PadRight(s string, width int) string {
	if n := VisibleLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// LoadingBar draws a progress bar of the given inner width, e.g. "[####....] 50%".
func LoadingBar(progress, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := progress * width / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("#", filled), strings.Repeat(".", width-filled), progress*100/max)
}
