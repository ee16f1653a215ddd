package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ANSI control sequences used by the frame-based terminal front-end.
const (
	seqHome       = "\x1b[H"
	seqClearBelow = "\x1b[J"
	seqClearAll   = "\x1b[2J"
	seqHideCursor = "\x1b[?25l"
	seqShowCursor = "\x1b[?25h"
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether stdin and stdout are both attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ClearScreen erases the whole screen and homes the cursor.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, seqClearAll+seqHome)
}

// HideCursor hides the cursor while frames are drawn.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, seqHideCursor)
}

// ShowCursor restores the cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, seqShowCursor)
}

// WriteFrame overwrites the previous frame in place. Lines are joined with
// CRLF because raw mode disables output newline translation.
func WriteFrame(w io.Writer, lines []string) {
	buf := make([]byte, 0, 4096)
	buf = append(buf, seqHome...)
	for _, line := range lines {
		buf = append(buf, line...)
		buf = append(buf, "\x1b[K\r\n"...)
	}
	buf = append(buf, seqClearBelow...)
	w.Write(buf)
}
