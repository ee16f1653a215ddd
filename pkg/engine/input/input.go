package input

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/term"
)

// KeyReader reads key presses from a terminal in raw mode.
type KeyReader struct {
	fd       int
	oldState *term.State
	events   chan RawInput
}

// StartKeyReader puts stdin into raw mode and starts reading key presses.
// Events are dropped when the buffer is full rather than blocking the reader.
func StartKeyReader() (*KeyReader, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	r := &KeyReader{
		fd:       fd,
		oldState: oldState,
		events:   make(chan RawInput, 64),
	}
	go r.loop()
	return r, nil
}

// Events returns the channel of decoded key presses.
func (r *KeyReader) Events() <-chan RawInput {
	return r.events
}

// Restore returns the terminal to its previous mode.
func (r *KeyReader) Restore() {
	if r.oldState == nil {
		return
	}
	if err := term.Restore(r.fd, r.oldState); err != nil {
		log.Printf("Cannot restore terminal: %v", err)
	}
	r.oldState = nil
}

func (r *KeyReader) loop() {
	buf := make([]byte, 16)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			log.Printf("Cannot read stdin: %v", err)
			close(r.events)
			return
		}
		now := time.Now()
		for _, code := range DecodeKeys(buf[:n]) {
			select {
			case r.events <- RawInput{Device: DeviceTerminal, Code: code, Timestamp: now}:
			default:
				// Channel full, drop input
			}
		}
	}
}

// DecodeKeys turns one raw-mode read into key codes. A lone ESC byte is the
// Escape key; ESC followed by more bytes is an escape sequence. Upper-case
// letters report "shift" followed by the lower-case letter.
func DecodeKeys(chunk []byte) []string {
	var codes []string
	for i := 0; i < len(chunk); i++ {
		b := chunk[i]
		switch {
		case b == 0x1b:
			code, used := decodeEscape(chunk[i+1:])
			if code != "" {
				codes = append(codes, code)
			}
			i += used
		case b == 3:
			codes = append(codes, "ctrl_c")
		case b == '\r' || b == '\n':
			codes = append(codes, "enter")
		case b == ' ':
			codes = append(codes, "space")
		case b >= 'A' && b <= 'Z':
			codes = append(codes, "shift", string(rune(b+'a'-'A')))
		case b > ' ' && b < 127:
			codes = append(codes, string(rune(b)))
		}
	}
	return codes
}

// decodeEscape decodes the bytes after ESC and returns the code and the
// number of bytes consumed.
func decodeEscape(rest []byte) (string, int) {
	if len(rest) == 0 {
		return "escape", 0
	}
	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if rest[0] != '[' && rest[0] != 'O' {
		return "escape", 0
	}
	if len(rest) < 2 {
		return "", len(rest)
	}
	switch rest[1] {
	case 'A':
		return "arrow_up", 2
	case 'B':
		return "arrow_down", 2
	case 'C':
		return "arrow_right", 2
	case 'D':
		return "arrow_left", 2
	}
	// ESC [ 2 4 ~ is F12; swallow any other numbered sequence up to '~'
	end := 1
	for end < len(rest) && rest[end] != '~' {
		end++
	}
	if end < len(rest) {
		if string(rest[1:end]) == "24" {
			return "f12", end + 1
		}
		return "", end + 1
	}
	return "", len(rest)
}
