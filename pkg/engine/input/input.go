package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// ErrInterrupted is returned when Ctrl+C is read in raw mode.
var ErrInterrupted = errors.New("interrupted")

var stdinReader *bufio.Reader

// ReadLine reads a line of input from stdin.
func ReadLine() (string, error) {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadKey puts the terminal in raw mode and reads one key press. Arrow keys
// come back as "arrow_up" and friends, Escape as "escape", Enter as "enter"
// and printable keys as themselves.
func ReadKey() (RawInput, error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return RawInput{}, fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	buf := make([]byte, 8)
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return RawInput{}, err
	}
	code := DecodeKey(buf[:n])
	if code == "ctrl+c" {
		return RawInput{}, ErrInterrupted
	}
	return RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}, nil
}

// DecodeKey names the key a terminal sent as b. Unknown escape sequences
// decode to "".
func DecodeKey(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if b[0] == 0x1b {
		if len(b) == 1 {
			return "escape"
		}
		// CSI (ESC [) and SS3 (ESC O) arrows
		if len(b) >= 3 && (b[1] == '[' || b[1] == 'O') {
			switch b[2] {
			case 'A':
				return "arrow_up"
			case 'B':
				return "arrow_down"
			case 'C':
				return "arrow_right"
			case 'D':
				return "arrow_left"
			}
		}
		return ""
	}
	switch b[0] {
	case 3:
		return "ctrl+c"
	case '\r', '\n':
		return "enter"
	case '\t':
		return "tab"
	case ' ':
		return "space"
	}
	if b[0] >= 32 && b[0] < 127 {
		return strings.ToLower(string(b[0]))
	}
	return ""
}
