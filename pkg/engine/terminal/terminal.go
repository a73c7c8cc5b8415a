// Package terminal probes the terminal stdout is attached to.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Size used when stdout is not a terminal.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the terminal's width and height in cells.
func Size() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Width returns the terminal's width in cells.
func Width() int {
	width, _ := Size()
	return width
}

// Interactive reports whether stdout is a terminal. Output piped to a file
// is printed without clearing the screen.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
