package renderer

import (
	"strings"

	"mvminimap/pkg/game/gameplay"
)

const (
	maxConsoleHistory = 100
	maxConsoleOutput  = 200
	consoleScrollStep = 10
)

// Console is the command line the frontends share: the line being typed, the
// command history and the scrollback. Lines run through gameplay.RunCommand.
type Console struct {
	Active bool
	Text   string

	history      []string
	historyIndex int
	output       []string
	scroll       int // 0 shows the most recent lines
}

// Toggle opens or closes the console. Closing drops the unfinished line.
func (c *Console) Toggle() {
	c.Active = !c.Active
	if !c.Active {
		c.Text = ""
		c.historyIndex = len(c.history)
	}
}

// Type appends typed characters to the line.
func (c *Console) Type(s string) { c.Text += s }

// Backspace removes the last character of the line.
func (c *Console) Backspace() {
	r := []rune(c.Text)
	if len(r) > 0 {
		c.Text = string(r[:len(r)-1])
	}
}

// HistoryUp recalls the previous command.
func (c *Console) HistoryUp() {
	if c.historyIndex > 0 {
		c.historyIndex--
		c.Text = c.history[c.historyIndex]
	}
}

// HistoryDown recalls the next command, or an empty line past the newest.
func (c *Console) HistoryDown() {
	if c.historyIndex < len(c.history)-1 {
		c.historyIndex++
		c.Text = c.history[c.historyIndex]
		return
	}
	c.historyIndex = len(c.history)
	c.Text = ""
}

// ScrollUp shows older output.
func (c *Console) ScrollUp() {
	c.scroll = min(c.scroll+consoleScrollStep, len(c.output))
}

// ScrollDown shows newer output.
func (c *Console) ScrollDown() {
	c.scroll = max(c.scroll-consoleScrollStep, 0)
}

// Print adds lines to the scrollback.
func (c *Console) Print(lines ...string) {
	c.output = append(c.output, lines...)
	if len(c.output) > maxConsoleOutput {
		c.output = c.output[len(c.output)-maxConsoleOutput:]
	}
}

// Submit runs the line against p and clears it.
func (c *Console) Submit(p *gameplay.Preview) {
	line := strings.TrimSpace(c.Text)
	c.Text = ""
	c.scroll = 0
	if line == "" {
		return
	}
	c.history = append(c.history, line)
	if len(c.history) > maxConsoleHistory {
		c.history = c.history[1:]
	}
	c.historyIndex = len(c.history)

	c.Print("> " + line)
	if strings.EqualFold(line, "clear") {
		c.output = nil
		return
	}
	res := gameplay.RunCommand(p, line)
	c.Print(res.Output...)
	if res.Error != "" {
		c.Print(res.Error)
	}
}

// Lines returns up to n lines of scrollback ending at the scroll position.
func (c *Console) Lines(n int) []string {
	end := len(c.output) - c.scroll
	start := max(end-n, 0)
	if n <= 0 || end <= 0 {
		return nil
	}
	return c.output[start:end]
}
