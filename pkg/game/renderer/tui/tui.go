// Package tui is the terminal frontend: a turn loop that prints the map, the
// composed minimap in half-block truecolor and the message log, then waits
// for a key.
package tui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	gcolor "github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mvminimap/pkg/engine/input"
	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/engine/terminal"
	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/renderer"
	"mvminimap/pkg/game/state"
)

// tileSize is the pixel size BuildScene lays the map out in; each tile
// becomes two terminal columns.
const tileSize = 48

// settle limits
const (
	maxSettleFrames = 240
	idleFrames      = 20
	maxMessages     = 5
	consoleLines    = 6
)

var background = color.RGBA{26, 26, 46, 255}

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorAction gcolor.Style
	colorSubtle gcolor.Style
	colorDenied gcolor.Style
	colorTitle  gcolor.Style

	console renderer.Console
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() error {
	t.colorAction = gcolor.Style{gcolor.FgMagenta}
	t.colorSubtle = gcolor.Style{gcolor.FgGray, gcolor.OpBold}
	t.colorDenied = gcolor.Style{gcolor.FgRed, gcolor.OpBold}
	t.colorTitle = gcolor.Style{gcolor.FgMagenta, gcolor.OpBold}
	return nil
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	if !terminal.Interactive() {
		return
	}
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// Run prints a frame, waits for a key and plays the game forward until the
// party and the minimap have settled, until p quits or Ctrl+C is pressed.
func (t *TUIRenderer) Run(p *gameplay.Preview, service renderer.Service) error {
	log := logger.For("tui")
	Settle(p, service)
	for !p.Quit {
		t.Clear()
		t.Print(os.Stdout, p)

		raw, err := input.ReadKey()
		if errors.Is(err, input.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if raw.Code == "" {
			continue
		}

		if p.Menu != nil && p.Menu.Capturing() {
			p.Menu.Key(raw.Code)
			renderer.Step(p, input.Intent{}, service)
			continue
		}

		intent := input.MapToIntent(input.NewDebouncedInput(raw))
		if intent.Action == input.ActionConsole && p.Menu == nil {
			t.readCommand(p)
			Settle(p, service)
			continue
		}
		log.WithField("action", input.ActionName(intent.Action)).Debug("key")
		renderer.Step(p, intent, service)
		Settle(p, service)
	}
	return nil
}

// readCommand reads one console line in cooked mode and runs it.
func (t *TUIRenderer) readCommand(p *gameplay.Preview) {
	fmt.Print(t.colorAction.Sprint("> "))
	line, err := input.ReadLine()
	if err != nil {
		return
	}
	t.console.Text = line
	t.console.Submit(p)
}

// Settle runs frames while anything is still on the move, then a few more
// so the minimap scroll and fades catch up.
func Settle(p *gameplay.Preview, service renderer.Service) {
	for i := 0; i < maxSettleFrames && busy(p); i++ {
		if p.Game.Session.Minimap.Readiness() == minimap.Loading {
			time.Sleep(5 * time.Millisecond)
		}
		renderer.Step(p, input.Intent{}, service)
	}
	for i := 0; i < idleFrames; i++ {
		renderer.Step(p, input.Intent{}, service)
	}
}

func busy(p *gameplay.Preview) bool {
	g := p.Game
	if p.Scene == present.SceneBattle || g.Player.IsMoving() {
		return true
	}
	if g.Session.Minimap.Readiness() == minimap.Loading {
		return true
	}
	for _, f := range g.Followers {
		if f.IsMoving() {
			return true
		}
	}
	return false
}

// Print writes one frame of p to w.
func (t *TUIRenderer) Print(w io.Writer, p *gameplay.Preview) {
	var b strings.Builder
	g := p.Game
	scene := renderer.BuildScene(p, tileSize, tileSize)

	if g.Map != nil {
		b.WriteString(t.colorTitle.Sprintf("%s (%d)", g.Map.DisplayName, g.MapID))
		b.WriteString("\n\n")
	}
	if p.Scene == present.SceneBattle {
		b.WriteString(t.colorDenied.Sprint(gotext.Get("BATTLE_START")))
		b.WriteString("\n\n")
	} else {
		t.printMap(&b, g, scene)
	}

	t.printMinimap(&b, p, scene.Minimap)
	if p.Menu != nil {
		t.printMenu(&b, p)
	}
	if scene.Hint != "" {
		b.WriteString(t.colorAction.Sprint(scene.Hint))
		b.WriteString("\n")
	}
	t.printMessagesPane(&b, scene.Messages)
	if lines := t.console.Lines(consoleLines); len(lines) > 0 {
		for _, line := range lines {
			b.WriteString(t.colorSubtle.Sprint("  " + line))
			b.WriteString("\n")
		}
	}
	io.WriteString(w, b.String())
}

// printMap draws the visible tiles two columns wide, characters on top.
func (t *TUIRenderer) printMap(b *strings.Builder, g *state.Game, scene renderer.Scene) {
	cols, rows := state.ScreenTilesX+1, state.ScreenTilesY+1
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = "  "
		}
	}
	bg := make(map[image.Point]color.NRGBA)
	for _, tile := range scene.Tiles {
		c, r := tile.Cell(tileSize, tileSize)
		if r < 0 || c < 0 || r >= rows || c >= cols {
			continue
		}
		col := minimap.Palette(g.Params.Colors, tile.Terrain)
		bg[image.Pt(c, r)] = col
		grid[r][c] = gcolor.RGB(col.R, col.G, col.B, true).Sprint("  ")
	}
	for _, s := range scene.Sprites {
		if s.Opacity <= 0 {
			continue
		}
		c, r := s.Cell(tileSize, tileSize)
		if r < 0 || c < 0 || r >= rows || c >= cols {
			continue
		}
		fg := spriteColor(s.Kind)
		under := bg[image.Pt(c, r)]
		label := s.Label
		if label == "" {
			label = "o"
		}
		style := gcolor.NewRGBStyle(gcolor.RGB(fg.R, fg.G, fg.B), gcolor.RGB(under.R, under.G, under.B))
		grid[r][c] = style.Sprint(label + " ")
	}

	indent := max((terminal.Width()-cols*2)/2, 0)
	for _, row := range grid {
		b.WriteString(strings.Repeat(" ", indent))
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func spriteColor(k renderer.SpriteKind) color.RGBA {
	switch k {
	case renderer.SpriteFollower:
		return color.RGBA{120, 220, 120, 255}
	case renderer.SpriteEvent:
		return color.RGBA{255, 200, 100, 255}
	case renderer.SpriteVehicle:
		return color.RGBA{100, 150, 255, 255}
	}
	return color.RGBA{0, 255, 0, 255}
}

// printMinimap prints the composed minimap with one half-block per two
// pixel rows, scaled down to fit the terminal.
func (t *TUIRenderer) printMinimap(b *strings.Builder, p *gameplay.Preview, v present.View) {
	if !v.Visible || p.Capture == nil {
		b.WriteString(t.colorSubtle.Sprint(gotext.Get("MINIMAP_HIDDEN")))
		b.WriteString("\n\n")
		return
	}
	width := terminal.Width()
	rows := renderer.Downsample(p.Capture(), max(width/2, 1), background)
	for y := 0; y < len(rows); y += 2 {
		for x, top := range rows[y] {
			bottom := background
			if y+1 < len(rows) {
				bottom = rows[y+1][x]
			}
			style := gcolor.NewRGBStyle(gcolor.RGB(top.R, top.G, top.B), gcolor.RGB(bottom.R, bottom.G, bottom.B))
			b.WriteString(style.Sprint("▀"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// printMenu lists the open menu with the selection marked.
func (t *TUIRenderer) printMenu(b *strings.Builder, p *gameplay.Preview) {
	m := p.Menu
	b.WriteString(t.colorTitle.Sprint(m.Title()))
	b.WriteString("\n")
	if help := m.HelpText(); help != "" {
		b.WriteString(t.colorSubtle.Sprint(help))
		b.WriteString("\n")
	}
	for i, item := range m.Items() {
		if i == m.Selected() {
			b.WriteString(t.colorAction.Sprint("> " + item.GetLabel()))
		} else {
			b.WriteString("  " + item.GetLabel())
		}
		b.WriteString("\n")
	}
	if ins := m.Instructions(); ins != "" {
		b.WriteString(t.colorSubtle.Sprint(ins))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(b *strings.Builder, messages []string) {
	width := terminal.Width()
	label := " " + gotext.Get("MESSAGES") + " "
	sideLen := max((width-len(label))/2, 1)
	rightLen := max(width-sideLen-len(label), 1)

	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", sideLen) + label + strings.Repeat("─", rightLen)))
	b.WriteString("\n")
	if len(messages) == 0 {
		b.WriteString(t.colorSubtle.Sprint("  " + gotext.Get("NO_MESSAGES")))
		b.WriteString("\n")
	}
	if len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}
	for _, msg := range messages {
		b.WriteString("  " + msg + "\n")
	}
	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", width)))
	b.WriteString("\n")
}
