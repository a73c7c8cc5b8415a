// Package termview is a real-time terminal frontend on tcell. Unlike the
// tui turn loop it runs the preview at 60 frames a second, so the minimap
// scrolls and blinks as it does in a window.
package termview

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"

	"mvminimap/pkg/engine/input"
	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/renderer"
	"mvminimap/pkg/game/state"
)

const (
	tileSize    = 48
	frameTime   = time.Second / 60
	maxMessages = 4
)

var background = color.RGBA{26, 26, 46, 255}

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 210, 245))
	styleSubtle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 130, 180))
	styleAction = tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 150, 250)).Bold(true)
	styleDenied = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 100, 100)).Bold(true)
)

// Viewer is the tcell frontend.
type Viewer struct {
	screen  tcell.Screen
	console renderer.Console
}

// New creates a viewer. Init opens the screen.
func New() *Viewer {
	return &Viewer{}
}

// Init takes over the terminal.
func (v *Viewer) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	v.screen = screen
	return nil
}

// Run drives p one frame per tick, applying key events as they arrive.
func (v *Viewer) Run(p *gameplay.Preview, service renderer.Service) error {
	defer v.screen.Fini()
	log := logger.For("termview")

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	pending := input.Intent{}
	for !p.Quit {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if intent, ok := v.handleKey(p, ev); ok {
					pending = intent
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			if pending.Action != input.ActionNone {
				log.WithField("action", input.ActionName(pending.Action)).Debug("key")
			}
			renderer.Step(p, pending, service)
			pending = input.Intent{}
			v.draw(p)
		}
	}
	return nil
}

// keyCode names a tcell key the way the bindings do.
func keyCode(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "arrow_up"
	case tcell.KeyDown:
		return "arrow_down"
	case tcell.KeyLeft:
		return "arrow_left"
	case tcell.KeyRight:
		return "arrow_right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyF12:
		return "f12"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space"
		}
		return strings.ToLower(string(ev.Rune()))
	}
	return ""
}

// handleKey feeds the console, a capturing menu or the bindings. It returns
// the intent to apply on the next frame.
func (v *Viewer) handleKey(p *gameplay.Preview, ev *tcell.EventKey) (input.Intent, bool) {
	if v.console.Active {
		switch ev.Key() {
		case tcell.KeyEscape:
			v.console.Toggle()
		case tcell.KeyEnter:
			v.console.Submit(p)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			v.console.Backspace()
		case tcell.KeyUp:
			v.console.HistoryUp()
		case tcell.KeyDown:
			v.console.HistoryDown()
		case tcell.KeyPgUp:
			v.console.ScrollUp()
		case tcell.KeyPgDn:
			v.console.ScrollDown()
		case tcell.KeyRune:
			if ev.Rune() == '`' {
				v.console.Toggle()
			} else {
				v.console.Type(string(ev.Rune()))
			}
		}
		return input.Intent{}, false
	}

	code := keyCode(ev)
	if code == "" {
		return input.Intent{}, false
	}
	if p.Menu != nil && p.Menu.Capturing() {
		p.Menu.Key(code)
		return input.Intent{}, false
	}
	intent := input.MapToIntent(input.NewDebouncedInput(input.RawInput{
		Device:    input.DeviceTerminal,
		Code:      code,
		Timestamp: time.Now(),
	}))
	if intent.Action == input.ActionConsole && p.Menu == nil {
		v.console.Toggle()
		return input.Intent{}, false
	}
	return intent, intent.Action != input.ActionNone
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (v *Viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// draw paints the map on the left, the minimap on the right and the
// messages along the bottom.
func (v *Viewer) draw(p *gameplay.Preview) {
	v.screen.Clear()
	width, height := v.screen.Size()
	scene := renderer.BuildScene(p, tileSize, tileSize)
	g := p.Game

	if g.Map != nil {
		v.text(0, 0, fmt.Sprintf("%s (%d)", g.Map.DisplayName, g.MapID), styleAction)
	}
	mapRight := 0
	if p.Scene == present.SceneBattle {
		v.text(2, 2, gotext.Get("BATTLE_START"), styleDenied)
	} else {
		mapRight = v.drawMap(g, scene, 1)
	}
	v.drawMinimap(p, scene.Minimap, mapRight+2, 1, width-mapRight-2)

	y := height - maxMessages - 1
	if scene.Hint != "" {
		v.text(0, y-1, scene.Hint, styleAction)
	}
	messages := scene.Messages
	if len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}
	for i, msg := range messages {
		v.text(1, y+i, msg, styleText)
	}

	if p.Menu != nil {
		v.drawMenu(p, 4, 3)
	}
	if v.console.Active {
		v.drawConsole(width, height)
	}
	v.screen.Show()
}

// drawMap draws the visible tiles two cells wide from row top and returns
// the column it ends at.
func (v *Viewer) drawMap(g *state.Game, scene renderer.Scene, top int) int {
	cols, rows := state.ScreenTilesX+1, state.ScreenTilesY+1
	under := make(map[[2]int]tcell.Color)
	for _, t := range scene.Tiles {
		c, r := t.Cell(tileSize, tileSize)
		if c < 0 || r < 0 || c >= cols || r >= rows {
			continue
		}
		col := minimap.Palette(g.Params.Colors, t.Terrain)
		bg := tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B))
		under[[2]int{c, r}] = bg
		style := tcell.StyleDefault.Background(bg)
		v.screen.SetContent(c*2, top+r, ' ', nil, style)
		v.screen.SetContent(c*2+1, top+r, ' ', nil, style)
	}
	for _, s := range scene.Sprites {
		if s.Opacity <= 0 {
			continue
		}
		c, r := s.Cell(tileSize, tileSize)
		if c < 0 || r < 0 || c >= cols || r >= rows {
			continue
		}
		label := 'o'
		for _, ch := range s.Label {
			label = ch
			break
		}
		style := tcell.StyleDefault.Foreground(rgb(spriteColor(s.Kind))).Background(under[[2]int{c, r}]).Bold(true)
		v.screen.SetContent(c*2, top+r, label, nil, style)
	}
	return cols * 2
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

// drawMinimap draws the composed minimap in half blocks at (x, y).
func (v *Viewer) drawMinimap(p *gameplay.Preview, view present.View, x, y, maxCols int) {
	if !view.Visible || p.Capture == nil || maxCols <= 0 {
		return
	}
	rows := renderer.Downsample(p.Capture(), maxCols, background)
	for i := 0; i < len(rows); i += 2 {
		for j, top := range rows[i] {
			bottom := background
			if i+1 < len(rows) {
				bottom = rows[i+1][j]
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			v.screen.SetContent(x+j, y+i/2, '▀', nil, style)
		}
	}
}

func (v *Viewer) drawMenu(p *gameplay.Preview, x, y int) {
	m := p.Menu
	panel := tcell.StyleDefault.Background(tcell.NewRGBColor(30, 30, 50))
	lines := 4 + len(m.Items())
	for row := 0; row < lines; row++ {
		for col := 0; col < 48; col++ {
			v.screen.SetContent(x+col, y+row, ' ', nil, panel)
		}
	}
	v.text(x+2, y, m.Title(), styleAction.Background(tcell.NewRGBColor(30, 30, 50)))
	v.text(x+2, y+1, m.HelpText(), styleSubtle.Background(tcell.NewRGBColor(30, 30, 50)))
	for i, item := range m.Items() {
		style := styleText.Background(tcell.NewRGBColor(30, 30, 50))
		if i == m.Selected() {
			style = style.Background(tcell.NewRGBColor(100, 60, 160))
		}
		v.text(x+2, y+2+i, item.GetLabel(), style)
	}
	v.text(x+2, y+lines-1, m.Instructions(), styleSubtle.Background(tcell.NewRGBColor(30, 30, 50)))
}

// drawConsole covers the bottom of the screen with the console.
func (v *Viewer) drawConsole(width, height int) {
	n := max(height*2/5, 3)
	top := height - n
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)
	for row := top; row < height; row++ {
		for col := 0; col < width; col++ {
			v.screen.SetContent(col, row, ' ', nil, bg)
		}
	}
	for i, line := range v.console.Lines(n - 1) {
		v.text(1, top+i, line, styleText.Background(tcell.ColorBlack))
	}
	v.text(1, height-1, "> "+v.console.Text+"_", styleText.Background(tcell.ColorBlack).Bold(true))
}
