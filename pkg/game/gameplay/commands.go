package gameplay

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext"

	engineinput "mvminimap/pkg/engine/input"
	"mvminimap/pkg/game/devtools"
)

var errUsage = errors.New("usage")

type builtin struct {
	usage string
	run   func(p *Preview, args []string) ([]string, error)
}

// builtins are the preview's own console commands. Anything else is a plugin
// command for the minimap or the follower fade.
var builtins = map[string]builtin{
	"goto":       {"goto <map> [x y]", cmdGoto},
	"save":       {"save <file>", cmdSave},
	"load":       {"load <file>", cmdLoad},
	"gather":     {"gather", cmdGather},
	"board":      {"board", cmdBoard},
	"battle":     {"battle", cmdBattle},
	"party":      {"party <followers>", cmdParty},
	"speed":      {"speed <1-6>", cmdSpeed},
	"var":        {"var <n> [value]", cmdVar},
	"bind":       {"bind <action> <key>", cmdBind},
	"bindings":   {"bindings", cmdBindings},
	"screenshot": {"screenshot", cmdScreenshot},
	"dump":       {"dump", cmdDump},
	"status":     {"status", cmdStatus},
	"maps":       {"maps", cmdMaps},
	"events":     {"events", cmdEvents},
}

// RunCommand runs one console line against the preview.
func RunCommand(p *Preview, line string) devtools.Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return devtools.Result{}
	}
	name := strings.ToLower(fields[0])
	if name == "help" {
		return devtools.Result{Handled: true, Output: help()}
	}
	if b, ok := builtins[name]; ok {
		out, err := b.run(p, fields[1:])
		res := devtools.Result{Handled: true, Output: out}
		if errors.Is(err, errUsage) {
			res.Error = fmt.Sprintf("%s: %s", gotext.Get("USAGE"), b.usage)
		} else if err != nil {
			res.Error = err.Error()
		}
		return res
	}

	ok, err := p.Game.Command(line)
	if !ok {
		return devtools.Result{Error: fmt.Sprintf(gotext.Get("UNKNOWN_COMMAND"), fields[0])}
	}
	if err != nil {
		return devtools.Result{Handled: true, Error: err.Error()}
	}
	return devtools.Result{Handled: true, Output: []string{gotext.Get("OK")}}
}

func help() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	out := []string{gotext.Get("HELP_BUILTINS")}
	for _, name := range names {
		out = append(out, "  "+builtins[name].usage)
	}
	out = append(out, gotext.Get("HELP_PLUGIN"))
	return out
}

func ints(args []string, n int) ([]int, error) {
	if len(args) < n {
		return nil, errUsage
	}
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, errUsage)
		}
		out[i] = v
	}
	return out, nil
}

func cmdGoto(p *Preview, args []string) ([]string, error) {
	v, err := ints(args, 1)
	if err != nil {
		return nil, err
	}
	mapID := v[0]
	var x, y int
	if len(v) >= 3 {
		x, y = v[1], v[2]
	} else {
		m, err := p.Game.Project.LoadMap(mapID)
		if err != nil {
			return nil, err
		}
		x, y = m.Width/2, m.Height/2
	}
	if err := p.Game.Transfer(mapID, x, y); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("map %d (%d,%d)", mapID, x, y)}, nil
}

func cmdSave(p *Preview, args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, errUsage
	}
	if err := p.Game.SaveTo(args[0]); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf(gotext.Get("SAVED"), args[0])}, nil
}

func cmdLoad(p *Preview, args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, errUsage
	}
	if err := p.Game.LoadFrom(args[0]); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf(gotext.Get("LOADED"), args[0])}, nil
}

func cmdGather(p *Preview, args []string) ([]string, error) {
	p.Game.Gather()
	return nil, nil
}

func cmdBoard(p *Preview, args []string) ([]string, error) {
	if !p.Game.Board() {
		return nil, errors.New(gotext.Get("NOTHING_TO_BOARD"))
	}
	return nil, nil
}

func cmdBattle(p *Preview, args []string) ([]string, error) {
	p.StartBattle()
	return nil, nil
}

func cmdParty(p *Preview, args []string) ([]string, error) {
	v, err := ints(args, 1)
	if err != nil {
		return nil, err
	}
	p.Game.AddParty(max(v[0], 0))
	return []string{fmt.Sprintf("%d", len(p.Game.Followers))}, nil
}

func cmdSpeed(p *Preview, args []string) ([]string, error) {
	v, err := ints(args, 1)
	if err != nil {
		return nil, err
	}
	p.Game.Speed = min(max(v[0], 1), 6)
	return []string{fmt.Sprintf("%d", p.Game.Speed)}, nil
}

func cmdVar(p *Preview, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, errUsage
	}
	if len(args) > 1 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, errUsage
		}
		p.Game.Vars[n] = v
	}
	return []string{fmt.Sprintf("v[%d] = %g", n, p.Game.Vars.Value(n))}, nil
}

func cmdBind(p *Preview, args []string) ([]string, error) {
	if len(args) < 2 {
		return nil, errUsage
	}
	key := strings.ToLower(args[len(args)-1])
	action, ok := engineinput.ParseAction(strings.Join(args[:len(args)-1], " "))
	if !ok {
		return nil, fmt.Errorf(gotext.Get("UNKNOWN_ACTION"), strings.Join(args[:len(args)-1], " "))
	}
	if !engineinput.SetSingleBinding(action, key) {
		return nil, fmt.Errorf(gotext.Get("BINDINGS_RESERVED"), key)
	}
	return []string{fmt.Sprintf(gotext.Get("BINDINGS_SET"), engineinput.ActionName(action), key)}, nil
}

func cmdBindings(p *Preview, args []string) ([]string, error) {
	byAction := engineinput.GetBindingsByAction()
	var out []string
	for a := engineinput.ActionMoveUp; a <= engineinput.ActionQuit; a++ {
		out = append(out, fmt.Sprintf("%-15s %s", engineinput.ActionName(a), strings.Join(byAction[a], ", ")))
	}
	return out, nil
}

func cmdScreenshot(p *Preview, args []string) ([]string, error) {
	if p.Capture == nil {
		return nil, errors.New(gotext.Get("SCREENSHOT_UNAVAILABLE"))
	}
	filename, err := devtools.SaveScreenshot(p.Capture())
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf(gotext.Get("SCREENSHOT_SAVED"), filename)}, nil
}

func cmdDump(p *Preview, args []string) ([]string, error) {
	path, err := devtools.DumpMapToFile(p.Game)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf(gotext.Get("MAP_DUMPED"), path)}, nil
}

func cmdStatus(p *Preview, args []string) ([]string, error) {
	return []string{Status(p.Game)}, nil
}

func cmdMaps(p *Preview, args []string) ([]string, error) {
	infos, err := p.Game.Project.MapInfos()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, mi := range infos {
		mark := " "
		if p.Game.Params.IsMinimapMap(mi.ID) {
			mark = "*"
		}
		out = append(out, fmt.Sprintf("%s %3d %s", mark, mi.ID, mi.Name))
	}
	return out, nil
}

func cmdEvents(p *Preview, args []string) ([]string, error) {
	var out []string
	for _, e := range p.Game.Events {
		line := fmt.Sprintf("%3d %-12s (%d,%d)", e.ID, e.Name, e.X, e.Y)
		if e.Marker >= 0 {
			line += fmt.Sprintf(" marker=%d", e.Marker)
		}
		if e.HasInfo {
			line += fmt.Sprintf(" info=%q", e.Info.Text)
		}
		if e.Shadow.Enabled {
			line += " shadow"
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		out = append(out, gotext.Get("NO_EVENTS"))
	}
	return out, nil
}
