// Package config holds the minimap plugin parameters and loads them from an ini file.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/ini.v1"
)

// IDSet is a set of map or region ids.
type IDSet = mapset.Set[int]

// ViewData is the default viewport geometry: x, y, w, h, mode, opacity, zoom.
type ViewData struct {
	X, Y          int
	Width, Height int
	Mode          int
	Opacity       int
	Zoom          float64
}

// TerrainColors are the per-class fill colors used when synthesizing a minimap image.
type TerrainColors struct {
	// Field (overworld) tilesets
	Land     color.NRGBA
	Sea      color.NRGBA
	Ford     color.NRGBA
	Mountain color.NRGBA
	Hill     color.NRGBA
	Forest   color.NRGBA

	// Area tilesets
	River   color.NRGBA
	Shallow color.NRGBA
	Ladder  color.NRGBA
	Bush    color.NRGBA
	Counter color.NRGBA
	Wall    color.NRGBA
	Floor   color.NRGBA
}

// MarkerStyle describes how an actor icon is drawn.
type MarkerStyle struct {
	Index   int
	AnchorY float64
	Turn    bool
}

// Params holds every recognized plugin option.
type Params struct {
	MapIDs         IDSet
	DefaultVisible bool
	DefaultData    ViewData
	MinimapZ       int
	FrameImages    []string

	UpdateCount        int
	BlinkDuration      int
	HideNextScene      bool
	DefaultScrollType  int
	DefaultScrollParam float64
	ScrollMapLink      bool

	Player            MarkerStyle
	VehicleOn         MarkerStyle
	VehicleOffMarkers map[string]int

	// MarkingColors[0] is always transparent; user colors start at 1.
	MarkingColors []color.NRGBA

	TileSize       int
	BlurIntensity  int
	Colors         TerrainColors
	WallRegionIDs  IDSet
	FloorRegionIDs IDSet
	Dir4WallWidth  int

	// Commands maps a canonical command name to its configured alias.
	Commands map[string]string

	MapMetaMinimap     string
	MapMetaMinimapZoom string
	EventMetaMarker    string

	// Character shadow and followers fade
	ShadowImage   string
	FollowersFade bool
}

// CommandNames lists the canonical plugin command names.
var CommandNames = []string{
	"MiniMap", "HideMiniMap", "ShowMiniMap", "ChangeMinimap",
	"SetMinimapFrame", "ClearMinimapFrame", "SetMinimapZoom",
	"MarkingCirEve", "MarkingCirPos", "MarkingRecPos", "MarkingIcoEve", "MarkingIcoPos",
	"DeleteMarking", "SetMinimapScroll", "StartMinimapScroll", "ResetMinimapScroll",
}

var defaultMarkingColors = []string{
	"255,255,255,1.0", "32,160,214,1.0", "32,160,214,1.0", "255,120,76,1.0",
	"102,204,64,1.0", "153,204,255,1.0", "204,192,255,1.0", "255,255,160,1.0",
	"128,128,128,1.0",
}

// Default returns the parameters the plugin ships with.
func Default() *Params {
	p := &Params{
		MapIDs:         idSet(ParseIDList("1-5")),
		DefaultVisible: true,
		DefaultData:    ViewData{X: 32, Y: 32, Width: 160, Height: 128, Mode: 1, Opacity: 192, Zoom: 1.0},

		UpdateCount:        80,
		BlinkDuration:      80,
		HideNextScene:      true,
		DefaultScrollType:  1,
		DefaultScrollParam: 16,

		Player:            MarkerStyle{Index: 1, AnchorY: 0.5},
		VehicleOn:         MarkerStyle{Index: 7, AnchorY: 0.5, Turn: true},
		VehicleOffMarkers: map[string]int{"boat": 2, "ship": 2, "airship": 2},

		TileSize:      4,
		BlurIntensity: 2,
		Colors: TerrainColors{
			Land:     mustColor("192,192,192,1.0"),
			Sea:      mustColor("0,0,0,0.5"),
			Ford:     mustColor("64,64,64,0.75"),
			Mountain: mustColor("96,96,96,1.0"),
			Hill:     mustColor("128,128,128,1.0"),
			Forest:   mustColor("160,160,160,1.0"),
			River:    mustColor("128,128,128,0.5"),
			Shallow:  mustColor("160,160,160,0.75"),
			Ladder:   mustColor("160,160,160,1.0"),
			Bush:     mustColor("192,192,192,1.0"),
			Counter:  mustColor("160,160,160,0.5"),
			Wall:     mustColor("64,64,64,0.25"),
			Floor:    mustColor("224,224,224,1.0"),
		},
		WallRegionIDs:  idSet(ParseIDList("63")),
		FloorRegionIDs: mapset.New[int](),
		Dir4WallWidth:  2,

		Commands: make(map[string]string, len(CommandNames)),

		MapMetaMinimap:     "Minimap",
		MapMetaMinimapZoom: "MinimapZoom",
		EventMetaMarker:    "Marker",

		ShadowImage:   "Shadow1",
		FollowersFade: true,
	}
	p.MarkingColors = markingColors(defaultMarkingColors)
	for _, name := range CommandNames {
		p.Commands[name] = name
	}
	return p
}

// Load reads an ini file over the defaults. Keys that are absent keep their default.
func Load(path string) (*Params, error) {
	f, err := ini.LoadSources(ini.LoadOptions{KeyValueDelimiters: "=", IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return FromFile(f)
}

// FromFile applies every key present in f over the defaults.
func FromFile(f *ini.File) (*Params, error) {
	p := Default()

	basic := f.Section("Basic")
	if k, ok := key(basic, "Map IDs"); ok {
		p.MapIDs = idSet(ParseIDList(k.String()))
	}
	p.DefaultVisible = basic.Key("Default Visible").MustBool(p.DefaultVisible)
	if k, ok := key(basic, "Default Data"); ok {
		vd, err := ParseViewData(k.String())
		if err != nil {
			return nil, fmt.Errorf("Basic.Default Data: %w", err)
		}
		p.DefaultData = vd
	}
	p.MinimapZ = clampInt(basic.Key("Minimap Z").MustInt(p.MinimapZ), 0, 4)
	if k, ok := key(basic, "Frame Images"); ok {
		p.FrameImages = splitList(k.String(), ",")
	}

	adv := f.Section("Advanced")
	p.UpdateCount = max(adv.Key("Update Count").MustInt(p.UpdateCount), 1)
	p.BlinkDuration = adv.Key("Blink Duration").MustInt(p.BlinkDuration)
	p.HideNextScene = adv.Key("Hide Next Scene?").MustBool(p.HideNextScene)
	if k, ok := key(adv, "Default Scroll Data"); ok {
		parts := splitList(k.String(), ",")
		if len(parts) > 0 {
			if t, err := strconv.Atoi(parts[0]); err == nil {
				p.DefaultScrollType = t
			}
		}
		if len(parts) > 1 {
			if v, err := strconv.ParseFloat(parts[1], 64); err == nil {
				p.DefaultScrollParam = v
			}
		}
	}
	p.ScrollMapLink = adv.Key("Scroll Map Link?").MustBool(p.ScrollMapLink)

	mk := f.Section("Marker")
	p.Player.Index = mk.Key("Player Marker").MustInt(p.Player.Index)
	p.Player.AnchorY = mk.Key("Player OY").MustFloat64(p.Player.AnchorY)
	p.Player.Turn = mk.Key("Turn Player?").MustBool(p.Player.Turn)
	p.VehicleOn.Index = mk.Key("Vehicle On Marker").MustInt(p.VehicleOn.Index)
	p.VehicleOn.AnchorY = mk.Key("Vehicle On OY").MustFloat64(p.VehicleOn.AnchorY)
	p.VehicleOn.Turn = mk.Key("Turn Vehicle?").MustBool(p.VehicleOn.Turn)
	if k, ok := key(mk, "Vehicle Off Markers"); ok {
		p.VehicleOffMarkers = parseVehicleMarkers(k.String())
	}

	if k, ok := key(f.Section("Marking"), "Marking Colors"); ok {
		p.MarkingColors = markingColors(splitList(k.String(), ";"))
	}

	gen := f.Section("AutoGenerate")
	p.TileSize = max(gen.Key("Tile Size").MustInt(p.TileSize), 1)
	p.BlurIntensity = gen.Key("Blur Intensity").MustInt(p.BlurIntensity)
	colorKeys := []struct {
		name string
		dst  *color.NRGBA
	}{
		{"Land Color", &p.Colors.Land},
		{"Sea Color", &p.Colors.Sea},
		{"Ford Color", &p.Colors.Ford},
		{"Mountain Color", &p.Colors.Mountain},
		{"Hill Color", &p.Colors.Hill},
		{"Forest Color", &p.Colors.Forest},
		{"River Color", &p.Colors.River},
		{"Shallow Color", &p.Colors.Shallow},
		{"Ladder Color", &p.Colors.Ladder},
		{"Bush Color", &p.Colors.Bush},
		{"Counter Color", &p.Colors.Counter},
		{"Wall Color", &p.Colors.Wall},
		{"Floor Color", &p.Colors.Floor},
	}
	for _, ck := range colorKeys {
		k, ok := key(gen, ck.name)
		if !ok {
			continue
		}
		c, err := ParseColor(k.String())
		if err != nil {
			return nil, fmt.Errorf("AutoGenerate.%s: %w", ck.name, err)
		}
		*ck.dst = c
	}
	if k, ok := key(gen, "Wall Region IDs"); ok {
		p.WallRegionIDs = idSet(ParseIDList(k.String()))
	}
	if k, ok := key(gen, "Floor Region IDs"); ok {
		p.FloorRegionIDs = idSet(ParseIDList(k.String()))
	}
	p.Dir4WallWidth = gen.Key("Dir4 Wall Width").MustInt(p.Dir4WallWidth)

	cmd := f.Section("Command")
	for _, name := range CommandNames {
		if k, ok := key(cmd, name); ok && k.String() != "" {
			p.Commands[name] = k.String()
		}
	}

	meta := f.Section("Metadata")
	p.MapMetaMinimap = meta.Key("MiniMap").MustString(p.MapMetaMinimap)
	p.MapMetaMinimapZoom = meta.Key("MinimapZoom").MustString(p.MapMetaMinimapZoom)
	p.EventMetaMarker = meta.Key("Marker").MustString(p.EventMetaMarker)

	chars := f.Section("Characters")
	p.ShadowImage = chars.Key("Shadow Image").MustString(p.ShadowImage)
	p.FollowersFade = chars.Key("Followers Fade?").MustBool(p.FollowersFade)

	return p, nil
}

// MarkingColor returns the marking color for index n; out-of-range indices are transparent.
func (p *Params) MarkingColor(n int) color.NRGBA {
	if n < 0 || n >= len(p.MarkingColors) {
		return color.NRGBA{}
	}
	return p.MarkingColors[n]
}

// IsMinimapMap reports whether the minimap is active on mapID.
func (p *Params) IsMinimapMap(mapID int) bool {
	return p.MapIDs.Has(mapID)
}

// ParseIDList expands "1-4,8,10-12" into its ids. Malformed entries are skipped.
func ParseIDList(s string) []int {
	var ids []int
	for _, part := range splitList(s, ",") {
		if lo, hi, found := strings.Cut(part, "-"); found {
			a, errA := strconv.Atoi(strings.TrimSpace(lo))
			b, errB := strconv.Atoi(strings.TrimSpace(hi))
			if errA != nil || errB != nil {
				continue
			}
			for n := a; n <= b; n++ {
				ids = append(ids, n)
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}

// ParseColor parses "r,g,b,a" with channels in 0-255 and alpha in 0-1.
func ParseColor(s string) (color.NRGBA, error) {
	parts := splitList(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("color %q: want r,g,b[,a]", s)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		ch[i] = uint8(clampInt(v, 0, 255))
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		alpha = min(max(a, 0), 1)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(alpha*255 + 0.5)}, nil
}

// ParseViewData parses "x,y,w,h,mode,opacity[,zoom]".
func ParseViewData(s string) (ViewData, error) {
	parts := splitList(s, ",")
	if len(parts) < 6 {
		return ViewData{}, fmt.Errorf("view data %q: want x,y,w,h,mode,opacity[,zoom]", s)
	}
	var n [6]int
	for i := range n {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return ViewData{}, fmt.Errorf("view data %q: %w", s, err)
		}
		n[i] = v
	}
	zoom := 1.0
	if len(parts) > 6 {
		z, err := strconv.ParseFloat(parts[6], 64)
		if err != nil {
			return ViewData{}, fmt.Errorf("view data %q: %w", s, err)
		}
		zoom = z
	}
	return ViewData{X: n[0], Y: n[1], Width: n[2], Height: n[3], Mode: n[4], Opacity: n[5], Zoom: zoom}, nil
}

func parseVehicleMarkers(s string) map[string]int {
	out := make(map[string]int)
	for _, part := range splitList(s, ",") {
		name, idx, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil {
			continue
		}
		out[strings.TrimSpace(name)] = n
	}
	return out
}

func markingColors(values []string) []color.NRGBA {
	colors := []color.NRGBA{{}}
	for _, s := range values {
		c, err := ParseColor(s)
		if err != nil {
			continue
		}
		colors = append(colors, c)
	}
	return colors
}

func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func idSet(ids []int) IDSet {
	set := mapset.New[int]()
	for _, id := range ids {
		set.Put(id)
	}
	return set
}

func key(s *ini.Section, name string) (*ini.Key, bool) {
	if !s.HasKey(name) {
		return nil, false
	}
	return s.Key(name), true
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
