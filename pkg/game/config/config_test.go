package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"1-4,8,10-12", []int{1, 2, 3, 4, 8, 10, 11, 12}},
		{"63", []int{63}},
		{"", nil},
		{"1, x, 3-2, 5", []int{1, 5}},
		{" 7 - 9 ", []int{7, 8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseIDList(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseIDList(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ParseIDList(%q) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("64,64,64,0.25")
	if err != nil {
		t.Fatalf("ParseColor returned error: %v", err)
	}
	want := color.NRGBA{R: 64, G: 64, B: 64, A: 64}
	if c != want {
		t.Errorf("ParseColor(\"64,64,64,0.25\") = %v, want %v", c, want)
	}

	c, err = ParseColor("300,-1,10")
	if err != nil {
		t.Fatalf("ParseColor returned error: %v", err)
	}
	if c != (color.NRGBA{R: 255, G: 0, B: 10, A: 255}) {
		t.Errorf("ParseColor clamps channels, got %v", c)
	}

	if _, err := ParseColor("1,2"); err == nil {
		t.Error("ParseColor(\"1,2\") = nil error, want error")
	}
}

func TestDefault(t *testing.T) {
	p := Default()
	if !p.IsMinimapMap(3) || p.IsMinimapMap(6) {
		t.Errorf("default map ids should be 1-5")
	}
	want := ViewData{X: 32, Y: 32, Width: 160, Height: 128, Mode: 1, Opacity: 192, Zoom: 1.0}
	if p.DefaultData != want {
		t.Errorf("DefaultData = %+v, want %+v", p.DefaultData, want)
	}
	if len(p.MarkingColors) != 10 {
		t.Errorf("len(MarkingColors) = %d, want 10 (transparent + 9)", len(p.MarkingColors))
	}
	if p.MarkingColor(0).A != 0 {
		t.Errorf("MarkingColor(0) should be transparent")
	}
	if p.MarkingColor(99).A != 0 {
		t.Errorf("MarkingColor(out of range) should be transparent")
	}
	if !p.WallRegionIDs.Has(63) || p.FloorRegionIDs.Size() != 0 {
		t.Errorf("region defaults wrong")
	}
	if p.Commands["MiniMap"] != "MiniMap" {
		t.Errorf("command alias defaults to its own name")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimap.ini")
	body := `[Basic]
Map IDs = 2-3
Default Data = 0,0,200,100,0,255
Minimap Z = 9

[Advanced]
Update Count = 0
Default Scroll Data = 2,30
Scroll Map Link? = true

[Marker]
Vehicle Off Markers = boat:4,ship:5

[Marking]
Marking Colors = 255,0,0,1.0; 0,255,0,0.5

[AutoGenerate]
Tile Size = 8
Wall Color = 10,20,30,1.0
Floor Region IDs = 1-2

[Command]
MiniMap = ShowMap

[Characters]
Followers Fade? = false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !p.IsMinimapMap(2) || p.IsMinimapMap(1) {
		t.Errorf("Map IDs not applied")
	}
	if p.DefaultData.Width != 200 || p.DefaultData.Mode != 0 || p.DefaultData.Zoom != 1.0 {
		t.Errorf("DefaultData = %+v", p.DefaultData)
	}
	if p.MinimapZ != 4 {
		t.Errorf("MinimapZ = %d, want clamp to 4", p.MinimapZ)
	}
	if p.UpdateCount != 1 {
		t.Errorf("UpdateCount = %d, want minimum 1", p.UpdateCount)
	}
	if p.DefaultScrollType != 2 || p.DefaultScrollParam != 30 {
		t.Errorf("scroll data = %d,%v", p.DefaultScrollType, p.DefaultScrollParam)
	}
	if !p.ScrollMapLink {
		t.Errorf("ScrollMapLink not applied")
	}
	if p.VehicleOffMarkers["ship"] != 5 {
		t.Errorf("VehicleOffMarkers = %v", p.VehicleOffMarkers)
	}
	if len(p.MarkingColors) != 3 || p.MarkingColors[2].A != 128 {
		t.Errorf("MarkingColors = %v", p.MarkingColors)
	}
	if p.TileSize != 8 {
		t.Errorf("TileSize = %d, want 8", p.TileSize)
	}
	if p.Colors.Wall != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Wall color = %v", p.Colors.Wall)
	}
	if p.Colors.Floor != Default().Colors.Floor {
		t.Errorf("Floor color should keep its default")
	}
	if !p.FloorRegionIDs.Has(2) {
		t.Errorf("Floor Region IDs not applied")
	}
	if p.Commands["MiniMap"] != "ShowMap" || p.Commands["HideMiniMap"] != "HideMiniMap" {
		t.Errorf("Commands = %v", p.Commands)
	}
	if p.FollowersFade || p.ShadowImage != "Shadow1" {
		t.Errorf("Characters = %v,%q", p.FollowersFade, p.ShadowImage)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.ini")); err == nil {
		t.Error("Load(missing) = nil error, want error")
	}
}
