package minimap

import (
	"math"

	"mvminimap/pkg/game/config"
)

// Terrain is the class a tile is painted with.
type Terrain uint8

const (
	TerrainFloor Terrain = iota
	TerrainLand
	TerrainSea
	TerrainFord
	TerrainMountain
	TerrainHill
	TerrainForest
	TerrainRiver
	TerrainShallow
	TerrainLadder
	TerrainBush
	TerrainCounter
	TerrainWall
)

// Tile flag bits.
const (
	FlagImpassable = 0x0f
	FlagStar       = 0x10
	FlagLadder     = 0x20
	FlagBush       = 0x40
	FlagCounter    = 0x80
)

// Wall direction bits carried by a floor tile.
const (
	WallDown  = 0x01
	WallLeft  = 0x02
	WallRight = 0x04
	WallUp    = 0x08
)

const autotileBase = 2048

// overworld layer-1 autotile kinds
var (
	forestKinds   = map[int]bool{20: true, 21: true, 28: true, 36: true, 44: true}
	hillKinds     = map[int]bool{22: true, 30: true, 38: true, 46: true}
	mountainKinds = map[int]bool{23: true, 31: true, 39: true, 47: true}
)

// Classification is the per-tile terrain of one map.
type Classification struct {
	Width, Height int
	Terrain       []Terrain
	// WallDirs holds the impassable-side bits of floor tiles.
	WallDirs []uint8
}

// At returns the class and wall bits of (x, y).
func (c *Classification) At(x, y int) (Terrain, uint8) {
	i := y*c.Width + x
	return c.Terrain[i], c.WallDirs[i]
}

func autotileKind(tileID int) int {
	return int(math.Floor(float64(tileID-autotileBase) / 48))
}

// Classify assigns a terrain class to every tile of data.
func Classify(data *MapData, ts *Tileset, walls, floors config.IDSet) *Classification {
	c := &Classification{
		Width:    data.Width,
		Height:   data.Height,
		Terrain:  make([]Terrain, data.Width*data.Height),
		WallDirs: make([]uint8, data.Width*data.Height),
	}
	overworld := ts.IsOverworld()
	for y := 0; y < data.Height; y++ {
		for x := 0; x < data.Width; x++ {
			i := y*data.Width + x
			if overworld {
				c.Terrain[i] = classifyOverworld(data, x, y)
			} else {
				c.Terrain[i], c.WallDirs[i] = classifyArea(data, ts, walls, floors, x, y)
			}
		}
	}
	return c
}

func classifyOverworld(data *MapData, x, y int) Terrain {
	kind0 := autotileKind(data.TileID(x, y, 0))
	kind1 := autotileKind(data.TileID(x, y, 1))
	switch {
	case kind0 < 16:
		if kind1 == 1 {
			return TerrainSea
		}
		return TerrainFord
	case forestKinds[kind1]:
		return TerrainForest
	case hillKinds[kind1]:
		return TerrainHill
	case mountainKinds[kind1]:
		return TerrainMountain
	default:
		return TerrainLand
	}
}

func classifyArea(data *MapData, ts *Tileset, walls, floors config.IDSet, x, y int) (Terrain, uint8) {
	region := data.TileID(x, y, RegionLayer)
	if walls.Has(region) {
		return TerrainWall, 0
	}
	if floors.Has(region) {
		return TerrainFloor, 0
	}
	for z := 3; z >= 0; z-- {
		tileID := data.TileID(x, y, z)
		flag := ts.Flag(tileID)
		if flag&FlagStar != 0 {
			continue
		}
		if kind := autotileKind(tileID); kind >= 0 && kind < 16 {
			if flag&FlagImpassable == FlagImpassable {
				return TerrainRiver, 0
			}
			return TerrainShallow, 0
		}
		switch {
		case flag&FlagLadder != 0:
			return TerrainLadder, 0
		case flag&FlagBush != 0:
			return TerrainBush, 0
		case flag&FlagCounter != 0:
			return TerrainCounter, 0
		case flag&FlagImpassable == FlagImpassable:
			return TerrainWall, 0
		}
		return TerrainFloor, uint8(flag & FlagImpassable)
	}
	return TerrainFloor, 0
}
