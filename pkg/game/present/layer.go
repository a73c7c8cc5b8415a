package present

// Layer is where the minimap sits in the map scene's draw order.
type Layer int

const (
	BelowPictures Layer = iota
	BelowTimer
	BelowFlash
	AboveFade
	AboveWindows
)

func (l Layer) String() string {
	switch l {
	case BelowPictures:
		return "below-pictures"
	case BelowTimer:
		return "below-timer"
	case BelowFlash:
		return "below-flash"
	case AboveFade:
		return "above-fade"
	case AboveWindows:
		return "above-windows"
	}
	return "unknown"
}

// Scene is a scene the game can switch to from the map.
type Scene int

const (
	SceneMap Scene = iota
	SceneMenu
	SceneBattle
	SceneOther
)

func (s Scene) String() string {
	switch s {
	case SceneMap:
		return "map"
	case SceneMenu:
		return "menu"
	case SceneBattle:
		return "battle"
	}
	return "other"
}
