package gameplay

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/state"
)

// hintMoves is how many steps the controls hint stays around for.
const hintMoves = 3

// ShowMovementHint reminds new players of the controls until they have walked
// a few steps. It returns "" afterwards.
func ShowMovementHint(p *Preview) string {
	if p.moves >= hintMoves || p.Scene != present.SceneMap {
		return ""
	}
	return gotext.Get("HINT_CONTROLS")
}

// logMessage adds a formatted message to the game's message log
func logMessage(g *state.Game, msg string, a ...any) {
	if len(a) > 0 {
		msg = fmt.Sprintf(msg, a...)
	}
	g.AddMessage(msg)
}
