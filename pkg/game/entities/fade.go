package entities

import (
	"math"
	"strings"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/engine/world"
)

// Plugin command names that switch follower fading. The first is the name event
// authors already use; the second is accepted as well.
var FadeCommands = []string{"集合中隊列メンバー透明化", "FollowersFade"}

// DistancePerFrame is how far a character walking at speed moves in one frame.
func DistancePerFrame(speed int) float64 {
	return math.Pow(2, float64(speed)) / 256
}

// Follower is one party member walking behind the player.
type Follower struct {
	world.Character
	MemberIndex int // 1 is the first follower
	Opacity     float64
	Shadow      Shadow

	hidden bool
}

// Hidden reports whether the follower is waiting to fade back in.
func (f *Follower) Hidden() bool {
	return f.hidden
}

// Party is the player side of the fade rules for one frame.
type Party struct {
	Player    world.Character
	Opacity   float64
	Speed     int
	Gathering bool
	Gathered  bool
	Followers []*Follower
}

// preceding is the character a follower walks behind.
func (p *Party) preceding(f *Follower) world.Character {
	i := f.MemberIndex - 2
	if i >= 0 && i < len(p.Followers) {
		return p.Followers[i].Character
	}
	return p.Player
}

// FollowersFade hides followers once the party has gathered on the player and
// fades them back in one by one as the party walks off.
type FollowersFade struct {
	Enabled bool
}

// NewFollowersFade starts in the configured state.
func NewFollowersFade(enabled bool) *FollowersFade {
	return &FollowersFade{Enabled: enabled}
}

// Exec handles the fade plugin command. "ON" (any case) enables fading; any
// other argument disables it. It reports whether name was a fade command.
func (ff *FollowersFade) Exec(name string, args []string) bool {
	for _, c := range FadeCommands {
		if name != c {
			continue
		}
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		ff.Enabled = strings.ToUpper(strings.TrimSpace(arg)) == "ON"
		logger.For("entities").WithField("enabled", ff.Enabled).Debug("followers fade")
		return true
	}
	return false
}

// Update sets every follower's opacity for this frame. Followers always take
// the player's opacity first, as the engine does, before the fade applies.
func (ff *FollowersFade) Update(p *Party) {
	for _, f := range p.Followers {
		f.Opacity = p.Opacity
		if ff.Enabled {
			ff.updateFollower(p, f)
		}
	}
}

func (ff *FollowersFade) updateFollower(p *Party, f *Follower) {
	opa := f.Opacity
	switch {
	case p.Gathered:
		opa = 0
		f.hidden = true
	case p.Gathering && f.X == p.Player.X && f.Y == p.Player.Y:
		opa = f.StepDistance() * opa
	case f.hidden:
		ch := p.preceding(f)
		if ch.IsMoving() {
			opa = (1 - ch.StepDistance()) * opa
		} else {
			opa = 0
		}
		if opa >= (1-DistancePerFrame(p.Speed))*p.Opacity-1 {
			f.hidden = false
		}
	}
	f.Opacity = opa
}
