package entities

import (
	"strconv"
	"strings"

	"mvminimap/pkg/game/rmmv"
)

// ShadowTag is the note and comment tag that gives a character a ground shadow.
const ShadowTag = "KNHShadow"

// Shadow is a character's shadow setting.
type Shadow struct {
	Enabled bool
	AddX    float64 // pixels added to the character's screen x
	AddY    float64 // pixels added to the character's screen y
	Scale   float64 // percent; 0 reads as 100
}

// NoShadow is what a character without a shadow tag gets.
var NoShadow = Shadow{Scale: 100}

// ParseShadow reads the shadow tag out of a note or comment line.
// A bare <KNHShadow> enables the shadow with defaults; <KNHShadow:addX,addY,scale>
// sets the offsets and scale. Arguments that are not numbers count as 0.
func ParseShadow(text string) (Shadow, bool) {
	if strings.Contains(text, "<"+ShadowTag+">") {
		return Shadow{Enabled: true, Scale: 100}, true
	}
	value := rmmv.ParseMeta(text)[ShadowTag]
	if value == "" {
		return NoShadow, false
	}
	args := strings.Split(value, ",")
	s := Shadow{Enabled: true, Scale: 100}
	if len(args) > 0 {
		s.AddX = number(args[0])
	}
	if len(args) > 1 {
		s.AddY = number(args[1])
	}
	if len(args) > 2 {
		if v := number(args[2]); v != 0 {
			s.Scale = v
		}
	}
	return s, true
}

// EventShadow picks the shadow for an event page. The last page comment that
// carries the tag wins; without one the event note is used.
func EventShadow(commentStarts []string, note string) Shadow {
	shadow, found := NoShadow, false
	for _, c := range commentStarts {
		if s, ok := ParseShadow(c); ok {
			shadow, found = s, true
		}
	}
	if found {
		return shadow
	}
	shadow, _ = ParseShadow(note)
	return shadow
}

// CharacterView is the on-screen state of a character sprite.
type CharacterView struct {
	ScreenX, ScreenY, ScreenZ float64
	JumpHeight                float64
	Opacity                   int
	Transparent               bool
}

// ShadowSprite is where the shadow image is drawn, anchored at its centre.
type ShadowSprite struct {
	X, Y, Z float64
	Scale   float64
	Opacity int
}

// Place positions the shadow under c for the current frame.
func (s Shadow) Place(c CharacterView) ShadowSprite {
	sp := ShadowSprite{
		X:       c.ScreenX + s.AddX,
		Y:       c.ScreenY + c.JumpHeight - 2 + s.AddY,
		Z:       c.ScreenZ - 1,
		Scale:   s.Scale / 100,
		Opacity: c.Opacity,
	}
	if c.Transparent {
		sp.Opacity = 0
	}
	return sp
}

func number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
