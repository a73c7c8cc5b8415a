package entities

import (
	"image"
	"image/color"
	"math"
	"strings"
	"unicode/utf16"
)

// DefaultInfoFontSize is used when an info comment gives no usable size.
const DefaultInfoFontSize = 21

// InfoBackground fills the label box behind the text.
var InfoBackground = color.NRGBA{A: 128}

// InfoLabel is the text box shown above an event.
type InfoLabel struct {
	Text     string
	FontSize int
	Width    int
	Height   int
	OffsetX  int // relative to the character's screen position
	OffsetY  int
}

// infoLift raises the box above the character sprite.
const infoLift = 48

// NewInfoLabel sizes a label for text. Half-width characters count one unit and
// everything else two; a unit is half the font size, rounded up.
func NewInfoLabel(text string, fontSize int) InfoLabel {
	if fontSize == 0 {
		fontSize = DefaultInfoFontSize
	}
	return InfoLabel{
		Text:     text,
		FontSize: fontSize,
		Width:    (TextUnits(text) + 1) * int(math.Ceil(float64(fontSize)/2)),
		Height:   fontSize + 2,
		OffsetY:  -infoLift,
	}
}

// TextUnits counts the width units of text.
func TextUnits(text string) int {
	n := 0
	for _, code := range utf16.Encode([]rune(text)) {
		if halfWidth(code) {
			n++
		} else {
			n += 2
		}
	}
	return n
}

func halfWidth(code uint16) bool {
	switch {
	case code < 0x81:
		return true
	case code == 0xf8f0:
		return true
	case code >= 0xff61 && code < 0xffa0:
		return true
	case code >= 0xf8f1 && code < 0xf8f4:
		return true
	}
	return false
}

// Bounds places the label for a character drawn at (screenX, screenY). The box
// is centred horizontally and sits on its bottom edge.
func (l InfoLabel) Bounds(screenX, screenY int) image.Rectangle {
	x := screenX + l.OffsetX - l.Width/2
	y := screenY + l.OffsetY - l.Height
	return image.Rect(x, y, x+l.Width, y+l.Height)
}

// ParseInfo reads info commands from the comment block at the top of an event
// page. "info:text,size" creates a label and "infomove:dx,dy" shifts the label
// made before it. Commands are matched without case and the label text is
// lowercased along with them.
func ParseInfo(leadingComments []string) (InfoLabel, bool) {
	var (
		label InfoLabel
		ok    bool
	)
	for _, line := range leadingComments {
		line = strings.ReplaceAll(strings.ToLower(line), "　", " ")
		for _, word := range strings.Split(line, " ") {
			word = strings.NewReplacer(":", ",", "：", ",").Replace(word)
			param := strings.Split(word, ",")
			switch param[0] {
			case "info":
				if len(param) < 2 {
					continue
				}
				size := 0
				if len(param) > 2 {
					size, _ = parseLeadingInt(param[2])
				}
				label, ok = NewInfoLabel(param[1], size), true
			case "infomove":
				if !ok || len(param) < 3 {
					continue
				}
				dx, okX := parseLeadingInt(param[1])
				dy, okY := parseLeadingInt(param[2])
				if okX && okY {
					label.OffsetX += dx
					label.OffsetY += dy
				}
			}
		}
	}
	return label, ok
}

// parseLeadingInt reads an optionally signed run of digits at the start of s,
// ignoring whatever follows it.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		n = n*10 + int(s[digits]-'0')
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
