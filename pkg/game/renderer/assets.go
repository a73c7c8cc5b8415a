package renderer

import (
	"image"
	"image/color"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/devtools"
	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/overlay"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/rmmv"
	"mvminimap/pkg/game/state"
)

// MarkerSheet is the system image marker icons are cut from.
const MarkerSheet = "MinimapMarkerSet"

// DefaultIconSize is used when the project has no marker sheet.
const DefaultIconSize = 16

// Assets are the project images the frontends draw the minimap with.
type Assets struct {
	project *rmmv.Project
	Icons   overlay.IconSheet
	Shadow  image.Image
	frames  map[string]image.Image
}

// LoadAssets loads the marker sheet, the shadow image and the listed frame
// pictures. Missing images are logged and drawn without.
func LoadAssets(p *rmmv.Project, shadowImage string, frameNames []string) *Assets {
	log := logger.For("assets")
	a := &Assets{project: p, frames: make(map[string]image.Image)}
	if img, err := p.LoadSystemImage(MarkerSheet); err == nil {
		a.Icons = overlay.NewIconSheet(img)
	} else {
		log.WithError(err).Warn("no marker sheet, markers are drawn without icons")
	}
	if img, err := p.LoadSystemImage(shadowImage); err == nil {
		a.Shadow = img
	} else {
		log.WithError(err).Debug("no shadow image, using an ellipse")
		a.Shadow = ellipse(48, 18, color.NRGBA{A: 128})
	}
	for _, name := range frameNames {
		a.Frame(name)
	}
	return a
}

// IconSize is the marker icon size to lay markers out with.
func (a *Assets) IconSize() int {
	if a.Icons.Size > 0 {
		return a.Icons.Size
	}
	return DefaultIconSize
}

// NewCanvas makes a marker canvas drawing icons from the sheet.
func (a *Assets) NewCanvas(w, h int) overlay.Canvas {
	return overlay.NewRGBACanvas(w, h, a.Icons)
}

// Frame returns the frame picture called name, loading it on first use.
// "" and pictures that failed to load give nil.
func (a *Assets) Frame(name string) image.Image {
	if name == "" {
		return nil
	}
	if img, ok := a.frames[name]; ok {
		return img
	}
	img, err := a.project.LoadPicture(name)
	if err != nil {
		logger.For("assets").WithError(err).WithField("frame", name).Warn("frame picture not found")
	}
	a.frames[name] = img
	return img
}

// Layers returns the images s is composed from for v.
func (a *Assets) Layers(s *present.Sprite, v present.View) devtools.Layers {
	l := devtools.Layers{
		Terrain: s.Base(),
		Icons:   a.Icons,
		Frame:   a.Frame(v.FrameName),
	}
	if c, ok := s.Canvas().(*overlay.RGBACanvas); ok {
		l.Markers = c.Image
	}
	return l
}

// Capture composes the minimap of p as currently shown.
func (a *Assets) Capture(p *gameplay.Preview) func() image.Image {
	return func() image.Image {
		v := p.View()
		return devtools.Compose(v, a.Layers(p.Sprite, v))
	}
}

// NewPreview creates the minimap presenter for g with canvases from a and
// wraps both in a preview that captures through a.
func (a *Assets) NewPreview(g *state.Game) *gameplay.Preview {
	s := present.NewSprite(g.Session.Minimap, a.IconSize(), a.NewCanvas)
	p := gameplay.NewPreview(g, s)
	p.Capture = a.Capture(p)
	return p
}

// ellipse draws a filled w by h ellipse.
func ellipse(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rx, ry := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			dy := (float64(y) + 0.5 - ry) / ry
			if dx*dx+dy*dy <= 1 {
				img.Set(x, y, c)
			}
		}
	}
	return img
}
