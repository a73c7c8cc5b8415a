package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// getMonoFontFace returns a cached monospace font face for character labels
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	if e.cachedMonoFace == nil {
		e.cachedMonoFace = &text.GoTextFace{Source: e.monoFontSource, Size: tileSize * 0.5}
	}
	return e.cachedMonoFace
}

// getSansFontFace returns a cached sans-serif font face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	if e.cachedSansFace == nil {
		e.cachedSansFace = &text.GoTextFace{Source: e.sansFontSource, Size: uiFontSize}
	}
	return e.cachedSansFace
}

// getSansBoldTitleFontFace returns a cached bold face for menu titles
func (e *EbitenRenderer) getSansBoldTitleFontFace() *text.GoTextFace {
	if e.cachedTitleFace == nil {
		e.cachedTitleFace = &text.GoTextFace{Source: e.sansBoldFontSource, Size: titleFontSize}
	}
	return e.cachedTitleFace
}

// getMonoUIFontFace returns a monospace font face with UI font size (for console)
func (e *EbitenRenderer) getMonoUIFontFace() *text.GoTextFace {
	return e.getInfoFontFace(int(uiFontSize) - 2)
}

// getInfoFontFace returns a monospace face of the given pixel size. Info
// labels each carry their own size.
func (e *EbitenRenderer) getInfoFontFace(size int) *text.GoTextFace {
	if f, ok := e.cachedInfoFaces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: e.monoFontSource, Size: float64(size)}
	e.cachedInfoFaces[size] = f
	return f
}
