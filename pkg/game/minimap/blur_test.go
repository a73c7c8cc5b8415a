package minimap

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestBlurUniformUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 4))
	fill := color.RGBA{90, 60, 30, 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	Blur(img, 3)

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if got := img.RGBAAt(x, y); got != fill {
				t.Fatalf("Blur() pixel (%d,%d) = %v, want %v", x, y, got, fill)
			}
		}
	}
}

func TestBlurSpreadsSinglePixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	Blur(img, 1)

	// 255/9 rounded
	want := uint8(28)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := img.RGBAAt(x, y).A; got != want {
				t.Errorf("Blur() alpha at (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestBlurZeroPasses(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})

	Blur(img, 0)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Blur(0) changed pixel to %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{}) {
		t.Errorf("Blur(0) changed pixel to %v", got)
	}
}
