package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestOver(t *testing.T) {
	bg := color.RGBA{26, 26, 46, 255}
	tests := []struct {
		in   color.Color
		want color.RGBA
	}{
		{color.RGBA{}, bg},
		{color.RGBA{255, 0, 0, 255}, color.RGBA{255, 0, 0, 255}},
		{color.NRGBA{255, 255, 255, 255}, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := Over(tt.in, bg); got != tt.want {
			t.Errorf("Over(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDownsample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 40))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	rows := Downsample(img, 25, color.RGBA{A: 255})
	if len(rows) != 10 || len(rows[0]) != 25 {
		t.Fatalf("Downsample() = %dx%d, want 25x10", len(rows[0]), len(rows))
	}
	if rows[0][0] != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("rows[0][0] = %v, want red", rows[0][0])
	}
	if rows[1][1] != (color.RGBA{A: 255}) {
		t.Errorf("rows[1][1] = %v, want background", rows[1][1])
	}
	if got := Downsample(image.NewRGBA(image.Rectangle{}), 10, color.RGBA{}); got != nil {
		t.Errorf("Downsample(empty) = %v, want nil", got)
	}
}
