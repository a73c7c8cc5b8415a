package minimap

import "image"

// Blur runs passes rounds of a 3x3 box blur over img. Edge pixels are
// replicated outward so the borders keep their color.
func Blur(img *image.RGBA, passes int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	pw := w + 2
	padded := make([]uint8, pw*(h+2)*4)
	for ; passes > 0; passes-- {
		for y := -1; y <= h; y++ {
			sy := clampIndex(y, h)
			for x := -1; x <= w; x++ {
				sx := clampIndex(x, w)
				src := img.PixOffset(b.Min.X+sx, b.Min.Y+sy)
				dst := ((y+1)*pw + x + 1) * 4
				copy(padded[dst:dst+4], img.Pix[src:src+4])
			}
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var sum [4]int
				for dy := 0; dy < 3; dy++ {
					row := ((y+dy)*pw + x) * 4
					for dx := 0; dx < 3; dx++ {
						o := row + dx*4
						sum[0] += int(padded[o])
						sum[1] += int(padded[o+1])
						sum[2] += int(padded[o+2])
						sum[3] += int(padded[o+3])
					}
				}
				o := img.PixOffset(b.Min.X+x, b.Min.Y+y)
				for c := 0; c < 4; c++ {
					img.Pix[o+c] = uint8((sum[c] + 4) / 9)
				}
			}
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
