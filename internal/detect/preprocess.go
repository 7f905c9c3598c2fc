package detect

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// preprocessVariants returns the grayscale source plus three thresholded
// variants (binary, adaptive, blur+binary). QR decoding runs over every
// variant and results are merged, since poster photos often need contrast
// cleanup before the finder patterns are visible.
func preprocessVariants(src image.Image) []image.Image {
	gray := toGray(imaging.Grayscale(src))

	variants := []image.Image{gray}
	variants = append(variants, otsuThreshold(gray))
	variants = append(variants, adaptiveThreshold(gray, 11, 2))

	blurred := toGray(imaging.Blur(gray, 1.0))
	variants = append(variants, otsuThreshold(blurred))

	return variants
}

func toGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return dst
}

// otsuThreshold binarizes using Otsu's method (maximized between-class
// variance over the intensity histogram).
func otsuThreshold(src *image.Gray) *image.Gray {
	var hist [256]int
	total := 0
	bounds := src.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[src.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return src
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var maxVariance float64
	threshold := uint8(0)
	for i, n := range hist {
		wB += float64(n)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(n)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		variance := wB * wF * (mB - mF) * (mB - mF)
		if variance > maxVariance {
			maxVariance = variance
			threshold = uint8(i)
		}
	}

	return applyThreshold(src, func(x, y int, v uint8) bool { return v > threshold })
}

// adaptiveThreshold binarizes against the local mean of a window x window
// neighborhood minus a small constant, via a summed-area table.
func adaptiveThreshold(src *image.Gray, window, c int) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return src
	}

	integral := make([][]int64, h+1)
	for i := range integral {
		integral[i] = make([]int64, w+1)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := int64(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			integral[y+1][x+1] = v + integral[y][x+1] + integral[y+1][x] - integral[y][x]
		}
	}

	half := window / 2
	return applyThreshold(src, func(px, py int, v uint8) bool {
		x := px - bounds.Min.X
		y := py - bounds.Min.Y
		x0, y0 := max(0, x-half), max(0, y-half)
		x1, y1 := min(w-1, x+half), min(h-1, y+half)
		count := int64((x1 - x0 + 1) * (y1 - y0 + 1))
		sum := integral[y1+1][x1+1] - integral[y0][x1+1] - integral[y1+1][x0] + integral[y0][x0]
		return int64(v)*count > sum-int64(c)*count
	})
}

func applyThreshold(src *image.Gray, above func(x, y int, v uint8) bool) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if above(x, y, src.GrayAt(x, y).Y) {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}
