package diagnostic

import (
	"image"
	"image/color"
	"math"
)

// HeatmapEncoder is a PNGEncoder under another name: it encodes an
// already-rendered image (such as one built by ScalarToImage) as PNG and
// does no rendering of its own.
type HeatmapEncoder struct {
	PNGEncoder
}

// ScalarToImage maps a float32 plane to an RGBA image using a blue-to-red
// ramp between min and max (both finite, non-blank values in data). NaN
// pixels are rendered fully transparent so masked regions are visually
// distinguishable from low-value regions.
func ScalarToImage(data []float32, w, h int, blank float32) *image.RGBA {
	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range data {
		if v == blank || math.IsNaN(float64(v)) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		hi = lo + 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := data[y*w+x]
			if v == blank || math.IsNaN(float64(v)) {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 0})
				continue
			}
			img.SetRGBA(x, y, rampColor(float64((v-lo)/(hi-lo))))
		}
	}
	return img
}

// LabelsToImage assigns a stable pseudo-random color per distinct label
// value (0 always renders as black background).
func LabelsToImage(labels []int32, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := labels[y*w+x]
			if l <= 0 {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
				continue
			}
			img.SetRGBA(x, y, labelColor(l))
		}
	}
	return img
}

// rampColor maps t in [0,1] to a blue (cold) → red (hot) ramp.
func rampColor(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(255 * t),
		G: uint8(255 * (1 - math.Abs(2*t-1))),
		B: uint8(255 * (1 - t)),
		A: 255,
	}
}

// labelColor derives a deterministic color from an integer label so that
// re-running the pipeline on the same input renders identical previews.
func labelColor(l int32) color.RGBA {
	h := uint32(l) * 2654435761 // Knuth multiplicative hash
	return color.RGBA{
		R: uint8(h >> 24),
		G: uint8(h >> 16),
		B: uint8(h >> 8),
		A: 255,
	}
}
