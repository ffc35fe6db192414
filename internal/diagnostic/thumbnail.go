package diagnostic

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Thumbnail downscales src so its longer side is at most maxDim pixels,
// using a high-quality Catmull-Rom scaler rather than nearest-neighbour —
// the same scaler gogpu/gg reaches for when compositing bitmap glyphs at
// an arbitrary size. Full-resolution sky/std/label-map previews of a
// multi-megapixel exposure are unwieldy to eyeball; Thumbnail gives
// callers a quick-look image without re-deriving one from the raw
// float32 planes. src is returned unchanged if it already fits.
func Thumbnail(src image.Image, maxDim int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return src
	}

	scale := float64(maxDim) / float64(w)
	if hScale := float64(maxDim) / float64(h); hScale < scale {
		scale = hScale
	}
	dstW := maxInt(1, int(float64(w)*scale))
	dstH := maxInt(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
