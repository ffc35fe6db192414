// Package image32 defines the plane type shared by every stage of the
// detection pipeline: a row-major float32 buffer with a blank sentinel,
// playing the same role here that the teacher's image.RGBA plays for pixel
// data, minus the color model.
package image32

import "math"

// Blank is the sentinel written into Data for masked or non-finite pixels.
// NaN is used so a single math.IsNaN check identifies blanks regardless of
// where they originated (input mask, propagated convolution, or a failed
// per-tile statistic).
const Blank = float32(math.NaN())

// Image is a W×H plane of float32 samples in row-major order: pixel (row,
// col) lives at Data[row*W+col].
type Image struct {
	W, H int
	Data []float32
}

// New allocates a zero-valued image of the given dimensions.
func New(w, h int) *Image {
	return &Image{W: w, H: h, Data: make([]float32, w*h)}
}

// At returns the sample at (row, col).
func (img *Image) At(row, col int) float32 {
	return img.Data[row*img.W+col]
}

// Set stores v at (row, col).
func (img *Image) Set(row, col int, v float32) {
	img.Data[row*img.W+col] = v
}

// IsBlank reports whether v is the blank sentinel.
func IsBlank(v float32) bool {
	return math.IsNaN(float64(v))
}

// ApplyMask overwrites Data[i] with Blank wherever mask[i] is true, so every
// downstream consumer only has to check one thing (NaN) regardless of
// whether a pixel was blank in the source data or masked out by the caller.
// mask may be nil, in which case Data is left untouched.
func (img *Image) ApplyMask(mask []bool) {
	if mask == nil {
		return
	}
	for i, m := range mask {
		if m {
			img.Data[i] = Blank
		}
	}
}

// CountBlank returns the number of blank pixels in img.
func (img *Image) CountBlank() int {
	n := 0
	for _, v := range img.Data {
		if IsBlank(v) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	out := &Image{W: img.W, H: img.H, Data: make([]float32, len(img.Data))}
	copy(out.Data, img.Data)
	return out
}
