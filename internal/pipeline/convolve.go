package pipeline

import "github.com/astrodetect/astrodetect/internal/image32"

// Kernel is a 2-D, odd-width convolution kernel. Building one (PSF
// modeling, normalization) is an external collaborator's job; this
// package only applies it.
type Kernel struct {
	W, H int
	Data []float64
}

// Convolve applies kernel to img, producing a same-size image. A blank
// input pixel, or any blank pixel under the kernel's footprint, makes the
// output blank at that position — blanks propagate rather than being
// silently treated as zero.
//
// nch1/nch2 is the readout-channel grid the image is split into.
// fullConvolution controls how a channel boundary is treated: when false
// (the original's default for multi-channel images), the kernel footprint
// is clipped to the pixel's own channel, so a band up to the kernel's half
// width near every channel edge comes out blank exactly as it does near
// the image's outer edge. When true, or when there is only one channel,
// the kernel is free to reach across channel boundaries and only the
// image's own outer edge clips it.
func Convolve(img *image32.Image, k Kernel, nch1, nch2 int, fullConvolution bool) *image32.Image {
	out := image32.New(img.W, img.H)
	halfW, halfH := k.W/2, k.H/2

	perChannel := !fullConvolution && (nch1 > 1 || nch2 > 1)
	chW, chH := img.W, img.H
	if nch1 > 0 {
		chW = img.W / nch1
	}
	if nch2 > 0 {
		chH = img.H / nch2
	}

	for row := 0; row < img.H; row++ {
		rowLo, rowHi := 0, img.H
		if perChannel {
			chRow := row / chH
			rowLo, rowHi = chRow*chH, (chRow+1)*chH
		}
		for col := 0; col < img.W; col++ {
			colLo, colHi := 0, img.W
			if perChannel {
				chCol := col / chW
				colLo, colHi = chCol*chW, (chCol+1)*chW
			}

			var sum float64
			blank := false
			for kr := 0; kr < k.H && !blank; kr++ {
				ir := row + kr - halfH
				if ir < rowLo || ir >= rowHi {
					blank = true
					break
				}
				for kc := 0; kc < k.W; kc++ {
					ic := col + kc - halfW
					if ic < colLo || ic >= colHi {
						blank = true
						break
					}
					v := img.At(ir, ic)
					if image32.IsBlank(v) {
						blank = true
						break
					}
					sum += float64(v) * k.Data[kr*k.W+kc]
				}
			}
			if blank {
				out.Set(row, col, image32.Blank)
			} else {
				out.Set(row, col, float32(sum))
			}
		}
	}
	return out
}
