package pipeline

import (
	"testing"

	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/stretchr/testify/assert"
)

func TestConvolve_UniformKernelAveragesNeighbors(t *testing.T) {
	img := image32.New(3, 3)
	for i := range img.Data {
		img.Data[i] = 1
	}
	k := Kernel{W: 3, H: 3, Data: make([]float64, 9)}
	for i := range k.Data {
		k.Data[i] = 1.0 / 9.0
	}

	out := Convolve(img, k, 1, 1, false)
	assert.Equal(t, float32(1), out.At(1, 1))
	assert.True(t, image32.IsBlank(out.At(0, 0)), "corner pixel lacks a full kernel footprint and must be blank")
}

func TestConvolve_BlankInputPropagates(t *testing.T) {
	img := image32.New(7, 7)
	img.Set(2, 2, image32.Blank)

	k := Kernel{W: 3, H: 3, Data: make([]float64, 9)}
	for i := range k.Data {
		k.Data[i] = 1.0 / 9.0
	}

	out := Convolve(img, k, 1, 1, false)
	assert.True(t, image32.IsBlank(out.At(2, 2)))
	assert.True(t, image32.IsBlank(out.At(1, 1)), "pixel whose footprint touches the blank input must itself be blank")
	assert.False(t, image32.IsBlank(out.At(4, 4)))
}

func TestConvolve_ChannelBoundaryBlanksNearChannelEdgeUnlessFull(t *testing.T) {
	img := image32.New(6, 3)
	for i := range img.Data {
		img.Data[i] = 1
	}
	k := Kernel{W: 3, H: 1, Data: []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}}

	notFull := Convolve(img, k, 2, 1, false)
	assert.True(t, image32.IsBlank(notFull.At(1, 2)), "column on the left channel's right edge lacks a same-channel footprint")
	assert.True(t, image32.IsBlank(notFull.At(1, 3)), "column on the right channel's left edge lacks a same-channel footprint")
	assert.Equal(t, float32(1), notFull.At(1, 4), "interior of the right channel has a full same-channel footprint")

	full := Convolve(img, k, 2, 1, true)
	assert.Equal(t, float32(1), full.At(1, 3), "fullConvolution lets the kernel cross the channel boundary")
}
