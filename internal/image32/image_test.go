package image32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndAtSet(t *testing.T) {
	img := New(3, 2)
	img.Set(1, 2, 4.5)
	assert.Equal(t, float32(4.5), img.At(1, 2))
	assert.Equal(t, float32(0), img.At(0, 0))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(Blank))
	assert.False(t, IsBlank(0))
	assert.False(t, IsBlank(-1))
}

func TestApplyMask(t *testing.T) {
	img := New(3, 1)
	img.Data[0], img.Data[1], img.Data[2] = 1, 2, 3
	img.ApplyMask([]bool{false, true, false})

	assert.Equal(t, float32(1), img.Data[0])
	assert.True(t, IsBlank(img.Data[1]))
	assert.Equal(t, float32(3), img.Data[2])
}

func TestApplyMask_NilIsNoOp(t *testing.T) {
	img := New(2, 1)
	img.Data[0], img.Data[1] = 1, 2
	img.ApplyMask(nil)
	assert.Equal(t, float32(1), img.Data[0])
	assert.Equal(t, float32(2), img.Data[1])
}

func TestCountBlank(t *testing.T) {
	img := New(4, 1)
	img.Data[0], img.Data[1] = Blank, Blank
	assert.Equal(t, 2, img.CountBlank())
}

func TestClone_IsIndependentCopy(t *testing.T) {
	img := New(2, 1)
	img.Data[0] = 5
	clone := img.Clone()
	clone.Data[0] = 9

	assert.Equal(t, float32(5), img.Data[0])
	assert.Equal(t, float32(9), clone.Data[0])
}
