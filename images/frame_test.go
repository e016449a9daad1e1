package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame(t *testing.T) {
	f := NewFrame(16, 9)
	assert.Len(t, f.Data, 16*9*4)
	assert.Equal(t, 144, f.Pixels())
	assert.NoError(t, f.Validate())
}

func TestValidateShortBuffer(t *testing.T) {
	f := NewFrame(4, 4)
	f.Data = f.Data[:len(f.Data)-1]
	assert.Error(t, f.Validate())
}

func TestUniform(t *testing.T) {
	f := Uniform(3, 3, color.RGBA{R: 10, G: 20, B: 30, A: 40})
	require.NoError(t, f.Validate())
	for p := 0; p < f.Pixels(); p++ {
		assert.Equal(t, byte(10), f.Data[p*4+0])
		assert.Equal(t, byte(20), f.Data[p*4+1])
		assert.Equal(t, byte(30), f.Data[p*4+2])
		assert.Equal(t, byte(40), f.Data[p*4+3])
	}
}

func TestFromImagePreservesPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{R: byte(x * 30), G: byte(y * 30), B: 7, A: 255})
		}
	}

	f := FromImage(src, 8, 8)
	require.NoError(t, f.Validate())
	assert.Equal(t, 8, f.Width)
	assert.Equal(t, 8, f.Height)

	// Same dimensions: no resampling, bytes carry over exactly.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := (y*8 + x) * 4
			assert.Equal(t, byte(x*30), f.Data[p+0], "red at (%d,%d)", x, y)
			assert.Equal(t, byte(y*30), f.Data[p+1], "green at (%d,%d)", x, y)
			assert.Equal(t, byte(7), f.Data[p+2], "blue at (%d,%d)", x, y)
		}
	}
}

func TestFromImageResamples(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 16))
	uniform := color.RGBA{R: 90, G: 90, B: 90, A: 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			src.SetRGBA(x, y, uniform)
		}
	}

	f := FromImage(src, 8, 8)
	require.NoError(t, f.Validate())
	assert.Equal(t, 8, f.Width)
	assert.Equal(t, 8, f.Height)

	// A uniform source stays uniform through Lanczos resampling.
	for p := 0; p < f.Pixels(); p++ {
		assert.InDelta(t, 90, int(f.Data[p*4]), 1, "pixel %d", p)
	}
}
