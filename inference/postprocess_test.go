package inference

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestArgmax(t *testing.T) {
	assert.Equal(t, 1, Argmax([]float32{0.2, 0.7, 0.1}))
	assert.Equal(t, 0, Argmax([]float32{1.0, 0.0}))
	assert.Equal(t, 2, Argmax([]float32{-3, -2, -1}))
}

func TestArgmaxTieBreaksLow(t *testing.T) {
	assert.Equal(t, 0, Argmax([]float32{0.5, 0.5, 0.5}))
	assert.Equal(t, 1, Argmax([]float32{0.1, 0.5, 0.5}))
}

func TestArgmaxEmpty(t *testing.T) {
	assert.Equal(t, -1, Argmax(nil))
	assert.Equal(t, -1, Argmax([]float32{}))
}

func TestArgmaxSkipsNaN(t *testing.T) {
	nan := math32.NaN()
	assert.Equal(t, 2, Argmax([]float32{nan, 0.1, 0.9}))
	assert.Equal(t, -1, Argmax([]float32{nan, nan}))
}
