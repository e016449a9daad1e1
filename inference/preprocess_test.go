package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestTensorizeRGBASolidFrame(t *testing.T) {
	const w, h = 8, 6
	const v = byte(51) // 51/255 = 0.2 exactly in float32

	frame := rgbaFrame(w, h, v, v, v, 128)
	dst := make([]float32, TensorChannels*w*h)
	require.NoError(t, TensorizeRGBA(frame, w*h, dst))

	for i, f := range dst {
		assert.InDelta(t, float32(v)/255.0, f, 1e-7, "tensor value %d", i)
	}
}

func TestTensorizePlanarLayout(t *testing.T) {
	const w, h = 3, 2
	pixels := w * h

	// Distinct per-channel values so layout mistakes are visible.
	frame := make([]byte, pixels*FrameChannels)
	for p := 0; p < pixels; p++ {
		frame[p*4+0] = byte(p)        // R
		frame[p*4+1] = byte(100 + p)  // G
		frame[p*4+2] = byte(200 + p)  // B
		frame[p*4+3] = byte(255 - p)  // A, must not leak into the tensor
	}

	dst := make([]float32, TensorChannels*pixels)
	require.NoError(t, TensorizeRGBA(frame, pixels, dst))

	// Verify planar CHW addressing through an independent tensor view.
	planar := tensor.New(
		tensor.WithShape(TensorChannels, h, w),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(dst),
	)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := y*w + x
			for c := 0; c < TensorChannels; c++ {
				got, err := planar.At(c, y, x)
				require.NoError(t, err)
				want := float32(frame[p*4+c]) / 255.0
				assert.Equal(t, want, got.(float32), "channel %d pixel (%d,%d)", c, x, y)
			}
		}
	}
}

func TestTensorizeRejectsShortBuffers(t *testing.T) {
	dst := make([]float32, TensorChannels*4)
	assert.Error(t, TensorizeRGBA(make([]byte, 15), 4, dst), "frame short by one byte")
	assert.Error(t, TensorizeRGBA(make([]byte, 16), 4, dst[:11]), "tensor short by one float")
	assert.NoError(t, TensorizeRGBA(make([]byte, 16), 4, dst))
}
