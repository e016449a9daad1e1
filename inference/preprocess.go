package inference

import (
	"github.com/pkg/errors"
)

const (
	// FrameChannels is the number of interleaved byte channels per pixel in
	// an incoming frame: R, G, B, A.
	FrameChannels = 4
	// TensorChannels is the number of planar channels in the input tensor.
	TensorChannels = 3
)

// TensorizeRGBA converts an interleaved RGBA byte frame into planar CHW
// float32 normalized to [0, 1], writing directly into dst.
//
// The alpha channel is stripped, and for every pixel p and channel c the
// destination receives dst[c*pixels+p] = frame[p*4+c] / 255. No mean/std
// normalization is applied; models requiring it must bake it into their
// first layer.
//
// Arguments:
//   - frame: At least pixels*4 bytes of row-major RGBA pixel data. The
//     buffer is borrowed only for the duration of the call.
//   - pixels: The pixel count H*W of the model input.
//   - dst: The input tensor storage, at least pixels*3 floats.
//
// Returns:
//   - error: An error if either buffer is too small.
func TensorizeRGBA(frame []byte, pixels int, dst []float32) error {
	if len(frame) < pixels*FrameChannels {
		return errors.Errorf("frame holds %d bytes, need %d", len(frame), pixels*FrameChannels)
	}
	if len(dst) < pixels*TensorChannels {
		return errors.Errorf("input tensor holds %d floats, need %d", len(dst), pixels*TensorChannels)
	}
	for p := 0; p < pixels; p++ {
		src := p * FrameChannels
		for c := 0; c < TensorChannels; c++ {
			dst[c*pixels+p] = float32(frame[src+c]) / 255.0
		}
	}
	return nil
}
