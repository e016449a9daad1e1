package images

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// FromMat converts a BGR gocv.Mat into an RGBA frame.
//
// Arguments:
//   - mat: A non-empty 8-bit 3-channel Mat in OpenCV's BGR order.
//
// Returns:
//   - *Frame: The converted frame.
//   - error: An error if the Mat is empty or conversion fails.
func FromMat(mat gocv.Mat) (*Frame, error) {
	if mat.Empty() {
		return nil, errors.New("empty mat")
	}

	rgba := gocv.NewMat()
	defer rgba.Close()
	gocv.CvtColor(mat, &rgba, gocv.ColorBGRToRGBA)

	data, err := rgba.DataPtrUint8()
	if err != nil {
		return nil, errors.Wrap(err, "reading mat data")
	}

	frame := NewFrame(rgba.Cols(), rgba.Rows())
	copy(frame.Data, data)
	return frame, nil
}

// ReadFrame loads an image file, resizes it to width x height, and
// converts it into an RGBA frame.
//
// Arguments:
//   - path: Path to an image file in any format OpenCV decodes.
//   - width, height: The target dimensions.
//
// Returns:
//   - *Frame: The decoded, resized RGBA frame.
//   - error: An error if the file cannot be read or decoded.
func ReadFrame(path string, width, height int) (*Frame, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.Errorf("failed to read image %s", path)
	}

	if mat.Cols() != width || mat.Rows() != height {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(mat, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
		return FromMat(resized)
	}
	return FromMat(mat)
}
