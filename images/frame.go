// Package images - RGBA frame plumbing for the classification pipeline.
package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// frameChannels is the number of interleaved byte channels per pixel.
const frameChannels = 4

// Frame is a row-major, top-to-bottom RGBA pixel buffer, four bytes per
// pixel in R, G, B, A order. It is the wire format the classification core
// consumes; the core borrows the buffer only for the duration of one
// inference call.
type Frame struct {
	// Data holds Width*Height*4 bytes.
	Data []byte
	// Width and Height are the frame dimensions in pixels.
	Width  int
	Height int
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Data:   make([]byte, width*height*frameChannels),
		Width:  width,
		Height: height,
	}
}

// Pixels returns the frame's pixel count.
func (f *Frame) Pixels() int { return f.Width * f.Height }

// Validate checks that the buffer length matches the declared dimensions.
func (f *Frame) Validate() error {
	want := f.Width * f.Height * frameChannels
	if len(f.Data) < want {
		return errors.Errorf("frame holds %d bytes, %dx%d needs %d", len(f.Data), f.Width, f.Height, want)
	}
	return nil
}

// FromImage resamples img to width x height with Lanczos3 and flattens it
// into an RGBA frame.
//
// Arguments:
//   - img: The source image.
//   - width, height: The target dimensions, normally the loaded model's
//     input resolution.
//
// Returns:
//   - *Frame: The resampled RGBA frame.
func FromImage(img image.Image, width, height int) *Frame {
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds().Min != (image.Point{}) || rgba.Stride != width*frameChannels {
		canvas := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Src)
		rgba = canvas
	}

	return &Frame{Data: rgba.Pix, Width: width, Height: height}
}

// Uniform returns a frame filled with a single color. Useful for
// deterministic pipeline tests.
func Uniform(width, height int, c color.RGBA) *Frame {
	f := NewFrame(width, height)
	for p := 0; p < f.Pixels(); p++ {
		f.Data[p*4+0] = c.R
		f.Data[p*4+1] = c.G
		f.Data[p*4+2] = c.B
		f.Data[p*4+3] = c.A
	}
	return f
}
