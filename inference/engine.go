// Package inference - Image-classification pipeline over a compiled model.
package inference

import (
	"github.com/pkg/errors"
)

// ErrModelUnreadable reports that a model file is missing or its content is
// not a valid network. Loads failing with this error leave previously
// loaded state intact.
var ErrModelUnreadable = errors.New("model is missing or not a valid network")

// ModelInfo describes a model after device compilation.
type ModelInfo struct {
	// InputWidth and InputHeight are the dimensions the compiled model
	// accepts. When a reshape is rejected these are the model's native
	// dimensions, not the requested ones.
	InputWidth  int
	InputHeight int
	// Classes is the size of the output vector, taken from the second
	// dimension of the compiled model's output shape.
	Classes int
	// Reshaped reports whether the model accepted the requested input
	// resolution.
	Reshaped bool
	// Device is the compute device the model was compiled for.
	Device string
}

// Engine abstracts the inference runtime: device enumeration, model
// compilation, and synchronous forward passes over a single bound
// input/output tensor pair.
//
// Engines hold at most one compiled model. Load replaces the previous
// model atomically: the new model is fully built before the old one is
// released, and a failed Load leaves the previous model usable. Input and
// Output return views into runtime-owned tensor storage; both are
// invalidated by the next Load.
//
// Engines are not safe for concurrent use. The Classifier serializes all
// access behind its own lock.
type Engine interface {
	// Devices returns the identifiers of the compute devices the engine
	// can compile for, unfiltered and in priority order.
	Devices() ([]string, error)

	// Load parses the model at path, attempts to reshape its input to
	// {1, 3, height, width}, and compiles it for the named device with
	// latency-oriented scheduling at float32 precision. A rejected reshape
	// is not an error: the model is compiled at its native shape and the
	// returned info has Reshaped == false. Parse failures wrap
	// ErrModelUnreadable; any other error means compilation failed.
	Load(path, device string, width, height int) (*ModelInfo, error)

	// Input returns the writable float32 view into the bound input tensor,
	// laid out as planar CHW {1, 3, H, W}. Nil before the first Load.
	Input() []float32

	// Run submits one synchronous forward pass over the bound tensors.
	Run() error

	// Output returns the float32 logits of the most recent Run, one value
	// per class.
	Output() []float32

	// Close releases the compiled model and its tensors. Safe to call on
	// an engine with no model loaded.
	Close() error
}
