package inference

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Load status codes surfaced to the host.
const (
	// LoadOK means the model was parsed, reshaped, and compiled.
	LoadOK = 0
	// LoadErrUnreadable means the model file could not be parsed. Prior
	// loaded state is preserved.
	LoadErrUnreadable = 1
	// LoadErrReshape means the model rejected the requested input
	// resolution but was compiled at its native shape and is usable.
	LoadErrReshape = 2
	// LoadErrCompile means device compilation failed. Prior loaded state
	// is preserved.
	LoadErrCompile = 3
	// LoadErrDevice means the device index does not address the most
	// recent device enumeration.
	LoadErrDevice = 4
)

// Classification sentinels returned alongside valid class indices.
const (
	// NoClass is returned when the loaded model has an empty output
	// vector.
	NoClass = -1
	// InferenceError is returned on any internal failure during
	// preprocessing, the forward pass, or output extraction.
	InferenceError = -2
)

// filteredDeviceSubstring marks the low-power neural accelerator that is
// unsuited to CNN image classification. Devices whose identifier contains
// it are dropped during enumeration, keeping the indices surfaced to the
// host stable and contiguous.
const filteredDeviceSubstring = "GNA"

// Classifier drives the full classification lifecycle against one Engine:
// device enumeration, model load, and per-frame inference with argmax over
// the output logits.
//
// A Classifier holds at most one loaded model. Loading replaces the
// previous model and invalidates the cached input-tensor view. All methods
// serialize behind an internal mutex; enumeration and load are exclusive
// and rare, inference is frequent.
type Classifier struct {
	mu      sync.Mutex
	engine  Engine
	devices []string

	model   *ModelInfo
	input   []float32
	width   int
	height  int
	pixels  int
	classes int
}

// New creates a Classifier over the given engine. The engine's devices are
// not enumerated until RefreshDevices is called.
func New(engine Engine) *Classifier {
	return &Classifier{engine: engine}
}

// RefreshDevices re-enumerates the engine's compute devices, drops any
// whose identifier contains the filtered accelerator substring, and
// returns the length of the rebuilt list. If enumeration fails the
// previous list is retained and its length returned.
func (c *Classifier) RefreshDevices() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	names, err := c.engine.Devices()
	if err != nil {
		return len(c.devices)
	}

	c.devices = c.devices[:0]
	for _, name := range names {
		if strings.Contains(name, filteredDeviceSubstring) {
			continue
		}
		c.devices = append(c.devices, name)
	}
	return len(c.devices)
}

// DeviceCount returns the length of the most recent enumeration.
func (c *Classifier) DeviceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.devices)
}

// DeviceName returns the device identifier at index in the most recent
// enumeration.
//
// Arguments:
//   - index: Zero-based index into the device list.
//
// Returns:
//   - string: The device identifier.
//   - error: An error if index is out of range.
func (c *Classifier) DeviceName(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.devices) {
		return "", errors.Errorf("device index %d out of range [0, %d)", index, len(c.devices))
	}
	return c.devices[index], nil
}

// LoadModel parses the model at path, attempts to reshape its input to the
// requested width and height, and compiles it for the device at
// deviceIndex. On success the previous model, its inference request, and
// the cached input view are replaced atomically.
//
// Arguments:
//   - path: Filesystem path to the model file.
//   - deviceIndex: Index into the most recent device enumeration.
//   - width, height: Requested input resolution.
//
// Returns:
//   - int: LoadOK, or one of the LoadErr codes. LoadErrReshape still
//     installs the model at its native shape.
func (c *Classifier) LoadModel(path string, deviceIndex, width, height int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deviceIndex < 0 || deviceIndex >= len(c.devices) {
		return LoadErrDevice
	}

	info, err := c.engine.Load(path, c.devices[deviceIndex], width, height)
	if err != nil {
		if errors.Is(err, ErrModelUnreadable) {
			return LoadErrUnreadable
		}
		return LoadErrCompile
	}

	c.model = info
	c.width = info.InputWidth
	c.height = info.InputHeight
	c.pixels = info.InputWidth * info.InputHeight
	c.classes = info.Classes
	c.input = c.engine.Input()

	if !info.Reshaped {
		return LoadErrReshape
	}
	return LoadOK
}

// Model returns the currently loaded model's info, or nil before the
// first successful load.
func (c *Classifier) Model() *ModelInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// FrameBytes returns the byte length of a frame matching the loaded
// model's input: H*W*4. Zero before the first successful load.
func (c *Classifier) FrameBytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width * c.height * FrameChannels
}

// Classify normalizes the RGBA frame into the model's input tensor, runs
// one synchronous forward pass, and returns the index of the largest
// output logit.
//
// The frame is borrowed only for the duration of the call and must hold at
// least H*W*4 bytes matching the loaded model's input resolution.
//
// Returns:
//   - int: The class index in [0, C); NoClass when the model's output
//     vector is empty; InferenceError on any internal failure, in which
//     case no classifier state is mutated and the next call can proceed.
func (c *Classifier) Classify(frame []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model == nil {
		return InferenceError
	}
	if err := TensorizeRGBA(frame, c.pixels, c.input); err != nil {
		return InferenceError
	}
	if err := c.engine.Run(); err != nil {
		return InferenceError
	}

	logits := c.engine.Output()
	if len(logits) > c.classes {
		logits = logits[:c.classes]
	}
	return Argmax(logits)
}

// Close releases the engine and every compiled resource it owns.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.model = nil
	c.input = nil
	return c.engine.Close()
}
