package inference

import (
	"github.com/pkg/errors"
)

// StubModel is a canned model served by a StubEngine.
type StubModel struct {
	// Width and Height are the model's native input dimensions.
	Width  int
	Height int
	// Classes is the size of the output vector.
	Classes int
	// FixedInput makes the model refuse reshapes away from its native
	// dimensions, the way a network with static spatial dims would.
	FixedInput bool
	// Logits is the canned output vector, returned on every Run unless
	// Infer is set.
	Logits []float32
	// Infer, when set, computes the output vector from the input tensor.
	Infer func(input []float32) []float32
}

// StubEngine is a deterministic in-memory Engine. It serves canned models
// keyed by path and requires no native runtime, which makes the full
// classifier lifecycle testable: enumeration, load statuses, reload
// resource replacement, and inference.
type StubEngine struct {
	// DeviceNames is returned by Devices.
	DeviceNames []string
	// DevicesErr, when set, fails enumeration.
	DevicesErr error
	// Models maps a load path to its canned model. Paths not present are
	// unreadable.
	Models map[string]StubModel
	// RunErr, when set, fails every forward pass.
	RunErr error

	// LoadCount and RunCount track successful calls. ReleaseCount counts
	// how many compiled models have been released, whether by reload or
	// Close; a reloading classifier must release exactly one per
	// replacement.
	LoadCount    int
	RunCount     int
	ReleaseCount int

	model  *StubModel
	input  []float32
	output []float32
}

var _ Engine = (*StubEngine)(nil)

// Devices implements Engine.
func (e *StubEngine) Devices() ([]string, error) {
	if e.DevicesErr != nil {
		return nil, e.DevicesErr
	}
	devices := make([]string, len(e.DeviceNames))
	copy(devices, e.DeviceNames)
	return devices, nil
}

// Load implements Engine.
func (e *StubEngine) Load(path, device string, width, height int) (*ModelInfo, error) {
	model, ok := e.Models[path]
	if !ok {
		return nil, errors.Wrapf(ErrModelUnreadable, "no model at %s", path)
	}

	reshaped := true
	w, h := width, height
	if model.FixedInput && (width != model.Width || height != model.Height) {
		reshaped = false
		w, h = model.Width, model.Height
	}

	e.release()
	e.model = &model
	e.input = make([]float32, TensorChannels*w*h)
	e.output = make([]float32, model.Classes)
	e.LoadCount++

	return &ModelInfo{
		InputWidth:  w,
		InputHeight: h,
		Classes:     model.Classes,
		Reshaped:    reshaped,
		Device:      device,
	}, nil
}

// Input implements Engine.
func (e *StubEngine) Input() []float32 { return e.input }

// Run implements Engine.
func (e *StubEngine) Run() error {
	if e.RunErr != nil {
		return e.RunErr
	}
	if e.model == nil {
		return errors.New("no model loaded")
	}
	logits := e.model.Logits
	if e.model.Infer != nil {
		logits = e.model.Infer(e.input)
	}
	copy(e.output, logits)
	e.RunCount++
	return nil
}

// Output implements Engine.
func (e *StubEngine) Output() []float32 { return e.output }

// Close implements Engine.
func (e *StubEngine) Close() error {
	e.release()
	return nil
}

func (e *StubEngine) release() {
	if e.model != nil {
		e.ReleaseCount++
		e.model = nil
		e.input = nil
		e.output = nil
	}
}
