package inference

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/cj-mills/openvino-image-classifier/inference/providers"
)

// DefaultCacheDir is the on-disk directory for device-compiled model
// blobs. Relative to the process working directory, which must be
// writable. Safe to delete; compilation redoes on the next load.
const DefaultCacheDir = "cache"

// EngineOptions configures an ORTEngine.
type EngineOptions struct {
	// SharedLibraryPath points at the ONNX Runtime shared library. Empty
	// selects a platform default resolved through the system loader.
	SharedLibraryPath string
	// CacheDir is where compiled-model blobs are persisted. Empty disables
	// caching.
	CacheDir string
	// DeviceCandidates is the unfiltered device list the engine reports.
	// Empty selects the platform candidates.
	DeviceCandidates []string
	// IntraOpThreads parallelizes execution within graph nodes. Zero uses
	// the runtime default.
	IntraOpThreads int
	// InterOpThreads parallelizes execution across independent graph
	// nodes. Zero uses the runtime default.
	InterOpThreads int
}

// DefaultEngineOptions returns options targeting the platform's ONNX
// Runtime library with the default compiled-model cache.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		SharedLibraryPath: SharedLibraryPath(),
		CacheDir:          DefaultCacheDir,
		DeviceCandidates:  providers.DeviceCandidates(),
	}
}

// SharedLibraryPath returns the platform's ONNX Runtime shared library
// name, overridable through the ONNXRUNTIME_SHARED_LIBRARY_PATH
// environment variable. A bare name defers to the system loader's search
// path.
func SharedLibraryPath() string {
	if path := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); path != "" {
		return path
	}
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "libonnxruntime.so"
	}
}

// The native environment is process-wide and initialized at most once.
var ortSetup struct {
	once sync.Once
	err  error
}

func initRuntime(libraryPath string) error {
	ortSetup.once.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortSetup.err = ort.InitializeEnvironment()
	})
	return errors.Wrap(ortSetup.err, "initializing ONNX Runtime environment")
}

// ORTEngine is the Engine over ONNX Runtime with the OpenVINO execution
// provider. It binds one compiled model to one preallocated input/output
// tensor pair; Load replaces all three atomically.
type ORTEngine struct {
	opts    EngineOptions
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

var _ Engine = (*ORTEngine)(nil)

// NewORTEngine creates an engine with the given options. The native
// runtime is not touched until the first Load, so construction is cheap
// and cannot fail.
func NewORTEngine(opts EngineOptions) *ORTEngine {
	if len(opts.DeviceCandidates) == 0 {
		opts.DeviceCandidates = providers.DeviceCandidates()
	}
	return &ORTEngine{opts: opts}
}

// Devices returns the engine's unfiltered device candidates.
func (e *ORTEngine) Devices() ([]string, error) {
	devices := make([]string, len(e.opts.DeviceCandidates))
	copy(devices, e.opts.DeviceCandidates)
	return devices, nil
}

// Load implements Engine. The new session and tensors are fully built
// before the previous ones are destroyed, so a failed load leaves the
// prior model usable and a successful reload cannot leak the previous
// device binding.
func (e *ORTEngine) Load(path, device string, width, height int) (*ModelInfo, error) {
	if err := initRuntime(e.opts.SharedLibraryPath); err != nil {
		return nil, err
	}

	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, errors.Wrapf(ErrModelUnreadable, "reading %s: %s", path, err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, errors.Wrapf(ErrModelUnreadable, "%s declares no input or output", path)
	}

	inputShape, reshaped, err := resolveInputShape(inputs[0].Dimensions, width, height)
	if err != nil {
		return nil, err
	}
	outputShape, classes, err := resolveOutputShape(outputs[0].Dimensions)
	if err != nil {
		return nil, err
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(inputShape...))
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(outputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "creating session options")
	}
	defer options.Destroy()

	options.SetIntraOpNumThreads(e.opts.IntraOpThreads)
	options.SetInterOpNumThreads(e.opts.InterOpThreads)
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	if e.opts.CacheDir != "" {
		// Best effort: a missing cache directory only costs recompilation.
		os.MkdirAll(e.opts.CacheDir, 0o755)
	}
	ov := providers.OpenVINOOptions{
		DevicePriorities: []string{device},
		Precision:        providers.PrecisionFP32,
		NumStreams:       1,
		CacheDir:         e.opts.CacheDir,
	}
	if err := options.AppendExecutionProviderOpenVINO(ov.Map()); err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "enabling OpenVINO on %s", device)
	}

	session, err := ort.NewAdvancedSession(
		path,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "compiling %s for %s", path, device)
	}

	e.release()
	e.session = session
	e.input = inputTensor
	e.output = outputTensor

	return &ModelInfo{
		InputWidth:  int(inputShape[3]),
		InputHeight: int(inputShape[2]),
		Classes:     classes,
		Reshaped:    reshaped,
		Device:      device,
	}, nil
}

// Input implements Engine.
func (e *ORTEngine) Input() []float32 {
	if e.input == nil {
		return nil
	}
	return e.input.GetData()
}

// Run implements Engine.
func (e *ORTEngine) Run() error {
	if e.session == nil {
		return errors.New("no model loaded")
	}
	return errors.Wrap(e.session.Run(), "forward pass")
}

// Output implements Engine.
func (e *ORTEngine) Output() []float32 {
	if e.output == nil {
		return nil
	}
	return e.output.GetData()
}

// Close implements Engine.
func (e *ORTEngine) Close() error {
	e.release()
	return nil
}

// release destroys the bound session and tensors, session first so the
// tensors are no longer referenced by a live inference request.
func (e *ORTEngine) release() {
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
	if e.input != nil {
		e.input.Destroy()
		e.input = nil
	}
	if e.output != nil {
		e.output.Destroy()
		e.output = nil
	}
}

// resolveInputShape reconciles the model's declared input dimensions with
// the requested {1, 3, height, width}. Dynamic dimensions adopt the
// requested value; static dimensions that disagree win, which rejects the
// reshape without failing the load.
func resolveInputShape(declared []int64, width, height int) ([]int64, bool, error) {
	if len(declared) != 4 {
		return nil, false, errors.Errorf("model input has rank %d, want 4 (NCHW)", len(declared))
	}
	want := []int64{1, TensorChannels, int64(height), int64(width)}
	shape := make([]int64, 4)
	reshaped := true
	for i, d := range declared {
		switch {
		case d < 0:
			shape[i] = want[i]
		case d == want[i]:
			shape[i] = d
		default:
			shape[i] = d
			reshaped = false
		}
	}
	if shape[1] != TensorChannels {
		return nil, false, errors.Errorf("model wants %d input channels, need %d", shape[1], TensorChannels)
	}
	return shape, reshaped, nil
}

// resolveOutputShape fixes the batch dimension at 1 and extracts the class
// count from the second dimension of the model's output shape.
func resolveOutputShape(declared []int64) ([]int64, int, error) {
	if len(declared) < 2 {
		return nil, 0, errors.Errorf("model output has rank %d, want at least 2", len(declared))
	}
	shape := make([]int64, len(declared))
	copy(shape, declared)
	if shape[0] < 0 {
		shape[0] = 1
	}
	if shape[1] < 0 {
		return nil, 0, errors.New("model output class dimension is dynamic")
	}
	for i := 2; i < len(shape); i++ {
		if shape[i] < 0 {
			shape[i] = 1
		}
	}
	return shape, int(shape[1]), nil
}
