// Package providers - OpenVINO execution provider options.
package providers

import (
	"strconv"
	"strings"
)

// Precision values accepted by the OpenVINO execution provider.
const (
	// PrecisionFP32 requests full float32 inference precision.
	PrecisionFP32 = "FP32"
	// PrecisionFP16 requests half precision where the device supports it.
	PrecisionFP16 = "FP16"
)

// OpenVINOOptions configures how a model is compiled for the OpenVINO
// execution provider.
//
// See:
// https://onnxruntime.ai/docs/execution-providers/OpenVINO-ExecutionProvider.html#summary-of-options
type OpenVINOOptions struct {
	// DevicePriorities lists the compute devices the compiled model may
	// dispatch to, highest priority first. The list is always rendered
	// through the MULTI device facade, even for a single device, so that
	// callers can layer fallback devices without a code change.
	DevicePriorities []string `json:"devicePriorities" yaml:"devicePriorities"`
	// Precision selects the inference precision. Defaults to FP32.
	Precision string `json:"precision" yaml:"precision"`
	// NumThreads overrides the accelerator's default thread count when
	// greater than zero.
	NumThreads int `json:"numThreads" yaml:"numThreads"`
	// NumStreams sets the number of parallel inference streams. A value of
	// 1 biases scheduling toward minimum single-request latency.
	NumStreams int `json:"numStreams" yaml:"numStreams"`
	// CacheDir is the on-disk directory for device-compiled model blobs.
	// Populating it avoids recompilation cost across process restarts when
	// the chosen device is a GPU. Empty disables caching.
	CacheDir string `json:"cacheDir" yaml:"cacheDir"`
}

// DeviceType renders the device priority list as an OpenVINO device type
// string, e.g. "MULTI:GPU,CPU".
func (o OpenVINOOptions) DeviceType() string {
	if len(o.DevicePriorities) == 0 {
		return DeviceCPU
	}
	return "MULTI:" + strings.Join(o.DevicePriorities, ",")
}

// Map renders the options as the key/value configuration the runtime's
// AppendExecutionProviderOpenVINO call expects. Zero-valued fields are
// omitted so the provider's own defaults apply.
//
// Returns:
//   - map[string]string: Provider configuration entries.
func (o OpenVINOOptions) Map() map[string]string {
	config := map[string]string{
		"device_type": o.DeviceType(),
	}
	precision := o.Precision
	if precision == "" {
		precision = PrecisionFP32
	}
	config["precision"] = precision
	if o.NumThreads > 0 {
		config["num_of_threads"] = strconv.Itoa(o.NumThreads)
	}
	if o.NumStreams > 0 {
		config["num_streams"] = strconv.Itoa(o.NumStreams)
	}
	if o.CacheDir != "" {
		config["cache_dir"] = o.CacheDir
	}
	return config
}
