package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceCandidatesAlwaysIncludeCPU(t *testing.T) {
	devices := DeviceCandidates()
	require.NotEmpty(t, devices)
	assert.Equal(t, DeviceCPU, devices[0], "CPU must be the first candidate")
}

func TestOpenVINODeviceType(t *testing.T) {
	opts := OpenVINOOptions{DevicePriorities: []string{DeviceGPU}}
	assert.Equal(t, "MULTI:GPU", opts.DeviceType(),
		"a single device still goes through the MULTI facade")

	opts.DevicePriorities = []string{DeviceGPU, DeviceCPU}
	assert.Equal(t, "MULTI:GPU,CPU", opts.DeviceType())

	assert.Equal(t, DeviceCPU, OpenVINOOptions{}.DeviceType())
}

func TestOpenVINOOptionsMap(t *testing.T) {
	opts := OpenVINOOptions{
		DevicePriorities: []string{DeviceCPU},
		NumStreams:       1,
		CacheDir:         "cache",
	}
	config := opts.Map()

	assert.Equal(t, "MULTI:CPU", config["device_type"])
	assert.Equal(t, PrecisionFP32, config["precision"], "precision defaults to FP32")
	assert.Equal(t, "1", config["num_streams"])
	assert.Equal(t, "cache", config["cache_dir"])
	assert.NotContains(t, config, "num_of_threads", "zero thread count is omitted")
}
