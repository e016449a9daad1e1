// Package providers - Execution provider configuration for the OpenVINO backend.
package providers

import (
	"runtime"
)

// Backend identifies the execution provider used to compile models.
type Backend string

const (
	// OpenVINOBackend compiles models through the Intel OpenVINO execution provider.
	OpenVINOBackend Backend = "openvino"
)

// Device type identifiers understood by the OpenVINO execution provider.
const (
	// DeviceCPU runs inference on the host CPU.
	DeviceCPU = "CPU"
	// DeviceGPU runs inference on an integrated or discrete GPU.
	DeviceGPU = "GPU"
	// DeviceGNA is the low-power Gaussian Neural Accelerator. It handles
	// small recurrent voice workloads and is unsuitable for CNN image
	// classification, so device registries filter it out.
	DeviceGNA = "GNA"
	// DeviceNPU is the neural processing unit found on newer Intel SoCs.
	DeviceNPU = "NPU"
)

// DeviceCandidates returns the compute device identifiers that may be
// available on this platform, in priority order.
//
// The runtime cannot enumerate OpenVINO devices without instantiating a
// session on each one, so the candidate set is derived from the platform:
// the CPU device always exists, and the accelerator devices exist only on
// platforms OpenVINO ships them for. A candidate that turns out to be
// absent surfaces as a compile failure at load time.
//
// Returns:
//   - []string: Device identifiers, CPU first.
func DeviceCandidates() []string {
	devices := []string{DeviceCPU}
	switch runtime.GOOS {
	case "linux", "windows":
		devices = append(devices, DeviceGPU, DeviceNPU, DeviceGNA)
	}
	return devices
}
