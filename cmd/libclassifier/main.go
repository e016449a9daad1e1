// Command libclassifier builds the classification core as a C shared
// library for host runtimes that cannot link a neural-inference runtime
// directly:
//
//	go build -buildmode=c-shared -o libclassifier.so ./cmd/libclassifier
//
// The exported surface is GetDeviceCount, GetDeviceName, LoadModel, and
// PerformInference, invoked in that order: enumerate once (or whenever the
// device set may have changed), load once per model or resolution change,
// then perform many times. The host must serialize calls; the core is not
// safe for concurrent callers.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/cj-mills/openvino-image-classifier/inference"
)

// The export surface wraps a process-wide classifier. Internal consumers
// use per-context inference.Classifier values instead.
var (
	classifier = inference.New(inference.NewORTEngine(inference.DefaultEngineOptions()))

	// C copies of the device names handed to the host. Rebuilt on every
	// GetDeviceCount, which bounds the lifetime of pointers returned by
	// GetDeviceName.
	deviceNames []*C.char
)

// GetDeviceCount re-enumerates the available compute devices and returns
// the length of the rebuilt list. Devices unsuited to image classification
// are already filtered out, so indices are stable and contiguous.
//
//export GetDeviceCount
func GetDeviceCount() C.int32_t {
	count := classifier.RefreshDevices()

	for _, name := range deviceNames {
		C.free(unsafe.Pointer(name))
	}
	deviceNames = deviceNames[:0]
	for i := 0; i < count; i++ {
		name, err := classifier.DeviceName(i)
		if err != nil {
			break
		}
		deviceNames = append(deviceNames, C.CString(name))
	}

	return C.int32_t(len(deviceNames))
}

// GetDeviceName returns the null-terminated device identifier at index in
// the most recent enumeration, or NULL if index is out of range. The
// pointer is owned by the core and valid until the next GetDeviceCount.
//
//export GetDeviceName
func GetDeviceName(index C.int32_t) *C.char {
	if index < 0 || int(index) >= len(deviceNames) {
		return nil
	}
	return deviceNames[index]
}

// LoadModel loads the model at modelPath, reshapes it to the resolution in
// inputDims ([0]=width, [1]=height), and compiles it for the device at
// deviceIndex. Returns 0 on success, 1 if the model cannot be parsed, 2 if
// the reshape was rejected (the model is still usable at its native
// shape), 3 if compilation failed, and 4 if deviceIndex is out of range.
//
//export LoadModel
func LoadModel(modelPath *C.char, deviceIndex C.int32_t, inputDims *C.int32_t) C.int32_t {
	dims := unsafe.Slice(inputDims, 2)
	status := classifier.LoadModel(
		C.GoString(modelPath),
		int(deviceIndex),
		int(dims[0]),
		int(dims[1]),
	)
	return C.int32_t(status)
}

// PerformInference classifies one frame of height*width*4 RGBA bytes at
// the resolution of the most recent successful LoadModel. Returns the
// class index with the highest confidence, or -2 on any internal failure
// (including calling before a model is loaded).
//
//export PerformInference
func PerformInference(frame *C.uint8_t) C.int32_t {
	n := classifier.FrameBytes()
	if n == 0 || frame == nil {
		return C.int32_t(inference.InferenceError)
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(frame)), n)
	return C.int32_t(classifier.Classify(buf))
}

func main() {}
