//go:build !darwin || !cgo

// device_other.go
//
// Non-darwin (or non-cgo) stub. The API is identical; every native operation
// reports ErrUnsupportedPlatform.

package mtl

import "unsafe"

// Supported reports whether this build can talk to Metal.
const Supported = false

// CreateSystemDefaultDevice always fails with ErrUnsupportedPlatform on this build.
func CreateSystemDefaultDevice() (Device, error) {
	return Device{}, ErrUnsupportedPlatform
}

func releaseNative(unsafe.Pointer) {}

func deviceName(unsafe.Pointer) string { return "" }

func deviceSupportsFamily(unsafe.Pointer, GPUFamily) bool { return false }

func newLibraryWithSource(unsafe.Pointer, string, CompileOptions) (unsafe.Pointer, error) {
	return nil, ErrUnsupportedPlatform
}

func newFunctionWithName(unsafe.Pointer, string) (unsafe.Pointer, string) { return nil, "" }

func libraryFunctionNames(unsafe.Pointer) []string { return nil }

func newComputePipelineState(unsafe.Pointer, unsafe.Pointer) (pipelineResult, error) {
	return pipelineResult{}, ErrUnsupportedPlatform
}
