//go:build darwin && cgo

// device_darwin.go
//
// cgo bridge to Metal. All native objects cross the boundary as retained
// void pointers; strings come back as malloc'd copies that are freed here.

package mtl

/*
#cgo darwin CFLAGS: -fobjc-arc
#cgo darwin LDFLAGS: -framework Metal -framework CoreGraphics -framework Foundation
#include <stdlib.h>
#include "mtl.h"
#include "library.h"
#include "compute_pass.h"

static struct Library Go_Device_NewLibraryWithSource(void * device, _GoString_ source, struct CompileOptions opts) {
	return Device_NewLibraryWithSource(device, _GoStringPtr(source), _GoStringLen(source), opts);
}
*/
import "C"

import (
	"strings"
	"unsafe"

	"go.uber.org/zap"
)

// Supported reports whether this build can talk to Metal.
const Supported = true

// CreateSystemDefaultDevice returns the preferred system default Metal device.
//
// Reference: https://developer.apple.com/documentation/metal/1433401-mtlcreatesystemdefaultdevice
func CreateSystemDefaultDevice() (Device, error) {
	ptr := C.CreateSystemDefaultDevice()
	if ptr == nil {
		return Device{}, ErrNoDevice
	}
	d := Device{obj: newObject(ptr, "device", releaseNative)}
	Logger().Debug("created system default device", zap.String("name", d.Name()))
	return d, nil
}

func releaseNative(ptr unsafe.Pointer) {
	C.Object_Release(ptr)
}

// goString copies and frees a string returned by the bridge.
func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(s))
	return C.GoString(s)
}

func deviceName(device unsafe.Pointer) string {
	return goString(C.Device_Name(device))
}

func deviceSupportsFamily(device unsafe.Pointer, family GPUFamily) bool {
	return bool(C.Device_SupportsFamily(device, C.uint16_t(family)))
}

func newLibraryWithSource(device unsafe.Pointer, source string, opts CompileOptions) (unsafe.Pointer, error) {
	co := C.struct_CompileOptions{
		PreserveInvariance: C.bool(opts.PreserveInvariance),
		LanguageVersion:    C.uint_t(opts.LanguageVersion),
		MathMode:           C.int(opts.MathMode),
	}

	l := C.Go_Device_NewLibraryWithSource(device, source, co)
	msg := goString(l.Error)
	if l.Library == nil {
		return nil, &CompileError{Message: nativeMessage(msg)}
	}
	return l.Library, nil
}

func newFunctionWithName(library unsafe.Pointer, name string) (unsafe.Pointer, string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	f := C.Library_NewFunctionWithName(library, cname)
	if f == nil {
		return nil, ""
	}
	return f, goString(C.Function_Name(f))
}

func libraryFunctionNames(library unsafe.Pointer) []string {
	joined := goString(C.Library_FunctionNames(library))
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "\n")
}

func newComputePipelineState(device, function unsafe.Pointer) (pipelineResult, error) {
	s := C.Device_NewComputePipelineStateWithFunction(device, function)
	msg := goString(s.Error)
	if s.ComputePipelineState == nil {
		return pipelineResult{}, &PipelineError{Message: nativeMessage(msg)}
	}
	if s.MaxTotalThreadsPerThreadgroup == 0 || s.ThreadExecutionWidth == 0 {
		C.Object_Release(s.ComputePipelineState)
		return pipelineResult{}, &PipelineError{Message: "metal reported zero thread limits"}
	}
	return pipelineResult{
		ptr:        s.ComputePipelineState,
		maxThreads: uint(s.MaxTotalThreadsPerThreadgroup),
		width:      uint(s.ThreadExecutionWidth),
	}, nil
}
