package mtl

import (
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Device represents a GPU accessible to the process.
//
// Reference: https://developer.apple.com/documentation/metal/mtldevice
type Device struct {
	obj *object
}

// WrapDevice wraps an id<MTLDevice> owned by the host application. The
// returned Device borrows the reference: Release on it is a no-op, and the
// host must keep the device alive while it is in use.
func WrapDevice(ptr unsafe.Pointer) Device {
	return Device{obj: newObject(ptr, "device", nil)}
}

// IsNil reports whether d holds no live native device.
func (d Device) IsNil() bool { return d.obj.pointer() == nil }

// Release releases the device reference obtained from CreateSystemDefaultDevice.
func (d Device) Release() { d.obj.release() }

// Name returns the device's name, or "" for a nil device.
func (d Device) Name() string {
	if !Supported || d.IsNil() {
		return ""
	}
	return deviceName(d.obj.pointer())
}

// SupportsFamily reports whether the device supports the feature set of
// the given GPU family.
//
// Reference: https://developer.apple.com/documentation/metal/mtldevice/3143473-supportsfamily
func (d Device) SupportsFamily(family GPUFamily) bool {
	if !Supported || d.IsNil() {
		return false
	}
	return deviceSupportsFamily(d.obj.pointer(), family)
}

func (d Device) check() error {
	if !Supported {
		return ErrUnsupportedPlatform
	}
	if d.IsNil() {
		return errors.Wrap(ErrNilHandle, "device")
	}
	return nil
}

// NewLibraryWithSource creates a new library that contains
// the functions stored in the specified source string.
//
// The full length of source is compiled; it does not need to be NUL
// terminated. Compiler diagnostics are returned verbatim in a *CompileError.
//
// Reference: https://developer.apple.com/documentation/metal/mtldevice/1433431-newlibrarywithsource
func (d Device) NewLibraryWithSource(source string, optFns ...func(*CompileOptions)) (Library, error) {
	if err := d.check(); err != nil {
		return Library{}, err
	}
	opts, err := resolveOptions(optFns)
	if err != nil {
		return Library{}, err
	}
	return d.newLibrary(source, opts)
}

func (d Device) newLibrary(source string, opts CompileOptions) (Library, error) {
	ptr, err := newLibraryWithSource(d.obj.pointer(), source, opts)
	if err != nil {
		return Library{}, err
	}

	Logger().Debug("compiled library",
		zap.Int("source_bytes", len(source)),
		zap.Stringer("language_version", opts.LanguageVersion),
		zap.Stringer("math_mode", opts.MathMode),
		zap.Bool("preserve_invariance", opts.PreserveInvariance))

	return Library{obj: newObject(ptr, "library", releaseNative)}, nil
}

// NewComputePipelineStateWithFunction creates a compute pipeline state
// object for fn. Metal errors are returned verbatim in a *PipelineError.
//
// Reference: https://developer.apple.com/documentation/metal/mtldevice/1433395-newcomputepipelinestatewithfunct
func (d Device) NewComputePipelineStateWithFunction(fn Function) (ComputePipelineState, error) {
	if err := d.check(); err != nil {
		return ComputePipelineState{}, err
	}
	if fn.IsNil() {
		return ComputePipelineState{}, errors.Wrap(ErrNilHandle, "function")
	}

	res, err := newComputePipelineState(d.obj.pointer(), fn.obj.pointer())
	if err != nil {
		var pe *PipelineError
		if errors.As(err, &pe) {
			pe.Function = fn.name
		}
		return ComputePipelineState{}, err
	}

	Logger().Debug("created compute pipeline state",
		zap.String("function", fn.name),
		zap.Uint("max_total_threads_per_threadgroup", res.maxThreads),
		zap.Uint("thread_execution_width", res.width))

	return ComputePipelineState{
		obj:                           newObject(res.ptr, "compute pipeline state", releaseNative),
		MaxTotalThreadsPerThreadgroup: res.maxThreads,
		ThreadExecutionWidth:          res.width,
	}, nil
}

// pipelineResult is what the native constructor reports on success.
type pipelineResult struct {
	ptr        unsafe.Pointer
	maxThreads uint
	width      uint
}
