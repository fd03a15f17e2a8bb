package mtl

import "github.com/pkg/errors"

var (
	// ErrUnsupportedPlatform is returned by every native operation on builds
	// without Metal (non-darwin, or cgo disabled).
	ErrUnsupportedPlatform = errors.New("mtl: metal is not supported on this platform")

	// ErrNoDevice is returned when Metal reports no usable GPU.
	ErrNoDevice = errors.New("mtl: no metal device available")

	// ErrNilHandle is returned when an operation receives a zero or released handle.
	ErrNilHandle = errors.New("mtl: nil handle")

	// ErrFunctionNotFound is returned when a library has no function with the requested name.
	ErrFunctionNotFound = errors.New("mtl: function not found")

	// ErrInvalidOption is returned for compile options Metal does not define.
	ErrInvalidOption = errors.New("mtl: invalid compile option")

	// ErrInvalidShape is returned when a shape cannot be mapped onto a dispatch grid.
	ErrInvalidShape = errors.New("mtl: invalid dispatch shape")
)

// CompileError carries the message the Metal compiler produced for a library
// that failed to compile. The message is forwarded verbatim.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string { return "mtl: compile library: " + e.Message }

// PipelineError carries the message Metal produced for a compute pipeline
// state that could not be created.
type PipelineError struct {
	Function string
	Message  string
}

func (e *PipelineError) Error() string {
	if e.Function == "" {
		return "mtl: create compute pipeline: " + e.Message
	}
	return "mtl: create compute pipeline for " + e.Function + ": " + e.Message
}

// TranslateError reports a WGSL source that could not be translated to MSL.
// Stage is one of "parse", "lower", "validate" or "msl".
type TranslateError struct {
	Stage string
	Err   error
}

func (e *TranslateError) Error() string { return "mtl: translate wgsl (" + e.Stage + "): " + e.Err.Error() }

func (e *TranslateError) Unwrap() error { return e.Err }

// nativeMessage returns msg, or a placeholder when Metal gave no text. Error
// strings must never be empty when the handle is nil.
func nativeMessage(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
