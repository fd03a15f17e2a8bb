package mtl

import (
	"sort"

	"github.com/pkg/errors"
)

// Library represents a collection of compiled graphics or compute functions.
//
// Reference: https://developer.apple.com/documentation/metal/mtllibrary
type Library struct {
	obj *object

	// entryPoints maps source-level entry point names to the names the
	// functions carry in the compiled library. Set for libraries built from
	// WGSL, where the MSL backend may rename entry points.
	entryPoints map[string]string
}

// IsNil reports whether l holds no live native library.
func (l Library) IsNil() bool { return l.obj.pointer() == nil }

// Release releases the library. Functions already obtained from it stay valid.
func (l Library) Release() { l.obj.release() }

// NewFunctionWithName creates a new function object that represents a shader function in the library.
//
// A name the library does not define yields an error wrapping
// ErrFunctionNotFound. For libraries built with NewLibraryWithWGSL, name is
// the WGSL entry point name.
//
// Reference: https://developer.apple.com/documentation/metal/mtllibrary/1515524-newfunctionwithname
func (l Library) NewFunctionWithName(name string) (Function, error) {
	if !Supported {
		return Function{}, ErrUnsupportedPlatform
	}
	if l.IsNil() {
		return Function{}, errors.Wrap(ErrNilHandle, "library")
	}

	lookup := name
	if mapped, ok := l.entryPoints[name]; ok {
		lookup = mapped
	}

	ptr, nativeName := newFunctionWithName(l.obj.pointer(), lookup)
	if ptr == nil {
		return Function{}, errors.Wrapf(ErrFunctionNotFound, "%q", name)
	}
	return Function{obj: newObject(ptr, "function", releaseNative), name: nativeName}, nil
}

// FunctionNames returns the sorted names of all functions in the library.
func (l Library) FunctionNames() []string {
	if !Supported || l.IsNil() {
		return nil
	}
	names := libraryFunctionNames(l.obj.pointer())
	sort.Strings(names)
	return names
}

// Function represents a programmable graphics or compute function executed by the GPU.
//
// Reference: https://developer.apple.com/documentation/metal/mtlfunction.
type Function struct {
	obj  *object
	name string
}

// IsNil reports whether f holds no live native function.
func (f Function) IsNil() bool { return f.obj.pointer() == nil }

// Name returns the function's name as reported by Metal.
func (f Function) Name() string { return f.name }

// Release releases the function.
func (f Function) Release() { f.obj.release() }
