// Package mtl provides Go bindings for the parts of Apple's Metal framework
// needed to build compute pipelines: shader library compilation, function
// lookup and compute pipeline state creation.
//
// The bindings follow the lifetime of a compute kernel:
//
//	source -> Library -> Function -> ComputePipelineState
//
// Each step's output is the required input of the next. A failed step returns
// the zero value of its result together with a non-nil error, so a handle and
// an error are never both meaningful.
//
// Handles returned by this package own a retained reference to the native
// object. Call Release when done with them; Release is idempotent and safe to
// call on zero values. Devices wrapped with WrapDevice are borrowed from the
// host application and are never released here.
//
// Concurrency follows Metal's own contract. Devices, libraries and functions
// may be used from multiple goroutines for read-only work once constructed;
// constructing objects concurrently on the same device is not guaranteed to be
// safe. Every call blocks until Metal returns and cannot be cancelled.
//
// Metal is only available on darwin with cgo enabled. Other builds compile a
// stub whose operations return ErrUnsupportedPlatform. WGSL translation and
// dispatch sizing are pure Go and work on every platform.
package mtl

// GPUFamily is a family of GPUs.
//
// Reference: https://developer.apple.com/documentation/metal/mtlgpufamily.
type GPUFamily uint16

const (
	GPUFamilyApple1  GPUFamily = 1001 // Apple family 1 GPU features that correspond to the Apple A7 GPUs.
	GPUFamilyApple2  GPUFamily = 1002 // Apple family 2 GPU features that correspond to the Apple A8 GPUs.
	GPUFamilyApple3  GPUFamily = 1003 // Apple family 3 GPU features that correspond to the Apple A9 and A10 GPUs.
	GPUFamilyApple4  GPUFamily = 1004 // Apple family 4 GPU features that correspond to the Apple A11 GPUs.
	GPUFamilyApple5  GPUFamily = 1005 // Apple family 5 GPU features that correspond to the Apple A12 GPUs.
	GPUFamilyApple6  GPUFamily = 1006 // Apple family 6 GPU features that correspond to the Apple A13 GPUs.
	GPUFamilyApple7  GPUFamily = 1007 // Apple family 7 GPU features that correspond to the Apple A14 and M1 GPUs.
	GPUFamilyApple8  GPUFamily = 1008 // Apple family 8 GPU features that correspond to the Apple A15 and M2 GPUs.
	GPUFamilyMac2    GPUFamily = 2002 // Mac family 2 GPU features.
	GPUFamilyCommon1 GPUFamily = 3001 // Common family 1 GPU features.
	GPUFamilyCommon2 GPUFamily = 3002 // Common family 2 GPU features.
	GPUFamilyCommon3 GPUFamily = 3003 // Common family 3 GPU features.
	GPUFamilyMetal3  GPUFamily = 5001 // Metal 3 features.
)

// Size represents the set of dimensions that declare the size of an object,
// such as a threadgroup or grid.
//
// Reference: https://developer.apple.com/documentation/metal/mtlsize.
type Size struct{ Width, Height, Depth uint }

// Threadgroups returns how many threadgroups of size tg are needed to cover
// s in every dimension. Zero dimensions of tg are treated as 1.
func (s Size) Threadgroups(tg Size) Size {
	return Size{
		Width:  ceilDiv(s.Width, tg.Width),
		Height: ceilDiv(s.Height, tg.Height),
		Depth:  ceilDiv(s.Depth, tg.Depth),
	}
}

// Total returns Width*Height*Depth.
func (s Size) Total() uint { return s.Width * s.Height * s.Depth }

func ceilDiv(n, d uint) uint {
	if d == 0 {
		d = 1
	}
	return (n + d - 1) / d
}
