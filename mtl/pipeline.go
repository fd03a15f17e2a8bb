package mtl

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ComputePipelineState is a compiled compute kernel bound to a device,
// ready to be dispatched.
//
// Reference: https://developer.apple.com/documentation/metal/mtlcomputepipelinestate
type ComputePipelineState struct {
	obj *object

	// MaxTotalThreadsPerThreadgroup is the maximum number of threads in a
	// threadgroup for this pipeline.
	MaxTotalThreadsPerThreadgroup uint

	// ThreadExecutionWidth is the number of threads the GPU executes
	// simultaneously (the SIMD group width).
	ThreadExecutionWidth uint
}

// IsNil reports whether p holds no live native pipeline state.
func (p ComputePipelineState) IsNil() bool { return p.obj.pointer() == nil }

// Release releases the pipeline state.
func (p ComputePipelineState) Release() { p.obj.release() }

// ThreadgroupSize returns a two-dimensional threadgroup that fills the
// pipeline's capacity: ThreadExecutionWidth wide and
// MaxTotalThreadsPerThreadgroup/ThreadExecutionWidth high.
//
// Reference: https://developer.apple.com/documentation/metal/compute_passes/calculating_threadgroup_and_grid_sizes
func (p ComputePipelineState) ThreadgroupSize() Size {
	w := minUint(p.ThreadExecutionWidth, p.MaxTotalThreadsPerThreadgroup)
	if w == 0 {
		return Size{}
	}
	h := p.MaxTotalThreadsPerThreadgroup / w
	if h == 0 {
		h = 1
	}
	return Size{Width: w, Height: h, Depth: 1}
}

// DispatchSize maps a row-major tensor shape of rank 0 to 3 onto a grid of
// threads, one per element, and picks a threadgroup size for it. The
// innermost dimension becomes the grid width.
//
// Shapes with non-positive dimensions or rank above 3 are rejected with
// ErrInvalidShape.
func (p ComputePipelineState) DispatchSize(shape tensor.Shape) (grid, threadgroup Size, err error) {
	if p.ThreadExecutionWidth == 0 || p.MaxTotalThreadsPerThreadgroup == 0 {
		return Size{}, Size{}, errors.Wrap(ErrNilHandle, "pipeline has no thread limits")
	}
	for _, d := range shape {
		if d <= 0 {
			return Size{}, Size{}, errors.Wrapf(ErrInvalidShape, "shape %v", shape)
		}
	}

	switch shape.Dims() {
	case 0:
		return Size{1, 1, 1}, Size{1, 1, 1}, nil
	case 1:
		n := uint(shape[0])
		return Size{n, 1, 1}, Size{minUint(n, p.MaxTotalThreadsPerThreadgroup), 1, 1}, nil
	case 2:
		grid = Size{Width: uint(shape[1]), Height: uint(shape[0]), Depth: 1}
	case 3:
		grid = Size{Width: uint(shape[2]), Height: uint(shape[1]), Depth: uint(shape[0])}
	default:
		return Size{}, Size{}, errors.Wrapf(ErrInvalidShape, "rank %d exceeds 3", shape.Dims())
	}

	threadgroup = p.ThreadgroupSize()
	threadgroup.Width = minUint(threadgroup.Width, grid.Width)
	threadgroup.Height = minUint(threadgroup.Height, grid.Height)
	return grid, threadgroup, nil
}

// DispatchSizeFor is DispatchSize for the shape of t.
func (p ComputePipelineState) DispatchSizeFor(t tensor.Tensor) (grid, threadgroup Size, err error) {
	if t == nil {
		return Size{}, Size{}, errors.Wrap(ErrInvalidShape, "nil tensor")
	}
	return p.DispatchSize(t.Shape())
}

func minUint(a, b uint) uint {
	if a < b {
		return a
	}
	return b
}
