package mtl

// BuildComputePipeline compiles source, looks up function and creates a
// compute pipeline state for it. The intermediate library and function are
// released before returning, whether or not the pipeline was created.
func (d Device) BuildComputePipeline(source, function string, optFns ...func(*CompileOptions)) (ComputePipelineState, error) {
	lib, err := d.NewLibraryWithSource(source, optFns...)
	if err != nil {
		return ComputePipelineState{}, err
	}
	defer lib.Release()
	return d.pipelineFromLibrary(lib, function)
}

// BuildComputePipelineWGSL is BuildComputePipeline for WGSL source; function
// is the WGSL entry point name.
func (d Device) BuildComputePipelineWGSL(source, function string, optFns ...func(*CompileOptions)) (ComputePipelineState, error) {
	lib, err := d.NewLibraryWithWGSL(source, optFns...)
	if err != nil {
		return ComputePipelineState{}, err
	}
	defer lib.Release()
	return d.pipelineFromLibrary(lib, function)
}

func (d Device) pipelineFromLibrary(lib Library, function string) (ComputePipelineState, error) {
	fn, err := lib.NewFunctionWithName(function)
	if err != nil {
		return ComputePipelineState{}, err
	}
	defer fn.Release()
	return d.NewComputePipelineStateWithFunction(fn)
}
