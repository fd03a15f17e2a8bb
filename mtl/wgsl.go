package mtl

import (
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"go.uber.org/zap"
)

// Stage is the pipeline stage an entry point runs in.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageCompute  Stage = "compute"
)

func stageOf(s ir.ShaderStage) Stage {
	switch s {
	case ir.StageVertex:
		return StageVertex
	case ir.StageFragment:
		return StageFragment
	default:
		return StageCompute
	}
}

// EntryPoint describes one entry point of a translated WGSL module.
type EntryPoint struct {
	// Name is the entry point name in the WGSL source.
	Name string
	// MSLName is the function name in the generated MSL.
	MSLName string
	Stage   Stage
	// Workgroup is the @workgroup_size of compute entry points.
	Workgroup Size
}

// Translation is the result of translating WGSL to MSL.
type Translation struct {
	MSL         string
	EntryPoints []EntryPoint
}

// EntryPoint returns the entry point with the given WGSL name.
func (t Translation) EntryPoint(name string) (EntryPoint, bool) {
	for _, ep := range t.EntryPoints {
		if ep.Name == name {
			return ep, true
		}
	}
	return EntryPoint{}, false
}

func (t Translation) names() map[string]string {
	m := make(map[string]string, len(t.EntryPoints))
	for _, ep := range t.EntryPoints {
		m[ep.Name] = ep.MSLName
	}
	return m
}

// TranslateWGSL translates WGSL source to Metal Shading Language targeting
// the given language version. It runs in pure Go and needs no GPU.
func TranslateWGSL(source string, version LanguageVersion) (Translation, error) {
	if !version.valid() {
		return Translation{}, &TranslateError{Stage: "msl", Err: ErrInvalidOption}
	}

	ast, err := naga.Parse(source)
	if err != nil {
		return Translation{}, &TranslateError{Stage: "parse", Err: err}
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return Translation{}, &TranslateError{Stage: "lower", Err: err}
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return Translation{}, &TranslateError{Stage: "validate", Err: err}
	}
	if len(verrs) > 0 {
		return Translation{}, &TranslateError{Stage: "validate", Err: verrs[0]}
	}

	opts := msl.DefaultOptions()
	opts.LangVersion = msl.Version{Major: version.Major(), Minor: version.Minor()}
	out, info, err := msl.Compile(module, opts)
	if err != nil {
		return Translation{}, &TranslateError{Stage: "msl", Err: err}
	}

	t := Translation{MSL: out, EntryPoints: make([]EntryPoint, 0, len(module.EntryPoints))}
	for _, ep := range module.EntryPoints {
		name := info.EntryPointNames[ep.Name]
		if name == "" {
			name = ep.Name
		}
		t.EntryPoints = append(t.EntryPoints, EntryPoint{
			Name:    ep.Name,
			MSLName: name,
			Stage:   stageOf(ep.Stage),
			Workgroup: Size{
				Width:  uint(ep.Workgroup[0]),
				Height: uint(ep.Workgroup[1]),
				Depth:  uint(ep.Workgroup[2]),
			},
		})
	}

	Logger().Debug("translated wgsl",
		zap.Int("wgsl_bytes", len(source)),
		zap.Int("msl_bytes", len(out)),
		zap.Int("entry_points", len(t.EntryPoints)))

	return t, nil
}

// NewLibraryWithWGSL translates WGSL source to MSL and compiles it. The
// library resolves WGSL entry point names in NewFunctionWithName.
func (d Device) NewLibraryWithWGSL(source string, optFns ...func(*CompileOptions)) (Library, error) {
	if err := d.check(); err != nil {
		return Library{}, err
	}
	opts, err := resolveOptions(optFns)
	if err != nil {
		return Library{}, err
	}
	t, err := TranslateWGSL(source, opts.LanguageVersion)
	if err != nil {
		return Library{}, err
	}
	lib, err := d.newLibrary(t.MSL, opts)
	if err != nil {
		return Library{}, err
	}
	lib.entryPoints = t.names()
	return lib, nil
}
