// Command mtlc compiles a Metal or WGSL compute kernel and reports the
// resulting pipeline's thread limits.
//
// Usage:
//
//	mtlc [options] <input>
//
// Examples:
//
//	mtlc -func add kernels.metal           # compile MSL, build pipeline for add
//	mtlc -func noop shader.wgsl            # WGSL is detected by extension
//	mtlc -emit-msl shader.wgsl             # print the MSL translation only
//	mtlc -lang 2.4 -math safe -func add k.metal
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/csotherden/gorgonia-mtl/mtl"
)

var (
	funcName   = flag.String("func", "", "kernel function to build a pipeline for")
	wgsl       = flag.Bool("wgsl", false, "treat input as WGSL (default: by .wgsl extension)")
	emitMSL    = flag.Bool("emit-msl", false, "print the MSL translation of a WGSL input and exit")
	langFlag   = flag.String("lang", "3.0", "Metal Shading Language version")
	mathFlag   = flag.String("math", "fast", "math mode: safe, relaxed or fast")
	invariance = flag.Bool("invariance", false, "preserve invariance")
	dispatch   = flag.String("dispatch", "", "comma-separated tensor shape to size a dispatch for, e.g. 512,768")
	verbose    = flag.Bool("v", false, "verbose logging")
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Width(34)
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			mtl.SetLogger(l)
			defer func() { _ = l.Sync() }()
		}
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error:")+" no input file specified")
		usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error:")+" "+err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: mtlc [options] <input>\n\nOptions:\n")
	flag.PrintDefaults()
}

func run(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	lang, err := mtl.ParseLanguageVersion(*langFlag)
	if err != nil {
		return err
	}
	mode, err := mtl.ParseMathMode(*mathFlag)
	if err != nil {
		return err
	}
	isWGSL := *wgsl || strings.EqualFold(filepath.Ext(path), ".wgsl")

	if *emitMSL {
		if !isWGSL {
			return fmt.Errorf("-emit-msl requires WGSL input")
		}
		t, err := mtl.TranslateWGSL(string(source), lang)
		if err != nil {
			return err
		}
		fmt.Print(t.MSL)
		return nil
	}

	device, err := mtl.CreateSystemDefaultDevice()
	if err != nil {
		return err
	}
	defer device.Release()
	printField("Device", device.Name())

	opts := []func(*mtl.CompileOptions){
		mtl.WithLanguageVersion(lang),
		mtl.WithMathMode(mode),
		mtl.WithPreserveInvariance(*invariance),
	}

	var lib mtl.Library
	if isWGSL {
		lib, err = device.NewLibraryWithWGSL(string(source), opts...)
	} else {
		lib, err = device.NewLibraryWithSource(string(source), opts...)
	}
	if err != nil {
		return err
	}
	defer lib.Release()
	printField("Functions", strings.Join(lib.FunctionNames(), ", "))

	if *funcName == "" {
		return nil
	}

	fn, err := lib.NewFunctionWithName(*funcName)
	if err != nil {
		return err
	}
	defer fn.Release()

	ps, err := device.NewComputePipelineStateWithFunction(fn)
	if err != nil {
		return err
	}
	defer ps.Release()

	printField("MaxTotalThreadsPerThreadgroup", fmt.Sprint(ps.MaxTotalThreadsPerThreadgroup))
	printField("ThreadExecutionWidth", fmt.Sprint(ps.ThreadExecutionWidth))

	if *dispatch == "" {
		return nil
	}
	shape, err := parseShape(*dispatch)
	if err != nil {
		return err
	}
	grid, tg, err := ps.DispatchSize(shape)
	if err != nil {
		return err
	}
	printField("Grid", formatSize(grid))
	printField("Threadgroup", formatSize(tg))
	printField("Threadgroups", formatSize(grid.Threadgroups(tg)))
	return nil
}

func parseShape(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	shape := make([]int, 0, len(parts))
	for _, p := range parts {
		var d int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &d); err != nil {
			return nil, fmt.Errorf("invalid dispatch shape %q", s)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

func formatSize(s mtl.Size) string {
	return fmt.Sprintf("%d x %d x %d", s.Width, s.Height, s.Depth)
}

func printField(label, value string) {
	fmt.Println(labelStyle.Render(label) + value)
}
