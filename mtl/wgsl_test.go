package mtl

import (
	"errors"
	"strings"
	"testing"
)

const noopWGSL = `
@compute @workgroup_size(64)
fn noop() {
}
`

const addWGSL = `
@group(0) @binding(0) var<storage, read_write> data: array<f32>;

@compute @workgroup_size(64)
fn add(@builtin(global_invocation_id) id: vec3<u32>) {
	data[id.x] = data[id.x] + 1.0;
}
`

// main is reserved in MSL, so the generated kernel is renamed.
const mainWGSL = `
@compute @workgroup_size(1)
fn main() {
}
`

// Test that a trivial compute kernel translates to an MSL kernel and keeps
// its entry point metadata.
func TestTranslateWGSLNoop(t *testing.T) {
	tr, err := TranslateWGSL(noopWGSL, LanguageVersion3_0)
	if err != nil {
		t.Fatalf("TranslateWGSL error: %v", err)
	}
	if !strings.Contains(tr.MSL, "kernel") {
		t.Fatalf("expected a kernel function in MSL:\n%s", tr.MSL)
	}

	ep, ok := tr.EntryPoint("noop")
	if !ok {
		t.Fatalf("entry point noop missing: %+v", tr.EntryPoints)
	}
	if ep.Stage != StageCompute {
		t.Fatalf("stage = %q, want %q", ep.Stage, StageCompute)
	}
	if ep.Workgroup.Width != 64 {
		t.Fatalf("workgroup width = %d, want 64", ep.Workgroup.Width)
	}
	if ep.MSLName == "" || !strings.Contains(tr.MSL, ep.MSLName) {
		t.Fatalf("MSL name %q not present in output", ep.MSLName)
	}

	if _, ok := tr.EntryPoint("multiply"); ok {
		t.Fatalf("unexpected entry point multiply")
	}
	if names := tr.names(); names["noop"] != ep.MSLName {
		t.Fatalf("names() = %v", names)
	}
}

// Test that an entry point the translator renames is still found by its
// WGSL name and maps to the generated MSL name.
func TestTranslateWGSLRenamedEntryPoint(t *testing.T) {
	tr, err := TranslateWGSL(mainWGSL, LanguageVersion3_0)
	if err != nil {
		t.Fatalf("TranslateWGSL error: %v", err)
	}
	ep, ok := tr.EntryPoint("main")
	if !ok {
		t.Fatalf("entry point main missing: %+v", tr.EntryPoints)
	}
	if ep.MSLName == "" || ep.MSLName == "main" {
		t.Fatalf("MSL name = %q, want a renamed kernel", ep.MSLName)
	}
	if !strings.Contains(tr.MSL, ep.MSLName) {
		t.Fatalf("MSL name %q not present in output:\n%s", ep.MSLName, tr.MSL)
	}
	if names := tr.names(); names["main"] != ep.MSLName {
		t.Fatalf("names() = %v", names)
	}
}

func TestTranslateWGSLStorageBuffer(t *testing.T) {
	tr, err := TranslateWGSL(addWGSL, LanguageVersion2_1)
	if err != nil {
		t.Fatalf("TranslateWGSL error: %v", err)
	}
	if _, ok := tr.EntryPoint("add"); !ok {
		t.Fatalf("entry point add missing: %+v", tr.EntryPoints)
	}
	if len(tr.EntryPoints) != 1 {
		t.Fatalf("expected 1 entry point, got %d", len(tr.EntryPoints))
	}
}

// Test that malformed source is rejected with a TranslateError and never
// produces output.
func TestTranslateWGSLMalformed(t *testing.T) {
	sources := []string{
		"fn noop( {",
		"@compute @workgroup_size(1) fn broken() { let x: f32 = ; }",
	}

	for _, src := range sources {
		tr, err := TranslateWGSL(src, LanguageVersion3_0)
		if err == nil {
			t.Fatalf("expected error for %q", src)
		}
		var te *TranslateError
		if !errors.As(err, &te) {
			t.Fatalf("expected *TranslateError, got %T: %v", err, err)
		}
		if te.Error() == "" {
			t.Fatalf("empty error text for %q", src)
		}
		if tr.MSL != "" || tr.EntryPoints != nil {
			t.Fatalf("failed translation returned output: %+v", tr)
		}
	}
}

func TestTranslateWGSLInvalidVersion(t *testing.T) {
	_, err := TranslateWGSL(noopWGSL, LanguageVersion(42))
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}
