package mtl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LanguageVersion selects the Metal Shading Language version used to
// interpret library source. Values match MTLLanguageVersion, which encodes
// the version as major<<16 | minor.
//
// Reference: https://developer.apple.com/documentation/metal/mtllanguageversion
type LanguageVersion uint32

const (
	LanguageVersion1_1 LanguageVersion = 1<<16 | 1
	LanguageVersion1_2 LanguageVersion = 1<<16 | 2
	LanguageVersion2_0 LanguageVersion = 2 << 16
	LanguageVersion2_1 LanguageVersion = 2<<16 | 1
	LanguageVersion2_2 LanguageVersion = 2<<16 | 2
	LanguageVersion2_3 LanguageVersion = 2<<16 | 3
	LanguageVersion2_4 LanguageVersion = 2<<16 | 4
	LanguageVersion3_0 LanguageVersion = 3 << 16
	LanguageVersion3_1 LanguageVersion = 3<<16 | 1
	LanguageVersion3_2 LanguageVersion = 3<<16 | 2
)

// Major returns the major component of the version.
func (v LanguageVersion) Major() uint8 { return uint8(v >> 16) }

// Minor returns the minor component of the version.
func (v LanguageVersion) Minor() uint8 { return uint8(v & 0xffff) }

func (v LanguageVersion) String() string { return fmt.Sprintf("%d.%d", v.Major(), v.Minor()) }

func (v LanguageVersion) valid() bool {
	switch v {
	case LanguageVersion1_1, LanguageVersion1_2,
		LanguageVersion2_0, LanguageVersion2_1, LanguageVersion2_2, LanguageVersion2_3, LanguageVersion2_4,
		LanguageVersion3_0, LanguageVersion3_1, LanguageVersion3_2:
		return true
	}
	return false
}

// ParseLanguageVersion parses a "major.minor" string such as "3.0".
func ParseLanguageVersion(s string) (LanguageVersion, error) {
	majorStr, minorStr, ok := strings.Cut(s, ".")
	if !ok {
		return 0, errors.Wrapf(ErrInvalidOption, "language version %q", s)
	}
	major, err := strconv.ParseUint(majorStr, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidOption, "language version %q", s)
	}
	minor, err := strconv.ParseUint(minorStr, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidOption, "language version %q", s)
	}
	v := LanguageVersion(major<<16 | minor)
	if !v.valid() {
		return 0, errors.Wrapf(ErrInvalidOption, "unknown language version %q", s)
	}
	return v, nil
}

// MathMode selects how aggressively the compiler may optimize floating-point
// arithmetic.
//
// Reference: https://developer.apple.com/documentation/metal/mtlmathmode
type MathMode int

const (
	// MathModeSafe disallows optimizations that break IEEE 754 semantics.
	MathModeSafe MathMode = 0
	// MathModeRelaxed allows reassociation and similar optimizations but
	// preserves NaN and infinity handling.
	MathModeRelaxed MathMode = 1
	// MathModeFast allows all fast-math optimizations.
	MathModeFast MathMode = 2
)

func (m MathMode) String() string {
	switch m {
	case MathModeSafe:
		return "safe"
	case MathModeRelaxed:
		return "relaxed"
	case MathModeFast:
		return "fast"
	}
	return fmt.Sprintf("MathMode(%d)", int(m))
}

// ParseMathMode parses "safe", "relaxed" or "fast".
func ParseMathMode(s string) (MathMode, error) {
	switch s {
	case "safe":
		return MathModeSafe, nil
	case "relaxed":
		return MathModeRelaxed, nil
	case "fast":
		return MathModeFast, nil
	}
	return 0, errors.Wrapf(ErrInvalidOption, "unknown math mode %q", s)
}

// CompileOptions specifies optional compilation settings for
// the graphics or compute functions within a library.
//
// Reference: https://developer.apple.com/documentation/metal/mtlcompileoptions
type CompileOptions struct {
	// Indicates whether the compiler should compile vertex shaders conservatively to generate consistent position calculations.
	PreserveInvariance bool

	// The language version used to interpret the library source code.
	LanguageVersion LanguageVersion

	// Indicates whether the compiler can perform optimizations for floating-point arithmetic that may violate the IEEE 754 standard.
	MathMode MathMode
}

// DefaultCompileOptions returns the options used when no option functions
// are supplied.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{
		PreserveInvariance: false,
		LanguageVersion:    LanguageVersion3_0,
		MathMode:           MathModeFast,
	}
}

// WithPreserveInvariance sets CompileOptions.PreserveInvariance.
func WithPreserveInvariance(preserve bool) func(*CompileOptions) {
	return func(o *CompileOptions) { o.PreserveInvariance = preserve }
}

// WithLanguageVersion sets CompileOptions.LanguageVersion.
func WithLanguageVersion(v LanguageVersion) func(*CompileOptions) {
	return func(o *CompileOptions) { o.LanguageVersion = v }
}

// WithMathMode sets CompileOptions.MathMode.
func WithMathMode(m MathMode) func(*CompileOptions) {
	return func(o *CompileOptions) { o.MathMode = m }
}

// resolveOptions applies optFns over the defaults and validates the result.
func resolveOptions(optFns []func(*CompileOptions)) (CompileOptions, error) {
	opts := DefaultCompileOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.Validate(); err != nil {
		return CompileOptions{}, err
	}
	return opts, nil
}

// Validate reports whether the options hold values Metal understands.
func (o CompileOptions) Validate() error {
	if !o.LanguageVersion.valid() {
		return errors.Wrapf(ErrInvalidOption, "language version %#x", uint32(o.LanguageVersion))
	}
	switch o.MathMode {
	case MathModeSafe, MathModeRelaxed, MathModeFast:
	default:
		return errors.Wrapf(ErrInvalidOption, "math mode %d", int(o.MathMode))
	}
	return nil
}
