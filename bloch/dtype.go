package bloch

// DType selects the scalar kind of a phase sequence.
type DType int

const (
	// DTypeNone means "no preference"; resolution picks a default.
	DTypeNone DType = iota
	// Float32 is a real single-precision sequence.
	Float32
	// Float64 is a real double-precision sequence.
	Float64
	// Complex64 is a complex sequence with float32 parts.
	Complex64
	// Complex128 is a complex sequence with float64 parts.
	Complex128
)

// String returns the numpy-style name of the dtype.
func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "none"
	}
}

// IsComplex reports whether d is one of the complex kinds.
func (d DType) IsComplex() bool {
	return d == Complex64 || d == Complex128
}

// Complex returns the complex kind with the same precision as d.
// Complex kinds pass through unchanged; DTypeNone promotes to
// Complex128.
func (d DType) Complex() DType {
	switch d {
	case Float32:
		return Complex64
	case Float64, DTypeNone:
		return Complex128
	default:
		return d
	}
}

// ResolveDType picks the scalar kind of the phase sequence for k.
//
// At gamma the hint is kept as-is (defaulting to Float64 when there is
// no hint) unless forceComplex promotes it to the matching complex
// kind. Off gamma the phases are genuinely complex, so the hint is
// always promoted; forceComplex is irrelevant there. Complex hints
// pass through unchanged in every branch. Callers rely on this exact
// mapping to avoid redundant casts.
func ResolveDType(k [3]float64, hint DType, forceComplex bool) DType {
	if hint.IsComplex() {
		return hint
	}
	if IsGamma(k) && !forceComplex {
		if hint == DTypeNone {
			return Float64
		}
		return hint
	}
	return hint.Complex()
}
