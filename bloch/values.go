package bloch

// Values is a phase sequence materialized in one scalar kind. Exactly
// one backing slice is non-nil; the others stay nil so accidental use
// of the wrong accessor fails loudly.
type Values struct {
	dtype DType
	f32   []float32
	f64   []float64
	c64   []complex64
	c128  []complex128
}

// DType returns the scalar kind of the sequence.
func (v *Values) DType() DType { return v.dtype }

// Len returns the number of phases in the sequence.
func (v *Values) Len() int {
	switch v.dtype {
	case Float32:
		return len(v.f32)
	case Float64:
		return len(v.f64)
	case Complex64:
		return len(v.c64)
	default:
		return len(v.c128)
	}
}

// Float32s returns the backing slice when DType is Float32, else nil.
func (v *Values) Float32s() []float32 { return v.f32 }

// Float64s returns the backing slice when DType is Float64, else nil.
func (v *Values) Float64s() []float64 { return v.f64 }

// Complex64s returns the backing slice when DType is Complex64, else nil.
func (v *Values) Complex64s() []complex64 { return v.c64 }

// Complex128s returns the backing slice when DType is Complex128, else nil.
func (v *Values) Complex128s() []complex128 { return v.c128 }

// At returns phase i widened to complex128 regardless of kind.
func (v *Values) At(i int) complex128 {
	switch v.dtype {
	case Float32:
		return complex(float64(v.f32[i]), 0)
	case Float64:
		return complex(v.f64[i], 0)
	case Complex64:
		return complex128(v.c64[i])
	default:
		return v.c128[i]
	}
}

// ones returns n multiplicative identities in dtype d.
func ones(d DType, n int) *Values {
	v := &Values{dtype: d}
	switch d {
	case Float32:
		v.f32 = make([]float32, n)
		for i := range v.f32 {
			v.f32[i] = 1
		}
	case Float64:
		v.f64 = make([]float64, n)
		for i := range v.f64 {
			v.f64[i] = 1
		}
	case Complex64:
		v.c64 = make([]complex64, n)
		for i := range v.c64 {
			v.c64[i] = 1
		}
	default:
		v.c128 = make([]complex128, n)
		for i := range v.c128 {
			v.c128[i] = 1
		}
	}
	return v
}

// fromComplex128 narrows a freshly computed complex128 sequence to
// dtype d without an intermediate copy for the Complex128 case. d must
// be a complex kind; callers resolve and check the dtype first.
func fromComplex128(d DType, src []complex128) *Values {
	switch d {
	case Complex64:
		c64 := make([]complex64, len(src))
		for i, c := range src {
			c64[i] = complex64(c)
		}
		return &Values{dtype: Complex64, c64: c64}
	case Complex128:
		return &Values{dtype: Complex128, c128: src}
	default:
		panic("bloch: fromComplex128 needs a complex dtype, got " + d.String())
	}
}
