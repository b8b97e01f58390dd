package bloch

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// GammaTol is the hard gamma-point classification threshold. A k-point
// is gamma only when every component is strictly below this in absolute
// value. The threshold is part of the folding contract with the
// interchange formats and is deliberately not configurable.
const GammaTol = 1e-7

// RealDTypeError reports a request for a real-valued sequence at a
// k-point whose phases are genuinely complex.
type RealDTypeError struct {
	DType DType
	K     [3]float64
}

func (e *RealDTypeError) Error() string {
	return fmt.Sprintf("dtype %s cannot hold phases off gamma (k = %v)", e.DType, e.K)
}

// ShapeError reports a reciprocal-cell matrix with the wrong dimensions.
type ShapeError struct {
	Rows, Cols int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("reciprocal cell must be 3x3, got %dx%d", e.Rows, e.Cols)
}

// IsGamma reports whether k is the gamma point: all components
// strictly below GammaTol in absolute value.
func IsGamma(k [3]float64) bool {
	return math.Abs(k[0]) < GammaTol &&
		math.Abs(k[1]) < GammaTol &&
		math.Abs(k[2]) < GammaTol
}

// ForOffsets returns one phase per supercell offset vector v:
// exp(-i 2π k·v), with k in reduced reciprocal coordinates and v in
// lattice-vector units. At gamma the sequence is all ones in dtype.
//
// dtype == DTypeNone resolves through ResolveDType with no hint. A
// real dtype off gamma is an error.
func ForOffsets(offsets [][3]float64, k [3]float64, dtype DType) (*Values, error) {
	if dtype == DTypeNone {
		dtype = ResolveDType(k, DTypeNone, false)
	}
	if IsGamma(k) {
		return ones(dtype, len(offsets)), nil
	}
	if !dtype.IsComplex() {
		return nil, &RealDTypeError{DType: dtype, K: k}
	}

	k2pi := [3]float64{2 * math.Pi * k[0], 2 * math.Pi * k[1], 2 * math.Pi * k[2]}
	phases := make([]complex128, len(offsets))
	for i, v := range offsets {
		theta := v[0]*k2pi[0] + v[1]*k2pi[1] + v[2]*k2pi[2]
		phases[i] = cmplx.Exp(complex(0, -theta))
	}
	return fromComplex128(dtype, phases), nil
}

// ForDistances returns one phase per real-space distance vector r:
// exp(-i r·kc) with kc = 2πk projected through the reciprocal cell
// (kc_j = Σ_i 2πk_i rcell_ij). At gamma the sequence is all ones.
//
// rcell must be 3x3; dtype handling matches ForOffsets.
func ForDistances(distances [][3]float64, rcell mat.Matrix, k [3]float64, dtype DType) (*Values, error) {
	if r, c := rcell.Dims(); r != 3 || c != 3 {
		return nil, &ShapeError{Rows: r, Cols: c}
	}
	if dtype == DTypeNone {
		dtype = ResolveDType(k, DTypeNone, false)
	}
	if IsGamma(k) {
		return ones(dtype, len(distances)), nil
	}
	if !dtype.IsComplex() {
		return nil, &RealDTypeError{DType: dtype, K: k}
	}

	kv := mat.NewVecDense(3, []float64{
		2 * math.Pi * k[0],
		2 * math.Pi * k[1],
		2 * math.Pi * k[2],
	})
	var kc mat.VecDense
	// Row vector times matrix: kc = rcellᵀ kv.
	kc.MulVec(rcell.T(), kv)

	kc0, kc1, kc2 := kc.AtVec(0), kc.AtVec(1), kc.AtVec(2)
	phases := make([]complex128, len(distances))
	for i, r := range distances {
		theta := r[0]*kc0 + r[1]*kc1 + r[2]*kc2
		phases[i] = cmplx.Exp(complex(0, -theta))
	}
	return fromComplex128(dtype, phases), nil
}
