package sisl

import "fmt"

// Sizes describes the dimensions of a density-matrix file: the header
// fields plus the nonzero count derived from the row lengths. It is
// what ProbeSizes returns and what the read functions validate the
// file against.
type Sizes struct {
	// Norb is the number of unit-cell orbitals (rows), no_u in the
	// SIESTA sources.
	Norb int
	// Nspin is the number of spin value planes.
	Nspin int
	// Nsc holds the supercell repetitions along each lattice vector.
	// Files written before the supercell header carry no nsc record;
	// they report [0, 0, 0].
	Nsc [3]int
	// Nnz is the total nonzero count, sum over the row lengths.
	Nnz int
}

// DensityMatrix is a row-compressed sparse density matrix as stored on
// disk: per-row lengths, flattened 1-based column indices, and one
// value plane per spin. Each flat array is partitioned into contiguous
// per-row segments in row order; segment lengths are Ncol.
type DensityMatrix struct {
	Sizes

	// Ncol[row] is the number of nonzeros in row (length Norb).
	Ncol []int32
	// ListCol holds the 1-based column indices, length Nnz.
	ListCol []int32
	// DM[spin] is the value plane for one spin, length Nnz.
	DM [][]float64
}

// EnergyDensityMatrix is the EDM part of a TSDE-style file. The file
// also carries the density-matrix planes ahead of the EDM planes;
// reading skips them, so DM is nil on a freshly read value.
//
// EDM values are in eV in memory. The file stores Rydberg; reading
// multiplies by RydbergToEV and writing divides it back out.
type EnergyDensityMatrix struct {
	Sizes

	Ncol    []int32
	ListCol []int32
	// EDM[spin] is the energy-density value plane, length Nnz, in eV.
	EDM [][]float64
}

// sumNcol totals the row lengths, rejecting negative entries before
// they can drive a slice bound or allocation.
func sumNcol(ncol []int32) (int, error) {
	total := 0
	for row, n := range ncol {
		if n < 0 {
			return 0, fmt.Errorf("%w: row %d has length %d", ErrRowLength, row+1, n)
		}
		total += int(n)
	}
	return total, nil
}

// checkNnz validates that the freshly read row lengths sum to the nnz
// the caller sized its buffers with.
func checkNnz(ncol []int32, nnz int) error {
	total, err := sumNcol(ncol)
	if err != nil {
		return err
	}
	if total != nnz {
		return &MismatchError{Field: "nnz", Want: nnz, Got: total}
	}
	return nil
}
