package sisl

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/fyalcin/sisl/internal/record"
)

// Header record payload sizes. The two variants are told apart by the
// record length alone; there is no version tag in the format.
const (
	modernHeaderSize = 20 // int32 no_u, nspin, nsc[3]
	legacyHeaderSize = 8  // int32 no_u, nspin
)

// ProbeSizes opens the file, decodes the header (modern or legacy) and
// the row-length record, and returns the dimensions needed to size the
// buffers for a subsequent read. Legacy files report Nsc = [0,0,0].
func ProbeSizes(path string, opts ...Option) (Sizes, error) {
	o := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return Sizes{}, err
	}
	defer f.Close()

	src, release, err := decompress(f)
	if err != nil {
		return Sizes{}, err
	}
	defer release()

	r := record.NewReader(src)
	sz, err := readHeader(r)
	if err != nil {
		return Sizes{}, err
	}

	ncol := make([]int32, sz.Norb)
	if err := r.Int32s(ncol); err != nil {
		return Sizes{}, fmt.Errorf("row lengths: %w", err)
	}
	sz.Nnz, err = sumNcol(ncol)
	if err != nil {
		return Sizes{}, err
	}

	o.logger.Debug("probed sparse-matrix sizes",
		"path", path,
		"no_u", sz.Norb,
		"nspin", sz.Nspin,
		"nsc", sz.Nsc,
		"nnz", sz.Nnz,
	)
	return sz, nil
}

// ReadDensityMatrix reads a DM file whose dimensions the caller
// already knows (normally from ProbeSizes). The file header and row
// layout are validated against want; any disagreement aborts the read
// with a *MismatchError and no result.
func ReadDensityMatrix(path string, want Sizes, opts ...Option) (*DensityMatrix, error) {
	o := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, release, err := decompress(f)
	if err != nil {
		return nil, err
	}
	defer release()

	r := record.NewReader(src)
	if err := readValidatedHeader(r, want); err != nil {
		return nil, err
	}

	ncol, listCol, err := readPattern(r, want)
	if err != nil {
		return nil, err
	}

	dm := make([][]float64, want.Nspin)
	for s := range dm {
		dm[s] = make([]float64, want.Nnz)
		if err := readPlane(r, ncol, dm[s]); err != nil {
			return nil, fmt.Errorf("DM plane %d: %w", s, err)
		}
	}

	o.logger.Debug("read density matrix", "path", path, "nspin", want.Nspin, "nnz", want.Nnz)
	return &DensityMatrix{Sizes: want, Ncol: ncol, ListCol: listCol, DM: dm}, nil
}

// ReadEnergyDensityMatrix reads the EDM planes of a TSDE-style file.
// The DM planes stored ahead of them are consumed without validation
// to advance the stream; the EDM values are converted from Rydberg to
// eV on the way in.
func ReadEnergyDensityMatrix(path string, want Sizes, opts ...Option) (*EnergyDensityMatrix, error) {
	o := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, release, err := decompress(f)
	if err != nil {
		return nil, err
	}
	defer release()

	r := record.NewReader(src)
	if err := readValidatedHeader(r, want); err != nil {
		return nil, err
	}

	ncol, listCol, err := readPattern(r, want)
	if err != nil {
		return nil, err
	}

	// DM planes: present but unwanted.
	for i := 0; i < want.Nspin*want.Norb; i++ {
		if err := r.Skip(); err != nil {
			return nil, fmt.Errorf("skipping DM plane record %d: %w", i, err)
		}
	}

	edm := make([][]float64, want.Nspin)
	for s := range edm {
		edm[s] = make([]float64, want.Nnz)
		if err := readPlane(r, ncol, edm[s]); err != nil {
			return nil, fmt.Errorf("EDM plane %d: %w", s, err)
		}
		for i := range edm[s] {
			edm[s][i] *= RydbergToEV
		}
	}

	o.logger.Debug("read energy-density matrix", "path", path, "nspin", want.Nspin, "nnz", want.Nnz)
	return &EnergyDensityMatrix{Sizes: want, Ncol: ncol, ListCol: listCol, EDM: edm}, nil
}

// readHeader decodes the first record as either header variant. The
// payload is fully buffered before decoding, so the two attempts never
// share partial stream state.
func readHeader(r *record.Reader) (Sizes, error) {
	payload, err := r.Next()
	if err != nil {
		return Sizes{}, fmt.Errorf("%w: %v", ErrHeader, err)
	}

	i32 := func(off int) int {
		return int(int32(binary.LittleEndian.Uint32(payload[off:])))
	}

	var sz Sizes
	switch len(payload) {
	case modernHeaderSize:
		sz = Sizes{
			Norb:  i32(0),
			Nspin: i32(4),
			Nsc:   [3]int{i32(8), i32(12), i32(16)},
		}
	case legacyHeaderSize:
		sz = Sizes{Norb: i32(0), Nspin: i32(4)}
	default:
		return Sizes{}, fmt.Errorf("%w: first record is %d bytes", ErrHeader, len(payload))
	}

	// Header fields size the output buffers; negative values mean a
	// corrupt file, not a caller mismatch.
	if sz.Norb < 0 || sz.Nspin < 0 {
		return Sizes{}, fmt.Errorf("%w: negative dimension (no_u=%d, nspin=%d)", ErrHeader, sz.Norb, sz.Nspin)
	}
	return sz, nil
}

// readValidatedHeader re-derives the header and checks it field by
// field against the caller-supplied sizes.
func readValidatedHeader(r *record.Reader, want Sizes) error {
	got, err := readHeader(r)
	if err != nil {
		return err
	}
	if got.Norb != want.Norb {
		return &MismatchError{Field: "no_u", Want: want.Norb, Got: got.Norb}
	}
	if got.Nspin != want.Nspin {
		return &MismatchError{Field: "nspin", Want: want.Nspin, Got: got.Nspin}
	}
	for i := range got.Nsc {
		if got.Nsc[i] != want.Nsc[i] {
			return &MismatchError{Field: fmt.Sprintf("nsc[%d]", i), Want: want.Nsc[i], Got: got.Nsc[i]}
		}
	}
	return nil
}

// readPattern reads the row lengths and the segmented column-index
// records into one flat buffer of length want.Nnz.
func readPattern(r *record.Reader, want Sizes) (ncol, listCol []int32, err error) {
	ncol = make([]int32, want.Norb)
	if err := r.Int32s(ncol); err != nil {
		return nil, nil, fmt.Errorf("row lengths: %w", err)
	}
	if err := checkNnz(ncol, want.Nnz); err != nil {
		return nil, nil, err
	}

	listCol = make([]int32, want.Nnz)
	off := 0
	for row, n := range ncol {
		if err := r.Int32s(listCol[off : off+int(n)]); err != nil {
			return nil, nil, fmt.Errorf("column indices, row %d: %w", row+1, err)
		}
		off += int(n)
	}
	return ncol, listCol, nil
}

// readPlane reads one spin plane: Norb records whose segment lengths
// follow ncol, concatenated into dst with a running offset.
func readPlane(r *record.Reader, ncol []int32, dst []float64) error {
	off := 0
	for row, n := range ncol {
		if err := r.Float64s(dst[off : off+int(n)]); err != nil {
			return fmt.Errorf("row %d: %w", row+1, err)
		}
		off += int(n)
	}
	return nil
}
