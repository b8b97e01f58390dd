package sisl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fyalcin/sisl/internal/record"
)

// WriteDensityMatrix writes a DM file with the exact record structure
// the readers expect. A legacy 2-field header is emitted when
// dm.Nsc == [0,0,0], so legacy files round-trip byte for byte. The
// file is written to a temp file and renamed into place.
func WriteDensityMatrix(path string, dm *DensityMatrix, opts ...Option) error {
	o := applyOptions(opts)

	if err := checkWriteShape(dm.Sizes, dm.Ncol, dm.ListCol, dm.DM); err != nil {
		return err
	}

	err := saveToFile(path, func(w io.Writer) error {
		cw, err := compress(w, o.compression)
		if err != nil {
			return err
		}
		rw := record.NewWriter(cw)
		if err := writeHeader(rw, dm.Sizes); err != nil {
			return err
		}
		if err := writePattern(rw, dm.Ncol, dm.ListCol); err != nil {
			return err
		}
		for s, plane := range dm.DM {
			if err := writePlane(rw, dm.Ncol, plane); err != nil {
				return fmt.Errorf("DM plane %d: %w", s, err)
			}
		}
		return cw.Close()
	})
	if err != nil {
		return err
	}

	o.logger.Debug("wrote density matrix", "path", path, "nspin", dm.Nspin, "nnz", dm.Nnz)
	return nil
}

// WriteEnergyDensityMatrix writes a TSDE-style file: the DM planes
// first, then the EDM planes converted from eV back to Rydberg. When
// dm is nil, zero-valued DM planes are written; readers skip them
// anyway. dm, when given, must share edm's sparsity layout.
func WriteEnergyDensityMatrix(path string, dm *DensityMatrix, edm *EnergyDensityMatrix, opts ...Option) error {
	o := applyOptions(opts)

	if err := checkWriteShape(edm.Sizes, edm.Ncol, edm.ListCol, edm.EDM); err != nil {
		return err
	}
	if dm != nil {
		if err := checkWriteShape(edm.Sizes, dm.Ncol, dm.ListCol, dm.DM); err != nil {
			return err
		}
	}

	err := saveToFile(path, func(w io.Writer) error {
		cw, err := compress(w, o.compression)
		if err != nil {
			return err
		}
		rw := record.NewWriter(cw)
		if err := writeHeader(rw, edm.Sizes); err != nil {
			return err
		}
		if err := writePattern(rw, edm.Ncol, edm.ListCol); err != nil {
			return err
		}

		zero := make([]float64, edm.Nnz)
		for s := 0; s < edm.Nspin; s++ {
			plane := zero
			if dm != nil {
				plane = dm.DM[s]
			}
			if err := writePlane(rw, edm.Ncol, plane); err != nil {
				return fmt.Errorf("DM plane %d: %w", s, err)
			}
		}

		scratch := make([]float64, edm.Nnz)
		for s, plane := range edm.EDM {
			for i, v := range plane {
				scratch[i] = v / RydbergToEV
			}
			if err := writePlane(rw, edm.Ncol, scratch); err != nil {
				return fmt.Errorf("EDM plane %d: %w", s, err)
			}
		}
		return cw.Close()
	})
	if err != nil {
		return err
	}

	o.logger.Debug("wrote energy-density matrix", "path", path, "nspin", edm.Nspin, "nnz", edm.Nnz)
	return nil
}

func writeHeader(rw *record.Writer, sz Sizes) error {
	if sz.Nsc == [3]int{} {
		return rw.Int32s([]int32{int32(sz.Norb), int32(sz.Nspin)})
	}
	return rw.Int32s([]int32{
		int32(sz.Norb), int32(sz.Nspin),
		int32(sz.Nsc[0]), int32(sz.Nsc[1]), int32(sz.Nsc[2]),
	})
}

func writePattern(rw *record.Writer, ncol, listCol []int32) error {
	if err := rw.Int32s(ncol); err != nil {
		return fmt.Errorf("row lengths: %w", err)
	}
	off := 0
	for row, n := range ncol {
		if err := rw.Int32s(listCol[off : off+int(n)]); err != nil {
			return fmt.Errorf("column indices, row %d: %w", row+1, err)
		}
		off += int(n)
	}
	return nil
}

func writePlane(rw *record.Writer, ncol []int32, src []float64) error {
	off := 0
	for row, n := range ncol {
		if err := rw.Float64s(src[off : off+int(n)]); err != nil {
			return fmt.Errorf("row %d: %w", row+1, err)
		}
		off += int(n)
	}
	return nil
}

// checkWriteShape validates the in-memory layout against its declared
// sizes before any bytes hit the disk.
func checkWriteShape(sz Sizes, ncol, listCol []int32, planes [][]float64) error {
	if len(ncol) != sz.Norb {
		return &MismatchError{Field: "no_u", Want: sz.Norb, Got: len(ncol)}
	}
	if err := checkNnz(ncol, sz.Nnz); err != nil {
		return err
	}
	if len(listCol) != sz.Nnz {
		return &MismatchError{Field: "nnz", Want: sz.Nnz, Got: len(listCol)}
	}
	if len(planes) != sz.Nspin {
		return &MismatchError{Field: "nspin", Want: sz.Nspin, Got: len(planes)}
	}
	for s, p := range planes {
		if len(p) != sz.Nnz {
			return fmt.Errorf("plane %d: %w", s, &MismatchError{Field: "nnz", Want: sz.Nnz, Got: len(p)})
		}
	}
	return nil
}

// saveToFile writes through a temp file in the target directory and
// renames it into place, so readers never observe a half-written file.
func saveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}
