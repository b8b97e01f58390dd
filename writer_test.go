package sisl

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDensityMatrixLayout(t *testing.T) {
	dm := &DensityMatrix{
		Sizes:   Sizes{Norb: 2, Nspin: 1, Nsc: [3]int{3, 3, 1}, Nnz: 3},
		Ncol:    []int32{1, 2},
		ListCol: []int32{2, 1, 2},
		DM:      [][]float64{{1.5, 2.5, 3.5}},
	}
	path := filepath.Join(t.TempDir(), "layout.DM")
	require.NoError(t, WriteDensityMatrix(path, dm))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// header(20) + ncol(8) + listcol rows (4, 8) + value rows (8, 16),
	// each record framed by two 4-byte markers.
	wantLen := (20 + 8) + (8 + 8) + (4 + 8) + (8 + 8) + (8 + 8) + (16 + 8)
	require.Len(t, raw, wantLen)

	// First record: marker, 5 little-endian int32s, marker.
	assert.Equal(t, uint32(20), binary.LittleEndian.Uint32(raw[0:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(raw[4:]))  // no_u
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(raw[8:]))  // nspin
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(raw[12:])) // nsc[0]
	assert.Equal(t, uint32(20), binary.LittleEndian.Uint32(raw[24:]))
}

func TestWriteDensityMatrixLegacyHeader(t *testing.T) {
	dm := testDM()
	dm.Nsc = [3]int{}
	path := writeTestDM(t, dm)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(raw[0:]), "legacy header record must be 8 bytes")
}

func TestWriteDensityMatrixShapeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.DM")

	t.Run("ncol length", func(t *testing.T) {
		dm := testDM()
		dm.Ncol = dm.Ncol[:2]
		var me *MismatchError
		require.ErrorAs(t, WriteDensityMatrix(path, dm), &me)
		assert.Equal(t, "no_u", me.Field)
	})

	t.Run("nnz sum", func(t *testing.T) {
		dm := testDM()
		dm.Ncol[0] = 5
		var me *MismatchError
		require.ErrorAs(t, WriteDensityMatrix(path, dm), &me)
		assert.Equal(t, "nnz", me.Field)
	})

	t.Run("plane count", func(t *testing.T) {
		dm := testDM()
		dm.DM = dm.DM[:1]
		var me *MismatchError
		require.ErrorAs(t, WriteDensityMatrix(path, dm), &me)
		assert.Equal(t, "nspin", me.Field)
	})

	// Nothing may be left behind on a failed write.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteEnergyDensityMatrixZeroDM(t *testing.T) {
	dm := testDM()
	edm := &EnergyDensityMatrix{
		Sizes:   dm.Sizes,
		Ncol:    dm.Ncol,
		ListCol: dm.ListCol,
		EDM:     [][]float64{{1, 2, 3, 4, 5, 6}, {6, 5, 4, 3, 2, 1}},
	}
	path := filepath.Join(t.TempDir(), "zero.TSDE")
	require.NoError(t, WriteEnergyDensityMatrix(path, nil, edm))

	got, err := ReadEnergyDensityMatrix(path, edm.Sizes)
	require.NoError(t, err)
	for i := range edm.EDM[0] {
		assert.InDelta(t, edm.EDM[0][i], got.EDM[0][i], 1e-10)
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	dm := testDM()

	schemes := map[string]Compression{
		"none": None,
		"gzip": Gzip,
		"zstd": Zstd,
		"lz4":  LZ4,
	}
	for name, c := range schemes {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test.DM")
			require.NoError(t, WriteDensityMatrix(path, dm, WithCompression(c)))

			// Readers sniff the scheme; no option needed.
			sz, err := ProbeSizes(path)
			require.NoError(t, err)
			assert.Equal(t, dm.Sizes, sz)

			got, err := ReadDensityMatrix(path, sz)
			require.NoError(t, err)
			assert.Equal(t, dm, got)
		})
	}
}

func TestCompressionUnknownScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.DM")
	err := WriteDensityMatrix(path, testDM(), WithCompression(Compression(99)))
	assert.ErrorIs(t, err, ErrCompression)
}
