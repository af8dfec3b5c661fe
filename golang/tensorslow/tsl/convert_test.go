package tsl

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

func TestDenseKeepsElementPositions(t *testing.T) {
	m := NewMatrixFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	dense := m.Dense()

	h, w := dense.Dims()
	require.Equal(t, 2, h)
	require.Equal(t, 3, w)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			assert.Equal(t, m.At(i, j), dense.At(i, j))
		}
	}
	assert.True(t, FromDense(dense).EqualApprox(m, 0))
	assert.True(t, FromDense(dense.T()).EqualApprox(m.T(), 0))
	assert.Panics(t, func() { Zeros(0, 3).Dense() })
}

func TestTensorKeepsElementPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	m := randomMatrix(rng, 3, 4)
	converted := m.Tensor()

	assert.Equal(t, tensor.Shape{3, 4}, converted.Shape())
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			element, err := converted.At(i, j)
			require.NoError(t, err)
			assert.Equal(t, m.At(i, j), element.(float64))
		}
	}
	assert.True(t, FromTensor(converted).EqualApprox(m, 0))
}

func TestFromTensorVectorBecomesColumn(t *testing.T) {
	vector := tensor.New(tensor.WithShape(3), tensor.WithBacking([]float64{1, 2, 3}))

	assert.Equal(t, "[1 | 2 | 3]", FromTensor(vector).String())

	rowMajor := tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]float64{1, 2, 3, 4}))
	assert.Equal(t, "[1 2 | 3 4]", FromTensor(rowMajor).String())

	integers := tensor.New(tensor.WithShape(2), tensor.WithBacking([]int{1, 2}))
	assert.Panics(t, func() { FromTensor(integers) })
}

func TestNpyRoundTrip(t *testing.T) {
	m := NewMatrixFromRows([][]float64{{1.5, 2}, {3, 4.25}, {5, 6}})

	var buf bytes.Buffer
	require.NoError(t, WriteNpyTo(&buf, m))

	read, err := ReadNpyFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.String(), read.String())
}

func TestReadNpyOneDimensionalIsColumn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, npyio.Write(&buf, []float64{368, 340, 665}))

	read, err := ReadNpyFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, "[368 | 340 | 665]", read.String())
}

func TestReadNpyFile(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "features.npy")
	features, _ := GenerateHousesData()

	require.NoError(t, WriteNpy(fileName, features))
	read, err := ReadNpy(fileName)
	require.NoError(t, err)
	assert.True(t, read.EqualApprox(features, 0))

	_, err = ReadNpy(filepath.Join(dir, "missing.npy"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadNpyRejectsGarbage(t *testing.T) {
	_, err := ReadNpyFrom(bytes.NewBufferString("definitely not numpy"))
	assert.Error(t, err)
}

func TestReadNpyDenseThroughGonum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, npyio.Write(&buf, mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

	read, err := ReadNpyFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, "[1 2 | 3 4]", read.String())
}
