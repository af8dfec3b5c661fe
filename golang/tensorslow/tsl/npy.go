package tsl

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//ReadNpy reads the content of npy file into a matrix.
func ReadNpy(fileName string) (*Matrix, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fileName, err)
	}
	defer func() { HandleError(f.Close()) }()

	m, err := ReadNpyFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileName, err)
	}
	return m, nil
}

//ReadNpyFrom reads an npy stream. Two-dimensional arrays keep their shape,
//one-dimensional arrays become a column.
func ReadNpyFrom(source io.Reader) (*Matrix, error) {
	r, err := npyio.NewReader(source)
	if err != nil {
		return nil, err
	}

	shape := r.Header.Descr.Shape
	switch len(shape) {
	case 1:
		var data []float64
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		return NewMatrix(len(data), 1, data), nil
	case 2:
		denseMat := &mat.Dense{}
		if err := r.Read(denseMat); err != nil {
			return nil, err
		}
		return FromDense(denseMat), nil
	}
	return nil, fmt.Errorf("npy array of shape %v is not a matrix", shape)
}

//WriteNpy writes the matrix into an npy file.
func WriteNpy(fileName string, m *Matrix) error {
	dst, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("create %s: %w", fileName, err)
	}
	defer func() { HandleError(dst.Close()) }()

	log.Print("\twrite ", m.rows, "x", m.cols, " matrix to <", fileName, ">")
	return WriteNpyTo(dst, m)
}

//WriteNpyTo writes the matrix as a two-dimensional npy array.
func WriteNpyTo(w io.Writer, m *Matrix) error {
	return npyio.Write(w, m.Dense())
}
