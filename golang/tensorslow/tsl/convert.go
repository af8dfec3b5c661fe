package tsl

import (
	"log"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

//Dense copies the matrix into a gonum dense matrix.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		log.Panicf("gonum can't hold an empty %dx%d matrix", m.rows, m.cols)
	}
	dense := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			dense.Set(i, j, m.elements[j*m.rows+i])
		}
	}
	return dense
}

//FromDense copies any gonum matrix into a new Matrix.
func FromDense(source mat.Matrix) *Matrix {
	h, w := source.Dims()
	m := Zeros(h, w)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			m.elements[j*h+i] = source.At(i, j)
		}
	}
	return m
}

//Tensor copies the matrix into a float64 tensor with the shape (rows, cols).
func (m *Matrix) Tensor() *tensor.Dense {
	t := tensor.New(tensor.WithShape(m.rows, m.cols), tensor.Of(tensor.Float64))
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			HandleError(t.SetAt(m.elements[j*m.rows+i], i, j))
		}
	}
	return t
}

//FromTensor copies a float64 tensor into a new Matrix.
//A one-dimensional tensor becomes a column, a two-dimensional one keeps its shape.
func FromTensor(t *tensor.Dense) *Matrix {
	if t.Dtype() != tensor.Float64 {
		log.Panicf("tensor of type %v, float64 is required", t.Dtype())
	}
	shape := t.Shape()
	switch len(shape) {
	case 1:
		m := Zeros(shape[0], 1)
		for i := 0; i < shape[0]; i++ {
			m.elements[i] = tensorAt(t, i)
		}
		return m
	case 2:
		h, w := shape[0], shape[1]
		m := Zeros(h, w)
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				m.elements[j*h+i] = tensorAt(t, i, j)
			}
		}
		return m
	}
	log.Panicf("tensor of shape %v can't be converted into a matrix", shape)
	return nil
}

func tensorAt(t *tensor.Dense, coords ...int) float64 {
	element, err := t.At(coords...)
	HandleError(err)
	return element.(float64)
}
