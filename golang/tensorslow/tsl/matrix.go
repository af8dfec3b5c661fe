package tsl

import (
	"log"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//Matrix is a dense two-dimensional float64 container.
//Elements are stored in column-major order: the element (i, j) lives at offset j*rows + i.
//Every operation of this package relies on that single convention.
type Matrix struct {
	rows     int
	cols     int
	elements []float64
}

//NewMatrix creates a rows x cols matrix from elements given in column-major order.
//The elements are copied. It panics when len(elements) != rows*cols.
func NewMatrix(rows, cols int, elements []float64) *Matrix {
	if rows < 0 || cols < 0 {
		log.Panicf("negative matrix dimensions %dx%d", rows, cols)
	}
	if len(elements) != rows*cols {
		log.Panicf("matrix %dx%d needs %d elements, got %d", rows, cols, rows*cols, len(elements))
	}
	m := &Matrix{rows: rows, cols: cols, elements: make([]float64, len(elements))}
	copy(m.elements, elements)
	return m
}

//NewMatrixFromRows creates a matrix from a row literal. All rows must have the same length.
func NewMatrixFromRows(data [][]float64) *Matrix {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}
	m := Zeros(rows, cols)
	for i, row := range data {
		if len(row) != cols {
			log.Panicf("row %d has %d elements, expected %d", i, len(row), cols)
		}
		for j, val := range row {
			m.elements[j*rows+i] = val
		}
	}
	return m
}

//NewMatrixFromRowMajor creates a rows x cols matrix from elements given row by row,
//the default numpy layout. It panics when len(elements) != rows*cols.
func NewMatrixFromRowMajor(rows, cols int, elements []float64) *Matrix {
	if len(elements) != rows*cols {
		log.Panicf("matrix %dx%d needs %d elements, got %d", rows, cols, rows*cols, len(elements))
	}
	m := Zeros(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.elements[j*rows+i] = elements[i*cols+j]
		}
	}
	return m
}

//Zeros creates a rows x cols matrix filled with zeros.
func Zeros(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		log.Panicf("negative matrix dimensions %dx%d", rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, elements: make([]float64, rows*cols)}
}

//Ones creates a rows x cols matrix filled with ones.
func Ones(rows, cols int) *Matrix {
	m := Zeros(rows, cols)
	for ind := range m.elements {
		m.elements[ind] = 1
	}
	return m
}

//Clone returns a deep copy of the receiver.
func (m *Matrix) Clone() *Matrix {
	return NewMatrix(m.rows, m.cols, m.elements)
}

//Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

//Dim returns the shape as a 1x2 matrix [rows cols].
func (m *Matrix) Dim() *Matrix {
	return NewMatrix(1, 2, []float64{float64(m.rows), float64(m.cols)})
}

//IsVector reports whether the matrix is a single row or a single column.
func (m *Matrix) IsVector() bool {
	return m.rows == 1 || m.cols == 1
}

//Elements returns a copy of the backing array in column-major order.
func (m *Matrix) Elements() []float64 {
	return append([]float64(nil), m.elements...)
}

//Col returns a copy of the column j.
func (m *Matrix) Col(j int) []float64 {
	m.checkIndex(0, j)
	return append([]float64(nil), m.elements[j*m.rows:(j+1)*m.rows]...)
}

//At returns the element (row, col). It panics when the index is out of range.
func (m *Matrix) At(row, col int) float64 {
	m.checkIndex(row, col)
	return m.elements[col*m.rows+row]
}

func (m *Matrix) checkIndex(row, col int) {
	if row < 0 || row >= m.rows {
		log.Panicf("row index %d out of range for %dx%d matrix", row, m.rows, m.cols)
	}
	if col < 0 || col >= m.cols {
		log.Panicf("column index %d out of range for %dx%d matrix", col, m.rows, m.cols)
	}
}

//T returns the transposed matrix. The receiver is not changed.
func (m *Matrix) T() *Matrix {
	result := Zeros(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.elements[i*m.cols+j] = m.elements[j*m.rows+i]
		}
	}
	return result
}

func (m *Matrix) checkSameShape(op string, other *Matrix) {
	if m.rows != other.rows || m.cols != other.cols {
		log.Panicf("%s of %dx%d and %dx%d matrices", op, m.rows, m.cols, other.rows, other.cols)
	}
}

//Add returns the element-wise sum of the receiver and other. Shapes must be equal.
func (m *Matrix) Add(other *Matrix) *Matrix {
	m.checkSameShape("sum", other)
	result := Zeros(m.rows, m.cols)
	floats.AddTo(result.elements, m.elements, other.elements)
	return result
}

//Sub returns the element-wise difference of the receiver and other. Shapes must be equal.
func (m *Matrix) Sub(other *Matrix) *Matrix {
	m.checkSameShape("difference", other)
	result := Zeros(m.rows, m.cols)
	floats.SubTo(result.elements, m.elements, other.elements)
	return result
}

//Mul returns the matrix product of the receiver and other.
//It panics when the number of columns of the receiver differs from the number of rows of other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		log.Panicf("product of %dx%d and %dx%d matrices", m.rows, m.cols, other.rows, other.cols)
	}
	result := Zeros(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			s := 0.0
			for k := 0; k < m.cols; k++ {
				s += m.elements[k*m.rows+i] * other.elements[j*other.rows+k]
			}
			result.elements[j*m.rows+i] = s
		}
	}
	return result
}

//ScaleInPlace multiplies every element of the receiver by scalar and returns the receiver.
//The receiver is modified.
func (m *Matrix) ScaleInPlace(scalar float64) *Matrix {
	floats.Scale(scalar, m.elements)
	return m
}

//AppendColsInPlace appends the columns of other after the columns of the receiver
//and returns the receiver. The receiver is modified; other is not.
func (m *Matrix) AppendColsInPlace(other *Matrix) *Matrix {
	if m.rows != other.rows {
		log.Panicf("can't append %dx%d columns to %dx%d matrix", other.rows, other.cols, m.rows, m.cols)
	}
	// column-major storage keeps every column contiguous, so appending columns is appending data
	m.elements = append(m.elements, other.elements...)
	m.cols += other.cols
	return m
}

//L2 returns the euclidean norm of a vector. It panics when the matrix is not a vector.
//No overflow protection is applied: NaN and +Inf propagate to the result.
func (m *Matrix) L2() float64 {
	if !m.IsVector() {
		log.Panicf("l2 norm of %dx%d matrix, a vector is required", m.rows, m.cols)
	}
	return math.Sqrt(floats.Dot(m.elements, m.elements))
}

//EqualApprox reports whether both matrices have the same shape and all elements are within tol.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	return floats.EqualApprox(m.elements, other.elements, tol)
}

//String renders the matrix as [a b c | d e f].
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			sb.WriteString(strconv.FormatFloat(m.elements[j*m.rows+i], 'g', -1, 64))
			if j != m.cols-1 {
				sb.WriteString(" ")
			}
		}
		if i != m.rows-1 {
			sb.WriteString(" | ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
