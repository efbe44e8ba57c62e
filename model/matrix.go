package model

import "fmt"

// Matrix is a dense row-major float32 matrix. It is the unit of exchange for
// raw trace slices (samples x channels), waveform snippets and feature rows.
//
// Row views share the backing slice; use Clone before mutating a matrix that
// was handed out by a read-only source.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix allocates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("model: negative matrix dimensions %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

// NewMatrixFromData wraps an existing row-major slice. The slice length must
// equal rows*cols; the matrix takes ownership of it.
func NewMatrixFromData(rows, cols int, data []float32) (*Matrix, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("model: matrix data length %d does not match %dx%d", len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at (r, c).
func (m *Matrix) At(r, c int) float32 {
	return m.data[r*m.cols+c]
}

// Set stores v at (r, c).
func (m *Matrix) Set(r, c int, v float32) {
	m.data[r*m.cols+c] = v
}

// Row returns row r as a view into the backing slice.
func (m *Matrix) Row(r int) []float32 {
	return m.data[r*m.cols : (r+1)*m.cols]
}

// Data returns the backing row-major slice.
func (m *Matrix) Data() []float32 { return m.data }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float32, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// SliceRows returns rows [a, b) as a view sharing the backing slice.
func (m *Matrix) SliceRows(a, b int) *Matrix {
	if a < 0 || b < a || b > m.rows {
		panic(fmt.Sprintf("model: row slice [%d, %d) out of range for %d rows", a, b, m.rows))
	}
	return &Matrix{rows: b - a, cols: m.cols, data: m.data[a*m.cols : b*m.cols]}
}

// SelectColumns returns a copy of the matrix restricted to the given columns,
// in the given order.
func (m *Matrix) SelectColumns(cols []int) *Matrix {
	out := NewMatrix(m.rows, len(cols))
	for r := 0; r < m.rows; r++ {
		src := m.Row(r)
		dst := out.Row(r)
		for j, c := range cols {
			dst[j] = src[c]
		}
	}
	return out
}
