/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package warp

/*****************************************************************************************************************/

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

/*****************************************************************************************************************/

// singularThreshold is the determinant magnitude below which a Matrix3 is treated as
// non-invertible.
const singularThreshold = 1e-12

/*****************************************************************************************************************/

// Matrix3 is a 3x3 matrix in row-major homogeneous form, backing a Mapping. The
// bottom-right element is the homogeneous normalizer: callers may observe an
// unnormalized matrix, and GetParams/GetParamsFull always divide through by
// Mat[2][2] before extracting parameters.
type Matrix3 [3][3]float32

/*****************************************************************************************************************/

// identityMatrix3 returns the 3x3 identity matrix.
func identityMatrix3() Matrix3 {
	return Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

/*****************************************************************************************************************/

// normalize divides every element of the matrix by Mat[2][2], the homogeneous
// normalizer.
func (m Matrix3) normalize() Matrix3 {
	denom := m[2][2]

	var out Matrix3

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][c] / denom
		}
	}

	return out
}

/*****************************************************************************************************************/

// toDense converts the matrix to a gonum dense matrix for the linear algebra (compose,
// invert, determinant) that Matrix3 does not implement itself.
func (m Matrix3) toDense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			d.Set(r, c, float64(m[r][c]))
		}
	}

	return d
}

/*****************************************************************************************************************/

// matrix3FromDense converts a 3x3 gonum dense matrix back into a Matrix3.
func matrix3FromDense(d mat.Matrix) Matrix3 {
	var m Matrix3

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r][c] = float32(d.At(r, c))
		}
	}

	return m
}

/*****************************************************************************************************************/

// multiplyMatrix3 returns a*b, computed in float64 via gonum/mat for numerical
// stability and rounded back to float32.
func multiplyMatrix3(a, b Matrix3) Matrix3 {
	var result mat.Dense

	result.Mul(a.toDense(), b.toDense())

	return matrix3FromDense(&result)
}

/*****************************************************************************************************************/

// invertMatrix3 returns the inverse of m, failing with ErrSingularMatrix if the
// determinant's magnitude is below singularThreshold.
func invertMatrix3(m Matrix3) (Matrix3, error) {
	d := m.toDense()

	det := mat.Det(d)
	if math.Abs(det) < singularThreshold {
		return Matrix3{}, fmt.Errorf("%w: determinant magnitude %g", ErrSingularMatrix, math.Abs(det))
	}

	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return Matrix3{}, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}

	return matrix3FromDense(&inv), nil
}

/*****************************************************************************************************************/
