/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package warp

/*****************************************************************************************************************/

import "errors"

/*****************************************************************************************************************/

// ErrInvalidParameterCount is returned by FromParams when the parameter vector's
// length is not one of {0, 2, 6, 8}.
var ErrInvalidParameterCount = errors.New("warp: invalid parameter count")

/*****************************************************************************************************************/

// ErrSingularMatrix is returned by Inverse when the matrix's determinant magnitude
// falls below the singularity threshold.
var ErrSingularMatrix = errors.New("warp: singular matrix")

/*****************************************************************************************************************/

// ErrInterpolationDomainError is returned by InterpolateArray/InterpolateScalar when
// fewer than two knots are supplied, or when the knots are not strictly monotonic.
var ErrInterpolationDomainError = errors.New("warp: interpolation domain error")

/*****************************************************************************************************************/
