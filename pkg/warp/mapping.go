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

	"golang.org/x/exp/constraints"
)

/*****************************************************************************************************************/

// Mapping owns a 3x3 homogeneous matrix and a TransformKind tag. It is an immutable
// value object: every operation that would mutate a Mapping instead returns a new one.
// The kind records the *intended* degree of freedom - it narrows what GetParams
// reports, but never restricts what the matrix may contain (composition may rightly
// leave non-identity entries in slots a Translational or Affine Mapping doesn't
// canonically use).
type Mapping struct {
	Mat  Matrix3
	Kind TransformKind
}

/*****************************************************************************************************************/

// FromMatrix wraps an existing 3x3 matrix with an explicit kind tag, performing no
// validation of the matrix's contents against the kind.
func FromMatrix(m Matrix3, kind TransformKind) Mapping {
	return Mapping{Mat: m, Kind: kind}
}

/*****************************************************************************************************************/

// FromParams constructs a Mapping from a minimal parameter vector. The vector's
// length selects the kind: 0 for Identity, 2 for Translational, 6 for Affine, 8 for
// Projective. Any other length fails with ErrInvalidParameterCount.
func FromParams(params []float32) (Mapping, error) {
	switch len(params) {
	case 0:
		return Mapping{Mat: identityMatrix3(), Kind: Identity}, nil

	case 2:
		dx, dy := params[0], params[1]
		return Mapping{
			Mat: Matrix3{
				{1, 0, dx},
				{0, 1, dy},
				{0, 0, 1},
			},
			Kind: Translational,
		}, nil

	case 6:
		p := params
		return Mapping{
			Mat: Matrix3{
				{p[0] + 1, p[2], p[4]},
				{p[1], p[3] + 1, p[5]},
				{0, 0, 1},
			},
			Kind: Affine,
		}, nil

	case 8:
		p := params
		return Mapping{
			Mat: Matrix3{
				{p[0] + 1, p[2], p[4]},
				{p[1], p[3] + 1, p[5]},
				{p[6], p[7], 1},
			},
			Kind: Projective,
		}, nil

	default:
		return Mapping{}, fmt.Errorf("%w: got %d parameters, want one of {0, 2, 6, 8}", ErrInvalidParameterCount, len(params))
	}
}

/*****************************************************************************************************************/

// NewIdentity returns the identity Mapping.
func NewIdentity() Mapping {
	m, _ := FromParams(nil)
	return m
}

/*****************************************************************************************************************/

// Scale returns a purely scaling Mapping, tagged Affine.
func Scale(x, y float32) Mapping {
	m, _ := FromParams([]float32{x - 1, 0, 0, y - 1, 0, 0})
	return m
}

/*****************************************************************************************************************/

// Shift returns a purely translational Mapping.
func Shift(x, y float32) Mapping {
	m, _ := FromParams([]float32{x, y})
	return m
}

/*****************************************************************************************************************/

// GetParams returns the minimal parameter vector canonical for the Mapping's kind,
// after normalizing the matrix by its homogeneous element. Unknown is never a valid
// kind to query and panics - it only ever arises transiently from Transform with
// every operand absent, and should never reach a caller asking for its parameters.
func (m Mapping) GetParams() []float32 {
	p := m.Mat.normalize()

	switch m.Kind {
	case Identity:
		return []float32{}

	case Translational:
		return []float32{p[0][2], p[1][2]}

	case Affine:
		return []float32{p[0][0] - 1, p[1][0], p[0][1], p[1][1] - 1, p[0][2], p[1][2]}

	case Projective:
		return []float32{p[0][0] - 1, p[1][0], p[0][1], p[1][1] - 1, p[0][2], p[1][2], p[2][0], p[2][1]}

	default:
		panic("warp: a Mapping tagged Unknown has no canonical parameterization")
	}
}

/*****************************************************************************************************************/

// GetParamsFull always returns the 8-parameter Projective-form vector, regardless of
// the Mapping's kind, enabling lossless round-tripping through interpolation.
func (m Mapping) GetParamsFull() []float32 {
	p := m.Mat.normalize()
	return []float32{p[0][0] - 1, p[1][0], p[0][1], p[1][1] - 1, p[0][2], p[1][2], p[2][0], p[2][1]}
}

/*****************************************************************************************************************/

// Coordinate is any numeric type warp points may be supplied in.
type Coordinate interface {
	constraints.Integer | constraints.Float
}

/*****************************************************************************************************************/

// WarpPoints lifts each point to homogeneous coordinates, applies the Mapping's
// matrix, and divides through by the (clamped) third coordinate. Identity mappings
// take a fast path and return the input cast to float32 unchanged.
func WarpPoints[T Coordinate](m Mapping, points [][2]T) [][2]float32 {
	out := make([][2]float32, len(points))

	if m.Kind == Identity {
		for i, p := range points {
			out[i] = [2]float32{float32(p[0]), float32(p[1])}
		}

		return out
	}

	mat := m.Mat

	for i, p := range points {
		x := float32(p[0])
		y := float32(p[1])

		wx := mat[0][0]*x + mat[0][1]*y + mat[0][2]
		wy := mat[1][0]*x + mat[1][1]*y + mat[1][2]
		wz := mat[2][0]*x + mat[2][1]*y + mat[2][2]

		if wz < 1e-8 {
			wz = 1e-8
		}

		out[i] = [2]float32{wx / wz, wy / wz}
	}

	return out
}

/*****************************************************************************************************************/

// Corners returns the four destination-space corners of a (w, h) source rectangle
// under the Mapping, computed by applying the inverse Mapping to the rectangle's
// integer corners. The resampler works in the opposite direction: it applies the
// inverse of the mapping it is given to destination coordinates to find source
// pixels, so a frame placed by Corners is resampled under the inverse of m.
func (m Mapping) Corners(size [2]int) ([4][2]float32, error) {
	w, h := size[0], size[1]

	inv, err := m.Inverse()
	if err != nil {
		return [4][2]float32{}, err
	}

	points := [][2]int{{0, 0}, {w, 0}, {w, h}, {0, h}}
	warped := WarpPoints(inv, points)

	var out [4][2]float32
	copy(out[:], warped)

	return out, nil
}

/*****************************************************************************************************************/

// Extent returns the per-axis (min, max) bounding box of the Mapping's Corners over
// the given size.
func (m Mapping) Extent(size [2]int) (min, max [2]float32, err error) {
	corners, err := m.Corners(size)
	if err != nil {
		return [2]float32{}, [2]float32{}, err
	}

	min = [2]float32{float32(math.Inf(1)), float32(math.Inf(1))}
	max = [2]float32{float32(math.Inf(-1)), float32(math.Inf(-1))}

	for _, c := range corners {
		if c[0] < min[0] {
			min[0] = c[0]
		}

		if c[1] < min[1] {
			min[1] = c[1]
		}

		if c[0] > max[0] {
			max[0] = c[0]
		}

		if c[1] > max[1] {
			max[1] = c[1]
		}
	}

	return min, max, nil
}

/*****************************************************************************************************************/

// MaximumExtent computes the union extent of a set of mappings paired against a set
// of sizes. The shorter of the two lists is cycled to match the longer, so mis-sized
// lists are paired positionally rather than rejected - see the spec's open question on
// broadcast ambiguity. Returns the overall (width, height) extent and a translational
// Mapping for the canvas origin offset.
func MaximumExtent(maps []Mapping, sizes [][2]int) ([2]float32, Mapping, error) {
	if len(maps) == 0 || len(sizes) == 0 {
		return [2]float32{}, Mapping{}, fmt.Errorf("warp: maximum extent requires at least one mapping and one size")
	}

	n := len(maps)
	if len(sizes) > n {
		n = len(sizes)
	}

	minX := float32(math.Inf(1))
	minY := float32(math.Inf(1))
	maxX := float32(math.Inf(-1))
	maxY := float32(math.Inf(-1))

	for i := 0; i < n; i++ {
		m := maps[i%len(maps)]
		size := sizes[i%len(sizes)]

		mn, mx, err := m.Extent(size)
		if err != nil {
			return [2]float32{}, Mapping{}, err
		}

		if mn[0] < minX {
			minX = mn[0]
		}

		if mn[1] < minY {
			minY = mn[1]
		}

		if mx[0] > maxX {
			maxX = mx[0]
		}

		if mx[1] > maxY {
			maxY = mx[1]
		}
	}

	extent := [2]float32{maxX - minX, maxY - minY}
	offset := Shift(minX, minY)

	return extent, offset, nil
}

/*****************************************************************************************************************/

// Transform composes lhs * m * rhs, where an absent (nil) lhs or rhs defaults to the
// 3x3 identity and contributes TransformKind Unknown towards the result's kind. The
// composed Mapping's kind is whichever of {lhs, m, rhs} has the largest NumParams;
// Unknown only wins when every operand is Unknown.
func (m Mapping) Transform(lhs, rhs *Mapping) Mapping {
	lhsMat := identityMatrix3()
	lhsKind := Unknown

	if lhs != nil {
		lhsMat = lhs.Mat
		lhsKind = lhs.Kind
	}

	rhsMat := identityMatrix3()
	rhsKind := Unknown

	if rhs != nil {
		rhsMat = rhs.Mat
		rhsKind = rhs.Kind
	}

	composed := multiplyMatrix3(multiplyMatrix3(lhsMat, m.Mat), rhsMat)

	return Mapping{Mat: composed, Kind: maxKind(lhsKind, m.Kind, rhsKind)}
}

/*****************************************************************************************************************/

// Inverse returns the Mapping whose matrix is the 3x3 inverse of m's, preserving
// kind. Fails with ErrSingularMatrix if the determinant's magnitude is below 1e-12.
func (m Mapping) Inverse() (Mapping, error) {
	inv, err := invertMatrix3(m.Mat)
	if err != nil {
		return Mapping{}, err
	}

	return Mapping{Mat: inv, Kind: m.Kind}, nil
}

/*****************************************************************************************************************/

// Rescale returns Scale(s,s) * m * Scale(1/s, 1/s), with the kind forced back to m's
// original kind (composition would otherwise promote it, e.g. Translational to
// Affine). This lets a Mapping fit at one image resolution be reused at a resolution
// s times larger along both axes.
func (m Mapping) Rescale(s float32) Mapping {
	up := Scale(s, s)
	down := Scale(1/s, 1/s)

	composed := m.Transform(&up, &down)
	composed.Kind = m.Kind

	return composed
}

/*****************************************************************************************************************/

// Accumulate turns a sequence of pairwise inter-frame mappings into absolute
// mappings anchored at an implicit leading identity: [I, m1, m1*m2, ...]. The result
// always has length len(mappings)+1, and accumulate(nil) returns [identity].
func Accumulate(mappings []Mapping) []Mapping {
	out := make([]Mapping, len(mappings)+1)

	acc := NewIdentity()
	out[0] = acc

	for i := range mappings {
		next := mappings[i]
		acc = acc.Transform(nil, &next)
		out[i+1] = acc
	}

	return out
}

/*****************************************************************************************************************/

// WithRespectTo normalizes a sequence of mappings so that wrt becomes identity:
// returns [wrt^-1 * m for m in mappings].
func WithRespectTo(mappings []Mapping, wrt Mapping) ([]Mapping, error) {
	inv, err := wrt.Inverse()
	if err != nil {
		return nil, err
	}

	out := make([]Mapping, len(mappings))
	for i, m := range mappings {
		out[i] = m.Transform(&inv, nil)
	}

	return out, nil
}

/*****************************************************************************************************************/

// WithRespectToIdx interpolates mappings at the normalized [0, 1] position wrtIdx and
// applies WithRespectTo using the interpolated Mapping.
func WithRespectToIdx(mappings []Mapping, wrtIdx float32) ([]Mapping, error) {
	if len(mappings) < 2 {
		return nil, fmt.Errorf("%w: with_respect_to_idx needs at least 2 mappings", ErrInterpolationDomainError)
	}

	ts := linspace32(0, 1, len(mappings))

	wrt, err := InterpolateScalar(ts, mappings, wrtIdx)
	if err != nil {
		return nil, err
	}

	return WithRespectTo(mappings, wrt)
}

/*****************************************************************************************************************/

// AccumulateWrtIdx is WithRespectToIdx(Accumulate(mappings), wrtIdx) - it turns
// pairwise mappings into absolute mappings and then re-anchors them so the frame at
// the normalized wrtIdx position becomes the identity.
func AccumulateWrtIdx(mappings []Mapping, wrtIdx float32) ([]Mapping, error) {
	return WithRespectToIdx(Accumulate(mappings), wrtIdx)
}

/*****************************************************************************************************************/

func linspace32(lo, hi float32, n int) []float32 {
	out := make([]float32, n)

	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float32(n-1)

	for i := 0; i < n; i++ {
		out[i] = lo + step*float32(i)
	}

	return out
}

/*****************************************************************************************************************/
