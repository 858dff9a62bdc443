/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package warp

/*****************************************************************************************************************/

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

/*****************************************************************************************************************/

// predictor is satisfied by both gonum's interp.PiecewiseLinear and our own
// naturalCubicSpline, letting InterpolateArray treat the two knot-count regimes
// uniformly once fitting has picked one.
type predictor interface {
	Predict(x float64) float64
}

/*****************************************************************************************************************/

// InterpolateArray flattens each Mapping's 8-parameter full form into one channel per
// parameter, fits an interpolant per channel against the knots ts, and evaluates at
// each query value. With more than two knots it fits a natural cubic spline; with
// exactly two it falls back to piecewise linear interpolation (gonum/interp). Fewer
// than two knots, a length mismatch, or non-monotonic knots fail with
// ErrInterpolationDomainError.
func InterpolateArray(ts []float32, maps []Mapping, query []float32) ([]Mapping, error) {
	if len(ts) != len(maps) {
		return nil, fmt.Errorf("%w: %d knots for %d mappings", ErrInterpolationDomainError, len(ts), len(maps))
	}

	if len(maps) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 knots, got %d", ErrInterpolationDomainError, len(maps))
	}

	xs := make([]float64, len(ts))
	for i, t := range ts {
		xs[i] = float64(t)
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: knots must be strictly increasing", ErrInterpolationDomainError)
		}
	}

	const numChannels = 8

	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, len(maps))
	}

	for i, m := range maps {
		full := m.GetParamsFull()
		for c := 0; c < numChannels; c++ {
			channels[c][i] = float64(full[c])
		}
	}

	predictors := make([]predictor, numChannels)

	for c := 0; c < numChannels; c++ {
		p, err := fitPredictor(xs, channels[c])
		if err != nil {
			return nil, err
		}

		predictors[c] = p
	}

	out := make([]Mapping, len(query))

	for qi, q := range query {
		params := make([]float32, numChannels)

		for c := 0; c < numChannels; c++ {
			params[c] = float32(predictors[c].Predict(float64(q)))
		}

		m, err := FromParams(params)
		if err != nil {
			return nil, err
		}

		out[qi] = m
	}

	return out, nil
}

/*****************************************************************************************************************/

// InterpolateScalar is InterpolateArray(ts, maps, []float32{query})[0].
func InterpolateScalar(ts []float32, maps []Mapping, query float32) (Mapping, error) {
	out, err := InterpolateArray(ts, maps, []float32{query})
	if err != nil {
		return Mapping{}, err
	}

	return out[0], nil
}

/*****************************************************************************************************************/

// fitPredictor picks piecewise linear interpolation for exactly two knots, and a
// natural cubic spline for more than two. gonum/interp's Cubic predictor targets a
// different boundary convention than the natural (zero second-derivative) spline this
// package's interpolation properties require, so the cubic case is a small hand-rolled
// implementation of the textbook algorithm (Burden & Faires) instead - see DESIGN.md.
func fitPredictor(xs, ys []float64) (predictor, error) {
	if len(xs) > 2 {
		return fitNaturalCubicSpline(xs, ys), nil
	}

	var linear interp.PiecewiseLinear

	if err := linear.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("warp: linear interpolation fit failed: %w", err)
	}

	return &linear, nil
}

/*****************************************************************************************************************/

// cubicSegment is one piece of a natural cubic spline, valid over [x0, next x0):
// S(x) = a + b*(x-x0) + c*(x-x0)^2 + d*(x-x0)^3.
type cubicSegment struct {
	x0         float64
	a, b, c, d float64
}

/*****************************************************************************************************************/

// naturalCubicSpline is a piecewise cubic interpolant with zero second derivative at
// both endpoints, fit via the standard tridiagonal (Thomas algorithm) solve.
type naturalCubicSpline struct {
	knots    []float64
	segments []cubicSegment
}

/*****************************************************************************************************************/

func fitNaturalCubicSpline(xs, ys []float64) *naturalCubicSpline {
	n := len(xs)

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
	}

	alpha := make([]float64, n)
	for i := 1; i < n-1; i++ {
		alpha[i] = (3/h[i])*(ys[i+1]-ys[i]) - (3/h[i-1])*(ys[i]-ys[i-1])
	}

	l := make([]float64, n)
	mu := make([]float64, n)
	z := make([]float64, n)
	l[0] = 1

	for i := 1; i < n-1; i++ {
		l[i] = 2*(xs[i+1]-xs[i-1]) - h[i-1]*mu[i-1]
		mu[i] = h[i] / l[i]
		z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
	}

	l[n-1] = 1

	c := make([]float64, n)
	b := make([]float64, n-1)
	d := make([]float64, n-1)

	for j := n - 2; j >= 0; j-- {
		c[j] = z[j] - mu[j]*c[j+1]
		b[j] = (ys[j+1]-ys[j])/h[j] - h[j]*(c[j+1]+2*c[j])/3
		d[j] = (c[j+1] - c[j]) / (3 * h[j])
	}

	segments := make([]cubicSegment, n-1)
	for i := 0; i < n-1; i++ {
		segments[i] = cubicSegment{x0: xs[i], a: ys[i], b: b[i], c: c[i], d: d[i]}
	}

	return &naturalCubicSpline{knots: xs, segments: segments}
}

/*****************************************************************************************************************/

// Predict evaluates the spline at x, clamping to the nearest segment when x falls
// outside the fitted knot range.
func (s *naturalCubicSpline) Predict(x float64) float64 {
	i := len(s.segments) - 1

	for k := 0; k < len(s.segments)-1; k++ {
		if x < s.knots[k+1] {
			i = k
			break
		}
	}

	seg := s.segments[i]
	dx := x - seg.x0

	return seg.a + seg.b*dx + seg.c*dx*dx + seg.d*dx*dx*dx
}

/*****************************************************************************************************************/
