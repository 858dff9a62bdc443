/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package resample

/*****************************************************************************************************************/

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/observerly/spano/pkg/warp"
)

/*****************************************************************************************************************/

// MergeFunc combines a newly sampled (or background-filled) pixel value into whatever
// destination pixel already sits at the same location in out, letting callers implement
// running accumulators (panorama stitching, drizzle-style co-addition) on top of the
// same resampling kernel. It is invoked for every touched destination pixel, in or out
// of range, against out's current contents - NewBuffer's zero-valued state makes the
// first call a plain passthrough whenever merge agrees with replace on a zero base. The
// returned slice becomes the pixel written back into out.
type MergeFunc[T Sample] func(existing, incoming []T) []T

/*****************************************************************************************************************/

// replace is the default MergeFunc: the incoming sample always overwrites whatever was
// there before.
func replace[T Sample](_, incoming []T) []T {
	return incoming
}

/*****************************************************************************************************************/

// WarpArrayInto resamples data into out under the inverse of mapping, evaluated at the
// destination locations named by points (row-major (y, x) pixel coordinates - if nil,
// every pixel of out is sampled). Every touched destination pixel is combined with
// whatever out already held there via merge, so repeated calls over the same out/valid
// pair accumulate (NewMask's all-false, NewBuffer's zero-valued zero state makes the
// first call a plain overwrite whenever merge agrees with replace on an empty base).
// Destination pixels whose source coordinate falls outside data's bounds are left
// untouched and valid stays false for them, unless background is supplied, in which
// case out-of-range pixels are merged with it and valid is explicitly cleared for
// them - they are never marked valid, even though out is written - while in-range
// pixels that straddle the boundary are softened towards background at their invalid
// corners and marked valid as an ordinary sample.
//
// data and out's channel counts may differ; out.Channels must be >= data.Channels
// whenever background is non-nil, since each bilinear corner falls back to a
// data.Channels-wide slice of background when that corner lies outside data.
func WarpArrayInto[T Sample](
	mapping warp.Mapping,
	data Buffer[T],
	out Buffer[T],
	valid Mask,
	points [][2]int,
	background []T,
	merge MergeFunc[T],
) error {
	if err := data.validate("data"); err != nil {
		return err
	}

	if err := out.validate("out"); err != nil {
		return err
	}

	if data.Channels > MaxChannels || out.Channels > MaxChannels {
		return fmt.Errorf("%w: data has %d channels, out has %d, max is %d", ErrChannelDepthExceeded, data.Channels, out.Channels, MaxChannels)
	}

	if valid.Height != out.Height || valid.Width != out.Width {
		return fmt.Errorf("%w: valid shape (%d, %d) does not match out shape (%d, %d)", ErrShapeMismatch, valid.Height, valid.Width, out.Height, out.Width)
	}

	if len(valid.Data) != valid.Height*valid.Width {
		return fmt.Errorf("%w: valid data length %d does not match shape (%d, %d)", ErrNonContiguousBuffer, len(valid.Data), valid.Height, valid.Width)
	}

	if background != nil {
		if len(background) != out.Channels {
			return fmt.Errorf("%w: background has %d channels, want %d (out.Channels)", ErrShapeMismatch, len(background), out.Channels)
		}

		if out.Channels < data.Channels {
			return fmt.Errorf("%w: out has %d channels, fewer than data's %d - a background fill cannot substitute full source pixels", ErrShapeMismatch, out.Channels, data.Channels)
		}
	}

	if points == nil {
		points = make([][2]int, 0, out.Height*out.Width)
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				points = append(points, [2]int{y, x})
			}
		}
	} else {
		for _, p := range points {
			if p[0] < 0 || p[0] >= out.Height || p[1] < 0 || p[1] >= out.Width {
				return fmt.Errorf("%w: point (%d, %d) is outside out's bounds (%d, %d)", ErrShapeMismatch, p[0], p[1], out.Height, out.Width)
			}
		}
	}

	inv, err := mapping.Inverse()
	if err != nil {
		return err
	}

	merged := merge
	if merged == nil {
		merged = replace[T]
	}

	srcPoints := make([][2]int, len(points))
	for i, p := range points {
		srcPoints[i] = [2]int{p[1], p[0]}
	}

	sourced := warp.WarpPoints(inv, srcPoints)

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	chunk := (len(points) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	g := new(errgroup.Group)

	for start := 0; start < len(points); start += chunk {
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}

		start, end := start, end

		g.Go(func() error {
			var scratch [MaxChannels]T

			for i := start; i < end; i++ {
				dst := points[i]
				src := sourced[i]

				sample, inRange := bilinear(data, src[0], src[1], background, scratch[:out.Channels])
				if sample == nil {
					continue
				}

				idx := dst[0]*out.Width + dst[1]
				base := idx * out.Channels

				existing := append([]T(nil), out.Data[base:base+out.Channels]...)
				combined := merged(existing, sample)
				copy(out.Data[base:base+out.Channels], combined)

				valid.Data[idx] = inRange
			}

			return nil
		})
	}

	return g.Wait()
}

/*****************************************************************************************************************/

// bilinear samples data at the floating-point source coordinate (sx, sy). The first
// return value is nil when the point falls outside data's padded bound and no
// background was supplied - callers skip the destination pixel entirely in that case.
// The second return value reports whether (sx, sy) itself lies within the padded
// in-range bound (pad is 1 pixel when background is present, 0 otherwise); it is false
// for a point outside that bound even though a background fill is still written, and
// true whenever an ordinary bilinear sample was produced - matching the distinction the
// validity mask must preserve between "genuinely sampled" and "background-filled"
// destinations. scratch is a caller-owned out.Channels-wide buffer the result is
// written into, avoiding a heap allocation per destination pixel.
func bilinear[T Sample](data Buffer[T], sx, sy float32, background []T, scratch []T) ([]T, bool) {
	pad := float32(0)
	if background != nil {
		pad = 1
	}

	inRangeX := sx >= -pad && sx <= float32(data.Width-1)+pad
	inRangeY := sy >= -pad && sy <= float32(data.Height-1)+pad

	if !inRangeX || !inRangeY {
		if background == nil {
			return nil, false
		}

		copy(scratch, background)
		return scratch, false
	}

	x0f := floor32(sx)
	y0f := floor32(sy)

	x0 := int(x0f)
	y0 := int(y0f)
	x1 := x0 + 1
	y1 := y0 + 1

	fx := sx - x0f
	fy := sy - y0f

	c00, ok00 := fetch(data, x0, y0)
	c10, ok10 := fetch(data, x1, y0)
	c01, ok01 := fetch(data, x0, y1)
	c11, ok11 := fetch(data, x1, y1)

	cs := data.Channels

	bkg := make([]T, cs)
	if background != nil {
		copy(bkg, background[:cs])
	}

	if !ok00 {
		c00 = bkg
	}

	if !ok10 {
		c10 = bkg
	}

	if !ok01 {
		c01 = bkg
	}

	if !ok11 {
		c11 = bkg
	}

	// An out-of-range corner has already been substituted with bkg above, so the
	// ordinary bilinear weights below soften the blend towards background at a
	// partially-valid edge rather than needing a separate weighting term.
	w00 := (1 - fx) * (1 - fy)
	w10 := fx * (1 - fy)
	w01 := (1 - fx) * fy
	w11 := fx * fy

	n := cs
	if len(scratch) < n {
		n = len(scratch)
	}

	for c := 0; c < n; c++ {
		v := w00*toFloat32(c00[c]) + w10*toFloat32(c10[c]) + w01*toFloat32(c01[c]) + w11*toFloat32(c11[c])
		scratch[c] = clampSample[T](v)
	}

	for c := n; c < len(scratch); c++ {
		if background != nil {
			scratch[c] = background[c]
		} else {
			scratch[c] = 0
		}
	}

	return scratch, true
}

/*****************************************************************************************************************/

func fetch[T Sample](data Buffer[T], x, y int) ([]T, bool) {
	if x < 0 || x >= data.Width || y < 0 || y >= data.Height {
		return nil, false
	}

	base := (y*data.Width + x) * data.Channels

	return data.Data[base : base+data.Channels], true
}

/*****************************************************************************************************************/

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < 0 && i != v {
		i--
	}

	return i
}

/*****************************************************************************************************************/

// WarpArray is a convenience wrapper over WarpArrayInto that allocates a fresh out
// Buffer and Mask sized to size (width, height) and resamples every destination pixel.
func WarpArray[T Sample](mapping warp.Mapping, data Buffer[T], size [2]int, background []T) (Buffer[T], Mask, error) {
	width, height := size[0], size[1]

	out := NewBuffer[T](height, width, data.Channels)
	valid := NewMask(height, width)

	if err := WarpArrayInto(mapping, data, out, valid, nil, background, nil); err != nil {
		return Buffer[T]{}, Mask{}, err
	}

	return out, valid, nil
}

/*****************************************************************************************************************/
