/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package weights provides the minimal per-frame blend weight a panorama merge needs:
// a cheap distance-to-edge falloff, not a full distance transform (out of scope per
// spec.md - "distance-transform weight computation" is named there as a thin external
// collaborator, not something pkg/resample or pkg/warp computes itself).
package weights

/*****************************************************************************************************************/

// EdgeFalloff returns, for a (height, width) frame, a weight in [0, 1] at pixel (x, y)
// that is 1 at the frame's center and tapers linearly to 0 at its nearest edge within
// margin pixels. Pixels further than margin from every edge get weight 1 unchanged;
// margin <= 0 disables tapering entirely (every in-bounds pixel weighs 1).
func EdgeFalloff(height, width, x, y, margin int) float32 {
	if margin <= 0 {
		return 1
	}

	distLeft := x
	distRight := width - 1 - x
	distTop := y
	distBottom := height - 1 - y

	d := distLeft
	if distRight < d {
		d = distRight
	}

	if distTop < d {
		d = distTop
	}

	if distBottom < d {
		d = distBottom
	}

	if d < 0 {
		return 0
	}

	if d >= margin {
		return 1
	}

	return float32(d) / float32(margin)
}

/*****************************************************************************************************************/

// FrameWeights allocates a (height, width) plane of EdgeFalloff weights for an entire
// frame, for use as the per-pixel scale factor a panorama accumulator multiplies a
// sample by before summing it into the weighted canvas.
func FrameWeights(height, width, margin int) []float32 {
	out := make([]float32, height*width)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[y*width+x] = EdgeFalloff(height, width, x, y, margin)
		}
	}

	return out
}

/*****************************************************************************************************************/
