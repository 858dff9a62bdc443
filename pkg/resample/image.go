/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package resample

/*****************************************************************************************************************/

import (
	"image"
	"image/color"

	"github.com/observerly/spano/pkg/warp"
)

/*****************************************************************************************************************/

// ImageToBuffer flattens an image.Image into a row-major (H, W, C) Buffer[uint8].
// *image.Gray sources yield a single-channel buffer; everything else is read through
// its generic color.Color and expanded to four channels (R, G, B, A).
func ImageToBuffer(img image.Image) Buffer[uint8] {
	bounds := img.Bounds()
	height := bounds.Dy()
	width := bounds.Dx()

	if gray, ok := img.(*image.Gray); ok {
		buf := NewBuffer[uint8](height, width, 1)

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				buf.Data[y*width+x] = gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			}
		}

		return buf
	}

	buf := NewBuffer[uint8](height, width, 4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			base := (y*width + x) * 4

			buf.Data[base+0] = uint8(r >> 8)
			buf.Data[base+1] = uint8(g >> 8)
			buf.Data[base+2] = uint8(b >> 8)
			buf.Data[base+3] = uint8(a >> 8)
		}
	}

	return buf
}

/*****************************************************************************************************************/

// BufferToImage rebuilds an image.Image from a Buffer[uint8]: a single-channel buffer
// becomes an *image.Gray, a four-channel buffer becomes an *image.NRGBA, and any other
// channel depth is rejected with ErrChannelDepthExceeded.
func BufferToImage(buf Buffer[uint8]) (image.Image, error) {
	switch buf.Channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, buf.Width, buf.Height))

		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				img.SetGray(x, y, color.Gray{Y: buf.Data[y*buf.Width+x]})
			}
		}

		return img, nil

	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))

		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				base := (y*buf.Width + x) * 4

				img.SetNRGBA(x, y, color.NRGBA{
					R: buf.Data[base+0],
					G: buf.Data[base+1],
					B: buf.Data[base+2],
					A: buf.Data[base+3],
				})
			}
		}

		return img, nil

	default:
		return nil, ErrChannelDepthExceeded
	}
}

/*****************************************************************************************************************/

// WarpImage resamples an image.Image under mapping onto a canvas of the given size,
// filling out-of-range pixels with background (one value per channel of the converted
// buffer - a single value for *image.Gray sources, an RGBA quadruple otherwise - or nil
// for no fill). It is a thin convenience layer over WarpArray for callers working with
// image.Image rather than raw Buffers, e.g. the CLI.
func WarpImage(mapping warp.Mapping, img image.Image, size [2]int, background []uint8) (image.Image, error) {
	data := ImageToBuffer(img)

	out, _, err := WarpArray(mapping, data, size, background)
	if err != nil {
		return nil, err
	}

	return BufferToImage(out)
}

/*****************************************************************************************************************/
