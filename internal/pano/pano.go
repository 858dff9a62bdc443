/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package pano orchestrates the panorama-stitching pipeline: accumulate a sequence
// of per-frame mappings, size a canvas to their union extent, resample every frame
// onto it with an additive weighted merge, and divide out the accumulated weight. It
// is the direct consumer of both pkg/warp and pkg/resample, carrying the shape of the
// original's Pano CLI subcommand (see SPEC_FULL.md §5) without its mapping-estimation
// step - mappings are supplied, not derived.
package pano

/*****************************************************************************************************************/

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/observerly/spano/internal/weights"
	"github.com/observerly/spano/pkg/resample"
	"github.com/observerly/spano/pkg/warp"
)

/*****************************************************************************************************************/

// Params configures a single stitching run.
type Params struct {
	// Frames are the decoded source images, in sequence order.
	Frames []image.Image
	// Mappings are the per-frame warps, already accumulated (absolute, not pairwise) -
	// len(Mappings) must equal len(Frames).
	Mappings []warp.Mapping
	// EdgeMargin feathers each frame's contribution towards zero over this many
	// pixels from its border, softening seams where frames overlap. 0 disables it.
	EdgeMargin int
	// Logger receives per-frame progress; a nil Logger disables logging.
	Logger *slog.Logger
}

/*****************************************************************************************************************/

// Stitch runs the full accumulate/extent/resample/normalize pipeline and returns the
// composited canvas as an image.Image.
func Stitch(params Params) (image.Image, error) {
	if len(params.Frames) == 0 {
		return nil, fmt.Errorf("pano: at least one frame is required")
	}

	if len(params.Mappings) != len(params.Frames) {
		return nil, fmt.Errorf("pano: got %d mappings for %d frames, want equal counts", len(params.Mappings), len(params.Frames))
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sizes := make([][2]int, len(params.Frames))
	for i, f := range params.Frames {
		b := f.Bounds()
		sizes[i] = [2]int{b.Dx(), b.Dy()}
	}

	extent, offset, err := warp.MaximumExtent(params.Mappings, sizes)
	if err != nil {
		return nil, fmt.Errorf("pano: failed to compute canvas extent: %w", err)
	}

	canvasWidth := int(extent[0])
	canvasHeight := int(extent[1])

	logger.Info("stitching panorama", "frames", len(params.Frames), "canvas_width", canvasWidth, "canvas_height", canvasHeight)

	data := resample.ImageToBuffer(params.Frames[0])
	channels := data.Channels

	// The accumulator canvas carries one extra "weight" channel beyond the source
	// image's own channels, so each destination pixel's running sum can be divided by
	// its accumulated weight at the end - the same shape the original's weighted
	// accumulator canvas takes.
	accChannels := channels + 1

	accumulator := resample.NewBuffer[float32](canvasHeight, canvasWidth, accChannels)
	valid := resample.NewMask(canvasHeight, canvasWidth)

	accumulate := func(existing, incoming []float32) []float32 {
		out := make([]float32, len(existing))
		for i := range existing {
			out[i] = existing[i] + incoming[i]
		}
		return out
	}

	for i, frame := range params.Frames {
		logger.Info("compositing frame", "index", i)

		src := resample.ImageToBuffer(frame)

		if src.Channels != channels {
			return nil, fmt.Errorf("pano: frame %d has %d channels, want %d (matching frame 0)", i, src.Channels, channels)
		}

		weighted := resample.NewBuffer[float32](src.Height, src.Width, accChannels)

		frameWeights := weights.FrameWeights(src.Height, src.Width, params.EdgeMargin)

		for p := 0; p < src.Height*src.Width; p++ {
			w := frameWeights[p]

			for c := 0; c < channels; c++ {
				weighted.Data[p*accChannels+c] = float32(src.Data[p*channels+c]) * w
			}

			weighted.Data[p*accChannels+channels] = w
		}

		// Corners places source pixel s at canvas point Mappings[i]^-1(s) - offset, so
		// canvas pixel c samples the frame at Mappings[i](c + offset). The resampler
		// looks source pixels up through the inverse of the mapping it is given, so it is
		// handed (Mappings[i] * offset)^-1.
		composed, err := params.Mappings[i].Transform(nil, &offset).Inverse()
		if err != nil {
			return nil, fmt.Errorf("pano: failed to invert canvas placement for frame %d: %w", i, err)
		}

		if err := resample.WarpArrayInto(composed, weighted, accumulator, valid, nil, nil, accumulate); err != nil {
			return nil, fmt.Errorf("pano: failed to composite frame %d: %w", i, err)
		}
	}

	out := resample.NewBuffer[uint8](canvasHeight, canvasWidth, channels)

	for p := 0; p < canvasHeight*canvasWidth; p++ {
		w := accumulator.Data[p*accChannels+channels]

		if w <= 0 {
			continue
		}

		for c := 0; c < channels; c++ {
			v := accumulator.Data[p*accChannels+c] / w

			out.Data[p*channels+c] = clampToUint8(v)
		}
	}

	logger.Info("panorama complete")

	return resample.BufferToImage(out)
}

/*****************************************************************************************************************/

func clampToUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}

	if v > 255 {
		return 255
	}

	return uint8(v)
}

/*****************************************************************************************************************/
