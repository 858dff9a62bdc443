/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package pano

/*****************************************************************************************************************/

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/observerly/spano/pkg/warp"
)

/*****************************************************************************************************************/

func solidGrayFrame(width, height int, value uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}

	return img
}

/*****************************************************************************************************************/

func TestStitchSingleIdentityFrameMatchesSource(t *testing.T) {
	frame := solidGrayFrame(4, 4, 128)

	out, err := Stitch(Params{
		Frames:   []image.Image{frame},
		Mappings: []warp.Mapping{warp.NewIdentity()},
	})
	if err != nil {
		t.Fatalf("Stitch returned unexpected error: %v", err)
	}

	bounds := out.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 4 {
		t.Fatalf("Stitch output bounds = %v; want 4x4", bounds)
	}

	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("Stitch output is %T; want *image.Gray", out)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := gray.GrayAt(x, y).Y; got != 128 {
				t.Errorf("Stitch output at (%d,%d) = %d; want 128", x, y, got)
			}
		}
	}
}

/*****************************************************************************************************************/

func TestStitchRequiresMatchingFrameAndMappingCounts(t *testing.T) {
	frame := solidGrayFrame(2, 2, 1)

	_, err := Stitch(Params{
		Frames:   []image.Image{frame},
		Mappings: []warp.Mapping{warp.NewIdentity(), warp.Shift(1, 1)},
	})

	if err == nil {
		t.Errorf("Stitch with mismatched counts returned nil error; want non-nil")
	}
}

/*****************************************************************************************************************/

func TestStitchRequiresAtLeastOneFrame(t *testing.T) {
	_, err := Stitch(Params{})
	if err == nil {
		t.Errorf("Stitch with no frames returned nil error; want non-nil")
	}

	var target error
	if errors.As(err, &target) && target == nil {
		t.Errorf("unexpected typed nil error")
	}
}

/*****************************************************************************************************************/
