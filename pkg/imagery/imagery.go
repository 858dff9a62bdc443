/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package imagery decodes the numbered frame files a panorama or video-stabilization
// run is built from into the plain image.Image values pkg/resample converts to and
// from (H, W, C) buffers. It carries none of the warp/resample domain logic itself -
// it is the thin "opaque pixel buffers read from image files" stand-in the photon-cube
// file format occupies in the original, out of scope here per spec.md.
package imagery

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	_ "golang.org/x/image/bmp"
)

/*****************************************************************************************************************/

// ErrNoFramesFound is returned when a frame directory glob matches no files.
var ErrNoFramesFound = errors.New("imagery: no frame files matched the given pattern")

/*****************************************************************************************************************/

// DecodeFile opens and decodes a single image file, sniffing its format from
// the registered decoders (PNG, JPEG, BMP).
func DecodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagery: failed to open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("imagery: failed to decode %s: %w", path, err)
	}

	return img, nil
}

/*****************************************************************************************************************/

// LoadFrameSequence globs pattern (e.g. "frames/*.png"), sorts the matches
// lexically - numbered frame filenames are expected to be zero-padded so that
// lexical order coincides with sequence order - and decodes each in turn.
func LoadFrameSequence(pattern string) ([]image.Image, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("imagery: invalid glob pattern %q: %w", pattern, err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoFramesFound, pattern)
	}

	sort.Strings(paths)

	frames := make([]image.Image, len(paths))

	for i, path := range paths {
		img, err := DecodeFile(path)
		if err != nil {
			return nil, err
		}

		frames[i] = img
	}

	return frames, nil
}

/*****************************************************************************************************************/

// SaveFramePNG encodes img as a PNG at path, creating parent directories as needed.
func SaveFramePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("imagery: failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imagery: failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("imagery: failed to encode %s: %w", path, err)
	}

	return nil
}

/*****************************************************************************************************************/
