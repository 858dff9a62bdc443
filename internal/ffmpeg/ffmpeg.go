/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package ffmpeg shells out to a system ffmpeg binary to encode a numbered sequence of
// stabilized frames into a video file. Video encoding itself is out of scope per
// spec.md - this is the thin external-collaborator wrapper spec.md names in its place.
package ffmpeg

/*****************************************************************************************************************/

import (
	"fmt"
	"os/exec"
)

/*****************************************************************************************************************/

// EncodeParams configures a single ffmpeg invocation over a numbered frame sequence.
type EncodeParams struct {
	// FramePattern is a printf-style sequential pattern ffmpeg understands, e.g.
	// "frames/frame_%04d.png".
	FramePattern string
	// OutputPath is the destination video file, e.g. "out.mp4".
	OutputPath string
	// FrameRate is the output video's frames per second.
	FrameRate int
}

/*****************************************************************************************************************/

// Encode runs ffmpeg to mux the frame sequence named by params.FramePattern into
// params.OutputPath, overwriting any existing file at that path.
func Encode(params EncodeParams) error {
	if params.FrameRate <= 0 {
		return fmt.Errorf("ffmpeg: frame rate must be positive, got %d", params.FrameRate)
	}

	cmd := exec.Command(
		"ffmpeg",
		"-y",
		"-framerate", fmt.Sprintf("%d", params.FrameRate),
		"-i", params.FramePattern,
		"-pix_fmt", "yuv420p",
		params.OutputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: encode failed: %w: %s", err, string(output))
	}

	return nil
}

/*****************************************************************************************************************/
