/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package resample

/*****************************************************************************************************************/

import "fmt"

/*****************************************************************************************************************/

// MaxChannels is the compile-time channel depth bound. The per-pixel kernel sizes its
// scratch buffer to this capacity to avoid a heap allocation per destination pixel
// under parallel iteration; it is the reason ChannelDepthExceeded exists at all.
const MaxChannels = 8

/*****************************************************************************************************************/

// Sample is the set of pixel/channel element types the resampler supports.
type Sample interface {
	~uint8 | ~uint16 | ~int16 | ~int32 | ~float32 | ~float64
}

/*****************************************************************************************************************/

// Buffer is a caller-owned (Height, Width, Channels) array, contiguous in row-major
// HWC order (channels innermost).
type Buffer[T Sample] struct {
	Height   int
	Width    int
	Channels int
	Data     []T
}

/*****************************************************************************************************************/

// NewBuffer allocates a zeroed Buffer of the given shape.
func NewBuffer[T Sample](height, width, channels int) Buffer[T] {
	return Buffer[T]{
		Height:   height,
		Width:    width,
		Channels: channels,
		Data:     make([]T, height*width*channels),
	}
}

/*****************************************************************************************************************/

func (b Buffer[T]) validate(name string) error {
	if b.Height <= 0 || b.Width <= 0 || b.Channels <= 0 {
		return fmt.Errorf("%w: %s has non-positive shape (%d, %d, %d)", ErrShapeMismatch, name, b.Height, b.Width, b.Channels)
	}

	if len(b.Data) != b.Height*b.Width*b.Channels {
		return fmt.Errorf(
			"%w: %s data length %d does not match shape (%d, %d, %d)",
			ErrNonContiguousBuffer, name, len(b.Data), b.Height, b.Width, b.Channels,
		)
	}

	return nil
}

/*****************************************************************************************************************/

// Mask is a caller-owned (Height, Width) boolean validity plane.
type Mask struct {
	Height int
	Width  int
	Data   []bool
}

/*****************************************************************************************************************/

// NewMask allocates a zeroed (all-invalid) Mask of the given shape.
func NewMask(height, width int) Mask {
	return Mask{Height: height, Width: width, Data: make([]bool, height*width)}
}

/*****************************************************************************************************************/
