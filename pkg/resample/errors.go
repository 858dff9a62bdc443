/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package resample

/*****************************************************************************************************************/

import "errors"

/*****************************************************************************************************************/

// ErrChannelDepthExceeded is returned when the source or destination buffer carries
// more than MaxChannels channels.
var ErrChannelDepthExceeded = errors.New("resample: channel depth exceeds maximum supported")

/*****************************************************************************************************************/

// ErrNonContiguousBuffer is returned when a buffer's backing slice length does not
// match its declared (height, width, channels) shape.
var ErrNonContiguousBuffer = errors.New("resample: buffer is not row-major contiguous")

/*****************************************************************************************************************/

// ErrShapeMismatch is returned when a buffer has a non-positive shape, when out/valid
// disagree on (height, width), when a point lies outside out's bounds, or when a
// background is supplied that does not match the output channel depth or out has
// fewer channels than data.
var ErrShapeMismatch = errors.New("resample: shape mismatch")

/*****************************************************************************************************************/
