// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize           = errors.New("dst size must be multiple of channels")
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
	ErrInvalidRate              = errors.New("sample rate must be positive")
	ErrNoProgress               = errors.New("source returned no samples repeatedly")
)
