// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrNilStore       = errors.New("engine needs a sample store")
	ErrInvalidSetting = errors.New("invalid engine setting")
	ErrMixedFormat    = errors.New("store buffers differ in rate or channels")
)
