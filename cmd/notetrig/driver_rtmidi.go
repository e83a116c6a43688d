// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package main

import (
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)
