// pkg/aviation/frequency.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "fmt"

// Frequency is a radio frequency in kHz, the same representation vice
// uses so conversions to/from the familiar "XXX.XXX" display format stay
// exact under float64 rounding.
type Frequency int

// NewFrequency builds a Frequency from a MHz value as typically written
// in charts and scripts (e.g. 121.9).
func NewFrequency(mhz float32) Frequency {
	return Frequency(mhz*1000 + 0.5)
}

func (f Frequency) String() string {
	return fmt.Sprintf("%03d.%03d", f/1000, f%1000)
}

// RadioTransmissionType distinguishes an initial call-up from a pilot's
// readback of an instruction, and flags a transmission the pilot script
// doesn't have a handler for.
type RadioTransmissionType int

const (
	RadioTransmissionContact RadioTransmissionType = iota
	RadioTransmissionReadback
	RadioTransmissionUnexpected
)

func (r RadioTransmissionType) String() string {
	switch r {
	case RadioTransmissionContact:
		return "contact"
	case RadioTransmissionReadback:
		return "readback"
	case RadioTransmissionUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}
