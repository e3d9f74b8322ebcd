// pkg/sim/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import "errors"

var (
	ErrUnknownFlight        = errors.New("no active flight with that callsign")
	ErrFlightAlreadySpawned = errors.New("a flight with that callsign is already active")
	ErrUnknownScenario      = errors.New("no scenario registered under that name")
)
