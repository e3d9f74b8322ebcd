// pkg/aviation/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	ErrNoClearanceOfKind    = errors.New("no clearance of the requested kind has been received")
	ErrNoExitPathFound      = errors.New("no taxi path found for the requested endpoints")
	ErrUnknownAircraftType  = errors.New("unknown aircraft type")
	ErrUnknownParkingStand  = errors.New("unknown parking stand")
	ErrUnknownRunway        = errors.New("unknown runway")
	ErrNoFlightPlan         = errors.New("no flight plan has been filed for aircraft")
	ErrFlightAlreadyStarted = errors.New("flight cycle has already been started")
)
