// pkg/aviation/flightplan.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "time"

// FlightPlan carries the fields a pilot script actually reads, grounded
// on the subset of the original FlightPlan's accessors aiPilot.hpp calls
// (departureAirportIcao, departureRunway, arrivalRunway, arrivalGate,
// departureTime); vice's much larger FlightPlan (routes, filed
// altitudes, remarks, equipment suffixes) belongs to the dropped
// route/ARINC machinery (see DESIGN.md).
type FlightPlan struct {
	Callsign          string
	AircraftType      string
	DepartureAirport  string
	DepartureRunway   string
	ArrivalAirport    string
	ArrivalRunway     string
	ArrivalGate       string
	DepartureTime     time.Time
}
