// pkg/aviation/flight.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"log/slog"

	"github.com/crankywright/atc/pkg/log"
	"github.com/crankywright/atc/pkg/maneuver"
)

// FlightPhase is a coarse, display-only summary of where a Flight is in
// its lifecycle, used in logs and dumps. NewFlight sets PhasePreflight;
// nothing in this module (Flight, pkg/pilot or pkg/sim) changes it
// afterwards, so it only moves if a caller assigns Flight.Phase.
type FlightPhase int

const (
	PhasePreflight FlightPhase = iota
	PhaseDeparture
	PhaseEnroute
	PhaseArrival
	PhaseComplete
)

func (p FlightPhase) String() string {
	switch p {
	case PhasePreflight:
		return "Preflight"
	case PhaseDeparture:
		return "Departure"
	case PhaseEnroute:
		return "Enroute"
	case PhaseArrival:
		return "Arrival"
	case PhaseComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Flight is the per-aircraft state a clock driver ticks: its filed plan,
// the clearances its pilot script has accumulated, the actuator view the
// script drives, and the maneuver tree encoding "what the pilot is doing
// right now." Grounded on the original engine's Flight/AIPilot pairing,
// collapsed into one struct since Go favors composition over the
// original's multiple-inheritance-flavored split.
type Flight struct {
	Plan       FlightPlan
	Aircraft   *Aircraft
	Clearances *ClearanceStore
	Tree       *maneuver.Tree

	Phase FlightPhase

	// Pending is the queue of controller-to-pilot Intents the clock
	// driver has delivered to this flight but the pilot script has not
	// yet consumed; pkg/sim's World.Tick drains it once per tick, passing
	// each intent to pkg/pilot's HandleCommTransmission, before advancing
	// the tree.
	Pending []*Intent
}

// NewFlight creates a Flight in its preflight phase, parked per the plan
// and ready for pkg/pilot to build its departure (or arrival, for a
// flight spawned already airborne) tree onto Tree.Root. lg may be nil;
// pkg/log.Logger's Debug/Info/Warn/Error methods (and their f variants)
// are nil-receiver-safe.
func NewFlight(plan FlightPlan, ac *Aircraft, lg *log.Logger) *Flight {
	return &Flight{
		Plan:       plan,
		Aircraft:   ac,
		Clearances: NewClearanceStore(),
		Tree:       maneuver.NewTree(lg),
		Phase:      PhasePreflight,
	}
}

// Deliver enqueues a controller-to-pilot Intent addressed to this
// flight for the next tick's handleCommTransmission pass.
func (f *Flight) Deliver(i *Intent) {
	f.Pending = append(f.Pending, i)
}

// DrainPending returns and clears the queued intents.
func (f *Flight) DrainPending() []*Intent {
	p := f.Pending
	f.Pending = nil
	return p
}

// Done reports whether the flight's maneuver tree has finished, i.e. the
// aircraft has completed its scripted lifecycle (landed and taxied to
// the gate, or departed and climbed out of the scenario's area of
// interest).
func (f *Flight) Done() bool {
	return f.Tree.Root != maneuver.NoIndex && f.Tree.State(f.Tree.Root).Done()
}

func (f Flight) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("callsign", f.Plan.Callsign),
		slog.String("phase", f.Phase.String()),
		slog.Any("aircraft", f.Aircraft))
}
