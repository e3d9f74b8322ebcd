// pkg/pilot/pilot.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pilot

import (
	"time"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/maneuver"
)

// Pilot scripts one flight's lifecycle on top of its Tree, grounded on
// the original engine's AIPilot class. Where AIPilot held its host
// services, maneuver/intent factories, and departure airport as member
// fields reached via an implicit `this` from every lambda, Pilot holds
// the same things as plain fields and its script functions take
// *aviation.Flight as an explicit parameter (§9 "closures capturing
// this" redesign note).
type Pilot struct {
	Flight           *aviation.Flight
	DepartureAirport *aviation.Airport
	Tx               Transmitter

	// departureTowerKhz, departureKhz and arrivalGroundKhz are set by
	// HandleCommTransmission from frequency-carrying controller
	// intents (switch-to-tower, takeoff clearance, landing clearance)
	// that the original stashes as AIPilot member fields rather than
	// routing through the clearance store. departureTowerKhz is read by
	// the line-up subtree's Await predicate and radio-tuning action,
	// departureKhz by the takeoff-readback Deferred factory;
	// arrivalGroundKhz is stored but no script step reads it.
	departureTowerKhz aviation.Frequency
	departureKhz      aviation.Frequency
	arrivalGroundKhz  aviation.Frequency
}

// NewPilot creates a Pilot for f, departing from departureAirport.
func NewPilot(f *aviation.Flight, departureAirport *aviation.Airport, tx Transmitter) *Pilot {
	return &Pilot{Flight: f, DepartureAirport: departureAirport, Tx: tx}
}

// HandleCommTransmission applies one controller-to-pilot Intent to the
// flight's clearance store, grounded line-for-line on
// AIPilot::handleCommTransmission. Call once per queued intent at the
// start of each tick, before ProgressTo.
func (p *Pilot) HandleCommTransmission(intent *aviation.Intent) {
	if intent.Direction != aviation.ControllerToPilot || intent.SubjectFlight != p.Flight.Plan.Callsign {
		return
	}

	switch intent.Code {
	case aviation.IntentGroundSwitchToTower:
		p.departureTowerKhz = intent.TowerKhz
		return
	case aviation.IntentDeliveryIfrClearanceReadbackCorrect:
		if c := p.Flight.Clearances.Latest(aviation.ClearanceIfr); c != nil {
			c.SetReadbackCorrect()
		}
		return
	case aviation.IntentTowerClearedForTakeoff:
		p.departureKhz = intent.DepartureKhz
	case aviation.IntentTowerClearedForLanding:
		p.arrivalGroundKhz = intent.GroundKhz
	}

	if clearance, ok := aviation.ClearanceFromIntent(intent); ok {
		p.Flight.Clearances.Add(clearance)
	}
}

// FlightCycle builds the full departure maneuver tree: a delay until
// startDelay has elapsed, followed by the seven departure phases in
// order, grounded on AIPilot::maneuverFlightCycle.
func (p *Pilot) FlightCycle(startDelay time.Duration) maneuver.NodeIndex {
	t := p.Flight.Tree
	root := t.NewSequential(maneuver.KindFlight, p.Flight.Plan.Callsign,
		t.NewDelay(maneuver.KindUnspecified, "await-start", startDelay),
		p.maneuverDepartureAwaitIfrClearance(),
		p.maneuverDepartureAwaitPushback(),
		p.maneuverDeparturePushbackAndStart(),
		p.maneuverDepartureAwaitTaxi(),
		p.maneuverDepartureTaxi(),
		p.maneuverAwaitTakeOff(),
		p.maneuverTakeoff(),
	)
	t.Root = root
	return root
}

// FinalToGate builds the arrival maneuver tree an aircraft runs from
// final approach through taxiing to its assigned gate, grounded on
// AIPilot::maneuverFinalToGate.
func (p *Pilot) FinalToGate(arrivalAirport *aviation.Airport, landingRunwayEnd aviation.RunwayEnd) maneuver.NodeIndex {
	t := p.Flight.Tree
	root := t.NewSequential(maneuver.KindArrivalApproach, p.Flight.Plan.Callsign,
		p.maneuverFinal(arrivalAirport, landingRunwayEnd),
		p.maneuverLanding(),
		t.NewDeferred(maneuver.KindArrivalTaxi, "taxi-to-gate", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			return p.maneuverArrivalTaxiToGate(arrivalAirport, landingRunwayEnd)
		}),
	)
	t.Root = root
	return root
}
