// pkg/pilot/departure.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pilot

import (
	"time"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/maneuver"
)

// maneuverDepartureAwaitIfrClearance requests and waits for an IFR
// clearance, reads it back, and waits for the delivery controller to
// confirm the readback before handing off to ground. Grounded on
// AIPilot::maneuverDepartureAwaitIfrClearance.
func (p *Pilot) maneuverDepartureAwaitIfrClearance() maneuver.NodeIndex {
	t := p.Flight.Tree
	airport := p.DepartureAirport

	return t.NewSequential(maneuver.KindDepartureAwaitIfrClearance, "",
		tuneComRadio(t, p.Flight, airport.ClearanceDeliveryKhz),
		transmitIntent(t, p.Tx, &aviation.Intent{
			Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
			SubjectFlight: p.Flight.Plan.Callsign,
		}),
		awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceIfr),
		t.NewDeferred(maneuver.KindUnspecified, "ifr-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceIfr)
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign,
			})
		}),
		t.NewAwait(maneuver.KindUnspecified, "readback-correct", func() bool {
			c := p.Flight.Clearances.Latest(aviation.ClearanceIfr)
			return c != nil && c.ReadbackGiven
		}),
		t.NewDeferred(maneuver.KindUnspecified, "handoff-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign, GroundKhz: airport.GroundKhz,
			})
		}),
		t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
	)
}

// maneuverDepartureAwaitPushback requests pushback-and-start approval
// and waits for it. Grounded on AIPilot::maneuverDepartureAwaitPushback.
func (p *Pilot) maneuverDepartureAwaitPushback() maneuver.NodeIndex {
	t := p.Flight.Tree
	airport := p.DepartureAirport

	return t.NewSequential(maneuver.KindDepartureAwaitPushback, "",
		tuneComRadio(t, p.Flight, airport.GroundKhz),
		transmitIntent(t, p.Tx, &aviation.Intent{
			Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
			SubjectFlight: p.Flight.Plan.Callsign,
		}),
		awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearancePushAndStart),
		t.NewDeferred(maneuver.KindUnspecified, "pushback-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign,
			})
		}),
		t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
	)
}

// maneuverDeparturePushbackAndStart builds the pushback-and-engine-start
// subtree once the pushback approval is available, since the approval's
// pushback taxi path is only known at that point. Grounded on
// AIPilot::maneuverDeparturePushbackAndStart.
func (p *Pilot) maneuverDeparturePushbackAndStart() maneuver.NodeIndex {
	t := p.Flight.Tree

	return t.NewDeferred(maneuver.KindDeparturePushbackAndStart, "", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
		approval := p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearancePushAndStart)
		path, _ := approval.Payload.(*aviation.TaxiPath)
		if path == nil {
			path = &aviation.TaxiPath{}
		}

		return t.NewSequential(maneuver.KindDeparturePushbackAndStart, "",
			switchLights(t, p.Flight, aviation.LightBeacon),
			t.NewDelay(maneuver.KindUnspecified, "", 10*time.Second),
			switchLights(t, p.Flight, aviation.LightBeacon|aviation.LightNav),
			t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
			taxiByPath(t, maneuver.KindDeparturePushbackAndStart, p.Flight, p.DepartureAirport.Frame(), path, TaxiSpeedPushback, nil),
		)
	})
}

// maneuverDepartureAwaitTaxi sets takeoff flaps, requests departure
// taxi clearance and waits for it. Grounded on
// AIPilot::maneuverDepartureAwaitTaxi.
func (p *Pilot) maneuverDepartureAwaitTaxi() maneuver.NodeIndex {
	t := p.Flight.Tree

	flapsToTakeoffPosition := maneuver.NewAnimation(t, maneuver.KindUnspecified, "flaps-takeoff", float32(0), float32(0.15), 3*time.Second,
		func(from, to float32, progress float64) float32 { return from + (to-from)*float32(progress) },
		func(value float32, progress float64) { p.Flight.Aircraft.SetFlap(value) }, nil)

	return t.NewSequential(maneuver.KindDepartureAwaitTaxi, "",
		t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
		flapsToTakeoffPosition,
		t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
		transmitIntent(t, p.Tx, &aviation.Intent{
			Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
			SubjectFlight: p.Flight.Plan.Callsign,
		}),
		awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceDepartureTaxi),
		t.NewDeferred(maneuver.KindUnspecified, "taxi-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign,
			})
		}),
		t.NewDelay(maneuver.KindUnspecified, "", 10*time.Second),
	)
}

// maneuverDepartureTaxi taxis to the departure runway via the cleared
// path, handling any hold-short edge along the way by routing it to
// either a line-up-and-wait (the departure runway itself) or a runway
// crossing (any other active runway). Grounded on
// AIPilot::maneuverDepartureTaxi.
func (p *Pilot) maneuverDepartureTaxi() maneuver.NodeIndex {
	t := p.Flight.Tree

	return t.NewDeferred(maneuver.KindDepartureTaxi, "", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
		clearance := p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceDepartureTaxi)
		path, _ := clearance.Payload.(*aviation.TaxiPath)
		if path == nil {
			path = &aviation.TaxiPath{}
		}

		departureRunway, _ := p.DepartureAirport.Runway(p.Flight.Plan.DepartureRunway)
		onHoldShort := func(t *maneuver.Tree, edge aviation.TaxiEdge) maneuver.NodeIndex {
			if edge.IsHoldShortOf(departureRunway) {
				return p.maneuverDepartureAwaitLineup(p.Flight.Plan.DepartureRunway, edge)
			}
			return p.maneuverAwaitCrossRunway(p.DepartureAirport, edge)
		}

		return t.NewSequential(maneuver.KindDepartureTaxi, "",
			t.NewDelay(maneuver.KindUnspecified, "", 10*time.Second),
			switchLights(t, p.Flight, aviation.LightBeacon|aviation.LightTaxi),
			t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
			taxiByPath(t, maneuver.KindDepartureTaxi, p.Flight, p.DepartureAirport.Frame(), path, TaxiSpeedNormal, onHoldShort),
		)
	})
}

// maneuverDepartureAwaitLineup reports holding short, waits for the
// tower handoff, checks in, and waits for line-up approval. Grounded on
// AIPilot::maneuverDepartureAwaitLineup.
func (p *Pilot) maneuverDepartureAwaitLineup(runwayName string, holdShortEdge aviation.TaxiEdge) maneuver.NodeIndex {
	t := p.Flight.Tree

	return t.NewSequential(maneuver.KindDepartureLineUpAndWait, "",
		transmitIntent(t, p.Tx, &aviation.Intent{
			Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
			SubjectFlight: p.Flight.Plan.Callsign,
		}),
		t.NewAwait(maneuver.KindUnspecified, "await-tower-handoff", func() bool {
			return p.departureTowerKhz != 0
		}),
		t.NewDeferred(maneuver.KindUnspecified, "handoff-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign,
			})
		}),
		t.NewInstantAction(maneuver.KindInstantAction, "switch-tower", func() {
			p.Flight.Aircraft.SetRadioFrequency(p.departureTowerKhz)
		}),
		transmitIntent(t, p.Tx, &aviation.Intent{
			Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
			SubjectFlight: p.Flight.Plan.Callsign,
		}),
		awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceLineUp),
		t.NewDeferred(maneuver.KindUnspecified, "lineup-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign,
			})
		}),
		t.NewInstantAction(maneuver.KindInstantAction, "lineup-lights", func() {
			p.Flight.Aircraft.SetLights(aviation.LightBeacon | aviation.LightLanding | aviation.LightNav | aviation.LightStrobe)
		}),
		t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
	)
}

// maneuverAwaitCrossRunway reports holding short of a runway that isn't
// the departure runway and waits for crossing clearance. Grounded on
// AIPilot::maneuverAwaitCrossRunway.
func (p *Pilot) maneuverAwaitCrossRunway(airport *aviation.Airport, holdShortEdge aviation.TaxiEdge) maneuver.NodeIndex {
	t := p.Flight.Tree

	return t.NewSequential(maneuver.KindTaxiHoldShort, "",
		transmitIntent(t, p.Tx, &aviation.Intent{
			Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
			SubjectFlight: p.Flight.Plan.Callsign,
		}),
		awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceRunwayCross),
		t.NewDeferred(maneuver.KindUnspecified, "cross-affirm", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceRunwayCross)
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign,
			})
		}),
	)
}

// maneuverAwaitTakeOff waits for takeoff clearance and reads it back.
// Grounded on AIPilot::maneuverAwaitTakeOff.
func (p *Pilot) maneuverAwaitTakeOff() maneuver.NodeIndex {
	t := p.Flight.Tree

	return t.NewSequential(maneuver.KindDepartureAwaitTakeOff, "",
		awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceTakeoff),
		t.NewDeferred(maneuver.KindUnspecified, "takeoff-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
			p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceTakeoff)
			return transmitIntent(t, p.Tx, &aviation.Intent{
				Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
				SubjectFlight: p.Flight.Plan.Callsign, DepartureKhz: p.departureKhz,
			})
		}),
		t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
	)
}

// maneuverTakeoff builds the takeoff roll and initial climb once the
// takeoff clearance (and the initial heading in its payload) is known;
// the runway comes from the flight plan's DepartureRunway. Grounded on
// AIPilot::maneuverTakeoff.
func (p *Pilot) maneuverTakeoff() maneuver.NodeIndex {
	t := p.Flight.Tree

	return t.NewDeferred(maneuver.KindDepartureTakeOffRoll, "", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
		runway, _ := p.DepartureAirport.Runway(p.Flight.Plan.DepartureRunway)
		end, _ := runway.End(p.Flight.Plan.DepartureRunway)

		lerp := func(from, to float32, progress float64) float32 { return from + (to-from)*float32(progress) }
		applyGroundSpeed := func(v float32, _ float64) { p.Flight.Aircraft.SetGroundSpeed(v) }
		applyPitch := func(v float32, _ float64) {
			att := p.Flight.Aircraft.Attitude()
			att.Pitch = v
			p.Flight.Aircraft.SetAttitude(att)
		}
		applyVSpeed := func(v float32, _ float64) { p.Flight.Aircraft.SetVerticalSpeed(v) }
		applyGear := func(v float32, _ float64) { p.Flight.Aircraft.SetGear(v) }

		rollOnRunway := maneuver.NewAnimation(t, maneuver.KindUnspecified, "roll", float32(0), float32(140), 20*time.Second, lerp, applyGroundSpeed, nil)
		accelerateAirborne := maneuver.NewAnimation(t, maneuver.KindUnspecified, "accel", float32(140), float32(180), 30*time.Second, lerp, applyGroundSpeed, nil)
		rotate1 := maneuver.NewAnimation(t, maneuver.KindUnspecified, "rotate1", float32(0), float32(8.5), 3*time.Second, lerp, applyPitch, nil)
		rotate2 := maneuver.NewAnimation(t, maneuver.KindUnspecified, "rotate2", float32(8.5), float32(15), 6*time.Second, lerp, applyPitch, nil)
		liftUp := maneuver.NewAnimation(t, maneuver.KindUnspecified, "lift", float32(0), float32(2500), 10*time.Second, lerp, applyVSpeed, nil)
		gearUp := maneuver.NewAnimation(t, maneuver.KindUnspecified, "gear-up", float32(1), float32(0), 8*time.Second, lerp, applyGear, nil)

		clearance := p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceTakeoff)
		initialHeading, _ := clearance.Payload.(float32)

		return t.NewSequential(maneuver.KindUnspecified, "",
			t.NewInstantAction(maneuver.KindInstantAction, "align", func() {
				att := p.Flight.Aircraft.Attitude()
				att.Heading = end.Heading
				p.Flight.Aircraft.SetAttitude(att)
			}),
			t.NewParallel(maneuver.KindUnspecified, "",
				t.NewSequential(maneuver.KindUnspecified, "", rollOnRunway, accelerateAirborne),
				t.NewSequential(maneuver.KindUnspecified, "", t.NewDelay(maneuver.KindUnspecified, "", 20*time.Second), rotate1, rotate2),
				t.NewSequential(maneuver.KindUnspecified, "", t.NewDelay(maneuver.KindUnspecified, "", 23*time.Second), liftUp),
				t.NewSequential(maneuver.KindUnspecified, "", t.NewDelay(maneuver.KindUnspecified, "", 25*time.Second), gearUp),
				t.NewSequential(maneuver.KindUnspecified, "",
					t.NewDelay(maneuver.KindUnspecified, "", 32*time.Second),
					airborneTurn(t, p.Flight, end.Heading, initialHeading, 30*time.Second),
				),
			),
		)
	})
}
