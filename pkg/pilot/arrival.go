// pkg/pilot/arrival.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pilot

import (
	gomath "math"
	"time"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/geo"
	"github.com/crankywright/atc/pkg/maneuver"
)

// maneuverFinal configures the aircraft for landing (flaps, gear,
// pitch) on the way down final approach, checks in with tower, and
// waits for landing clearance in parallel with further flap extension.
// Grounded on AIPilot::maneuverFinal.
func (p *Pilot) maneuverFinal(arrivalAirport *aviation.Airport, landingRunwayEnd aviation.RunwayEnd) maneuver.NodeIndex {
	t := p.Flight.Tree
	ac := p.Flight.Aircraft
	lerp := func(from, to float32, progress float64) float32 { return from + (to-from)*float32(progress) }

	flaps15GearDown := t.NewSequential(maneuver.KindUnspecified, "",
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "flaps15", float32(0), float32(0.15), 7*time.Second, lerp,
			func(v float32, _ float64) { ac.SetFlap(v) }, nil),
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "gear-down", float32(0), float32(1.0), 10*time.Second, lerp,
			func(v float32, _ float64) { ac.SetGear(v) }, nil),
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "pitch", float32(-2), float32(0), 3*time.Second, lerp,
			func(v float32, _ float64) {
				att := ac.Attitude()
				att.Pitch = v
				ac.SetAttitude(att)
			}, nil),
	)
	flaps40 := t.NewParallel(maneuver.KindUnspecified, "",
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "flaps40", float32(0.15), float32(0.4), 10*time.Second, lerp,
			func(v float32, _ float64) { ac.SetFlap(v) }, nil),
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "pitch-up", float32(0), float32(1.5), 5*time.Second, lerp,
			func(v float32, _ float64) {
				att := ac.Attitude()
				att.Pitch = v
				ac.SetAttitude(att)
			}, nil),
	)

	return t.NewSequential(maneuver.KindArrivalApproach, "",
		t.NewDelay(maneuver.KindUnspecified, "", 10*time.Second),
		flaps15GearDown,
		tuneComRadio(t, p.Flight, arrivalAirport.TowerKhz),
		transmitIntent(t, p.Tx, &aviation.Intent{
			Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
			SubjectFlight: p.Flight.Plan.Callsign,
		}),
		t.NewParallel(maneuver.KindUnspecified, "",
			t.NewSequential(maneuver.KindUnspecified, "", t.NewDelay(maneuver.KindUnspecified, "", 20*time.Second), flaps40),
			t.NewSequential(maneuver.KindUnspecified, "",
				awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceLanding),
				t.NewDeferred(maneuver.KindUnspecified, "landing-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
					p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceLanding)
					return transmitIntent(t, p.Tx, &aviation.Intent{
						Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
						SubjectFlight: p.Flight.Plan.Callsign,
					})
				}),
			),
		),
	)
}

// maneuverLanding flares and touches down, grounded on
// AIPilot::maneuverLanding.
func (p *Pilot) maneuverLanding() maneuver.NodeIndex {
	t := p.Flight.Tree
	ac := p.Flight.Aircraft
	lerp := func(from, to float32, progress float64) float32 { return from + (to-from)*float32(progress) }
	applyPitch := func(v float32, _ float64) {
		att := ac.Attitude()
		att.Pitch = v
		ac.SetAttitude(att)
	}
	applyVSpeed := func(v float32, _ float64) { ac.SetVerticalSpeed(v) }
	applyGS := func(v float32, _ float64) { ac.SetGroundSpeed(v) }

	preFlare := t.NewParallel(maneuver.KindArrivalLanding, "",
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "pitch", float32(1.5), float32(3.0), 3500*time.Millisecond, lerp, applyPitch, nil),
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "vs", float32(-1000), float32(-500), 3500*time.Millisecond, lerp, applyVSpeed, nil),
	)
	flare := t.NewParallel(maneuver.KindArrivalLanding, "",
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "pitch", float32(3.0), float32(5.5), 3*time.Second, lerp, applyPitch, nil),
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "gs", float32(145), float32(135), 3*time.Second, lerp, applyGS, nil),
		t.NewSequential(maneuver.KindUnspecified, "",
			maneuver.NewAnimation(t, maneuver.KindUnspecified, "vs1", float32(-500), float32(-50), 2*time.Second, lerp, applyVSpeed, nil),
			maneuver.NewAnimation(t, maneuver.KindUnspecified, "vs2", float32(-50), float32(-100), 1*time.Second, lerp, applyVSpeed, nil),
		),
	)
	touchDownAndDecelerate := t.NewParallel(maneuver.KindArrivalLandingRoll, "",
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "spoiler", float32(0), float32(1.0), 1*time.Second, lerp,
			func(v float32, _ float64) { ac.SetSpoiler(v) }, nil),
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "pitch-down", float32(5.5), float32(0), 6*time.Second, lerp, applyPitch, nil),
		maneuver.NewAnimation(t, maneuver.KindUnspecified, "decel", float32(135), float32(30), 20*time.Second, lerp, applyGS, nil),
	)

	belowAgl := func(feet float32) func() bool {
		return func() bool {
			alt, typ := ac.Altitude()
			return typ == aviation.AltitudeAGL && alt <= feet
		}
	}

	return t.NewSequential(maneuver.KindArrivalLanding, "",
		t.NewAwait(maneuver.KindUnspecified, "below-55agl", belowAgl(55)),
		preFlare,
		t.NewAwait(maneuver.KindUnspecified, "below-20agl", belowAgl(20)),
		flare,
		t.NewAwait(maneuver.KindUnspecified, "on-ground", func() bool {
			_, typ := ac.Altitude()
			return typ == aviation.AltitudeGround
		}),
		touchDownAndDecelerate,
	)
}

// maneuverArrivalTaxiToGate finds an exit path from the landing runway
// to the assigned gate (or, per §7's recovery path, teleports straight
// to the gate if no path can be found), checks in with ground once
// clear of the runway, and taxis to the gate handling any hold-short
// edges along the way. Grounded on AIPilot::maneuverArrivalTaxiToGate.
func (p *Pilot) maneuverArrivalTaxiToGate(airport *aviation.Airport, landingRunwayEnd aviation.RunwayEnd) maneuver.NodeIndex {
	t := p.Flight.Tree
	ac := p.Flight.Aircraft
	frame := airport.Frame()

	runway, _ := airport.Runway(p.Flight.Plan.ArrivalRunway)
	gate, _ := airport.ParkingStand(p.Flight.Plan.ArrivalGate)

	var exitRunway maneuver.NodeIndex
	var exitPath *aviation.TaxiPath

	taxiPath, err := airport.Taxi.FindExitPathFromRunway(runway, ac.Location())
	if err == nil {
		exitPath = taxiPath
		exitRunway = taxiByPath(t, maneuver.KindArrivalTaxi, p.Flight, frame, taxiPath, TaxiSpeedHighSpeed, nil)
	} else {
		exitRunway = t.NewInstantAction(maneuver.KindInstantAction, "teleport-to-gate", func() {
			ac.Park(gate)
		})
	}

	onHoldShort := func(t *maneuver.Tree, edge aviation.TaxiEdge) maneuver.NodeIndex {
		return p.maneuverAwaitCrossRunway(airport, edge)
	}

	isClearOfExit := func() bool {
		if exitPath == nil || len(exitPath.Edges) == 0 {
			return true
		}
		last := exitPath.Edges[len(exitPath.Edges)-1]
		heading := frame.GetHeadingFromPoints(ac.Location(), last.Node2)
		turn := geo.GetTurnDegrees(ac.Attitude().Heading, heading)
		return gomath.Abs(float64(turn)) >= 45
	}

	return t.NewSequential(maneuver.KindArrivalTaxi, "",
		t.NewInstantAction(maneuver.KindInstantAction, "stop", func() { ac.SetGroundSpeed(0) }),
		t.NewParallel(maneuver.KindUnspecified, "",
			maneuver.NewAnimation(t, maneuver.KindUnspecified, "flaps-zero", float32(0.4), float32(0), 30*time.Second,
				func(from, to float32, progress float64) float32 { return from + (to-from)*float32(progress) },
				func(v float32, _ float64) { ac.SetFlap(v) }, nil),
			maneuver.NewAnimation(t, maneuver.KindUnspecified, "spoiler-down", float32(1.0), float32(0), 1*time.Second,
				func(from, to float32, progress float64) float32 { return from + (to-from)*float32(progress) },
				func(v float32, _ float64) { ac.SetSpoiler(v) }, nil),
			t.NewSequential(maneuver.KindUnspecified, "",
				t.NewAwait(maneuver.KindUnspecified, "clear-of-runway", isClearOfExit),
				t.NewDelay(maneuver.KindUnspecified, "", 3*time.Second),
				tuneComRadio(t, p.Flight, airport.GroundKhz),
				transmitIntent(t, p.Tx, &aviation.Intent{
					Code: aviation.IntentPilotRequest, Direction: aviation.PilotToController,
					SubjectFlight: p.Flight.Plan.Callsign,
				}),
				awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceArrivalTaxi),
				t.NewDeferred(maneuver.KindUnspecified, "arrival-taxi-readback", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
					p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceArrivalTaxi)
					return transmitIntent(t, p.Tx, &aviation.Intent{
						Code: aviation.IntentPilotReadback, Direction: aviation.PilotToController,
						SubjectFlight: p.Flight.Plan.Callsign,
					})
				}),
			),
			t.NewSequential(maneuver.KindUnspecified, "",
				exitRunway,
				t.NewInstantAction(maneuver.KindInstantAction, "taxi-lights", func() {
					ac.SetLights(aviation.LightBeacon | aviation.LightTaxi | aviation.LightNav)
				}),
				awaitClearance(t, maneuver.KindUnspecified, p.Flight, aviation.ClearanceArrivalTaxi),
				t.NewDeferred(maneuver.KindUnspecified, "taxi-to-gate", func(t *maneuver.Tree, parent maneuver.NodeIndex) maneuver.NodeIndex {
					clearance := p.Flight.Clearances.FindClearanceOrThrow(aviation.ClearanceArrivalTaxi)
					path, _ := clearance.Payload.(*aviation.TaxiPath)
					if path == nil {
						path = &aviation.TaxiPath{}
					}
					return taxiByPath(t, maneuver.KindArrivalTaxi, p.Flight, frame, path, TaxiSpeedNormal, onHoldShort)
				}),
			),
		),
		t.NewDelay(maneuver.KindUnspecified, "", 5*time.Second),
		t.NewInstantAction(maneuver.KindInstantAction, "lights-off", func() { ac.SetLights(0) }),
	)
}
