// pkg/pilot/factory.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package pilot is the script layer: per-flight maneuver trees built by
// composing pkg/maneuver's primitives with pkg/aviation's domain types,
// one function per phase of a flight's life. Grounded line-for-line on
// original_source/src/libai/aiPilot.hpp's method bodies, translated into
// functions that take *aviation.Flight explicitly instead of closing
// over an implicit `this` the way the original's lambdas do.
package pilot

import (
	"time"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/geo"
	"github.com/crankywright/atc/pkg/maneuver"
	"github.com/crankywright/atc/pkg/math"
)

// Transmitter sends an Intent out over the radio. pkg/sim has no
// implementation of its own; cmd/atcsim passes one that discards every
// transmission, and tests implement it by recording every transmission
// for assertions.
type Transmitter interface {
	Transmit(intent *aviation.Intent)
}

// TaxiSpeed is a nominal ground speed in knots used to turn a taxi
// path's geometry into a duration for its taxi animation, one per
// ManeuverFactory::TaxiType case in the original engine.
type TaxiSpeed float32

const (
	TaxiSpeedPushback  TaxiSpeed = 5
	TaxiSpeedNormal    TaxiSpeed = 15
	TaxiSpeedHighSpeed TaxiSpeed = 30
)

// awaitClearance blocks the tree until f has received a clearance of
// the given kind, grounded on ManeuverFactory::awaitClearance.
func awaitClearance(t *maneuver.Tree, label maneuver.Kind, f *aviation.Flight, kind aviation.ClearanceKind) maneuver.NodeIndex {
	return t.NewAwait(label, kind.String(), func() bool {
		return f.Clearances.Has(kind)
	})
}

// transmitIntent wraps a single radio transmission as an InstantAction,
// grounded on ManeuverFactory::transmitIntent.
func transmitIntent(t *maneuver.Tree, tx Transmitter, intent *aviation.Intent) maneuver.NodeIndex {
	return t.NewInstantAction(maneuver.KindInstantAction, intent.Code.String(), func() {
		tx.Transmit(intent)
	})
}

// switchLights sets the aircraft's exterior lights instantly, grounded
// on ManeuverFactory::switchLights.
func switchLights(t *maneuver.Tree, f *aviation.Flight, lights aviation.AircraftLight) maneuver.NodeIndex {
	return t.NewInstantAction(maneuver.KindInstantAction, "lights", func() {
		f.Aircraft.SetLights(lights)
	})
}

// tuneComRadio sets the aircraft's active COM frequency instantly,
// grounded on ManeuverFactory::tuneComRadio.
func tuneComRadio(t *maneuver.Tree, f *aviation.Flight, freq aviation.Frequency) maneuver.NodeIndex {
	return t.NewInstantAction(maneuver.KindInstantAction, "tune-radio", func() {
		f.Aircraft.SetRadioFrequency(freq)
	})
}

// airborneTurn animates a heading change over duration, grounded on the
// M.airborneTurn call site in maneuverTakeoff (the original builds this
// inline as an AnimationManeuver<double> over heading; named here since
// it recurs).
func airborneTurn(t *maneuver.Tree, f *aviation.Flight, fromHeading, toHeading float32, duration time.Duration) maneuver.NodeIndex {
	return maneuver.NewAnimation(t, maneuver.KindAnimation, "airborne-turn", fromHeading, toHeading, duration,
		func(from, to float32, progress float64) float32 {
			return from + (to-from)*float32(progress)
		},
		func(value float32, progress float64) {
			att := f.Aircraft.Attitude()
			att.Heading = value
			f.Aircraft.SetAttitude(att)
		}, nil)
}

// taxiByPath composes a sequence of per-edge taxi animations along path,
// invoking onHoldShort to build a hold-short subtree right after the
// animation of each edge flagged HoldShort, so the next edge starts only
// once that subtree finishes. Grounded on
// ManeuverFactory::taxiByPath / TaxiEdge's hold-short handling described
// in §4.10 of the full spec.
func taxiByPath(t *maneuver.Tree, label maneuver.Kind, f *aviation.Flight, frame geo.Frame, path *aviation.TaxiPath, speed TaxiSpeed,
	onHoldShort func(t *maneuver.Tree, edge aviation.TaxiEdge) maneuver.NodeIndex) maneuver.NodeIndex {

	steps := make([]maneuver.NodeIndex, 0, 2*len(path.Edges))
	for _, edge := range path.Edges {
		steps = append(steps, taxiEdgeAnimation(t, label, f, frame, edge, speed))
		if edge.HoldShort && onHoldShort != nil {
			steps = append(steps, onHoldShort(t, edge))
		}
	}
	return t.NewSequential(label, "taxi-by-path", steps...)
}

// taxiEdgeAnimation animates the aircraft from edge.Node1 to edge.Node2
// at the given nominal ground speed, setting heading to match the
// edge's direction and ground speed to the nominal taxi speed for its
// duration.
func taxiEdgeAnimation(t *maneuver.Tree, label maneuver.Kind, f *aviation.Flight, frame geo.Frame, edge aviation.TaxiEdge, speed TaxiSpeed) maneuver.NodeIndex {
	distNm := frame.GetDistanceNm(edge.Node1, edge.Node2)
	duration := time.Duration(distNm/float32(speed)*3600) * time.Second
	heading := frame.GetHeadingFromPoints(edge.Node1, edge.Node2)

	move := maneuver.NewAnimation(t, label, edge.Name, edge.Node1, edge.Node2, duration,
		func(from, to math.Point2LL, progress float64) math.Point2LL {
			return math.Point2LL{
				from[0] + (to[0]-from[0])*float32(progress),
				from[1] + (to[1]-from[1])*float32(progress),
			}
		},
		func(value math.Point2LL, progress float64) {
			f.Aircraft.SetLocation(value)
		}, nil)

	heading32 := heading
	return t.NewParallel(label, edge.Name+"-taxi",
		move,
		t.NewInstantAction(maneuver.KindInstantAction, edge.Name+"-heading", func() {
			att := f.Aircraft.Attitude()
			att.Heading = heading32
			f.Aircraft.SetAttitude(att)
			f.Aircraft.SetGroundSpeed(float32(speed))
		}))
}
