// pkg/aviation/flight_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"testing"

	"github.com/crankywright/atc/pkg/maneuver"
)

func testFlight() *Flight {
	stand := ParkingStand{Name: "A1"}
	ac := NewAircraft("N1", "B738", stand)
	return NewFlight(FlightPlan{Callsign: "N1"}, ac, nil)
}

func TestNewFlightStartsPreflightWithNoTree(t *testing.T) {
	f := testFlight()
	if f.Phase != PhasePreflight {
		t.Errorf("expected PhasePreflight, got %v", f.Phase)
	}
	if f.Done() {
		t.Errorf("a flight with no built tree should not report Done")
	}
}

func TestFlightDeliverAndDrainPending(t *testing.T) {
	f := testFlight()
	i1 := &Intent{Code: IntentGroundPushAndStartReply}
	i2 := &Intent{Code: IntentTowerLineUp}

	f.Deliver(i1)
	f.Deliver(i2)

	got := f.DrainPending()
	if len(got) != 2 || got[0] != i1 || got[1] != i2 {
		t.Fatalf("unexpected drained intents: %+v", got)
	}

	if more := f.DrainPending(); len(more) != 0 {
		t.Errorf("DrainPending should empty the queue, got %+v", more)
	}
}

func TestFlightDoneReflectsTreeState(t *testing.T) {
	f := testFlight()
	f.Tree.Root = f.Tree.NewInstantAction(maneuver.KindInstantAction, "done", func() {})

	if f.Done() {
		t.Fatalf("a not-yet-progressed tree should not report Done")
	}
	// Running the tree to completion is exercised directly in
	// pkg/maneuver's own tests, so here we only check that a built but
	// not-yet-progressed root is not reported Done.
}

func TestFlightPhaseString(t *testing.T) {
	cases := map[FlightPhase]string{
		PhasePreflight: "Preflight",
		PhaseDeparture: "Departure",
		PhaseEnroute:   "Enroute",
		PhaseArrival:   "Arrival",
		PhaseComplete:  "Complete",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("%d: got %q, want %q", phase, got, want)
		}
	}
}
