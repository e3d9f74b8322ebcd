// pkg/sim/session_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/maneuver"
)

func TestSaveAndLoadSessionRoundTrips(t *testing.T) {
	want := &Session{
		Scenario: "toy-crossing",
		Ticks:    20,
		Script: []ScriptedIntent{
			{Tick: 2, Intent: &aviation.Intent{
				Code: aviation.IntentGroundRunwayCrossClearance, Direction: aviation.ControllerToPilot,
				SubjectFlight: "CROSS1", Clearance: &aviation.Clearance{Kind: aviation.ClearanceRunwayCross},
			}},
			{Tick: 10, Intent: &aviation.Intent{
				Code: aviation.IntentTowerClearedForTakeoff, Direction: aviation.ControllerToPilot,
				SubjectFlight: "DEP1", Clearance: &aviation.Clearance{Kind: aviation.ClearanceTakeoff},
			}},
		},
	}

	path := filepath.Join(t.TempDir(), "session.zst")
	if err := SaveSession(path, want); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}

	if got.Scenario != want.Scenario || got.Ticks != want.Ticks {
		t.Errorf("got Scenario/Ticks %q/%d, want %q/%d", got.Scenario, got.Ticks, want.Scenario, want.Ticks)
	}
	if len(got.Script) != len(want.Script) {
		t.Fatalf("got %d scripted intents, want %d", len(got.Script), len(want.Script))
	}
	for i, si := range got.Script {
		w := want.Script[i]
		if si.Tick != w.Tick || si.Intent.Code != w.Intent.Code || si.Intent.SubjectFlight != w.Intent.SubjectFlight {
			t.Errorf("entry %d: got %+v, want %+v", i, si, w)
		}
	}
}

func TestSessionReplayDeliversScriptedIntentsAtTheirTicks(t *testing.T) {
	world := NewWorld(time.Unix(0, 0), nil)
	airport := NewToyScenario(time.Unix(0, 0)).DepartureAirport

	af, _ := newMutexTestFlight(world, "DEP1", airport, func(tr *maneuver.Tree, f *aviation.Flight, tx *recordingTransmitter) maneuver.NodeIndex {
		return tr.NewAwait(maneuver.KindUnspecified, "await-takeoff", func() bool {
			return f.Clearances.Has(aviation.ClearanceTakeoff)
		})
	})
	if err := world.Spawn(af); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session := &Session{
		Scenario: "toy-crossing",
		Ticks:    5,
		Script: []ScriptedIntent{
			{Tick: 3, Intent: &aviation.Intent{
				Code: aviation.IntentTowerClearedForTakeoff, Direction: aviation.ControllerToPilot,
				SubjectFlight: "DEP1", Clearance: &aviation.Clearance{Kind: aviation.ClearanceTakeoff},
			}},
		},
	}

	if err := session.Replay(world); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if !af.Flight.Done() {
		t.Errorf("expected DEP1's await-takeoff tree to have finished by the end of the replay")
	}
}
