// pkg/aviation/clearance_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"testing"
	"time"
)

func TestClearanceStoreLatestReturnsNilBeforeAnyReceived(t *testing.T) {
	s := NewClearanceStore()
	if s.Latest(ClearanceIfr) != nil {
		t.Errorf("Latest on an empty store should return nil")
	}
	if s.Has(ClearanceIfr) {
		t.Errorf("Has on an empty store should return false")
	}
}

func TestClearanceStoreAccumulatesRatherThanOverwrites(t *testing.T) {
	s := NewClearanceStore()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := &Clearance{Kind: ClearanceDepartureTaxi, IssuedAt: base}
	second := &Clearance{Kind: ClearanceDepartureTaxi, IssuedAt: base.Add(time.Minute)}
	s.Add(first)
	s.Add(second)

	all := s.All(ClearanceDepartureTaxi)
	if len(all) != 2 {
		t.Fatalf("expected 2 accumulated clearances, got %d", len(all))
	}
	if all[0] != first || all[1] != second {
		t.Errorf("clearances did not accumulate in receipt order")
	}
	if s.Latest(ClearanceDepartureTaxi) != second {
		t.Errorf("Latest did not return the most recently added clearance")
	}
}

func TestClearanceStoreKeepsKindsIndependent(t *testing.T) {
	s := NewClearanceStore()
	s.Add(&Clearance{Kind: ClearanceIfr})

	if s.Has(ClearanceDepartureTaxi) {
		t.Errorf("adding an Ifr clearance should not affect DepartureTaxi")
	}
	if !s.Has(ClearanceIfr) {
		t.Errorf("Has should report true after Add")
	}
}

func TestFindClearanceOrThrowPanicsWhenMissing(t *testing.T) {
	s := NewClearanceStore()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("FindClearanceOrThrow should panic when no clearance has been received")
		}
	}()
	s.FindClearanceOrThrow(ClearanceLineUp)
}

func TestFindClearanceOrThrowReturnsLatest(t *testing.T) {
	s := NewClearanceStore()
	c := &Clearance{Kind: ClearanceTakeoff}
	s.Add(c)
	if got := s.FindClearanceOrThrow(ClearanceTakeoff); got != c {
		t.Errorf("FindClearanceOrThrow did not return the stored clearance")
	}
}

func TestSetReadbackCorrect(t *testing.T) {
	c := &Clearance{Kind: ClearanceIfr}
	if c.ReadbackGiven {
		t.Fatalf("new clearance should not have a readback yet")
	}
	c.SetReadbackCorrect()
	if !c.ReadbackGiven {
		t.Errorf("SetReadbackCorrect did not set ReadbackGiven")
	}
}
