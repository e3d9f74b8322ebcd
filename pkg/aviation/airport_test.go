// pkg/aviation/airport_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"testing"

	"github.com/crankywright/atc/pkg/math"
)

func testRunway() Runway {
	return Runway{
		End1:    RunwayEnd{Name: "27", Threshold: math.Point2LL{-122.3, 47.4}, Heading: 270},
		End2:    RunwayEnd{Name: "09", Threshold: math.Point2LL{-122.2, 47.4}, Heading: 90},
		MaskBit: 0,
	}
}

func TestRunwayEndLookup(t *testing.T) {
	r := testRunway()

	if end, err := r.End("27"); err != nil || end.Heading != 270 {
		t.Errorf("End(27): got %+v, err %v", end, err)
	}
	if end, err := r.End("09"); err != nil || end.Heading != 90 {
		t.Errorf("End(09): got %+v, err %v", end, err)
	}
	if _, err := r.End("36"); err != ErrUnknownRunway {
		t.Errorf("End(36): expected ErrUnknownRunway, got %v", err)
	}
}

func TestRunwayOppositeEnd(t *testing.T) {
	r := testRunway()

	if end, err := r.OppositeEnd("27"); err != nil || end.Name != "09" {
		t.Errorf("OppositeEnd(27): got %+v, err %v", end, err)
	}
	if _, err := r.OppositeEnd("18"); err != ErrUnknownRunway {
		t.Errorf("OppositeEnd(18): expected ErrUnknownRunway, got %v", err)
	}
}

func TestRunwayZoneMask(t *testing.T) {
	r1 := Runway{MaskBit: 0}
	r2 := Runway{MaskBit: 1}

	var m RunwayZoneMask
	if m.Has(r1) || m.Has(r2) {
		t.Fatalf("zero mask should have no runway set")
	}

	m = m.WithRunway(r1)
	if !m.Has(r1) {
		t.Errorf("mask should have r1 set after WithRunway(r1)")
	}
	if m.Has(r2) {
		t.Errorf("mask should not have r2 set")
	}
}

func TestTaxiEdgeIsHoldShortOf(t *testing.T) {
	r := Runway{MaskBit: 0}
	e := TaxiEdge{
		Name:      "A1",
		HoldShort: true,
		Zones:     ActiveZones{Departure: RunwayZoneMask(0).WithRunway(r)},
	}
	if !e.IsHoldShortOf(r) {
		t.Errorf("edge flagged for r's departure zone should be a hold-short edge for r")
	}

	notFlagged := TaxiEdge{Name: "A2", HoldShort: true}
	if notFlagged.IsHoldShortOf(r) {
		t.Errorf("edge with no zone flags should not be a hold-short edge")
	}

	noHoldShort := TaxiEdge{Name: "A3", Zones: e.Zones}
	if noHoldShort.IsHoldShortOf(r) {
		t.Errorf("edge not marked HoldShort should never be a hold-short edge regardless of zones")
	}
}

func TestTaxiNetFindExitPathFromRunway(t *testing.T) {
	r := Runway{MaskBit: 0}
	net := &TaxiNet{
		Edges: []TaxiEdge{
			{Name: "A1"},
			{Name: "A2", Zones: ActiveZones{Arrival: RunwayZoneMask(0).WithRunway(r)}},
			{Name: "A3"},
		},
	}

	path, err := net.FindExitPathFromRunway(r, math.Point2LL{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path.Edges) != 2 || path.Edges[0].Name != "A2" || path.Edges[1].Name != "A3" {
		t.Errorf("unexpected exit path: %+v", path.Edges)
	}
}

func TestTaxiNetFindExitPathFromRunwayNoMatch(t *testing.T) {
	net := &TaxiNet{Edges: []TaxiEdge{{Name: "A1"}}}
	if _, err := net.FindExitPathFromRunway(Runway{MaskBit: 5}, math.Point2LL{}); err != ErrNoExitPathFound {
		t.Errorf("expected ErrNoExitPathFound, got %v", err)
	}
}

func TestTaxiNetFindPath(t *testing.T) {
	net := &TaxiNet{
		Edges: []TaxiEdge{
			{Name: "A1"},
			{Name: "A2"},
			{Name: "A3"},
			{Name: "A4"},
		},
	}

	path, err := net.FindPath("A2", "A3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path.Edges) != 2 || path.Edges[0].Name != "A2" || path.Edges[1].Name != "A3" {
		t.Errorf("unexpected path: %+v", path.Edges)
	}

	if _, err := net.FindPath("A3", "A2"); err != ErrNoExitPathFound {
		t.Errorf("reversed from/to should fail with ErrNoExitPathFound, got %v", err)
	}
	if _, err := net.FindPath("Z1", "A2"); err != ErrNoExitPathFound {
		t.Errorf("unknown from should fail with ErrNoExitPathFound, got %v", err)
	}
}

func TestAirportRunwayAndParkingStandLookup(t *testing.T) {
	a := &Airport{
		ICAO:    "KSEA",
		Runways: []Runway{testRunway()},
		ParkingStands: []ParkingStand{
			{Name: "A1", Location: math.Point2LL{-122.31, 47.45}, Heading: 45},
		},
	}

	if _, err := a.Runway("27"); err != nil {
		t.Errorf("Runway(27): unexpected error %v", err)
	}
	if _, err := a.Runway("99"); err != ErrUnknownRunway {
		t.Errorf("Runway(99): expected ErrUnknownRunway, got %v", err)
	}

	if _, err := a.ParkingStand("A1"); err != nil {
		t.Errorf("ParkingStand(A1): unexpected error %v", err)
	}
	if _, err := a.ParkingStand("Z9"); err != ErrUnknownParkingStand {
		t.Errorf("ParkingStand(Z9): expected ErrUnknownParkingStand, got %v", err)
	}
}

func TestAirportActiveRunwayFor(t *testing.T) {
	r := Runway{MaskBit: 0}
	a := &Airport{Runways: []Runway{r}}

	edge := TaxiEdge{Zones: ActiveZones{Departure: RunwayZoneMask(0).WithRunway(r)}}
	got, ok := a.ActiveRunwayFor(edge)
	if !ok || got.MaskBit != r.MaskBit {
		t.Errorf("ActiveRunwayFor: got %+v, ok %v", got, ok)
	}

	unrelated := TaxiEdge{}
	if _, ok := a.ActiveRunwayFor(unrelated); ok {
		t.Errorf("ActiveRunwayFor should report false for an edge with no zone flags")
	}
}

func TestAirportFrame(t *testing.T) {
	a := &Airport{Reference: math.Point2LL{-122.3, 47.4}, MagneticVariation: 16}
	f := a.Frame()
	if f.MagCorrection != 16 {
		t.Errorf("Frame did not carry through MagneticVariation")
	}
	if f.NMPerLongitude <= 0 {
		t.Errorf("Frame.NMPerLongitude should be positive at this latitude, got %v", f.NMPerLongitude)
	}
}
