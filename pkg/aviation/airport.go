// pkg/aviation/airport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/crankywright/atc/pkg/geo"
	"github.com/crankywright/atc/pkg/math"
)

// RunwayEnd is one physical end of a Runway: a name ("27L"), threshold,
// and true heading.
type RunwayEnd struct {
	Name      string
	Threshold math.Point2LL
	Heading   float32
}

// Runway is a single physical strip with two RunwayEnds. Only one end is
// active for arrivals/departures at a time; which one is a property of
// the active-runway configuration the scenario assigns, not of the
// Runway itself (real-world wind-driven configuration changes are out of
// this system's scope).
type Runway struct {
	End1, End2 RunwayEnd
	// MaskBit identifies this runway within an ActiveZones bitmask (see
	// below); assigned when the Airport is built.
	MaskBit uint
}

// End returns the RunwayEnd with the given name, grounded on
// Runway::getEndOrThrow in the original engine.
func (r Runway) End(name string) (RunwayEnd, error) {
	if r.End1.Name == name {
		return r.End1, nil
	}
	if r.End2.Name == name {
		return r.End2, nil
	}
	return RunwayEnd{}, ErrUnknownRunway
}

// OppositeEnd returns the far end from the named one.
func (r Runway) OppositeEnd(name string) (RunwayEnd, error) {
	if r.End1.Name == name {
		return r.End2, nil
	}
	if r.End2.Name == name {
		return r.End1, nil
	}
	return RunwayEnd{}, ErrUnknownRunway
}

// ParkingStand is a gate or ramp position where a flight begins and ends
// a taxi.
type ParkingStand struct {
	Name     string
	Location math.Point2LL
	Heading  float32
}

// RunwayZoneMask is a bitmask over an airport's runways (one bit per
// Runway.MaskBit), used by TaxiEdge.ActiveZones to say which runway(s) an
// edge's crossing/departure/arrival protection applies to, grounded on
// ActiveZoneMatrix in the original engine.
type RunwayZoneMask uint

// Has reports whether the mask includes the given runway.
func (m RunwayZoneMask) Has(r Runway) bool {
	return m&RunwayZoneMask(1<<r.MaskBit) != 0
}

// WithRunway returns m with r's bit set.
func (m RunwayZoneMask) WithRunway(r Runway) RunwayZoneMask {
	return m | RunwayZoneMask(1<<r.MaskBit)
}

// ActiveZones records which runways a taxi edge protects against: an
// aircraft taxiing across an edge flagged for a given runway must hold
// short of it until cleared to cross, line up, or depart.
type ActiveZones struct {
	Departure RunwayZoneMask
	Arrival   RunwayZoneMask
}

// TaxiEdge is one segment of the taxiway graph between two named nodes.
// An edge with a non-zero ActiveZones is a hold-short edge: the boundary
// before an active runway that triggers a scripted subtree (line-up-and-
// wait for a departure, or a runway crossing) rather than a plain taxi
// animation.
type TaxiEdge struct {
	ID            int
	Name          string
	Node1, Node2  math.Point2LL
	Zones         ActiveZones
	HoldShort     bool
}

// IsHoldShortOf reports whether crossing e requires holding short of r.
func (e TaxiEdge) IsHoldShortOf(r Runway) bool {
	return e.HoldShort && (e.Zones.Departure.Has(r) || e.Zones.Arrival.Has(r))
}

// TaxiPath is an ordered sequence of edges a flight follows from one
// point to another, as returned by TaxiNet.FindPath /
// TaxiNet.FindExitPathFromRunway.
type TaxiPath struct {
	Edges []TaxiEdge
}

// TaxiNet is an airport's taxiway graph. The toy implementation here
// resolves paths from a small, explicitly-authored edge list rather than
// vice's/the original's full geometric graph search — it exists to give
// the pilot scripts (pkg/pilot) and the clock driver (pkg/sim) something
// concrete to exercise, not to model real-world taxiway topology.
type TaxiNet struct {
	Edges []TaxiEdge
}

// FindExitPathFromRunway returns the taxi path leaving the runway from
// somewhere near touchdownPoint toward the assigned gate, grounded on
// TaxiNet::tryFindExitPathFromRunway. The toy implementation returns the
// first edge flagged for the landing runway's arrival zone, followed by
// every remaining edge in graph order; a real implementation would pick
// the nearest available exit and route from there.
func (n *TaxiNet) FindExitPathFromRunway(landingRunway Runway, touchdownPoint math.Point2LL) (*TaxiPath, error) {
	for i, e := range n.Edges {
		if e.Zones.Arrival.Has(landingRunway) {
			return &TaxiPath{Edges: append([]TaxiEdge{e}, n.Edges[i+1:]...)}, nil
		}
	}
	return nil, ErrNoExitPathFound
}

// FindPath returns the taxi path between two named edges: the edges from
// fromEdgeName through toEdgeName in the order they appear in n.Edges,
// or ErrNoExitPathFound if either name is missing or toEdgeName comes
// first. It does not check that consecutive edges share a node; a real
// implementation would run Dijkstra/A* over the full graph.
func (n *TaxiNet) FindPath(fromEdgeName, toEdgeName string) (*TaxiPath, error) {
	fromIdx, toIdx := -1, -1
	for i, e := range n.Edges {
		if e.Name == fromEdgeName {
			fromIdx = i
		}
		if e.Name == toEdgeName {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 || toIdx < fromIdx {
		return nil, ErrNoExitPathFound
	}
	return &TaxiPath{Edges: n.Edges[fromIdx : toIdx+1]}, nil
}

// Airport is the toy ground-ops model a scenario spins up: a set of
// runways, parking stands, a taxi graph, and the three frequencies a
// departing or arriving flight works its way through. This stands in
// for vice's ARINC 424/STARS-facing Airport, which models a real-world
// TRACON's navaid and approach database and has no taxi-graph concept at
// all (see DESIGN.md for the scope-boundary rationale).
type Airport struct {
	ICAO              string
	Reference         math.Point2LL
	MagneticVariation float32
	Runways           []Runway
	ParkingStands     []ParkingStand
	Taxi              *TaxiNet

	ClearanceDeliveryKhz Frequency
	GroundKhz            Frequency
	TowerKhz             Frequency
}

// Frame returns the airport-local geodesic reference frame used for all
// of this airport's taxi/airborne computations.
func (a *Airport) Frame() geo.Frame {
	return geo.NewFrame(a.Reference, a.MagneticVariation)
}

// Runway returns the runway whose End1 or End2 matches the given name,
// grounded on Airport::getRunwayOrThrow.
func (a *Airport) Runway(name string) (Runway, error) {
	for _, r := range a.Runways {
		if r.End1.Name == name || r.End2.Name == name {
			return r, nil
		}
	}
	return Runway{}, ErrUnknownRunway
}

// ParkingStand returns the named stand, grounded on
// Airport::getParkingStandOrThrow.
func (a *Airport) ParkingStand(name string) (ParkingStand, error) {
	for _, p := range a.ParkingStands {
		if p.Name == name {
			return p, nil
		}
	}
	return ParkingStand{}, ErrUnknownParkingStand
}

// ActiveRunwayFor returns the runway a hold-short edge protects,
// grounded on AIPilot::getActiveZoneRunway: a single taxi edge may in
// principle protect more than one runway (e.g. parallel runways sharing
// an approach zone), but the toy model used here keeps a 1:1 edge-to-
// runway assignment, so the first matching runway is authoritative.
func (a *Airport) ActiveRunwayFor(edge TaxiEdge) (Runway, bool) {
	for _, r := range a.Runways {
		if edge.Zones.Departure.Has(r) || edge.Zones.Arrival.Has(r) {
			return r, true
		}
	}
	return Runway{}, false
}
