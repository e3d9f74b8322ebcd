// pkg/sim/scenario.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/brunoga/deep"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/math"
	"github.com/crankywright/atc/pkg/util"
)

// Scenario is a reusable airport + flight-plan template: a small,
// explicitly-authored toy world (§4.12) that many flights spawn against.
// Grounded on the toy-world data model named in §4.12 (Airport, a small
// taxi graph, FlightPlan), collapsed from vice's scenario/TRACON database
// machinery (the teacher's pkg/sim/scenario.go, which modeled a full
// real-world TRACON and is not carried forward — see DESIGN.md) down to
// exactly what a maneuver-tree demonstration requires: one airport, a
// handful of named flight plan templates.
type Scenario struct {
	Name                string
	DepartureAirport    *aviation.Airport
	ArrivalAirport      *aviation.Airport
	FlightPlanTemplates map[string]aviation.FlightPlan
}

// Clone returns a deep copy of the named flight plan template, so a
// flight's edits to its own plan never reach the template or other
// flights spawned from it. The scenario's airports (and their taxi
// graphs) are not copied; every flight shares them.
// Grounded on the teacher's spawn_departures.go deep.MustCopy(*ac) idiom.
func (s *Scenario) Clone(template string) (aviation.FlightPlan, error) {
	plan, ok := s.FlightPlanTemplates[template]
	if !ok {
		return aviation.FlightPlan{}, fmt.Errorf("%q: %w (have: %s)", template, ErrUnknownScenario,
			strings.Join(s.TemplateNames(), ", "))
	}
	return deep.MustCopy(plan), nil
}

// TemplateNames returns the names of this scenario's flight-plan
// templates, sorted, for diagnostics and error messages.
func (s *Scenario) TemplateNames() []string {
	return util.SortedMapKeys(s.FlightPlanTemplates)
}

// NewToyScenario builds a minimal one-airport scenario (KTOY, modelled as
// two Airport values that share runways and stands but carry separate
// departure and arrival taxi graphs) exercising a departure, an arrival,
// and a runway crossing, matching the shape of
// the runway-mutex fixture's cast of flights (§8).
func NewToyScenario(now time.Time) *Scenario {
	runway := aviation.Runway{
		MaskBit: 0,
		End1:    aviation.RunwayEnd{Name: "18", Heading: 180, Threshold: math.Point2LL{-97.0, 32.02}},
		End2:    aviation.RunwayEnd{Name: "36", Heading: 0, Threshold: math.Point2LL{-97.0, 31.98}},
	}
	stands := []aviation.ParkingStand{
		{Name: "A1", Location: math.Point2LL{-97.01, 32.0}, Heading: 90},
		{Name: "A2", Location: math.Point2LL{-97.011, 32.0}, Heading: 90},
	}

	departure := &aviation.Airport{
		ICAO:                 "KTOY",
		Reference:            math.Point2LL{-97.0, 32.0},
		ClearanceDeliveryKhz: aviation.NewFrequency(121.7),
		GroundKhz:            aviation.NewFrequency(121.9),
		TowerKhz:             aviation.NewFrequency(118.3),
		Runways:              []aviation.Runway{runway},
		ParkingStands:        stands,
		Taxi: &aviation.TaxiNet{
			Edges: []aviation.TaxiEdge{
				{ID: 1, Name: "A", Node1: math.Point2LL{-97.01, 32.0}, Node2: math.Point2LL{-97.005, 32.0}},
				{
					ID: 2, Name: "A-hold-18", Node1: math.Point2LL{-97.005, 32.0}, Node2: math.Point2LL{-97.0, 32.0},
					HoldShort: true,
					Zones:     aviation.ActiveZones{Departure: aviation.RunwayZoneMask(0).WithRunway(runway)},
				},
			},
		},
	}

	arrival := &aviation.Airport{
		ICAO:                 departure.ICAO,
		Reference:            departure.Reference,
		ClearanceDeliveryKhz: departure.ClearanceDeliveryKhz,
		GroundKhz:            departure.GroundKhz,
		TowerKhz:             departure.TowerKhz,
		Runways:              departure.Runways,
		ParkingStands:        stands,
		Taxi: &aviation.TaxiNet{
			Edges: []aviation.TaxiEdge{
				{
					ID: 3, Name: "exit-18", Node1: math.Point2LL{-97.0, 32.01}, Node2: math.Point2LL{-97.005, 32.005},
					Zones: aviation.ActiveZones{Arrival: aviation.RunwayZoneMask(0).WithRunway(runway)},
				},
				{ID: 4, Name: "A-to-gate", Node1: math.Point2LL{-97.005, 32.005}, Node2: math.Point2LL{-97.01, 32.0}},
			},
		},
	}

	return &Scenario{
		Name:             "toy-crossing",
		DepartureAirport: departure,
		ArrivalAirport:   arrival,
		FlightPlanTemplates: map[string]aviation.FlightPlan{
			"departure": {
				AircraftType:     "A320",
				DepartureAirport: "KTOY",
				DepartureRunway:  "18",
				DepartureTime:    now,
			},
			"arrival": {
				AircraftType:   "B738",
				ArrivalAirport: "KTOY",
				ArrivalRunway:  "18",
				ArrivalGate:    "A1",
			},
		},
	}
}
