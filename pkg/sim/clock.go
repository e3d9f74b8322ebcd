// pkg/sim/clock.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/log"
	"github.com/crankywright/atc/pkg/pilot"
)

// ActiveFlight pairs a Flight's state with the Pilot script driving it,
// the clock driver's unit of work for one tick.
type ActiveFlight struct {
	Flight *aviation.Flight
	Pilot  *pilot.Pilot
}

// World owns the fleet of active flights and the simulated clock that
// ticks them forward. Grounded on pkg/sim/sim.go's Sim.State.SimTime /
// Sim.Aircraft map and the Update()/updateState() tick loop, trimmed to
// exactly what the spec's clock driver needs (§2.1, §5): advance
// simulated time once per Tick call and call ProgressTo on every active
// flight's root maneuver. World carries none of Sim's human-controller
// bookkeeping (handoffs, point-outs, sign-on/sign-off, restriction
// areas) — that machinery belongs to the dropped networked multi-
// controller session (see DESIGN.md).
type World struct {
	SimTime time.Time
	Flights map[string]*ActiveFlight

	lg *log.Logger
}

// NewWorld creates a World with its clock starting at start.
func NewWorld(start time.Time, lg *log.Logger) *World {
	return &World{
		SimTime: start,
		Flights: make(map[string]*ActiveFlight),
		lg:      lg,
	}
}

// Spawn registers af under its callsign. Returns ErrFlightAlreadySpawned
// if a flight with that callsign is already active.
func (w *World) Spawn(af *ActiveFlight) error {
	callsign := af.Flight.Plan.Callsign
	if _, ok := w.Flights[callsign]; ok {
		return ErrFlightAlreadySpawned
	}
	w.Flights[callsign] = af
	return nil
}

// Deliver routes a controller-to-pilot intent to its subject flight's
// pending queue, to be drained and applied at the start of that
// flight's next Tick.
func (w *World) Deliver(intent *aviation.Intent) error {
	af, ok := w.Flights[intent.SubjectFlight]
	if !ok {
		return ErrUnknownFlight
	}
	af.Flight.Deliver(intent)
	return nil
}

// Tick advances simulated time by dt and progresses every active
// flight's maneuver tree to the new SimTime. Per-flight advance is
// fanned out across goroutines via errgroup (§5: cross-flight ordering
// is unspecified, so concurrent advance is an implementation detail,
// not an observable contract; each flight's own state is exclusively
// owned by its own goroutine for the tick, so there is no data race).
// A flight whose tree panics — the §7 "missing clearance at
// dereference" fatal condition — is logged and dropped; other flights
// are unaffected.
func (w *World) Tick(dt time.Duration) {
	w.SimTime = w.SimTime.Add(dt)

	type result struct {
		callsign string
		dead     bool
	}
	results := make(chan result, len(w.Flights))

	var g errgroup.Group
	for callsign, af := range w.Flights {
		callsign, af := callsign, af
		g.Go(func() error {
			dead := false
			func() {
				defer func() {
					if r := recover(); r != nil {
						w.lg.Errorf("flight %s: maneuver tree panic: %v", callsign, r)
						dead = true
					}
				}()

				for _, intent := range af.Flight.DrainPending() {
					af.Pilot.HandleCommTransmission(intent)
				}
				if err := af.Flight.Tree.Advance(w.SimTime); err != nil {
					w.lg.Errorf("flight %s: %v", callsign, err)
					dead = true
				}
			}()
			results <- result{callsign: callsign, dead: dead}
			return nil
		})
	}
	g.Wait()
	close(results)

	for r := range results {
		if r.dead {
			delete(w.Flights, r.callsign)
		}
	}
}

// Done reports whether every active flight has completed its scripted
// lifecycle (§3: tree Root State Finished).
func (w *World) Done() bool {
	for _, af := range w.Flights {
		if !af.Flight.Done() {
			return false
		}
	}
	return true
}
