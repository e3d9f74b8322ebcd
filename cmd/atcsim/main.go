// cmd/atcsim/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goforj/godump"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/apenwarr/fixconsole"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/log"
	"github.com/crankywright/atc/pkg/maneuver"
	"github.com/crankywright/atc/pkg/pilot"
	"github.com/crankywright/atc/pkg/sim"
	"github.com/crankywright/atc/pkg/util"
)

var (
	cpuprofile   = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
	scenarioName = flag.String("scenario", "toy-crossing", "name of the scenario to run")
	ticks        = flag.Int("ticks", 3600, "number of one-second ticks to run")
	dump         = flag.Bool("dump", false, "pretty-print each active flight's maneuver tree status at the end of the run")
	record       = flag.String("record", "", "file to record the run's delivered clearances to, for later -replay")
	replay       = flag.String("replay", "", "replay a session previously written with -record, instead of running the built-in mutex fixture")
	monitorCPU   = flag.Int("monitor-cpu", 0, "warn if CPU utilization stays above this percent for 10 consecutive seconds (0 disables)")
)

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	lg := log.New(false, *logLevel, *logDir)

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()
	util.CatchProfilerSignal(&profiler)

	logResourceSnapshot(lg)

	if *monitorCPU > 0 {
		util.MonitorCPUUsage(*monitorCPU, lg)
	}

	if *replay != "" {
		if err := runReplay(*replay, lg); err != nil {
			lg.Errorf("replay failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runMutexFixture(lg); err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
}

// logResourceSnapshot logs a one-line host resource snapshot (CPU count,
// memory) alongside log.New's own build-info banner, matching the
// teacher's startup diagnostics.
func logResourceSnapshot(lg *log.Logger) {
	counts, err := cpu.Counts(true)
	if err != nil {
		lg.Errorf("cpu.Counts: %v", err)
		return
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		lg.Errorf("mem.VirtualMemory: %v", err)
		return
	}
	lg.Infof("host resources: %d logical CPUs, %d MB total memory, %d MB available",
		counts, vm.Total/(1024*1024), vm.Available/(1024*1024))
}

// runMutexFixture runs the toy scenario (warning when -scenario names a
// different one) through a controller script that grants a runway crossing first and a takeoff
// clearance second, recording the run to -record if requested, then (if
// -dump was given) pretty-prints every flight's final maneuver tree
// status with godump.
func runMutexFixture(lg *log.Logger) error {
	scenario := sim.NewToyScenario(time.Now())
	if scenario.Name != *scenarioName {
		lg.Warnf("unknown scenario %q, running %q instead", *scenarioName, scenario.Name)
	}

	world := sim.NewWorld(scenario.FlightPlanTemplates["departure"].DepartureTime, lg)
	airport := scenario.DepartureAirport

	crossPlan, err := scenario.Clone("departure")
	if err != nil {
		return err
	}
	crossPlan.Callsign = "CROSS1"
	depPlan, err := scenario.Clone("departure")
	if err != nil {
		return err
	}
	depPlan.Callsign = "DEP1"

	crossing := newScriptedFlight(crossPlan, airport, lg)
	departure := newScriptedFlight(depPlan, airport, lg)
	if err := world.Spawn(crossing); err != nil {
		return err
	}
	if err := world.Spawn(departure); err != nil {
		return err
	}

	var script []sim.ScriptedIntent
	deliverAndRecord := func(tick int, intent *aviation.Intent) error {
		script = append(script, sim.ScriptedIntent{Tick: tick, Intent: intent})
		return world.Deliver(intent)
	}

	startTime := time.Now()
	for tick := 0; tick < *ticks; tick++ {
		switch tick {
		case 2:
			if err := deliverAndRecord(tick, &aviation.Intent{
				Code: aviation.IntentGroundRunwayCrossClearance, Direction: aviation.ControllerToPilot,
				SubjectFlight: "CROSS1", Clearance: &aviation.Clearance{Kind: aviation.ClearanceRunwayCross},
			}); err != nil {
				return err
			}
		case 10:
			if err := deliverAndRecord(tick, &aviation.Intent{
				Code: aviation.IntentTowerClearedForTakeoff, Direction: aviation.ControllerToPilot,
				SubjectFlight: "DEP1", Clearance: &aviation.Clearance{Kind: aviation.ClearanceTakeoff, Payload: airport.Runways[0].End1.Heading},
			}); err != nil {
				return err
			}
		}

		world.Tick(time.Second)
		if world.Done() {
			lg.Infof("all flights complete after %d ticks", tick+1)
			break
		}
	}
	elapsed := time.Since(startTime)
	lg.Infof("run complete: %d ticks in %s", *ticks, elapsed)

	if *record != "" {
		if err := sim.SaveSession(*record, &sim.Session{Scenario: scenario.Name, Ticks: *ticks, Script: script}); err != nil {
			return fmt.Errorf("%s: %w", *record, err)
		}
	}

	if *dump {
		dumpWorld(world)
	}
	return nil
}

// runReplay loads a session previously written with -record and reruns
// it against a fresh World spawned from the same scenario.
func runReplay(path string, lg *log.Logger) error {
	session, err := sim.LoadSession(path)
	if err != nil {
		return err
	}

	scenario := sim.NewToyScenario(time.Now())
	world := sim.NewWorld(scenario.FlightPlanTemplates["departure"].DepartureTime, lg)
	airport := scenario.DepartureAirport

	seen := make(map[string]bool)
	for _, si := range session.Script {
		if seen[si.Intent.SubjectFlight] {
			continue
		}
		seen[si.Intent.SubjectFlight] = true

		plan, err := scenario.Clone("departure")
		if err != nil {
			return err
		}
		plan.Callsign = si.Intent.SubjectFlight
		if err := world.Spawn(newScriptedFlight(plan, airport, lg)); err != nil {
			return err
		}
	}

	lg.Infof("replaying %d ticks, %d scripted intents", session.Ticks, len(session.Script))
	if err := session.Replay(world); err != nil {
		return err
	}

	if *dump {
		dumpWorld(world)
	}
	return nil
}

// newScriptedFlight builds an ActiveFlight whose tree is a single Await
// that finishes once either of the runway-mutex fixture's two clearances
// (runway crossing or takeoff) has arrived, with no pilot-originated
// taxi/takeoff-roll choreography — enough for -record/-replay to
// exercise World's clock driver without the full departure cycle.
func newScriptedFlight(plan aviation.FlightPlan, airport *aviation.Airport, lg *log.Logger) *sim.ActiveFlight {
	stand := aviation.ParkingStand{Name: "A1"}
	ac := aviation.NewAircraft(plan.Callsign, plan.AircraftType, stand)
	f := aviation.NewFlight(plan, ac, lg)

	f.Tree.Root = f.Tree.NewAwait(maneuver.KindUnspecified, "await-final-clearance", func() bool {
		return f.Clearances.Has(aviation.ClearanceRunwayCross) || f.Clearances.Has(aviation.ClearanceTakeoff)
	})

	p := pilot.NewPilot(f, airport, noopTransmitter{})
	return &sim.ActiveFlight{Flight: f, Pilot: p}
}

type noopTransmitter struct{}

func (noopTransmitter) Transmit(*aviation.Intent) {}

// dumpWorld pretty-prints every active flight's maneuver tree status with
// godump, a structured alternative to GetStatusString for interactive
// debugging of a run's final state.
func dumpWorld(world *sim.World) {
	type flightDump struct {
		Callsign string
		Phase    string
		Status   string
	}
	var dumps []flightDump
	for _, callsign := range util.SortedMapKeys(world.Flights) {
		af := world.Flights[callsign]
		dumps = append(dumps, flightDump{
			Callsign: callsign,
			Phase:    af.Flight.Phase.String(),
			Status:   af.Flight.Tree.GetStatusString(af.Flight.Tree.Root),
		})
	}
	godump.Dump(dumps)
}
