// pkg/util/prof.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"slices"
	"time"

	"github.com/crankywright/atc/pkg/log"
	"github.com/shirou/gopsutil/v3/cpu"
)

// Profiler owns the optional CPU/memory profile files a cmd/atcsim run
// can be started with. Grounded on the teacher's CreateProfiler/Cleanup,
// trimmed of its console-specific absolute-path rewriting since atcsim
// never changes its working directory after startup.
type Profiler struct {
	cpu, mem *os.File
}

// CreateProfiler opens cpuPath/memPath (either may be empty to skip that
// profile) and starts CPU profiling if requested.
func CreateProfiler(cpuPath, memPath string) (Profiler, error) {
	p := Profiler{}

	var err error
	if cpuPath != "" {
		if p.cpu, err = os.Create(cpuPath); err != nil {
			return Profiler{}, err
		} else if err = pprof.StartCPUProfile(p.cpu); err != nil {
			p.cpu.Close()
			return Profiler{}, err
		}
	}

	if memPath != "" {
		if p.mem, err = os.Create(memPath); err != nil {
			return Profiler{}, err
		}
	}

	return p, nil
}

// Cleanup stops CPU profiling and writes the heap profile, if either was
// requested.
func (p *Profiler) Cleanup() {
	if p.cpu != nil {
		pprof.StopCPUProfile()
		p.cpu.Close()
	}
	if p.mem != nil {
		pprof.WriteHeapProfile(p.mem)
		p.mem.Close()
	}
}

// CatchProfilerSignal arranges for p to be cleaned up and the process to
// exit on SIGINT (os.Interrupt), so an interrupted long -ticks run still leaves
// a usable profile on disk.
func CatchProfilerSignal(p *Profiler) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		p.Cleanup()
		os.Exit(0)
	}()
}

// MonitorCPUUsage samples system-wide CPU usage once a second and warns if it
// has stayed above limit percent for nhist consecutive samples, writing a
// goroutine dump alongside the warning. Grounded on the teacher's
// util.MonitorCPUUsage, trimmed of the held-mutex dump (pkg/util/sync.go's
// mutex-tracking wrapper was not carried forward, since nothing in
// SPEC_FULL.md contends on a raw sync.Mutex outside golang-lru/v2's own
// locking) since a wedged atcsim run is diagnosed from the goroutine dump
// alone.
func MonitorCPUUsage(limit int, lg *log.Logger) {
	const nhist = 10
	var history []float64
	go func() {
		t := time.Tick(time.Second)
		for range t {
			usage, err := cpu.Percent(0, false)
			if err != nil {
				lg.Errorf("cpu.Percent: %v", err)
				continue
			}

			history = append(history, usage[0])
			if n := len(history); n > nhist {
				history = history[1:]

				if slices.Min(history) > float64(limit) {
					lg.Warnf("last %d ticks over %d%% cpu utilization: %v", nhist, limit, history)

					name := filepath.Join(os.TempDir(), "atcsim-goroutines.txt")
					if f, err := os.Create(name); err != nil {
						lg.Errorf("%s: %v", name, err)
					} else {
						pprof.Lookup("goroutine").WriteTo(f, 2)
						f.Close()
					}
				}
			}
		}
	}()
}
