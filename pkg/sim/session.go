// pkg/sim/session.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/crankywright/atc/pkg/aviation"
)

// ScriptedIntent is one entry of a recorded session: the tick index at
// which an intent was delivered to the World, and the intent itself.
type ScriptedIntent struct {
	Tick   int
	Intent *aviation.Intent
}

// Session is a recorded run: the scenario it was spawned from, how many
// ticks it ran for, and every intent a controller delivered along the
// way, in tick order. A cmd/atcsim -replay run spawns the same scenario
// and redelivers Script's intents at their recorded ticks, so a fixture
// that demonstrated a bug (or a long tick-by-tick table like §8's
// runway-mutex case) can be stored out of line from Go source and rerun
// verbatim. Grounded on the teacher's util.CacheStoreObject/
// CacheRetrieveObject msgpack idiom, with the flate compressor swapped
// for the zstd one sim/stars.go's video map loader reads (DOMAIN STACK).
type Session struct {
	Scenario string
	Ticks    int
	Script   []ScriptedIntent
}

// SaveSession msgpack-encodes and zstd-compresses s to path.
func SaveSession(path string, s *Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// LoadSession reads and decodes a Session previously written by
// SaveSession.
func LoadSession(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(io.Reader(f), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var s Session
	if err := msgpack.NewDecoder(zr).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Replay drives world through every tick of s, delivering s.Script's
// intents at their recorded ticks and advancing the clock by one second
// per tick in between.
func (s *Session) Replay(world *World) error {
	byTick := make(map[int][]*aviation.Intent)
	for _, si := range s.Script {
		byTick[si.Tick] = append(byTick[si.Tick], si.Intent)
	}

	for tick := 0; tick < s.Ticks; tick++ {
		for _, intent := range byTick[tick] {
			if err := world.Deliver(intent); err != nil {
				return err
			}
		}
		world.Tick(time.Second)
	}
	return nil
}
