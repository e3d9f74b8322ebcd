// pkg/sim/cache.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"

	"github.com/crankywright/atc/pkg/aviation"
	"github.com/crankywright/atc/pkg/math"
	lru "github.com/hashicorp/golang-lru/v2"
)

// exitPathKey identifies a TaxiNet.FindExitPathFromRunway call: the
// runway an aircraft is landing on and the gate it is headed to. Repeat
// arrivals on the same runway/gate pair (the common case at a busy
// airport) re-run the same graph search otherwise.
type exitPathKey struct {
	runway string
	gate   string
}

// ExitPathCache memoizes TaxiNet.FindExitPathFromRunway results. It is
// safe to share across goroutines, since golang-lru/v2 is internally
// synchronized and no additional lock is needed here. World does not
// hold one, and pkg/pilot's arrival script calls
// TaxiNet.FindExitPathFromRunway directly, so nothing in this module
// constructs a cache.
type ExitPathCache struct {
	cache *lru.Cache[exitPathKey, *aviation.TaxiPath]
}

// NewExitPathCache builds a cache holding up to size entries.
func NewExitPathCache(size int) *ExitPathCache {
	c, err := lru.New[exitPathKey, *aviation.TaxiPath](size)
	if err != nil {
		// Only returned for size <= 0, which this package never passes.
		panic(fmt.Sprintf("sim: invalid exit path cache size %d: %v", size, err))
	}
	return &ExitPathCache{cache: c}
}

// FindExitPathFromRunway returns net's exit path for (runway, gate),
// computing and caching it on a miss.
func (c *ExitPathCache) FindExitPathFromRunway(net *aviation.TaxiNet, runway aviation.Runway, gate string, touchdownPoint math.Point2LL) (*aviation.TaxiPath, error) {
	key := exitPathKey{runway: runway.End1.Name + "/" + runway.End2.Name, gate: gate}
	if path, ok := c.cache.Get(key); ok {
		return path, nil
	}

	path, err := net.FindExitPathFromRunway(runway, touchdownPoint)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, path)
	return path, nil
}
