// pkg/aviation/clearance.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"log/slog"
	"time"

	"github.com/iancoleman/orderedmap"

	"github.com/crankywright/atc/pkg/util"
)

// ClearanceKind enumerates the controller authorizations a pilot script
// waits on, one per case of the original's handleCommTransmission
// switch over intent codes.
type ClearanceKind int

const (
	ClearanceUnspecified ClearanceKind = iota
	ClearanceIfr
	ClearancePushAndStart
	ClearanceDepartureTaxi
	ClearanceRunwayCross
	ClearanceLineUp
	ClearanceTakeoff
	ClearanceLanding
	ClearanceArrivalTaxi
)

func (k ClearanceKind) String() string {
	switch k {
	case ClearanceUnspecified:
		return "Unspecified"
	case ClearanceIfr:
		return "Ifr"
	case ClearancePushAndStart:
		return "PushAndStart"
	case ClearanceDepartureTaxi:
		return "DepartureTaxi"
	case ClearanceRunwayCross:
		return "RunwayCross"
	case ClearanceLineUp:
		return "LineUp"
	case ClearanceTakeoff:
		return "Takeoff"
	case ClearanceLanding:
		return "Landing"
	case ClearanceArrivalTaxi:
		return "ArrivalTaxi"
	default:
		return "Unknown"
	}
}

// Clearance is a controller-issued authorization. Payload is kind-
// specific (a *TaxiPath for ClearanceDepartureTaxi/ClearanceArrivalTaxi,
// a float32 initial heading for ClearanceTakeoff, a RunwayEnd for
// ClearanceLineUp/ClearanceLanding, or nil for kinds that are pure
// go-ahead signals).
type Clearance struct {
	Kind          ClearanceKind
	IssuedAt      time.Time
	Payload       any
	ReadbackGiven bool
}

// SetReadbackCorrect records that the pilot's readback of this clearance
// was acknowledged as correct, mirroring Clearance::setReadbackCorrect
// in the original engine.
func (c *Clearance) SetReadbackCorrect() {
	c.ReadbackGiven = true
}

func (c Clearance) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", c.Kind.String()),
		slog.Time("issued_at", c.IssuedAt),
		slog.Bool("readback_given", c.ReadbackGiven))
}

// ClearanceStore is a flight's append-only, per-kind record of every
// clearance it has received. Clearances of the same kind accumulate
// rather than overwrite one another (a resolved Open Question: an
// amended taxi clearance must not silently discard the one a script may
// still be mid-readback on), with Latest giving the common "most recent
// wins" read and All giving the full history for diagnostics and tests.
// Keyed with an orderedmap so diagnostic dumps list kinds in the order
// they were first received rather than Go's randomized map order.
type ClearanceStore struct {
	byKind *orderedmap.OrderedMap
}

// NewClearanceStore creates an empty store.
func NewClearanceStore() *ClearanceStore {
	return &ClearanceStore{byKind: orderedmap.New()}
}

// Add appends c to the history for its Kind.
func (s *ClearanceStore) Add(c *Clearance) {
	existing, ok := s.byKind.Get(c.Kind.String())
	if !ok {
		s.byKind.Set(c.Kind.String(), []*Clearance{c})
		return
	}
	s.byKind.Set(c.Kind.String(), append(existing.([]*Clearance), c))
}

// Latest returns the most recently added clearance of the given kind, or
// nil if none has been received yet.
func (s *ClearanceStore) Latest(kind ClearanceKind) *Clearance {
	all := s.All(kind)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// All returns every clearance of the given kind received so far, oldest
// first. The returned slice is a copy, so a caller mutating it cannot
// corrupt the store's own history.
func (s *ClearanceStore) All(kind ClearanceKind) []*Clearance {
	existing, ok := s.byKind.Get(kind.String())
	if !ok {
		return nil
	}
	return util.DuplicateSlice(existing.([]*Clearance))
}

// Has reports whether at least one clearance of the given kind has been
// received.
func (s *ClearanceStore) Has(kind ClearanceKind) bool {
	return s.Latest(kind) != nil
}

// FindClearanceOrThrow returns the latest clearance of the given kind,
// panicking if none has been received. Pilot script factories call this
// from inside a Deferred factory, where the caller (an Await just ahead
// of it in the tree) has already established the clearance exists; the
// clock driver recovers this panic at the per-flight tick boundary (see
// pkg/sim) and logs it as a scripting error rather than letting one
// flight's bug take down the whole simulation.
func (s *ClearanceStore) FindClearanceOrThrow(kind ClearanceKind) *Clearance {
	c := s.Latest(kind)
	if c == nil {
		panic(ErrNoClearanceOfKind)
	}
	return c
}
