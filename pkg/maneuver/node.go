// pkg/maneuver/node.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package maneuver implements a tick-driven maneuver tree: composites
// (Sequential, Parallel, Race) drive primitive time-based actions
// (Animation, Await, InstantAction, Delay) to completion without ever
// blocking the calling goroutine. Every node lives in a single Tree arena
// and is addressed by NodeIndex rather than by pointer, so a tree can be
// walked, logged, or torn down without chasing cycles.
package maneuver

import "time"

// Kind identifies what a maneuver tree node represents. The structural
// kinds (Sequential, Parallel, Race, Animation, Await, InstantAction,
// Delay, Deferred) drive ProgressTo's dispatch; callers may also tag a
// node with a purpose-specific Kind (e.g. KindFlight, KindArrivalTaxi) for
// logging and status-string purposes, since the structural behavior for a
// tagged composite is still chosen from its underlying shape.
type Kind int

const (
	KindUnspecified Kind = iota
	KindSequential
	KindParallel
	KindRace
	KindAnimation
	KindAwait
	KindInstantAction
	KindDelay
	KindDeferred

	// Purpose kinds. These exist purely so a tree built from the pilot
	// scripts carries a recognizable name in logs and dumps; ProgressTo
	// never switches on them.
	KindFlight
	KindArrivalApproach
	KindArrivalLanding
	KindArrivalLandingRoll
	KindArrivalTaxi
	KindDepartureAwaitIfrClearance
	KindDepartureAwaitPushback
	KindDeparturePushbackAndStart
	KindDepartureAwaitTaxi
	KindDepartureTaxi
	KindDepartureLineUpAndWait
	KindDepartureAwaitTakeOff
	KindDepartureTakeOffRoll
	KindTaxiHoldShort
)

func (k Kind) String() string {
	switch k {
	case KindUnspecified:
		return "Unspecified"
	case KindSequential:
		return "Sequential"
	case KindParallel:
		return "Parallel"
	case KindRace:
		return "Race"
	case KindAnimation:
		return "Animation"
	case KindAwait:
		return "Await"
	case KindInstantAction:
		return "InstantAction"
	case KindDelay:
		return "Delay"
	case KindDeferred:
		return "Deferred"
	case KindFlight:
		return "Flight"
	case KindArrivalApproach:
		return "ArrivalApproach"
	case KindArrivalLanding:
		return "ArrivalLanding"
	case KindArrivalLandingRoll:
		return "ArrivalLandingRoll"
	case KindArrivalTaxi:
		return "ArrivalTaxi"
	case KindDepartureAwaitIfrClearance:
		return "DepartureAwaitIfrClearance"
	case KindDepartureAwaitPushback:
		return "DepartureAwaitPushback"
	case KindDeparturePushbackAndStart:
		return "DeparturePushbackAndStart"
	case KindDepartureAwaitTaxi:
		return "DepartureAwaitTaxi"
	case KindDepartureTaxi:
		return "DepartureTaxi"
	case KindDepartureLineUpAndWait:
		return "DepartureLineUpAndWait"
	case KindDepartureAwaitTakeOff:
		return "DepartureAwaitTakeOff"
	case KindDepartureTakeOffRoll:
		return "DepartureTakeOffRoll"
	case KindTaxiHoldShort:
		return "TaxiHoldShort"
	default:
		return "Unknown"
	}
}

// State is the monotone lifecycle of a maneuver node. Every node starts
// NotStarted, moves to InProgress on its first ProgressTo call, and ends
// at either Finished (ran to completion) or Cancelled (a Race loser, cut
// short by a sibling finishing first). Cancelled and Finished are both
// terminal: once reached, ProgressTo is a no-op.
type State int

const (
	NotStarted State = iota
	InProgress
	Finished
	Cancelled
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case InProgress:
		return "InProgress"
	case Finished:
		return "Finished"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Done reports whether s is a terminal state (Finished or Cancelled).
func (s State) Done() bool {
	return s == Finished || s == Cancelled
}

// SemaphoreState gates an Animation's progress without resetting its
// elapsed-progress bookkeeping: a Closed semaphore pauses the animation in
// place, and time spent Closed is subtracted back out once it reopens.
type SemaphoreState int

const (
	Open SemaphoreState = iota
	Closed
)

// NodeIndex addresses a node within a Tree's arena. Index 0 is the first
// node allocated and NoIndex (-1) marks an absent node; Tree.Root and the
// return values of its builder methods are the only valid NodeIndex
// values.
type NodeIndex int

// noIndex marks an absent child/sibling/parent link.
const noIndex NodeIndex = -1

// NoIndex is the exported form of noIndex, for callers outside this
// package checking Tree.Root before the tree has been built (e.g.
// Flight.Done in pkg/aviation).
const NoIndex NodeIndex = noIndex

// node is the arena-resident representation of one maneuver tree node.
// Only the fields relevant to its Kind are populated; the rest stay at
// their zero value. This mirrors the original C++ design's single
// Maneuver base class, but as a tagged union of plain data instead of a
// class hierarchy connected by shared_ptr, so the tree can't develop
// reference cycles and can be walked/cloned without smart-pointer
// bookkeeping.
type node struct {
	// shape is the structural kind ProgressTo dispatches on: always one
	// of the first nine Kind values. label additionally carries a
	// purpose kind (KindFlight, KindArrivalTaxi, ...) for status strings
	// and logs; it is stored exactly as the builder's caller passed it.
	shape Kind
	label Kind
	id    string
	state State

	parent      NodeIndex
	firstChild  NodeIndex
	lastChild   NodeIndex
	nextSibling NodeIndex

	startTS  time.Time
	finishTS time.Time

	// Sequential/Race bookkeeping.
	inProgressChild NodeIndex

	// Await.
	isReady func() bool

	// InstantAction.
	action func()

	// Deferred.
	factory func(t *Tree, parent NodeIndex) NodeIndex
	actual  NodeIndex

	// Animation (type-erased; see animation.go for the generic wrapper
	// that populates these via closures captured at construction time).
	animDuration    time.Duration
	animStep        func(progress float64)
	animSemaphore   func(prev SemaphoreState, closedDuration time.Duration) SemaphoreState
	animLastSem     SemaphoreState
	animSemWait     time.Duration
	animLastElapsed time.Duration

	// Delay: a pure time-based wait with no semaphore and no payload,
	// the degenerate case of Animation used heavily by the pilot scripts
	// for fixed ground delays (pushback, line-up, etc).
}
