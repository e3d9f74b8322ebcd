// pkg/maneuver/deferred.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// DeferredFactory builds the subtree a Deferred node stands in for. It
// runs at most once, on the Deferred node's first ProgressTo call, and
// allocates its nodes into the same Tree as the Deferred node itself
// (parent is the Deferred node's own index, for callers that want to
// link auxiliary bookkeeping to it).
type DeferredFactory func(t *Tree, parent NodeIndex) NodeIndex

// NewDeferred builds a proxy node whose subtree isn't constructed until
// the first tick it's progressed. This is how a script plans an outer
// tree shape (e.g. "after pushback, taxi to the runway") before it has
// the late-bound information (which runway, which taxi path) needed to
// build the inner tree — grounded on DeferredManeuver in the original
// engine, which exists for exactly this reason (see, e.g.,
// maneuverDepartureTaxi building its taxi-path subtree only once gate
// hold and active runway are known).
func (t *Tree) NewDeferred(label Kind, id string, factory DeferredFactory) NodeIndex {
	return t.alloc(node{shape: KindDeferred, label: label, id: id, state: NotStarted, factory: factory})
}

func (t *Tree) progressDeferred(i NodeIndex, ts time.Time) {
	n := t.node(i)
	if n.state == Finished {
		return
	}

	if n.state == NotStarted {
		n.actual = n.factory(t, i)
		n.startTS = ts
	}

	t.ProgressTo(n.actual, ts)
	n.state = t.node(n.actual).state

	if n.state == Finished {
		n.finishTS = ts
	}
}
