// pkg/maneuver/progress.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// Advance progresses the tree's Root to ts. It is the entry point a
// clock driver calls once per tick per flight, wrapping ProgressTo with
// the Root-is-built check every caller would otherwise have to repeat.
func (t *Tree) Advance(ts time.Time) error {
	if t.Root == noIndex {
		return ErrNodeNotBuilt
	}
	t.ProgressTo(t.Root, ts)
	return nil
}

// ProgressTo advances the subtree rooted at i to timestamp ts. Advance
// calls it on the Root, and composites call it on their children; every
// structural Kind implements its own progression rule below, grounded on
// the corresponding progressTo() override in the original engine.
func (t *Tree) ProgressTo(i NodeIndex, ts time.Time) {
	n := t.node(i)
	switch n.shape {
	case KindSequential:
		t.progressSequential(i, ts)
	case KindParallel:
		t.progressParallel(i, ts)
	case KindRace:
		t.progressRace(i, ts)
	case KindAnimation, KindDelay:
		t.progressAnimation(i, ts)
	case KindAwait:
		t.progressAwait(i, ts)
	case KindInstantAction:
		t.progressInstantAction(i, ts)
	case KindDeferred:
		t.progressDeferred(i, ts)
	default:
		// A purpose-only Kind (KindFlight, KindArrivalTaxi, ...) is never
		// built directly; it always wraps one of the structural kinds
		// above as the actual node type. Reaching here means a node was
		// constructed without one of the New* builders.
		panic("maneuver: ProgressTo called on a node with no structural Kind")
	}
}

// GetStatusString renders i and its descendants as a compact one-line
// trace: a Sequential shows only its in-progress child, a Parallel or
// Race shows every child, e.g.
// "Sequential<InProgress>[Parallel<InProgress>(Animation<InProgress>|Await<InProgress>)]". Grounded
// on getStatusString() in the original engine; useful for logs and for
// the godump-based tree dump in cmd/atcsim.
func (t *Tree) GetStatusString(i NodeIndex) string {
	n := t.node(i)
	label := n.label.String()
	if n.id != "" {
		label += ":" + n.id
	}
	label += "<" + n.state.String() + ">"

	switch n.shape {
	case KindSequential:
		if n.inProgressChild != noIndex {
			return label + "[" + t.GetStatusString(n.inProgressChild) + "]"
		}
		return label
	case KindParallel, KindRace:
		sep := "|"
		if n.shape == KindRace {
			sep = "/"
		}
		out := label + "("
		first := true
		for c := n.firstChild; c != noIndex; c = t.node(c).nextSibling {
			if !first {
				out += sep
			}
			out += t.GetStatusString(c)
			first = false
		}
		return out + ")"
	case KindDeferred:
		if n.actual == noIndex {
			return label + "[defer]"
		}
		return t.GetStatusString(n.actual)
	default:
		return label
	}
}
