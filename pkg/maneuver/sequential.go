// pkg/maneuver/sequential.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// NewSequential builds a node that runs its children one at a time, in
// construction order, finishing when the last child finishes. label is
// the purpose Kind reported by Kind/GetStatusString; pass KindSequential
// if the caller has no more specific name for this step.
func (t *Tree) NewSequential(label Kind, id string, children ...NodeIndex) NodeIndex {
	i := t.alloc(node{shape: KindSequential, label: label, id: id, state: NotStarted})
	for _, c := range children {
		t.appendChild(i, c)
	}
	return i
}

// progressSequential is the direct Go translation of
// SequentialManeuver::progressTo: advance the in-progress child each
// tick, and when it finishes move on to its next sibling without waiting
// for a following tick, so that a tick's worth of zero-duration steps
// (InstantAction, an already-satisfied Await) all settle within the same
// call to ProgressTo.
func (t *Tree) progressSequential(i NodeIndex, ts time.Time) {
	n := t.node(i)
	if n.state == Finished {
		return
	}

	if n.state == NotStarted {
		n.inProgressChild = n.firstChild
		n.startTS = ts
		n.state = InProgress
	}

	for {
		if n.inProgressChild == noIndex {
			n.state = Finished
			n.finishTS = ts
			return
		}

		child := t.node(n.inProgressChild)
		if child.state != Finished {
			t.ProgressTo(n.inProgressChild, ts)
			if t.node(n.inProgressChild).state != Finished {
				return
			}
		}

		n.inProgressChild = t.node(n.inProgressChild).nextSibling
	}
}
