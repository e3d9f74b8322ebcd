// pkg/maneuver/parallel.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// NewParallel builds a node that progresses every child on every tick,
// finishing once all children have finished. Grounded on
// ParallelManeuver in the original engine.
func (t *Tree) NewParallel(label Kind, id string, children ...NodeIndex) NodeIndex {
	i := t.alloc(node{shape: KindParallel, label: label, id: id, state: NotStarted})
	for _, c := range children {
		t.appendChild(i, c)
	}
	return i
}

// progressParallel is the direct translation of
// ParallelManeuver::progressTo. FinishTS is written on every tick while
// InProgress and is only meaningful once State reaches Finished, per the
// original's own behavior (it updates m_finishTimestamp unconditionally,
// the way a "last time I did anything" timestamp would, but the field is
// only read by callers once the state check has already passed).
func (t *Tree) progressParallel(i NodeIndex, ts time.Time) {
	n := t.node(i)
	if n.state == Finished {
		return
	}
	if n.state == NotStarted {
		n.startTS = ts
	}

	n.finishTS = ts
	allFinished := true

	for c := n.firstChild; c != noIndex; c = t.node(c).nextSibling {
		if t.node(c).state != Finished {
			t.ProgressTo(c, ts)
			if t.node(c).state != Finished {
				allFinished = false
			}
		}
	}

	if allFinished {
		n.state = Finished
	} else {
		n.state = InProgress
	}
}
