// pkg/maneuver/await.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// NewAwait builds a node that finishes the first tick its predicate
// returns true, and is otherwise a livelock: the engine applies no
// timeout on its own (compose it inside a Race with a Delay for that).
// Grounded on AwaitManeuver in the original engine, including its id-gated
// periodic progress logging ("AIPILO|AWAIT ... in progress for N sec"),
// emitted while the node is progressed (on each whole second waited, and
// once on finishing) for Awaits with a non-empty id.
func (t *Tree) NewAwait(label Kind, id string, isReady func() bool) NodeIndex {
	i := t.alloc(node{shape: KindAwait, label: label, id: id, state: NotStarted, isReady: isReady})
	return i
}

func (t *Tree) progressAwait(i NodeIndex, ts time.Time) {
	n := t.node(i)
	if n.state == NotStarted {
		n.startTS = ts
		n.state = InProgress
	}

	if n.state != InProgress {
		return
	}

	if n.isReady() {
		n.state = Finished
		n.finishTS = ts
	}
	if n.id != "" {
		t.logAwaitStatus(n, ts)
	}
}

func (t *Tree) logAwaitStatus(n *node, ts time.Time) {
	elapsed := ts.Sub(n.startTS)
	if n.state == Finished {
		t.lg.Infof("AIPILO|AWAIT [%s] FINISHED in [%d] ms", n.id, elapsed.Milliseconds())
	} else if elapsed > 0 && elapsed%time.Second == 0 {
		t.lg.Infof("AIPILO|AWAIT [%s] in progress for [%d] sec", n.id, int64(elapsed/time.Second))
	}
}
