// pkg/maneuver/race.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// NewRace builds a composite absent from the original engine (a redesign
// addition): it advances every child like Parallel, but the instant any
// child reaches Finished, the Race itself finishes and every other child
// is marked Cancelled without receiving another ProgressTo call. Race is
// how a script gives an otherwise-unbounded Await a deadline:
// Race(Await(predicate), Delay(timeout)).
func (t *Tree) NewRace(label Kind, id string, children ...NodeIndex) NodeIndex {
	i := t.alloc(node{shape: KindRace, label: label, id: id, state: NotStarted})
	for _, c := range children {
		t.appendChild(i, c)
	}
	return i
}

func (t *Tree) progressRace(i NodeIndex, ts time.Time) {
	n := t.node(i)
	if n.state.Done() {
		return
	}
	if n.state == NotStarted {
		n.startTS = ts
		n.state = InProgress
	}

	winner := noIndex
	for c := n.firstChild; c != noIndex; c = t.node(c).nextSibling {
		if t.node(c).state.Done() {
			continue
		}
		t.ProgressTo(c, ts)
		if t.node(c).state == Finished {
			winner = c
			break
		}
	}

	if winner == noIndex {
		return
	}

	for c := n.firstChild; c != noIndex; c = t.node(c).nextSibling {
		if c == winner {
			continue
		}
		if !t.node(c).state.Done() {
			t.node(c).state = Cancelled
			t.node(c).finishTS = ts
		}
	}

	n.state = Finished
	n.finishTS = ts
}
