// pkg/maneuver/instant.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// NewInstantAction builds a node that runs action once, on the first
// tick it's progressed, and finishes immediately without ever observing
// InProgress. Grounded on InstantActionManeuver in the original engine.
func (t *Tree) NewInstantAction(label Kind, id string, action func()) NodeIndex {
	return t.alloc(node{shape: KindInstantAction, label: label, id: id, state: NotStarted, action: action})
}

func (t *Tree) progressInstantAction(i NodeIndex, ts time.Time) {
	n := t.node(i)
	if n.state == NotStarted {
		n.action()
		n.state = Finished
		n.startTS = ts
		n.finishTS = ts
	}
}
