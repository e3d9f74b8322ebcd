// pkg/maneuver/arena.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import (
	"time"

	"github.com/crankywright/atc/pkg/log"
)

// Tree is the arena that owns every node of one flight's maneuver tree.
// Flights never share a Tree; the pilot scripts build a fresh Tree (or
// graft a Deferred subtree into the existing one) per flight cycle.
type Tree struct {
	// nodes holds one *node per arena slot. Each node is its own heap
	// allocation so that a pointer returned by node() stays valid across
	// later calls to alloc(): appendChild/progressSequential and friends
	// often hold a *node across a recursive ProgressTo call that may
	// itself allocate (a Deferred factory building its subtree), and a
	// []node slice would have that growth reallocate out from under
	// them.
	nodes []*node
	Root  NodeIndex
	lg    *log.Logger
}

// NewTree creates an empty arena. Callers build the tree with the New*
// constructors below, then set Tree.Root to the index of the top-level
// node before the first call to ProgressTo.
func NewTree(lg *log.Logger) *Tree {
	return &Tree{Root: noIndex, lg: lg}
}

func (t *Tree) alloc(n node) NodeIndex {
	n.parent = noIndex
	n.firstChild = noIndex
	n.lastChild = noIndex
	n.nextSibling = noIndex
	n.inProgressChild = noIndex
	n.actual = noIndex
	t.nodes = append(t.nodes, &n)
	return NodeIndex(len(t.nodes) - 1)
}

func (t *Tree) node(i NodeIndex) *node {
	return t.nodes[i]
}

// appendChild links child as the last child of parent.
func (t *Tree) appendChild(parent, child NodeIndex) {
	p := t.node(parent)
	c := t.node(child)
	c.parent = parent
	if p.firstChild == noIndex {
		p.firstChild = child
		p.lastChild = child
	} else {
		t.node(p.lastChild).nextSibling = child
		p.lastChild = child
	}
}

// Kind returns the node's display Kind: the label passed to its New*
// builder, as given (KindUnspecified stays KindUnspecified).
func (t *Tree) Kind(i NodeIndex) Kind { return t.node(i).label }

// ID returns the node's identifier, as set at construction. Most nodes
// built by the pilot scripts leave this blank; it exists for the Await
// progress-logging convention carried over from the original engine,
// where a non-empty id opts an Await into periodic "still waiting" logs.
func (t *Tree) ID(i NodeIndex) string { return t.node(i).id }

// State returns the node's current lifecycle state.
func (t *Tree) State(i NodeIndex) State { return t.node(i).state }

// FirstChild returns the index of i's first child, or noIndex if i is a
// leaf. Most callers should use Children instead.
func (t *Tree) FirstChild(i NodeIndex) NodeIndex { return t.node(i).firstChild }

// NextSibling returns the index of i's next sibling, or noIndex if i is
// the last child of its parent.
func (t *Tree) NextSibling(i NodeIndex) NodeIndex { return t.node(i).nextSibling }

// Parent returns the index of i's parent, or noIndex if i is the root.
func (t *Tree) Parent(i NodeIndex) NodeIndex { return t.node(i).parent }

// Children returns the child indices of i, in construction order.
func (t *Tree) Children(i NodeIndex) []NodeIndex {
	var out []NodeIndex
	for c := t.node(i).firstChild; c != noIndex; c = t.node(c).nextSibling {
		out = append(out, c)
	}
	return out
}

// StartTS returns the timestamp i first moved out of NotStarted. The
// zero time.Time if i hasn't started yet.
func (t *Tree) StartTS(i NodeIndex) time.Time { return t.node(i).startTS }

// FinishTS returns the timestamp i reached a terminal state. Only
// meaningful once State(i).Done() is true.
func (t *Tree) FinishTS(i NodeIndex) time.Time { return t.node(i).finishTS }

// IsProxy reports whether i is a Deferred node standing in for a subtree
// that hasn't been built yet (or has been built and is now transparently
// forwarded to).
func (t *Tree) IsProxy(i NodeIndex) bool { return t.node(i).shape == KindDeferred }

// Unproxy returns the concrete subtree a Deferred node has built, or
// noIndex if it hasn't built one yet. Calling it on a non-Deferred node
// returns i unchanged.
func (t *Tree) Unproxy(i NodeIndex) NodeIndex {
	n := t.node(i)
	if n.shape != KindDeferred {
		return i
	}
	return n.actual
}
