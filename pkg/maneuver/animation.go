// pkg/maneuver/animation.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "time"

// Formula computes the interpolated value at the given progress in
// [0,1] given the animation's start and end values.
type Formula[T any] func(start, end T, progress float64) T

// Apply is called once per tick with the interpolated value and the
// progress it corresponds to; it's where a script writes to the
// actuator view (heading, altitude, flap setting, ...).
type Apply[T any] func(value T, progress float64)

// Semaphore gates an animation's progress without resetting its elapsed
// time: a Closed result pauses the animation in place, and the duration
// spent Closed is subtracted back out of the elapsed-progress
// computation once the semaphore reopens. closedDuration is the total
// time spent Closed so far, provided so a semaphore function can decide
// based on how long it's been waiting.
type Semaphore func(previous SemaphoreState, closedDuration time.Duration) SemaphoreState

// NoopSemaphore never closes; it is the default for animations that
// don't need pause/resume gating.
func NoopSemaphore(SemaphoreState, time.Duration) SemaphoreState { return Open }

// NewAnimation builds a node that interpolates a value of type T from
// start to end over duration, calling apply once per tick with the
// interpolated value and current progress. Grounded on
// AnimationManeuver<T> in the original engine; semaphore may be nil, in
// which case NoopSemaphore is used.
func NewAnimation[T any](t *Tree, label Kind, id string, start, end T, duration time.Duration, formula Formula[T], apply Apply[T], semaphore Semaphore) NodeIndex {
	if semaphore == nil {
		semaphore = NoopSemaphore
	}
	i := t.alloc(node{
		shape:         KindAnimation,
		label:         label,
		id:            id,
		state:         NotStarted,
		animDuration:  duration,
		animLastSem:   Open,
		animSemaphore: semaphore,
	})
	t.node(i).animStep = func(progress float64) {
		v := formula(start, end, progress)
		apply(v, progress)
	}
	return i
}

// NewDelay builds the degenerate Animation with no payload: a pure
// time-based wait used heavily by the pilot scripts for fixed ground
// delays (pushback, line-up, taxi clearance read-back, ...).
func (t *Tree) NewDelay(label Kind, id string, duration time.Duration) NodeIndex {
	i := t.alloc(node{
		shape:        KindDelay,
		label:        label,
		id:           id,
		state:        NotStarted,
		animDuration: duration,
		animLastSem:  Open,
	})
	t.node(i).animSemaphore = NoopSemaphore
	t.node(i).animStep = func(float64) {}
	return i
}

// progressAnimation is the direct translation of
// AnimationManeuver::progressTo, shared by both Animation and Delay
// nodes (Delay is simply an Animation whose apply function is a no-op).
func (t *Tree) progressAnimation(i NodeIndex, ts time.Time) {
	n := t.node(i)
	if n.state == NotStarted {
		n.startTS = ts
		n.state = InProgress
	}

	if n.state != InProgress {
		return
	}

	elapsed := ts.Sub(n.startTS)
	deltaElapsed := elapsed - n.animLastElapsed
	n.animLastElapsed = elapsed

	n.animLastSem = n.animSemaphore(n.animLastSem, n.animSemWait)
	if n.animLastSem == Closed {
		n.animSemWait += deltaElapsed
		return
	}

	elapsedAnimation := elapsed - n.animSemWait
	progress := 1.0
	if n.animDuration > 0 {
		progress = float64(elapsedAnimation) / float64(n.animDuration)
		if progress > 1.0 {
			progress = 1.0
		} else if progress < 0 {
			progress = 0
		}
	}
	n.animStep(progress)

	if elapsedAnimation >= n.animDuration {
		n.state = Finished
		n.finishTS = ts
	}
}
