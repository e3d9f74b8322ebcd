// pkg/maneuver/engine_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import (
	"testing"
	"time"
)

func newTestTree() *Tree {
	return NewTree(nil)
}

func tick(base time.Time, sec int) time.Time {
	return base.Add(time.Duration(sec) * time.Second)
}

// Scenario 1: Sequential[Delay(1s), InstantAction(X)].
func TestSequentialDelayThenInstantAction(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	ran := false
	delay := tr.NewDelay(KindUnspecified, "", time.Second)
	action := tr.NewInstantAction(KindUnspecified, "", func() { ran = true })
	root := tr.NewSequential(KindSequential, "", delay, action)
	tr.Root = root

	tr.Advance(tick(base, 0))
	if ran {
		t.Fatalf("instant action ran before delay finished")
	}
	if tr.State(root) != InProgress {
		t.Fatalf("root should be InProgress at t=0, got %v", tr.State(root))
	}

	tr.Advance(tick(base, 1))
	if !ran {
		t.Fatalf("instant action should have run at t=1s")
	}
	if tr.State(root) != Finished {
		t.Fatalf("root should be Finished at t=1s, got %v", tr.State(root))
	}
}

// Scenario 2: Parallel[Delay(2s), Delay(3s)].
func TestParallelFinishesWithSlowestChild(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	d1 := tr.NewDelay(KindUnspecified, "", 2*time.Second)
	d2 := tr.NewDelay(KindUnspecified, "", 3*time.Second)
	root := tr.NewParallel(KindParallel, "", d1, d2)
	tr.Root = root

	for sec := 0; sec <= 2; sec++ {
		tr.Advance(tick(base, sec))
		if tr.State(root) != InProgress {
			t.Fatalf("root should be InProgress at t=%ds, got %v", sec, tr.State(root))
		}
	}

	tr.Advance(tick(base, 3))
	if tr.State(root) != Finished {
		t.Fatalf("root should be Finished at t=3s, got %v", tr.State(root))
	}
	if got := tr.FinishTS(root); !got.Equal(tick(base, 3)) {
		t.Fatalf("FinishTS should equal the slowest child's finish time, got %v want %v", got, tick(base, 3))
	}
}

// Scenario 3: Sequential[Await(p), InstantAction(Y)] with p true from t=5.
func TestSequentialAwaitThenInstantAction(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	var now int
	ranY := false
	await := tr.NewAwait(KindUnspecified, "", func() bool { return now >= 5 })
	y := tr.NewInstantAction(KindUnspecified, "", func() { ranY = true })
	root := tr.NewSequential(KindSequential, "", await, y)
	tr.Root = root

	for sec := 0; sec <= 5; sec++ {
		now = sec
		tr.Advance(tick(base, sec))
		if sec < 5 {
			if ranY {
				t.Fatalf("Y ran before the await predicate became true (t=%ds)", sec)
			}
			if tr.State(root) != InProgress {
				t.Fatalf("root should be InProgress at t=%ds, got %v", sec, tr.State(root))
			}
		}
	}

	if !ranY {
		t.Fatalf("Y should have run at t=5s")
	}
	if tr.State(root) != Finished {
		t.Fatalf("root should be Finished at t=5s, got %v", tr.State(root))
	}
}

// Scenario 4: Animation[float64](0->100 over 10s).
func TestAnimationAppliesEveryTickAndReachesEnd(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	applyCount := 0
	var lastValue float64
	root := NewAnimation[float64](tr, KindAnimation, "", 0, 100, 10*time.Second,
		func(start, end float64, progress float64) float64 { return start + (end-start)*progress },
		func(v float64, progress float64) { applyCount++; lastValue = v },
		nil)
	tr.Root = root

	for sec := 0; sec <= 10; sec++ {
		tr.Advance(tick(base, sec))
	}

	if applyCount < 10 {
		t.Fatalf("apply should have been called at least 10 times, got %d", applyCount)
	}
	if tr.State(root) != Finished {
		t.Fatalf("animation should be Finished at t=10s, got %v", tr.State(root))
	}
	if lastValue != 100 {
		t.Fatalf("final value should be 100, got %v", lastValue)
	}
}

// Scenario 5: Animation[float64](0->100 over 10s) with the semaphore
// Closed for the two one-second steps between t=3 and t=5 (pausing 2s of
// elapsed progress), so the animation finishes 2s late, at t=12s instead
// of t=10s; its value is frozen while the semaphore is Closed.
func TestAnimationSemaphoreFreezesProgressWithoutResettingIt(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	var now int
	var lastValue float64
	sem := func(prev SemaphoreState, closedDuration time.Duration) SemaphoreState {
		if now == 3 || now == 4 {
			return Closed
		}
		return Open
	}
	root := NewAnimation[float64](tr, KindAnimation, "", 0, 100, 10*time.Second,
		func(start, end float64, progress float64) float64 { return start + (end-start)*progress },
		func(v float64, progress float64) { lastValue = v },
		sem)
	tr.Root = root

	var valueBeforeClosed float64
	for sec := 0; sec <= 12; sec++ {
		now = sec
		tr.Advance(tick(base, sec))
		if sec < 12 && tr.State(root) == Finished {
			t.Fatalf("animation finished early, at t=%ds", sec)
		}
		if sec == 2 {
			valueBeforeClosed = lastValue
		}
		if sec == 3 || sec == 4 {
			// apply is not called at all while the semaphore is Closed,
			// so the last-applied value is left exactly as it was.
			if lastValue != valueBeforeClosed {
				t.Fatalf("value should stay frozen at %v during the closed window, got %v at t=%d", valueBeforeClosed, lastValue, sec)
			}
		}
	}

	if tr.State(root) != Finished {
		t.Fatalf("animation should be Finished at t=12s, got %v", tr.State(root))
	}
}

// Scenario 6: Sequential[Await(clearance granted), Deferred(build readback)];
// clearance granted by an external handler at t=4s.
func TestDeferredBuildsInnerSubtreeOnlyOnceDependencyIsReady(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	granted := false
	factoryCalls := 0
	readbackRan := false

	await := tr.NewAwait(KindUnspecified, "", func() bool { return granted })
	deferred := tr.NewDeferred(KindUnspecified, "", func(inner *Tree, parent NodeIndex) NodeIndex {
		factoryCalls++
		return inner.NewInstantAction(KindUnspecified, "", func() { readbackRan = true })
	})
	root := tr.NewSequential(KindSequential, "", await, deferred)
	tr.Root = root

	for sec := 0; sec <= 4; sec++ {
		if sec == 4 {
			granted = true
		}
		tr.Advance(tick(base, sec))
	}

	if factoryCalls != 1 {
		t.Fatalf("deferred factory should run exactly once, ran %d times", factoryCalls)
	}
	if !readbackRan {
		t.Fatalf("readback maneuver should have run within the t=4s tick")
	}
	if tr.State(root) != Finished {
		t.Fatalf("root should be Finished within the t=4s tick, got %v", tr.State(root))
	}

	// Further ticks must not re-invoke the factory.
	tr.Advance(tick(base, 5))
	if factoryCalls != 1 {
		t.Fatalf("deferred factory must not run again after the tree is Finished")
	}
}

// Scenario 7: Race(Await(never-true), Delay(5s)).
func TestRaceCancelsLosers(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	await := tr.NewAwait(KindUnspecified, "", func() bool { return false })
	delay := tr.NewDelay(KindUnspecified, "", 5*time.Second)
	root := tr.NewRace(KindRace, "", await, delay)
	tr.Root = root

	for sec := 0; sec < 5; sec++ {
		tr.Advance(tick(base, sec))
		if tr.State(root) == Finished {
			t.Fatalf("race finished early, at t=%ds", sec)
		}
	}

	tr.Advance(tick(base, 5))
	if tr.State(root) != Finished {
		t.Fatalf("root should be Finished at t=5s, got %v", tr.State(root))
	}
	if tr.State(delay) != Finished {
		t.Fatalf("the delay should be the natural winner, got %v", tr.State(delay))
	}
	if tr.State(await) != Cancelled {
		t.Fatalf("the await should be Cancelled, got %v", tr.State(await))
	}
}

// Round-trip/idempotence: calling Advance twice at the same timestamp must
// be equivalent to calling it once.
func TestProgressToIsIdempotentAtTheSameTimestamp(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	calls := 0
	action := tr.NewInstantAction(KindUnspecified, "", func() { calls++ })
	delay := tr.NewDelay(KindUnspecified, "", time.Second)
	root := tr.NewSequential(KindSequential, "", delay, action)
	tr.Root = root

	tr.Advance(tick(base, 0))
	tr.Advance(tick(base, 1))
	stateAfterFirst := tr.State(root)
	tr.Advance(tick(base, 1))

	if calls != 1 {
		t.Fatalf("InstantAction should run exactly once even if progressed twice at the same timestamp, ran %d times", calls)
	}
	if tr.State(root) != stateAfterFirst {
		t.Fatalf("state should be unchanged by a repeat call at the same timestamp")
	}
}

// Invariant: Sequential keeps exactly one InProgress child while InProgress,
// and all earlier siblings are Finished.
func TestSequentialInvariantExactlyOneInProgressChild(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	a := tr.NewDelay(KindUnspecified, "", time.Second)
	b := tr.NewDelay(KindUnspecified, "", time.Second)
	c := tr.NewDelay(KindUnspecified, "", time.Second)
	root := tr.NewSequential(KindSequential, "", a, b, c)
	tr.Root = root

	tr.Advance(tick(base, 0))
	if tr.State(a) != InProgress || tr.State(b) != NotStarted || tr.State(c) != NotStarted {
		t.Fatalf("expected only a InProgress at t=0, got a=%v b=%v c=%v", tr.State(a), tr.State(b), tr.State(c))
	}

	tr.Advance(tick(base, 1))
	if tr.State(a) != Finished || tr.State(b) != InProgress || tr.State(c) != NotStarted {
		t.Fatalf("expected a Finished, b InProgress at t=1, got a=%v b=%v c=%v", tr.State(a), tr.State(b), tr.State(c))
	}
}

// Invariant: InstantAction runs its closure exactly once no matter how
// many further ticks occur.
func TestInstantActionRunsExactlyOnce(t *testing.T) {
	tr := newTestTree()
	base := time.Now()

	calls := 0
	root := tr.NewInstantAction(KindUnspecified, "", func() { calls++ })
	tr.Root = root

	for sec := 0; sec < 5; sec++ {
		tr.Advance(tick(base, sec))
	}

	if calls != 1 {
		t.Fatalf("InstantAction should run exactly once, ran %d times", calls)
	}
}
