// pkg/geo/geo_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	"testing"

	"github.com/crankywright/atc/pkg/math"
)

func TestNewFrameDerivesNMPerLongitudeFromLatitude(t *testing.T) {
	ref := math.Point2LL{-73.77, 40.63} // roughly JFK
	f := NewFrame(ref, 13)

	if f.NMPerLongitude <= 0 || f.NMPerLongitude >= math.NMPerLatitude {
		t.Errorf("expected 0 < NMPerLongitude < %v at non-equatorial latitude, got %v", math.NMPerLatitude, f.NMPerLongitude)
	}
	if f.MagCorrection != 13 {
		t.Errorf("expected MagCorrection 13, got %v", f.MagCorrection)
	}
}

func TestFrameGetPointAtDistanceAndBackGetDistanceNmRoundTrip(t *testing.T) {
	ref := math.Point2LL{-73.77, 40.63}
	f := NewFrame(ref, 0)

	p := f.GetPointAtDistance(ref, 90, 10)
	dist := f.GetDistanceNm(ref, p)

	if math.Abs(dist-10) > 0.1 {
		t.Errorf("expected a point 10nm away to round-trip to ~10nm, got %v", dist)
	}
}

func TestFrameGetHeadingFromPointsAppliesMagCorrection(t *testing.T) {
	ref := math.Point2LL{-73.77, 40.63}
	trueFrame := NewFrame(ref, 0)
	east := trueFrame.GetPointAtDistance(ref, 90, 10)

	magFrame := NewFrame(ref, 5)
	hdgTrue := trueFrame.GetHeadingFromPoints(ref, east)
	hdgMag := magFrame.GetHeadingFromPoints(ref, east)

	if math.Abs(hdgTrue-90) > 1 {
		t.Errorf("expected a due-east point to have true heading ~90, got %v", hdgTrue)
	}
	if math.Abs(hdgMag-(hdgTrue-5)) > 0.01 {
		t.Errorf("expected magnetic correction to shift heading by 5, got true %v mag %v", hdgTrue, hdgMag)
	}
}

func TestGetTurnDegrees(t *testing.T) {
	tests := []struct {
		name         string
		cur, target  float32
		expectedSign int
	}{
		{name: "RightTurn", cur: 0, target: 90, expectedSign: 1},
		{name: "LeftTurn", cur: 90, target: 0, expectedSign: -1},
		{name: "NoTurn", cur: 45, target: 45, expectedSign: 0},
		{name: "WrapsAcrossNorthRight", cur: 350, target: 10, expectedSign: 1},
		{name: "WrapsAcrossNorthLeft", cur: 10, target: 350, expectedSign: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			turn := GetTurnDegrees(tc.cur, tc.target)
			switch tc.expectedSign {
			case 0:
				if math.Abs(turn) > 0.01 {
					t.Errorf("expected ~0 turn, got %v", turn)
				}
			case 1:
				if turn <= 0 {
					t.Errorf("expected a positive (right) turn, got %v", turn)
				}
			case -1:
				if turn >= 0 {
					t.Errorf("expected a negative (left) turn, got %v", turn)
				}
			}
		})
	}
}

func TestFrameGetDistanceNmIsSymmetric(t *testing.T) {
	ref := math.Point2LL{-73.77, 40.63}
	f := NewFrame(ref, 0)
	p := f.GetPointAtDistance(ref, 225, 7)

	d1 := f.GetDistanceNm(ref, p)
	d2 := f.GetDistanceNm(p, ref)
	if math.Abs(d1-d2) > 0.001 {
		t.Errorf("expected GetDistanceNm to be symmetric, got %v vs %v", d1, d2)
	}
}
