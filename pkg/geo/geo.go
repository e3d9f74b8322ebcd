// pkg/geo/geo.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geo gives the maneuver and pilot packages domain-named geodesic
// operations (point-at-distance, bearing, turn angle) over a single local
// reference frame, rather than threading per-call nmPerLongitude/magnetic
// correction parameters the way a continent-spanning radar sim must.
package geo

import (
	"github.com/crankywright/atc/pkg/math"
)

// Frame fixes the local approximations (nautical-miles-per-degree-of-
// longitude, magnetic correction) that the flat-earth math in pkg/math
// needs. An airport's Frame is derived once from its reference point and
// reused for every taxi and airborne computation at that airport.
type Frame struct {
	NMPerLongitude float32
	MagCorrection  float32
}

// NewFrame derives a Frame from an airport reference point's latitude.
func NewFrame(ref math.Point2LL, magCorrection float32) Frame {
	return Frame{
		NMPerLongitude: math.NMPerLatitude * math.Cos(math.Radians(ref.Latitude())),
		MagCorrection:  magCorrection,
	}
}

// GetPointAtDistance returns the point reached by travelling distNm
// nautical miles along true heading hdg from p.
func (f Frame) GetPointAtDistance(p math.Point2LL, hdg float32, distNm float32) math.Point2LL {
	return math.Offset2LL(p, hdg, distNm, f.NMPerLongitude)
}

// GetHeadingFromPoints returns the magnetic heading from p1 to p2: the
// true heading minus the frame's MagCorrection (magnetic variation).
func (f Frame) GetHeadingFromPoints(p1, p2 math.Point2LL) float32 {
	return math.Heading2LL(p1, p2, f.NMPerLongitude, -f.MagCorrection)
}

// GetTurnDegrees returns the signed turn, in degrees, to rotate from
// heading cur to heading target. Positive is a right turn.
func GetTurnDegrees(cur, target float32) float32 {
	return math.HeadingSignedTurn(cur, target)
}

// GetDistanceNm returns the great-circle-approximated distance, in
// nautical miles, between two points.
func (f Frame) GetDistanceNm(p1, p2 math.Point2LL) float32 {
	return math.NMDistance2LL(p1, p2)
}
