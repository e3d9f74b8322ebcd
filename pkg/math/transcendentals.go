// pkg/math/transcendentals.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
)

// Sin returns the sine of x, in radians.
func Sin(x float32) float32 {
	return float32(gomath.Sin(float64(x)))
}

// Cos returns the cosine of x, in radians.
func Cos(x float32) float32 {
	return float32(gomath.Cos(float64(x)))
}

// SinCos returns {sin(x), cos(x)}; callers that need both avoid a second
// trip through the standard library's range reduction.
func SinCos(x float32) [2]float32 {
	s, c := gomath.Sincos(float64(x))
	return [2]float32{float32(s), float32(c)}
}

// Tan returns the tangent of x, in radians.
func Tan(x float32) float32 {
	return float32(gomath.Tan(float64(x)))
}

// Atan returns the arctangent of x, in radians.
func Atan(x float32) float32 {
	return float32(gomath.Atan(float64(x)))
}

// Atan2 returns the arc tangent of y/x, using the signs of both to
// determine the quadrant of the result.
func Atan2(y, x float32) float32 {
	return float32(gomath.Atan2(float64(y), float64(x)))
}

// FastExp returns e**x.
func FastExp(x float32) float32 {
	return float32(gomath.Exp(float64(x)))
}
