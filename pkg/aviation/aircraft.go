// pkg/aviation/aircraft.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"log/slog"

	"github.com/crankywright/atc/pkg/math"
)

// AltitudeType distinguishes how an altitude reading should be
// interpreted.
type AltitudeType int

const (
	AltitudeAGL AltitudeType = iota
	AltitudeMSL
	AltitudeGround
)

func (a AltitudeType) String() string {
	switch a {
	case AltitudeAGL:
		return "AGL"
	case AltitudeMSL:
		return "MSL"
	case AltitudeGround:
		return "Ground"
	default:
		return "Unknown"
	}
}

// AircraftLight is one bit of an aircraft's exterior lighting state.
type AircraftLight uint

const (
	LightBeacon AircraftLight = 1 << iota
	LightTaxi
	LightNav
	LightLanding
	LightStrobe
)

// Attitude is an aircraft's 3D orientation as the pilot scripts animate
// it: heading (true, degrees) and pitch (degrees, nose-up positive).
type Attitude struct {
	Heading float32
	Pitch   float32
}

// Aircraft is the actuator view a pilot script drives: every setter a
// maneuver's Apply function calls, and every reader an Await predicate
// or Deferred factory consults. Grounded on pkg/sim/aircraft.go's plain-
// field Aircraft/Nav shapes and pkg/aviation/nav.go's FlightState
// (pointer-free here, since this view has no "controller hasn't assigned
// this yet" distinction the way Nav's *float32 fields do — every field
// always has a current value once an Aircraft exists).
type Aircraft struct {
	Callsign string
	Type     string

	location math.Point2LL
	attitude Attitude

	altitude     float32
	altitudeType AltitudeType

	flap     float32
	gear     float32
	spoiler  float32
	vspeedFpm float32
	gsKt      float32
	lights    AircraftLight
	radioKhz  Frequency

	parkedAt string
}

// NewAircraft creates an Aircraft parked at the given stand.
func NewAircraft(callsign, acType string, stand ParkingStand) *Aircraft {
	return &Aircraft{
		Callsign:     callsign,
		Type:         acType,
		location:     stand.Location,
		attitude:     Attitude{Heading: stand.Heading},
		altitudeType: AltitudeGround,
		parkedAt:     stand.Name,
	}
}

func (a Aircraft) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("callsign", a.Callsign),
		slog.Float64("heading", float64(a.attitude.Heading)),
		slog.Float64("altitude", float64(a.altitude)),
		slog.String("altitude_type", a.altitudeType.String()))
}

// --- Setters, called from maneuver Apply functions. ---

func (a *Aircraft) SetFlap(v float32)     { a.flap = math.Clamp(v, 0, 1) }
func (a *Aircraft) SetGear(v float32)     { a.gear = math.Clamp(v, 0, 1) }
func (a *Aircraft) SetSpoiler(v float32)  { a.spoiler = math.Clamp(v, 0, 1) }
func (a *Aircraft) SetVerticalSpeed(fpm float32) { a.vspeedFpm = fpm }
func (a *Aircraft) SetGroundSpeed(kt float32)    { a.gsKt = kt }
func (a *Aircraft) SetLights(l AircraftLight)    { a.lights = l }
func (a *Aircraft) SetRadioFrequency(f Frequency) { a.radioKhz = f }

// SetAttitude sets heading and pitch directly.
func (a *Aircraft) SetAttitude(att Attitude) { a.attitude = att }

// SetLocation moves the aircraft to p, e.g. as a taxi or airborne
// animation's Apply function.
func (a *Aircraft) SetLocation(p math.Point2LL) { a.location = p }

// SetAltitude sets the current altitude reading and its type.
func (a *Aircraft) SetAltitude(alt float32, t AltitudeType) {
	a.altitude = alt
	a.altitudeType = t
}

// Park sets the aircraft's location and attitude to the given stand and
// clears airborne state, used by InstantAction steps at the end of a
// taxi-to-gate maneuver (and by the taxi-net exit-path recovery path,
// §7, which teleports an aircraft straight to its gate when no exit path
// can be found).
func (a *Aircraft) Park(stand ParkingStand) {
	a.location = stand.Location
	a.attitude = Attitude{Heading: stand.Heading}
	a.altitude = 0
	a.altitudeType = AltitudeGround
	a.parkedAt = stand.Name
}

// --- Readers, consulted by Await predicates and Deferred factories. ---

func (a Aircraft) Location() math.Point2LL     { return a.location }
func (a Aircraft) Attitude() Attitude          { return a.attitude }
func (a Aircraft) Altitude() (float32, AltitudeType) { return a.altitude, a.altitudeType }
func (a Aircraft) Flap() float32               { return a.flap }
func (a Aircraft) Gear() float32               { return a.gear }
func (a Aircraft) Spoiler() float32            { return a.spoiler }
func (a Aircraft) VerticalSpeed() float32      { return a.vspeedFpm }
func (a Aircraft) GroundSpeed() float32        { return a.gsKt }
func (a Aircraft) Lights() AircraftLight       { return a.lights }
func (a Aircraft) RadioFrequency() Frequency   { return a.radioKhz }
func (a Aircraft) ParkedAt() string            { return a.parkedAt }
