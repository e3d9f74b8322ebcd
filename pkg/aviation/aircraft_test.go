// pkg/aviation/aircraft_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"testing"

	"github.com/crankywright/atc/pkg/math"
)

func testStand() ParkingStand {
	return ParkingStand{Name: "A1", Location: math.Point2LL{-122.3, 47.4}, Heading: 45}
}

func TestNewAircraftStartsParked(t *testing.T) {
	stand := testStand()
	a := NewAircraft("N1", "B738", stand)

	if a.ParkedAt() != stand.Name {
		t.Errorf("expected ParkedAt %q, got %q", stand.Name, a.ParkedAt())
	}
	if a.Location() != stand.Location {
		t.Errorf("expected Location %+v, got %+v", stand.Location, a.Location())
	}
	if a.Attitude().Heading != stand.Heading {
		t.Errorf("expected heading %v, got %v", stand.Heading, a.Attitude().Heading)
	}
	if alt, typ := a.Altitude(); alt != 0 || typ != AltitudeGround {
		t.Errorf("expected altitude 0/Ground, got %v/%v", alt, typ)
	}
}

func TestAircraftSettersClampToUnitRange(t *testing.T) {
	a := NewAircraft("N1", "B738", testStand())

	type testCase struct {
		name string
		set  func(float32)
		get  func() float32
	}
	cases := []testCase{
		{"flap", a.SetFlap, a.Flap},
		{"gear", a.SetGear, a.Gear},
		{"spoiler", a.SetSpoiler, a.Spoiler},
	}

	for _, c := range cases {
		c.set(0.5)
		if got := c.get(); got != 0.5 {
			t.Errorf("%s: expected 0.5, got %v", c.name, got)
		}

		c.set(-1)
		if got := c.get(); got != 0 {
			t.Errorf("%s: expected clamp to 0, got %v", c.name, got)
		}

		c.set(2)
		if got := c.get(); got != 1 {
			t.Errorf("%s: expected clamp to 1, got %v", c.name, got)
		}
	}
}

func TestAircraftLightsBitmask(t *testing.T) {
	a := NewAircraft("N1", "B738", testStand())
	a.SetLights(LightBeacon | LightNav)

	got := a.Lights()
	if got&LightBeacon == 0 || got&LightNav == 0 {
		t.Errorf("expected Beacon and Nav set, got %v", got)
	}
	if got&LightStrobe != 0 {
		t.Errorf("Strobe should not be set, got %v", got)
	}
}

func TestAircraftParkResetsAirborneState(t *testing.T) {
	a := NewAircraft("N1", "B738", testStand())
	a.SetAltitude(1500, AltitudeMSL)
	a.SetGroundSpeed(140)
	a.SetLocation(math.Point2LL{-122.1, 47.6})

	gate := ParkingStand{Name: "B2", Location: math.Point2LL{-122.35, 47.42}, Heading: 270}
	a.Park(gate)

	if a.ParkedAt() != "B2" {
		t.Errorf("expected ParkedAt B2, got %q", a.ParkedAt())
	}
	if alt, typ := a.Altitude(); alt != 0 || typ != AltitudeGround {
		t.Errorf("expected altitude reset to 0/Ground, got %v/%v", alt, typ)
	}
	if a.Location() != gate.Location {
		t.Errorf("expected location moved to gate, got %+v", a.Location())
	}
	if a.Attitude().Heading != gate.Heading {
		t.Errorf("expected heading set to gate heading, got %v", a.Attitude().Heading)
	}
}

func TestAircraftSetAttitudeAndAltitude(t *testing.T) {
	a := NewAircraft("N1", "B738", testStand())
	a.SetAttitude(Attitude{Heading: 090, Pitch: 8})
	a.SetAltitude(3500, AltitudeAGL)

	if att := a.Attitude(); att.Heading != 90 || att.Pitch != 8 {
		t.Errorf("unexpected attitude: %+v", att)
	}
	if alt, typ := a.Altitude(); alt != 3500 || typ != AltitudeAGL {
		t.Errorf("unexpected altitude: %v/%v", alt, typ)
	}
}

func TestAircraftRadioFrequency(t *testing.T) {
	a := NewAircraft("N1", "B738", testStand())
	f := NewFrequency(121.9)
	a.SetRadioFrequency(f)
	if a.RadioFrequency() != f {
		t.Errorf("expected radio frequency %v, got %v", f, a.RadioFrequency())
	}
}
