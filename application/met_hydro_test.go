package application

import (
	"math"
	"testing"

	"github.com/tormol/aislib/optional"
)

func TestMetHydroOnlyWindSpeedAvailable(t *testing.T) {
	m := &MetHydro{
		Latitude:    59.9,
		Longitude:   10.7,
		Day:         15,
		Hour:        12,
		Minute:      0,
		WindSpeedKn: optional.Some(15.5),
	}
	bits := m.Encode()
	got, err := DecodeMetHydro(bits)
	if err != nil {
		t.Fatalf("DecodeMetHydro: %v", err)
	}
	speed, ok := got.WindSpeedKn.Get()
	if !ok {
		t.Fatal("wind speed should be available")
	}
	if math.Abs(speed-15.5) > 0.1 {
		t.Errorf("wind speed = %v, want 15.5", speed)
	}
	if _, ok := got.WindGustKn.Get(); ok {
		t.Error("wind gust should be N/A")
	}
	if _, ok := got.AirTempC.Get(); ok {
		t.Error("air temp should be N/A")
	}
	if _, ok := got.PressureHPa.Get(); ok {
		t.Error("pressure should be N/A")
	}
}

func TestMetHydroAllFieldsRoundTrip(t *testing.T) {
	m := &MetHydro{
		Latitude:          10,
		Longitude:         20,
		Day:               1,
		Hour:              1,
		Minute:            1,
		WindSpeedKn:       optional.Some(5.0),
		WindGustKn:        optional.Some(8.0),
		WindDirectionDeg:  optional.Some(270.0),
		AirTempC:          optional.Some(-5.5),
		RelativeHumidity:  optional.Some(80.0),
		DewPointC:         optional.Some(-10.0),
		PressureHPa:       optional.Some(250.0),
		PressureTendency:  optional.Some(uint8(1)),
		VisibilityNM:      optional.Some(5.5),
		WaterLevelM:       optional.Some(1.23),
		WaterLevelTrend:   optional.Some(uint8(2)),
		CurrentSpeedKn:    optional.Some(2.5),
		CurrentDirection:  optional.Some(180.0),
		WaveHeightM:       optional.Some(2.0),
		WavePeriodS:       optional.Some(6.0),
		WaveDirection:     optional.Some(90.0),
		SwellHeightM:      optional.Some(1.5),
		SwellPeriodS:      optional.Some(8.0),
		SwellDirection:    optional.Some(95.0),
		SeaTempC:          optional.Some(12.3),
		PrecipitationType: optional.Some(uint8(2)),
		SalinityPPT:       optional.Some(35.0),
		Ice:               optional.Some(uint8(0)),
	}
	bits := m.Encode()
	got, err := DecodeMetHydro(bits)
	if err != nil {
		t.Fatalf("DecodeMetHydro: %v", err)
	}
	pressure, ok := got.PressureHPa.Get()
	if !ok || math.Abs(pressure-250.0) > 0.5 {
		t.Errorf("pressure = %v (ok=%v), want 250", pressure, ok)
	}
	ice, ok := got.Ice.Get()
	if !ok || ice != 0 {
		t.Errorf("ice = %v (ok=%v), want 0", ice, ok)
	}
	salinity, ok := got.SalinityPPT.Get()
	if !ok || math.Abs(salinity-35.0) > 0.1 {
		t.Errorf("salinity = %v (ok=%v), want 35.0", salinity, ok)
	}
}
