package application

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
	"github.com/tormol/aislib/optional"
)

// MetHydro is the decoded DAC=1/FI=31 application payload: a weather and
// sea-state report. Every scalar below is optional because the wire
// format reserves a distinct "not available" raw value for each one
// (spec.md §4's optional-field design note); Decode translates each
// sentinel to None at the boundary rather than exposing the raw value.
type MetHydro struct {
	Latitude    float64 // 1/1000 minute resolution
	Longitude   float64
	Day         uint8
	Hour        uint8
	Minute      uint8
	WindSpeedKn       optional.Value[float64] // average, 0.1 kt
	WindGustKn        optional.Value[float64]
	WindDirectionDeg  optional.Value[float64]
	AirTempC          optional.Value[float64] // 0.1 degC
	RelativeHumidity  optional.Value[float64] // percent
	DewPointC         optional.Value[float64]
	PressureHPa       optional.Value[float64]
	PressureTendency  optional.Value[uint8] // 0 steady, 1 decreasing, 2 increasing
	VisibilityNM      optional.Value[float64] // 0.1 NM
	WaterLevelM       optional.Value[float64] // 0.01 m
	WaterLevelTrend   optional.Value[uint8] // 0 steady, 1 decreasing, 2 increasing
	CurrentSpeedKn    optional.Value[float64]
	CurrentDirection  optional.Value[float64]
	WaveHeightM       optional.Value[float64]
	WavePeriodS       optional.Value[float64]
	WaveDirection     optional.Value[float64]
	SwellHeightM      optional.Value[float64]
	SwellPeriodS      optional.Value[float64]
	SwellDirection    optional.Value[float64]
	SeaTempC          optional.Value[float64]
	PrecipitationType optional.Value[uint8]
	SalinityPPT       optional.Value[float64]
	Ice               optional.Value[uint8] // 0 no, 1 yes
}

const metHydroBits = 24 + 25 + 5 + 5 + 6 + 10 + 10 + 9 + 11 + 7 + 11 + 9 + 2 + 8 + 12 + 2 + 8 + 9 + 8 + 6 + 9 + 8 + 6 + 9 + 11 + 3 + 9 + 2

const (
	sentinelMHWind       = 0x3FF
	sentinelMHDirection  = 0x1FF
	sentinelMHAirTemp    = -1024
	sentinelMHHumidity   = 0x7F
	sentinelMHPressure   = 0x1FF
	sentinelMHPressureTendency = 3
	sentinelMHWaterLevel = -2048
	sentinelMHTrend      = 3
	sentinelMHPrecipType = 7
	sentinelMHIce        = 3
)

// DecodeMetHydro parses a DAC=1/FI=31 application payload.
func DecodeMetHydro(b *bitvector.BitVector) (*MetHydro, error) {
	if b.Size() < metHydroBits {
		return nil, fmt.Errorf("meteorological/hydrological payload needs at least %d bits, got %d", metHydroBits, b.Size())
	}

	lat, _ := b.GetInt(0, 24)
	lon, _ := b.GetInt(24, 25)
	day, _ := b.GetUint(49, 5)
	hour, _ := b.GetUint(54, 5)
	minute, _ := b.GetUint(59, 6)
	windSpeed, _ := b.GetUint(65, 10)
	windGust, _ := b.GetUint(75, 10)
	windDir, _ := b.GetUint(85, 9)
	airTemp, _ := b.GetInt(94, 11)
	humidity, _ := b.GetUint(105, 7)
	dewPoint, _ := b.GetInt(112, 11)
	pressure, _ := b.GetUint(123, 9)
	tendency, _ := b.GetUint(132, 2)
	visibility, _ := b.GetUint(134, 8)
	waterLevel, _ := b.GetInt(142, 12)
	waterTrend, _ := b.GetUint(154, 2)
	currentSpeed, _ := b.GetUint(156, 8)
	currentDir, _ := b.GetUint(164, 9)
	waveHeight, _ := b.GetUint(173, 8)
	wavePeriod, _ := b.GetUint(181, 6)
	waveDir, _ := b.GetUint(187, 9)
	swellHeight, _ := b.GetUint(196, 8)
	swellPeriod, _ := b.GetUint(204, 6)
	swellDir, _ := b.GetUint(210, 9)
	seaTemp, _ := b.GetInt(219, 11)
	precip, _ := b.GetUint(230, 3)
	salinity, _ := b.GetUint(233, 9)
	ice, _ := b.GetUint(242, 2)

	m := &MetHydro{
		// raw is 1/1000 minute; 1 minute = 1/60 degree, so divide by 60000.
		Latitude:  float64(lat) / 60000.0,
		Longitude: float64(lon) / 60000.0,
		Day:       uint8(day),
		Hour:      uint8(hour),
		Minute:    uint8(minute),
	}

	if windSpeed != sentinelMHWind {
		m.WindSpeedKn = optional.Some(float64(windSpeed) / 10.0)
	}
	if windGust != sentinelMHWind {
		m.WindGustKn = optional.Some(float64(windGust) / 10.0)
	}
	if windDir != sentinelMHDirection {
		m.WindDirectionDeg = optional.Some(float64(windDir))
	}
	if airTemp != sentinelMHAirTemp {
		m.AirTempC = optional.Some(float64(airTemp) / 10.0)
	}
	if humidity != sentinelMHHumidity {
		m.RelativeHumidity = optional.Some(float64(humidity))
	}
	if dewPoint != sentinelMHAirTemp {
		m.DewPointC = optional.Some(float64(dewPoint) / 10.0)
	}
	if pressure != sentinelMHPressure {
		m.PressureHPa = optional.Some(float64(pressure))
	}
	if tendency != sentinelMHPressureTendency {
		m.PressureTendency = optional.Some(uint8(tendency))
	}
	if visibility != 0xFF {
		m.VisibilityNM = optional.Some(float64(visibility) / 10.0)
	}
	if waterLevel != sentinelMHWaterLevel {
		m.WaterLevelM = optional.Some(float64(waterLevel) / 100.0)
	}
	if waterTrend != sentinelMHTrend {
		m.WaterLevelTrend = optional.Some(uint8(waterTrend))
	}
	if currentSpeed != 0xFF {
		m.CurrentSpeedKn = optional.Some(float64(currentSpeed) / 10.0)
	}
	if currentDir != sentinelMHDirection {
		m.CurrentDirection = optional.Some(float64(currentDir))
	}
	if waveHeight != 0xFF {
		m.WaveHeightM = optional.Some(float64(waveHeight) / 10.0)
	}
	if wavePeriod != 0x3F {
		m.WavePeriodS = optional.Some(float64(wavePeriod))
	}
	if waveDir != sentinelMHDirection {
		m.WaveDirection = optional.Some(float64(waveDir))
	}
	if swellHeight != 0xFF {
		m.SwellHeightM = optional.Some(float64(swellHeight) / 10.0)
	}
	if swellPeriod != 0x3F {
		m.SwellPeriodS = optional.Some(float64(swellPeriod))
	}
	if swellDir != sentinelMHDirection {
		m.SwellDirection = optional.Some(float64(swellDir))
	}
	if seaTemp != sentinelMHAirTemp {
		m.SeaTempC = optional.Some(float64(seaTemp) / 10.0)
	}
	if precip != sentinelMHPrecipType {
		m.PrecipitationType = optional.Some(uint8(precip))
	}
	if salinity != 0x1FF {
		m.SalinityPPT = optional.Some(float64(salinity) / 10.0)
	}
	if ice != sentinelMHIce {
		m.Ice = optional.Some(uint8(ice))
	}
	return m, nil
}

// Encode serializes the report back to its exact bit layout.
func (m *MetHydro) Encode() *bitvector.BitVector {
	b := bitvector.New(metHydroBits)
	_ = b.AppendInt(int64(m.Latitude*60000.0), 24)
	_ = b.AppendInt(int64(m.Longitude*60000.0), 25)
	_ = b.AppendUint(uint64(m.Day), 5)
	_ = b.AppendUint(uint64(m.Hour), 5)
	_ = b.AppendUint(uint64(m.Minute), 6)

	appendOptTenths(b, m.WindSpeedKn, 10, sentinelMHWind)
	appendOptTenths(b, m.WindGustKn, 10, sentinelMHWind)
	appendOptWhole(b, m.WindDirectionDeg, 9, sentinelMHDirection)
	appendOptTenthsSigned(b, m.AirTempC, 11, sentinelMHAirTemp)
	appendOptWhole(b, m.RelativeHumidity, 7, sentinelMHHumidity)
	appendOptTenthsSigned(b, m.DewPointC, 11, sentinelMHAirTemp)
	appendOptWhole(b, m.PressureHPa, 9, sentinelMHPressure)
	appendOptUint8(b, m.PressureTendency, 2, sentinelMHPressureTendency)
	appendOptTenths(b, m.VisibilityNM, 8, 0xFF)
	appendOptHundredthsSigned(b, m.WaterLevelM, 12, sentinelMHWaterLevel)
	appendOptUint8(b, m.WaterLevelTrend, 2, sentinelMHTrend)
	appendOptTenths(b, m.CurrentSpeedKn, 8, 0xFF)
	appendOptWhole(b, m.CurrentDirection, 9, sentinelMHDirection)
	appendOptTenths(b, m.WaveHeightM, 8, 0xFF)
	appendOptWhole(b, m.WavePeriodS, 6, 0x3F)
	appendOptWhole(b, m.WaveDirection, 9, sentinelMHDirection)
	appendOptTenths(b, m.SwellHeightM, 8, 0xFF)
	appendOptWhole(b, m.SwellPeriodS, 6, 0x3F)
	appendOptWhole(b, m.SwellDirection, 9, sentinelMHDirection)
	appendOptTenthsSigned(b, m.SeaTempC, 11, sentinelMHAirTemp)
	appendOptUint8(b, m.PrecipitationType, 3, sentinelMHPrecipType)
	appendOptTenths(b, m.SalinityPPT, 9, 0x1FF)
	appendOptUint8(b, m.Ice, 2, sentinelMHIce)
	return b
}

func appendOptTenths(b *bitvector.BitVector, v optional.Value[float64], width int, sentinel uint64) {
	val, ok := v.Get()
	if !ok {
		_ = b.AppendUint(sentinel, width)
		return
	}
	_ = b.AppendUint(uint64(val*10.0), width)
}

func appendOptWhole(b *bitvector.BitVector, v optional.Value[float64], width int, sentinel uint64) {
	val, ok := v.Get()
	if !ok {
		_ = b.AppendUint(sentinel, width)
		return
	}
	_ = b.AppendUint(uint64(val), width)
}

func appendOptTenthsSigned(b *bitvector.BitVector, v optional.Value[float64], width int, sentinel int64) {
	val, ok := v.Get()
	if !ok {
		_ = b.AppendInt(sentinel, width)
		return
	}
	_ = b.AppendInt(int64(val*10.0), width)
}

func appendOptHundredthsSigned(b *bitvector.BitVector, v optional.Value[float64], width int, sentinel int64) {
	val, ok := v.Get()
	if !ok {
		_ = b.AppendInt(sentinel, width)
		return
	}
	_ = b.AppendInt(int64(val*100.0), width)
}

func appendOptUint8(b *bitvector.BitVector, v optional.Value[uint8], width int, sentinel uint64) {
	val, ok := v.Get()
	if !ok {
		_ = b.AppendUint(sentinel, width)
		return
	}
	_ = b.AppendUint(uint64(val), width)
}
