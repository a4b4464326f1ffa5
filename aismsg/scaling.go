package aismsg

import (
	"math"

	"github.com/tormol/aislib/optional"
)

// Sentinel raw values from spec.md §4.7.
const (
	sentinelLongitude = 0x6791AC0 // 181 degrees
	sentinelLatitude  = 0x3412140 // 91 degrees
	sentinelSOG       = 1023
	sentinelCOG       = 3600
	sentinelHeading   = 511
	sentinelROT       = -128
)

// decodeLongitude converts the raw 28-bit signed field (1/10000 minute)
// to degrees, or None if it carries the "not available" sentinel.
func decodeLongitude(raw int64) optional.Value[float64] {
	if raw == sentinelLongitude {
		return optional.None[float64]()
	}
	return optional.Some(float64(raw) / 600000.0)
}

// encodeLongitude is the inverse of decodeLongitude, clamped to the
// sentinel if the value is absent or out of the valid [-180,180] domain.
func encodeLongitude(v optional.Value[float64]) int64 {
	deg, ok := v.Get()
	if !ok || deg < -180 || deg > 180 {
		return sentinelLongitude
	}
	return int64(math.Round(deg * 600000.0))
}

func decodeLatitude(raw int64) optional.Value[float64] {
	if raw == sentinelLatitude {
		return optional.None[float64]()
	}
	return optional.Some(float64(raw) / 600000.0)
}

func encodeLatitude(v optional.Value[float64]) int64 {
	deg, ok := v.Get()
	if !ok || deg < -90 || deg > 90 {
		return sentinelLatitude
	}
	return int64(math.Round(deg * 600000.0))
}

// decodeSOG converts the raw 10-bit field (tenths of a knot) to knots.
// Raw 1023 is "not available"; raw 1022 means "speed is 102.2 knots or
// faster", which this library surfaces as exactly 102.2 (spec.md §4.7:
// "clamp high").
func decodeSOG(raw uint64) optional.Value[float64] {
	if raw == sentinelSOG {
		return optional.None[float64]()
	}
	return optional.Some(float64(raw) / 10.0)
}

// encodeSOG clamps rather than sets "not available" for out-of-domain
// values, per spec.md §4.6's exception list for SOG/COG/draught.
func encodeSOG(v optional.Value[float64]) uint64 {
	kn, ok := v.Get()
	if !ok {
		return sentinelSOG
	}
	if kn < 0 {
		kn = 0
	}
	if kn > 102.2 {
		return 1022
	}
	return uint64(math.Round(kn * 10.0))
}

// decodeCOG converts the raw 12-bit field (tenths of a degree) to degrees.
func decodeCOG(raw uint64) optional.Value[float64] {
	if raw == sentinelCOG {
		return optional.None[float64]()
	}
	return optional.Some(float64(raw) / 10.0)
}

// encodeCOG normalizes the input modulo 360 rather than rejecting it,
// per spec.md §4.7 ("normalize input mod 360").
func encodeCOG(v optional.Value[float64]) uint64 {
	deg, ok := v.Get()
	if !ok {
		return sentinelCOG
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return uint64(math.Round(deg * 10.0))
}

func decodeHeading(raw uint64) optional.Value[float64] {
	if raw == sentinelHeading {
		return optional.None[float64]()
	}
	return optional.Some(float64(raw))
}

func encodeHeading(v optional.Value[float64]) uint64 {
	deg, ok := v.Get()
	if !ok || deg < 0 || deg > 359 {
		return sentinelHeading
	}
	return uint64(math.Round(deg))
}

// decodeRateOfTurn implements the ROT square-law scale (spec.md §4.7):
// v = sign(raw) * (raw/4.733)^2 deg/min. Raw -128 is "not available"
// (NaN), magnitudes above 708 deg/min (raw +-127) are +-infinity.
func decodeRateOfTurn(raw int64) float64 {
	switch raw {
	case sentinelROT:
		return math.NaN()
	case 127:
		return math.Inf(1)
	case -127:
		return math.Inf(-1)
	case 0:
		return 0
	}
	magnitude := math.Pow(float64(abs64(raw))/4.733, 2)
	if raw < 0 {
		return -magnitude
	}
	return magnitude
}

// encodeRateOfTurn is decodeRateOfTurn's inverse. Raw is rounded to the
// nearest integer (spec.md §9 Open Question: "the source's encoding ...
// rounds (v/4.733)^2 to the nearest integer"; this library keeps that
// rule and documents it rather than guessing a different one). Magnitudes
// above 708 deg/min saturate to +-127 rather than rounding past it.
func encodeRateOfTurn(v float64) int64 {
	if math.IsNaN(v) {
		return sentinelROT
	}
	if math.IsInf(v, 1) {
		return 127
	}
	if math.IsInf(v, -1) {
		return -127
	}
	if v == 0 {
		return 0
	}
	magnitude := math.Sqrt(math.Abs(v)) * 4.733
	raw := int64(math.Round(magnitude))
	if raw > 126 || math.Abs(v) > 708 {
		raw = 127
	}
	if v < 0 {
		return -raw
	}
	return raw
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// clampDraught implements the 0.1 m draught field's clamp-not-N/A policy
// (spec.md §4.6/§4.7, range 0-25.5 m).
func clampDraught(meters float64) uint64 {
	if meters < 0 {
		meters = 0
	}
	if meters > 25.5 {
		meters = 25.5
	}
	return uint64(math.Round(meters * 10.0))
}
