package aismsg

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
	"github.com/tormol/aislib/optional"
)

// ClassAPositionReport decodes message types 1, 2 and 3 (spec.md §4.7).
// All three share this exact 168-bit layout; only the type code differs.
type ClassAPositionReport struct {
	MessageHeader Header

	NavStatus       uint8 // 0-15, 15 = undefined
	RateOfTurn      float64 // deg/min; NaN = not available, +-Inf = saturated
	SOG             optional.Value[float64] // knots
	PositionAccuracy bool
	Longitude       optional.Value[float64] // degrees
	Latitude        optional.Value[float64] // degrees
	COG             optional.Value[float64] // degrees true
	TrueHeading     optional.Value[float64] // degrees
	Timestamp       uint8 // 0-59 UTC second, 60-63 special states
	SpecialManeuver uint8 // 0 = N/A, 1 = not engaged, 2 = engaged
	RAIM            bool
	RadioStatus     uint32 // opaque, 19 bits
}

const classAPositionReportBits = 168

func (m *ClassAPositionReport) Header() Header { return m.MessageHeader }

func decodeClassAPositionReport(b *bitvector.BitVector) (*ClassAPositionReport, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type != 1 && h.Type != 2 && h.Type != 3 {
		return nil, fmt.Errorf("%w: expected type 1, 2 or 3, got %d", ErrWrongType, h.Type)
	}
	if b.Size() < classAPositionReportBits {
		return nil, fmt.Errorf("%w: class A position report needs %d bits, got %d", ErrMalformedBits, classAPositionReportBits, b.Size())
	}

	nav, _ := b.GetUint(38, 4)
	rot, _ := b.GetInt(42, 8)
	sog, _ := b.GetUint(50, 10)
	accuracy, _ := b.GetUint(60, 1)
	lon, _ := b.GetInt(61, 28)
	lat, _ := b.GetInt(89, 27)
	cog, _ := b.GetUint(116, 12)
	heading, _ := b.GetUint(128, 9)
	ts, _ := b.GetUint(137, 6)
	maneuver, _ := b.GetUint(143, 2)
	raim, _ := b.GetUint(148, 1)
	radio, _ := b.GetUint(149, 19)

	return &ClassAPositionReport{
		MessageHeader:    h,
		NavStatus:        uint8(nav),
		RateOfTurn:       decodeRateOfTurn(rot),
		SOG:              decodeSOG(sog),
		PositionAccuracy: accuracy != 0,
		Longitude:        decodeLongitude(lon),
		Latitude:         decodeLatitude(lat),
		COG:              decodeCOG(cog),
		TrueHeading:      decodeHeading(heading),
		Timestamp:        uint8(ts),
		SpecialManeuver:  uint8(maneuver),
		RAIM:             raim != 0,
		RadioStatus:      uint32(radio),
	}, nil
}

// Encode serializes the report back to its exact 168-bit layout.
func (m *ClassAPositionReport) Encode() (*bitvector.BitVector, error) {
	b := bitvector.New(classAPositionReportBits)
	if err := encodeHeader(b, m.MessageHeader); err != nil {
		return nil, err
	}
	_ = b.AppendUint(uint64(m.NavStatus), 4)
	_ = b.AppendInt(encodeRateOfTurn(m.RateOfTurn), 8)
	_ = b.AppendUint(encodeSOG(m.SOG), 10)
	_ = b.AppendUint(boolBit(m.PositionAccuracy), 1)
	_ = b.AppendInt(encodeLongitude(m.Longitude), 28)
	_ = b.AppendInt(encodeLatitude(m.Latitude), 27)
	_ = b.AppendUint(encodeCOG(m.COG), 12)
	_ = b.AppendUint(encodeHeading(m.TrueHeading), 9)
	_ = b.AppendUint(uint64(m.Timestamp), 6)
	_ = b.AppendUint(uint64(m.SpecialManeuver), 2)
	_ = b.AppendUint(0, 3) // spare
	_ = b.AppendUint(boolBit(m.RAIM), 1)
	_ = b.AppendUint(uint64(m.RadioStatus), 19)
	return b, nil
}

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}
