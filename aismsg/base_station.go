package aismsg

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
	"github.com/tormol/aislib/optional"
)

// BaseStationReport decodes message type 4: a base station's own position
// and the UTC time it is broadcasting, 168 bits total (spec.md §4.7).
type BaseStationReport struct {
	MessageHeader Header

	Year             uint16 // 0 = N/A, otherwise UTC year
	Month            uint8  // 0 = N/A, 1-12
	Day              uint8  // 0 = N/A, 1-31
	Hour             uint8  // 24 = N/A, 0-23
	Minute           uint8  // 60 = N/A, 0-59
	Second           uint8  // 60 = N/A, 0-59
	PositionAccuracy bool
	Longitude        optional.Value[float64]
	Latitude         optional.Value[float64]
	EPFDType         uint8 // positioning device fix type, 0-15
	RAIM             bool
	RadioStatus      uint32
}

const baseStationReportBits = 168

func (m *BaseStationReport) Header() Header { return m.MessageHeader }

func decodeBaseStationReport(b *bitvector.BitVector) (*BaseStationReport, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type != 4 {
		return nil, fmt.Errorf("%w: expected type 4, got %d", ErrWrongType, h.Type)
	}
	if b.Size() < baseStationReportBits {
		return nil, fmt.Errorf("%w: base station report needs %d bits, got %d", ErrMalformedBits, baseStationReportBits, b.Size())
	}

	year, _ := b.GetUint(38, 14)
	month, _ := b.GetUint(52, 4)
	day, _ := b.GetUint(56, 5)
	hour, _ := b.GetUint(61, 5)
	minute, _ := b.GetUint(66, 6)
	second, _ := b.GetUint(72, 6)
	accuracy, _ := b.GetUint(78, 1)
	lon, _ := b.GetInt(79, 28)
	lat, _ := b.GetInt(107, 27)
	epfd, _ := b.GetUint(134, 4)
	raim, _ := b.GetUint(148, 1)
	radio, _ := b.GetUint(149, 19)

	return &BaseStationReport{
		MessageHeader:    h,
		Year:             uint16(year),
		Month:            uint8(month),
		Day:              uint8(day),
		Hour:             uint8(hour),
		Minute:           uint8(minute),
		Second:           uint8(second),
		PositionAccuracy: accuracy != 0,
		Longitude:        decodeLongitude(lon),
		Latitude:         decodeLatitude(lat),
		EPFDType:         uint8(epfd),
		RAIM:             raim != 0,
		RadioStatus:      uint32(radio),
	}, nil
}

// Encode serializes the report back to its exact 168-bit layout.
func (m *BaseStationReport) Encode() (*bitvector.BitVector, error) {
	b := bitvector.New(baseStationReportBits)
	if err := encodeHeader(b, m.MessageHeader); err != nil {
		return nil, err
	}
	_ = b.AppendUint(uint64(m.Year), 14)
	_ = b.AppendUint(uint64(m.Month), 4)
	_ = b.AppendUint(uint64(m.Day), 5)
	_ = b.AppendUint(uint64(m.Hour), 5)
	_ = b.AppendUint(uint64(m.Minute), 6)
	_ = b.AppendUint(uint64(m.Second), 6)
	_ = b.AppendUint(boolBit(m.PositionAccuracy), 1)
	_ = b.AppendInt(encodeLongitude(m.Longitude), 28)
	_ = b.AppendInt(encodeLatitude(m.Latitude), 27)
	_ = b.AppendUint(uint64(m.EPFDType), 4)
	_ = b.AppendUint(0, 10) // spare
	_ = b.AppendUint(boolBit(m.RAIM), 1)
	_ = b.AppendUint(uint64(m.RadioStatus), 19)
	return b, nil
}
