package aismsg

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
	"github.com/tormol/aislib/optional"
)

// ClassBPositionReport decodes message type 18: the Standard Class B
// Position Report, 168 bits total (spec.md §4.7). It shares several
// field names with ClassAPositionReport but has no rate-of-turn or
// navigational-status fields, and adds Class B's capability flags.
type ClassBPositionReport struct {
	MessageHeader Header

	SOG              optional.Value[float64]
	PositionAccuracy bool
	Longitude        optional.Value[float64]
	Latitude         optional.Value[float64]
	COG              optional.Value[float64]
	TrueHeading      optional.Value[float64]
	Timestamp        uint8
	CSUnit           bool // true = Class B "CS" (carrier-sense) unit
	DisplayFlag      bool
	DSCFlag          bool
	BandFlag         bool
	Msg22Flag        bool
	Assigned         bool
	RAIM             bool
	RadioStatus      uint32
}

const classBPositionReportBits = 168

func (m *ClassBPositionReport) Header() Header { return m.MessageHeader }

func decodeClassBPositionReport(b *bitvector.BitVector) (*ClassBPositionReport, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type != 18 {
		return nil, fmt.Errorf("%w: expected type 18, got %d", ErrWrongType, h.Type)
	}
	if b.Size() < classBPositionReportBits {
		return nil, fmt.Errorf("%w: class B position report needs %d bits, got %d", ErrMalformedBits, classBPositionReportBits, b.Size())
	}

	sog, _ := b.GetUint(46, 10)
	accuracy, _ := b.GetUint(56, 1)
	lon, _ := b.GetInt(57, 28)
	lat, _ := b.GetInt(85, 27)
	cog, _ := b.GetUint(112, 12)
	heading, _ := b.GetUint(124, 9)
	ts, _ := b.GetUint(133, 6)
	cs, _ := b.GetUint(141, 1)
	display, _ := b.GetUint(142, 1)
	dsc, _ := b.GetUint(143, 1)
	band, _ := b.GetUint(144, 1)
	msg22, _ := b.GetUint(145, 1)
	assigned, _ := b.GetUint(146, 1)
	raim, _ := b.GetUint(147, 1)
	radio, _ := b.GetUint(148, 20)

	return &ClassBPositionReport{
		MessageHeader:    h,
		SOG:              decodeSOG(sog),
		PositionAccuracy: accuracy != 0,
		Longitude:        decodeLongitude(lon),
		Latitude:         decodeLatitude(lat),
		COG:              decodeCOG(cog),
		TrueHeading:      decodeHeading(heading),
		Timestamp:        uint8(ts),
		CSUnit:           cs != 0,
		DisplayFlag:      display != 0,
		DSCFlag:          dsc != 0,
		BandFlag:         band != 0,
		Msg22Flag:        msg22 != 0,
		Assigned:         assigned != 0,
		RAIM:             raim != 0,
		RadioStatus:      uint32(radio),
	}, nil
}

// Encode serializes the report back to its exact 168-bit layout.
func (m *ClassBPositionReport) Encode() (*bitvector.BitVector, error) {
	b := bitvector.New(classBPositionReportBits)
	if err := encodeHeader(b, m.MessageHeader); err != nil {
		return nil, err
	}
	_ = b.AppendUint(0, 8) // reserved
	_ = b.AppendUint(encodeSOG(m.SOG), 10)
	_ = b.AppendUint(boolBit(m.PositionAccuracy), 1)
	_ = b.AppendInt(encodeLongitude(m.Longitude), 28)
	_ = b.AppendInt(encodeLatitude(m.Latitude), 27)
	_ = b.AppendUint(encodeCOG(m.COG), 12)
	_ = b.AppendUint(encodeHeading(m.TrueHeading), 9)
	_ = b.AppendUint(uint64(m.Timestamp), 6)
	_ = b.AppendUint(0, 2) // regional reserved
	_ = b.AppendUint(boolBit(m.CSUnit), 1)
	_ = b.AppendUint(boolBit(m.DisplayFlag), 1)
	_ = b.AppendUint(boolBit(m.DSCFlag), 1)
	_ = b.AppendUint(boolBit(m.BandFlag), 1)
	_ = b.AppendUint(boolBit(m.Msg22Flag), 1)
	_ = b.AppendUint(boolBit(m.Assigned), 1)
	_ = b.AppendUint(boolBit(m.RAIM), 1)
	_ = b.AppendUint(uint64(m.RadioStatus), 20)
	return b, nil
}
