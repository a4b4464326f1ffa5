package aismsg

import (
	"fmt"
	"strings"

	"github.com/tormol/aislib/bitvector"
)

// StaticVoyageData decodes message type 5: a vessel's static and voyage
// related data, 424 bits total (spec.md §4.7).
type StaticVoyageData struct {
	MessageHeader Header

	AISVersion     uint8
	IMONumber      uint32
	Callsign       string
	VesselName     string
	ShipType       uint8
	DimToBow       uint16
	DimToStern     uint16
	DimToPort      uint8
	DimToStarboard uint8
	EPFDType       uint8
	ETAMonth       uint8 // 0 = N/A
	ETADay         uint8 // 0 = N/A
	ETAHour        uint8 // 24 = N/A
	ETAMinute      uint8 // 60 = N/A
	Draught        float64
	Destination    string
	DTE            bool // true = data terminal not ready
}

const staticVoyageDataBits = 424

func (m *StaticVoyageData) Header() Header { return m.MessageHeader }

func decodeStaticVoyageData(b *bitvector.BitVector) (*StaticVoyageData, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type != 5 {
		return nil, fmt.Errorf("%w: expected type 5, got %d", ErrWrongType, h.Type)
	}
	if b.Size() < staticVoyageDataBits {
		return nil, fmt.Errorf("%w: static voyage data needs %d bits, got %d", ErrMalformedBits, staticVoyageDataBits, b.Size())
	}

	version, _ := b.GetUint(38, 2)
	imo, _ := b.GetUint(40, 30)
	callsign, _ := b.GetString(70, 42)
	name, _ := b.GetString(112, 120)
	shipType, _ := b.GetUint(232, 8)
	bow, _ := b.GetUint(240, 9)
	stern, _ := b.GetUint(249, 9)
	port, _ := b.GetUint(258, 6)
	starboard, _ := b.GetUint(264, 6)
	epfd, _ := b.GetUint(270, 4)
	month, _ := b.GetUint(274, 4)
	day, _ := b.GetUint(278, 5)
	hour, _ := b.GetUint(283, 5)
	minute, _ := b.GetUint(288, 6)
	draught, _ := b.GetUint(294, 8)
	destination, _ := b.GetString(302, 120)
	dte, _ := b.GetUint(422, 1)

	return &StaticVoyageData{
		MessageHeader:  h,
		AISVersion:     uint8(version),
		IMONumber:      uint32(imo),
		Callsign:       strings.TrimRight(callsign, " "),
		VesselName:     strings.TrimRight(name, " "),
		ShipType:       uint8(shipType),
		DimToBow:       uint16(bow),
		DimToStern:     uint16(stern),
		DimToPort:      uint8(port),
		DimToStarboard: uint8(starboard),
		EPFDType:       uint8(epfd),
		ETAMonth:       uint8(month),
		ETADay:         uint8(day),
		ETAHour:        uint8(hour),
		ETAMinute:      uint8(minute),
		Draught:        float64(draught) / 10.0,
		Destination:    strings.TrimRight(destination, " "),
		DTE:            dte != 0,
	}, nil
}

// Encode serializes the report back to its exact 424-bit layout.
func (m *StaticVoyageData) Encode() (*bitvector.BitVector, error) {
	b := bitvector.New(staticVoyageDataBits)
	if err := encodeHeader(b, m.MessageHeader); err != nil {
		return nil, err
	}
	_ = b.AppendUint(uint64(m.AISVersion), 2)
	_ = b.AppendUint(uint64(m.IMONumber), 30)
	if err := b.AppendString(m.Callsign, 42); err != nil {
		return nil, fmt.Errorf("callsign: %w", err)
	}
	if err := b.AppendString(m.VesselName, 120); err != nil {
		return nil, fmt.Errorf("vessel name: %w", err)
	}
	_ = b.AppendUint(uint64(m.ShipType), 8)
	_ = b.AppendUint(uint64(m.DimToBow), 9)
	_ = b.AppendUint(uint64(m.DimToStern), 9)
	_ = b.AppendUint(uint64(m.DimToPort), 6)
	_ = b.AppendUint(uint64(m.DimToStarboard), 6)
	_ = b.AppendUint(uint64(m.EPFDType), 4)
	_ = b.AppendUint(uint64(m.ETAMonth), 4)
	_ = b.AppendUint(uint64(m.ETADay), 5)
	_ = b.AppendUint(uint64(m.ETAHour), 5)
	_ = b.AppendUint(uint64(m.ETAMinute), 6)
	_ = b.AppendUint(clampDraught(m.Draught), 8)
	if err := b.AppendString(m.Destination, 120); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	_ = b.AppendUint(boolBit(m.DTE), 1)
	_ = b.AppendUint(0, 1) // spare
	return b, nil
}
