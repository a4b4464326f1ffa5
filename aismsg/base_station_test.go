package aismsg

import (
	"testing"

	"github.com/tormol/aislib/optional"
)

func TestBaseStationReportRoundTrip(t *testing.T) {
	want := &BaseStationReport{
		MessageHeader:           Header{Type: 4, MMSI: 2655619},
		Year:             2024,
		Month:            3,
		Day:              15,
		Hour:             12,
		Minute:           30,
		Second:           0,
		PositionAccuracy: true,
		Longitude:        optional.Some(10.5),
		Latitude:         optional.Some(59.9),
		EPFDType:         1,
		RAIM:             true,
		RadioStatus:      4242,
	}
	bits, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bits.Size() != baseStationReportBits {
		t.Fatalf("size = %d, want %d", bits.Size(), baseStationReportBits)
	}
	got, err := decodeBaseStationReport(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Year != want.Year || got.Month != want.Month || got.Day != want.Day {
		t.Errorf("date = %d-%d-%d, want %d-%d-%d", got.Year, got.Month, got.Day, want.Year, want.Month, want.Day)
	}
	if got.EPFDType != want.EPFDType {
		t.Errorf("EPFD = %d, want %d", got.EPFDType, want.EPFDType)
	}
	if !got.RAIM {
		t.Error("RAIM should round trip as true")
	}
}

func TestBaseStationReportRejectsWrongType(t *testing.T) {
	msg := &BaseStationReport{MessageHeader: Header{Type: 1}}
	bits, _ := msg.Encode()
	if _, err := decodeBaseStationReport(bits); err == nil {
		t.Error("expected rejection of a non-type-4 header")
	}
}
