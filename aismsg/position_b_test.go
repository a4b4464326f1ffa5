package aismsg

import (
	"testing"

	"github.com/tormol/aislib/optional"
)

func TestClassBPositionReportRoundTrip(t *testing.T) {
	want := &ClassBPositionReport{
		MessageHeader:           Header{Type: 18, MMSI: 338123456},
		SOG:              optional.Some(5.5),
		PositionAccuracy: false,
		Longitude:        optional.Some(-74.0),
		Latitude:         optional.Some(40.7),
		COG:              optional.Some(180.0),
		TrueHeading:      optional.Some(180.0),
		Timestamp:        12,
		CSUnit:           true,
		DisplayFlag:      false,
		DSCFlag:          true,
		BandFlag:         true,
		Msg22Flag:        false,
		Assigned:         false,
		RAIM:             false,
		RadioStatus:      999,
	}
	bits, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bits.Size() != classBPositionReportBits {
		t.Fatalf("size = %d, want %d", bits.Size(), classBPositionReportBits)
	}
	got, err := decodeClassBPositionReport(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.CSUnit || !got.DSCFlag || !got.BandFlag {
		t.Errorf("flags did not round trip: %+v", got)
	}
	if got.RadioStatus != want.RadioStatus {
		t.Errorf("radio status = %d, want %d", got.RadioStatus, want.RadioStatus)
	}
}

func TestClassBExtendedPositionReportRoundTrip(t *testing.T) {
	want := &ClassBExtendedPositionReport{
		MessageHeader:           Header{Type: 19, MMSI: 338123457},
		SOG:              optional.Some(8.2),
		PositionAccuracy: true,
		Longitude:        optional.Some(12.34),
		Latitude:         optional.Some(55.67),
		COG:              optional.Some(90.0),
		TrueHeading:      optional.Some(91.0),
		Timestamp:        45,
		VesselName:       "TEST VESSEL",
		ShipType:         36,
		DimToBow:         15,
		DimToStern:       5,
		DimToPort:        3,
		DimToStarboard:   3,
		EPFDType:         1,
		RAIM:             true,
		DTE:              false,
		Assigned:         true,
	}
	bits, err := want.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bits.Size() != classBExtendedPositionReportBits {
		t.Fatalf("size = %d, want %d", bits.Size(), classBExtendedPositionReportBits)
	}
	got, err := decodeClassBExtendedPositionReport(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.VesselName != want.VesselName {
		t.Errorf("vessel name = %q, want %q", got.VesselName, want.VesselName)
	}
	if !got.RAIM || !got.Assigned {
		t.Errorf("flags did not round trip: %+v", got)
	}
}
