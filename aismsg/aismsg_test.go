package aismsg

import (
	"errors"
	"testing"
)

func TestDecodeDispatchesByType(t *testing.T) {
	msg := &ClassAPositionReport{MessageHeader: Header{Type: 1, MMSI: 123456789}}
	bits, err := msg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(bits)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := decoded.(*ClassAPositionReport); !ok {
		t.Errorf("Decode returned %T, want *ClassAPositionReport", decoded)
	}
	if decoded.Header().MMSI != 123456789 {
		t.Errorf("MMSI = %d, want 123456789", decoded.Header().MMSI)
	}
}

func TestDecodeUnsupportedType(t *testing.T) {
	msg := &BaseStationReport{MessageHeader: Header{Type: 99}}
	bits, err := msg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(bits); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestRegistered(t *testing.T) {
	for _, code := range []uint8{1, 2, 3, 4, 5, 6, 8, 18, 19} {
		if !Registered(code) {
			t.Errorf("type %d should be registered", code)
		}
	}
	if Registered(100) {
		t.Error("type 100 should not be registered")
	}
}
