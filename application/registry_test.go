package application

import (
	"errors"
	"testing"

	"github.com/tormol/aislib/geo"
)

func TestDecodeDispatchesAreaNotice(t *testing.T) {
	notice := &AreaNotice{
		NoticeType:  NoticeCautionDiving,
		DurationMin: 60,
		Subareas: []Subarea{
			CircleSubarea{commonSubarea: commonSubarea{Position: geo.Point{Lat: 1, Long: 2}}, RadiusMeters: 100},
		},
	}
	decoded, err := Decode(1, 22, notice.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, ok := decoded.(*AreaNotice)
	if !ok {
		t.Fatalf("Decode returned %T, want *AreaNotice", decoded)
	}
	if got.NoticeType != notice.NoticeType {
		t.Errorf("notice type = %d, want %d", got.NoticeType, notice.NoticeType)
	}
}

func TestDecodeDispatchesMetHydro(t *testing.T) {
	mh := &MetHydro{Latitude: 1, Longitude: 2}
	decoded, err := Decode(1, 31, mh.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := decoded.(*MetHydro); !ok {
		t.Fatalf("Decode returned %T, want *MetHydro", decoded)
	}
}

func TestDecodeUnknownApplication(t *testing.T) {
	if Registered(99, 99) {
		t.Error("dac=99 fi=99 should not be registered")
	}
	if _, err := Decode(99, 99, nil); !errors.Is(err, ErrUnknownApplication) {
		t.Errorf("err = %v, want ErrUnknownApplication", err)
	}
}
