// Package aismsg implements the message-type registry (C5) and the
// variant codecs (C6): a tagged union over the AIS message types this
// library supports, dispatched through a static table keyed by the 6-bit
// type code at bit offset 0, per spec.md §4.4 and §9's "static dispatch
// table ... built once" design note.
package aismsg

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
)

// Message is implemented by every supported variant. Header returns the
// universal header fields every AIS message carries; Encode re-serializes
// the variant to its exact bit layout.
type Message interface {
	Header() Header
	Encode() (*bitvector.BitVector, error)
}

// Header holds the fields every variant carries at a fixed offset:
// message-type code, repeat indicator, and MMSI.
type Header struct {
	Type           uint8
	RepeatIndicator uint8
	MMSI           uint32
}

const headerBits = 38 // 6 + 2 + 30

func decodeHeader(b *bitvector.BitVector) (Header, error) {
	if b.Size() < headerBits {
		return Header{}, fmt.Errorf("%w: need at least %d bits for the header, got %d", ErrMalformedBits, headerBits, b.Size())
	}
	typ, _ := b.GetUint(0, 6)
	rep, _ := b.GetUint(6, 2)
	mmsi, _ := b.GetUint(8, 30)
	return Header{Type: uint8(typ), RepeatIndicator: uint8(rep), MMSI: uint32(mmsi)}, nil
}

func encodeHeader(b *bitvector.BitVector, h Header) error {
	if err := b.AppendUint(uint64(h.Type), 6); err != nil {
		return err
	}
	if err := b.AppendUint(uint64(h.RepeatIndicator), 2); err != nil {
		return err
	}
	return b.AppendUint(uint64(h.MMSI), 30)
}

// Errors surfaced by decode (C6 common contract) and the registry (C5).
var (
	ErrUnsupportedType = fmt.Errorf("unsupported message type")
	ErrMalformedBits   = fmt.Errorf("malformed bit buffer")
	ErrWrongType       = fmt.Errorf("wrong message type")
)

type decoderFunc func(*bitvector.BitVector) (Message, error)

// registry is the static dispatch table from §4.4/§9: built once, at
// package initialization, and never mutated afterwards. There is no
// process-wide registration API to add to it at runtime, unlike the
// singleton registry spec.md §9 says the source used.
var registry = map[uint8]decoderFunc{
	1:  func(b *bitvector.BitVector) (Message, error) { return decodeClassAPositionReport(b) },
	2:  func(b *bitvector.BitVector) (Message, error) { return decodeClassAPositionReport(b) },
	3:  func(b *bitvector.BitVector) (Message, error) { return decodeClassAPositionReport(b) },
	4:  func(b *bitvector.BitVector) (Message, error) { return decodeBaseStationReport(b) },
	5:  func(b *bitvector.BitVector) (Message, error) { return decodeStaticVoyageData(b) },
	6:  func(b *bitvector.BitVector) (Message, error) { return decodeBinaryAddressedMessage(b) },
	8:  func(b *bitvector.BitVector) (Message, error) { return decodeBinaryBroadcastMessage(b) },
	18: func(b *bitvector.BitVector) (Message, error) { return decodeClassBPositionReport(b) },
	19: func(b *bitvector.BitVector) (Message, error) { return decodeClassBExtendedPositionReport(b) },
}

// Decode looks up the 6-bit type code at bit offset 0 of bits and
// dispatches to the matching variant's decoder.
func Decode(bits *bitvector.BitVector) (Message, error) {
	if bits.Size() < 6 {
		return nil, fmt.Errorf("%w: need at least 6 bits for the type code, got %d", ErrMalformedBits, bits.Size())
	}
	code, _ := bits.GetUint(0, 6)
	ctor, ok := registry[uint8(code)]
	if !ok {
		return nil, fmt.Errorf("%w: type code %d", ErrUnsupportedType, code)
	}
	return ctor(bits)
}

// Registered reports whether code has a registered decoder, without
// attempting to decode anything.
func Registered(code uint8) bool {
	_, ok := registry[code]
	return ok
}
