package aismsg

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
)

// BinaryAddressedMessage decodes message type 6: a variable-length binary
// payload addressed to a single destination MMSI, identified by a
// Designated Area Code / Function Identifier pair (spec.md §4.7, §9's
// application-data design note). The payload itself is left undecoded
// here; package application decodes the DAC=1 variants it knows about.
type BinaryAddressedMessage struct {
	MessageHeader Header

	SequenceNumber uint8
	DestMMSI       uint32
	Retransmit     bool
	DAC            uint16
	FI             uint8
	Payload        *bitvector.BitVector
}

const binaryAddressedMessageMinBits = 88

func (m *BinaryAddressedMessage) Header() Header { return m.MessageHeader }

func decodeBinaryAddressedMessage(b *bitvector.BitVector) (*BinaryAddressedMessage, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type != 6 {
		return nil, fmt.Errorf("%w: expected type 6, got %d", ErrWrongType, h.Type)
	}
	if b.Size() < binaryAddressedMessageMinBits {
		return nil, fmt.Errorf("%w: binary addressed message needs at least %d bits, got %d", ErrMalformedBits, binaryAddressedMessageMinBits, b.Size())
	}

	seq, _ := b.GetUint(38, 2)
	dest, _ := b.GetUint(40, 30)
	retransmit, _ := b.GetUint(70, 1)
	dac, _ := b.GetUint(72, 10)
	fi, _ := b.GetUint(82, 6)

	payload := bitvector.New(b.Size() - binaryAddressedMessageMinBits)
	if err := payload.AppendBits(b, binaryAddressedMessageMinBits, b.Size()-binaryAddressedMessageMinBits); err != nil {
		return nil, fmt.Errorf("%w: application payload: %v", ErrMalformedBits, err)
	}

	return &BinaryAddressedMessage{
		MessageHeader:  h,
		SequenceNumber: uint8(seq),
		DestMMSI:       uint32(dest),
		Retransmit:     retransmit != 0,
		DAC:            uint16(dac),
		FI:             uint8(fi),
		Payload:        payload,
	}, nil
}

// Encode serializes the message back to its layout; the application
// payload's length is whatever Payload currently holds.
func (m *BinaryAddressedMessage) Encode() (*bitvector.BitVector, error) {
	b := bitvector.New(binaryAddressedMessageMinBits + m.Payload.Size())
	if err := encodeHeader(b, m.MessageHeader); err != nil {
		return nil, err
	}
	_ = b.AppendUint(uint64(m.SequenceNumber), 2)
	_ = b.AppendUint(uint64(m.DestMMSI), 30)
	_ = b.AppendUint(boolBit(m.Retransmit), 1)
	_ = b.AppendUint(0, 1) // spare
	_ = b.AppendUint(uint64(m.DAC), 10)
	_ = b.AppendUint(uint64(m.FI), 6)
	if err := b.AppendBits(m.Payload, 0, m.Payload.Size()); err != nil {
		return nil, fmt.Errorf("application payload: %w", err)
	}
	return b, nil
}
