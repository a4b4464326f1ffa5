package aismsg

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
)

// BinaryBroadcastMessage decodes message type 8: a variable-length binary
// payload broadcast to all receivers in range, identified by the same
// DAC/FI pair as type 6 (spec.md §4.7).
type BinaryBroadcastMessage struct {
	MessageHeader Header

	DAC     uint16
	FI      uint8
	Payload *bitvector.BitVector
}

const binaryBroadcastMessageMinBits = 56

func (m *BinaryBroadcastMessage) Header() Header { return m.MessageHeader }

func decodeBinaryBroadcastMessage(b *bitvector.BitVector) (*BinaryBroadcastMessage, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type != 8 {
		return nil, fmt.Errorf("%w: expected type 8, got %d", ErrWrongType, h.Type)
	}
	if b.Size() < binaryBroadcastMessageMinBits {
		return nil, fmt.Errorf("%w: binary broadcast message needs at least %d bits, got %d", ErrMalformedBits, binaryBroadcastMessageMinBits, b.Size())
	}

	dac, _ := b.GetUint(40, 10)
	fi, _ := b.GetUint(50, 6)

	payload := bitvector.New(b.Size() - binaryBroadcastMessageMinBits)
	if err := payload.AppendBits(b, binaryBroadcastMessageMinBits, b.Size()-binaryBroadcastMessageMinBits); err != nil {
		return nil, fmt.Errorf("%w: application payload: %v", ErrMalformedBits, err)
	}

	return &BinaryBroadcastMessage{
		MessageHeader: h,
		DAC:           uint16(dac),
		FI:            uint8(fi),
		Payload:       payload,
	}, nil
}

// Encode serializes the message back to its layout.
func (m *BinaryBroadcastMessage) Encode() (*bitvector.BitVector, error) {
	b := bitvector.New(binaryBroadcastMessageMinBits + m.Payload.Size())
	if err := encodeHeader(b, m.MessageHeader); err != nil {
		return nil, err
	}
	_ = b.AppendUint(0, 2) // spare
	_ = b.AppendUint(uint64(m.DAC), 10)
	_ = b.AppendUint(uint64(m.FI), 6)
	if err := b.AppendBits(m.Payload, 0, m.Payload.Size()); err != nil {
		return nil, fmt.Errorf("application payload: %w", err)
	}
	return b, nil
}
