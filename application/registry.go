package application

import (
	"fmt"

	"github.com/tormol/aislib/bitvector"
)

// ErrUnknownApplication classifies Decode calls for a (dac, fi) pair
// this package has no decoder registered for.
var ErrUnknownApplication = fmt.Errorf("unknown DAC/FI application")

// appKey identifies one application payload format by its Designated
// Area Code and Function Identifier, the same pair aismsg.BinaryAddressedMessage
// and aismsg.BinaryBroadcastMessage carry alongside their raw Payload.
type appKey struct {
	DAC uint16
	FI  uint8
}

type appDecoderFunc func(*bitvector.BitVector) (interface{}, error)

// registry mirrors aismsg's own static dispatch table (spec.md §4.4/§9),
// but keyed by application identity rather than message type, since
// DAC/FI selects a payload format riding inside a binary message, not a
// message type of its own. Built once; never mutated after init.
var registry = map[appKey]appDecoderFunc{
	{DAC: 1, FI: 22}: func(b *bitvector.BitVector) (interface{}, error) { return DecodeAreaNotice(b) },
	{DAC: 1, FI: 31}: func(b *bitvector.BitVector) (interface{}, error) { return DecodeMetHydro(b) },
}

// Decode dispatches payload to the registered decoder for (dac, fi),
// returning *AreaNotice, *MetHydro, or ErrUnknownApplication for any
// pair not registered here. Callers that already know which application
// they expect can call DecodeAreaNotice/DecodeMetHydro directly and skip
// the type assertion this generic entry point requires.
func Decode(dac uint16, fi uint8, payload *bitvector.BitVector) (interface{}, error) {
	decode, ok := registry[appKey{DAC: dac, FI: fi}]
	if !ok {
		return nil, fmt.Errorf("%w: dac=%d fi=%d", ErrUnknownApplication, dac, fi)
	}
	return decode(payload)
}

// Registered reports whether Decode has a decoder for (dac, fi).
func Registered(dac uint16, fi uint8) bool {
	_, ok := registry[appKey{DAC: dac, FI: fi}]
	return ok
}
