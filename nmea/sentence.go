// Package nmea implements the NMEA 0183 sentence framer for AIS traffic:
// XOR checksum validation and emission, field splitting, and construction
// of !AIVDM/!AIVDO envelopes. It knows nothing about AIS bit layouts; it
// only moves text fields in and out of the envelope that carries them.
package nmea

import (
	"fmt"
	"strconv"
	"strings"
)

// Talker identifies which tag introduced a sentence: AIVDM for messages
// received over the air, AIVDO for the station's own transmissions. Both
// carry identical field layouts.
type Talker string

const (
	TalkerAIVDM Talker = "AIVDM" // received
	TalkerAIVDO Talker = "AIVDO" // own transmission
)

// Channel is the AIS VHF channel a sentence was heard on or is destined for.
type Channel byte

const (
	ChannelA    Channel = 'A'
	ChannelB    Channel = 'B'
	ChannelNone Channel = 0 // empty channel field
)

// Fields holds the values split out of one !AIVDM/!AIVDO sentence.
type Fields struct {
	Talker          Talker
	FragmentCount   int
	FragmentNumber  int // 1-based
	GroupID         string // empty if the field was empty
	Channel         Channel
	Payload         string
	FillBits        int
}

// Checksum computes the XOR of every byte between the leading sentence
// character ('!' or '$', exclusive) and the '*' (exclusive).
func Checksum(between []byte) byte {
	var sum byte
	for _, b := range between {
		sum ^= b
	}
	return sum
}

// ValidateChecksum finds the trailing "*HH", recomputes the XOR checksum
// over the characters between the leading '!'/'$' and '*', and reports
// whether they match. It fails if there's no leading sentence character,
// no '*', or the two characters after it aren't valid hex digits.
func ValidateChecksum(line string) error {
	if len(line) == 0 || (line[0] != '!' && line[0] != '$') {
		return fmt.Errorf("%w: sentence does not start with '!' or '$'", ErrInvalidChecksum)
	}
	star := strings.LastIndexByte(line, '*')
	if star == -1 || star+2 >= len(line) {
		return fmt.Errorf("%w: missing or truncated '*HH' checksum", ErrInvalidChecksum)
	}
	want, err := strconv.ParseUint(line[star+1:star+3], 16, 8)
	if err != nil {
		return fmt.Errorf("%w: malformed checksum digits %q", ErrInvalidChecksum, line[star+1:star+3])
	}
	got := Checksum([]byte(line[1:star]))
	if byte(want) != got {
		return fmt.Errorf("%w: computed %02X, sentence says %02X", ErrInvalidChecksum, got, want)
	}
	return nil
}

// ErrInvalidChecksum is wrapped by every checksum validation failure.
var ErrInvalidChecksum = fmt.Errorf("invalid checksum")

// SplitFields splits a sentence's comma-separated fields, stopping before
// any trailing "*HH" checksum. The leading "!AIVDM"/"!AIVDO" tag is field 0.
func SplitFields(line string) []string {
	if star := strings.LastIndexByte(line, '*'); star != -1 {
		line = line[:star]
	}
	return strings.Split(line, ",")
}

// ParseFields validates the checksum and splits
// an !AIVDM/!AIVDO sentence into its typed fields.
func ParseFields(line string) (Fields, error) {
	line = strings.TrimRight(line, "\r\n")
	if err := ValidateChecksum(line); err != nil {
		return Fields{}, err
	}
	parts := SplitFields(line)
	if len(parts) < 7 {
		return Fields{}, fmt.Errorf("%w: expected at least 7 comma-separated fields, got %d", ErrInvalidFormat, len(parts))
	}
	tag := strings.TrimPrefix(parts[0], "!")
	tag = strings.TrimPrefix(tag, "$")
	talker := Talker(tag)
	if talker != TalkerAIVDM && talker != TalkerAIVDO {
		return Fields{}, fmt.Errorf("%w: unrecognized talker tag %q", ErrInvalidFormat, parts[0])
	}

	fc, err1 := strconv.Atoi(parts[1])
	fn, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return Fields{}, fmt.Errorf("%w: non-numeric fragment-count/fragment-number", ErrBadFragmentInfo)
	}
	if fc < 1 || fn < 1 || fn > fc {
		return Fields{}, fmt.Errorf("%w: fragment-number %d out of range [1, %d]", ErrBadFragmentInfo, fn, fc)
	}

	var channel Channel
	switch parts[4] {
	case "":
		channel = ChannelNone
	case "A":
		channel = ChannelA
	case "B":
		channel = ChannelB
	default:
		return Fields{}, fmt.Errorf("%w: unrecognized channel %q", ErrBadFragmentInfo, parts[4])
	}

	fb, err := strconv.Atoi(parts[6])
	if err != nil || fb < 0 || fb > 5 {
		return Fields{}, fmt.Errorf("%w: fill-bits field %q not in [0, 5]", ErrBadFragmentInfo, parts[6])
	}

	return Fields{
		Talker:         talker,
		FragmentCount:  fc,
		FragmentNumber: fn,
		GroupID:        parts[3],
		Channel:        channel,
		Payload:        parts[5],
		FillBits:       fb,
	}, nil
}

// ErrInvalidFormat and ErrBadFragmentInfo classify ParseFields failures
// per the error taxonomy in the parser facade's contract.
var (
	ErrInvalidFormat   = fmt.Errorf("invalid sentence format")
	ErrBadFragmentInfo = fmt.Errorf("bad fragment info")
)

// EmitSentence builds a complete !AIVDM/!AIVDO sentence (without a
// trailing line terminator) from its fields, computing and appending the
// "*HH" checksum.
func EmitSentence(talker Talker, payload string, fragmentCount, fragmentNumber int, groupID string, channel Channel, fillBits int) (string, error) {
	if talker != TalkerAIVDM && talker != TalkerAIVDO {
		return "", fmt.Errorf("%w: unrecognized talker %q", ErrInvalidFormat, talker)
	}
	if fragmentCount < 1 || fragmentNumber < 1 || fragmentNumber > fragmentCount {
		return "", fmt.Errorf("%w: fragment-number %d out of range [1, %d]", ErrBadFragmentInfo, fragmentNumber, fragmentCount)
	}
	var channelField string
	switch channel {
	case ChannelA:
		channelField = "A"
	case ChannelB:
		channelField = "B"
	default:
		return "", fmt.Errorf("%w: channel must be 'A' or 'B'", ErrBadChannel)
	}
	if fillBits < 0 || fillBits > 5 {
		return "", fmt.Errorf("%w: fill-bits %d not in [0, 5]", ErrBadFillBits, fillBits)
	}

	body := fmt.Sprintf("%s,%d,%d,%s,%s,%s,%d",
		talker, fragmentCount, fragmentNumber, groupID, channelField, payload, fillBits)
	sum := Checksum([]byte(body))
	return fmt.Sprintf("!%s*%02X", body, sum), nil
}

// ErrBadChannel and ErrBadFillBits classify EmitSentence failures.
var (
	ErrBadChannel  = fmt.Errorf("bad channel")
	ErrBadFillBits = fmt.Errorf("bad fill bits")
)

// MaxArmorCharsPerSentence is the conventional cap implementations use to
// keep a single NMEA sentence within typical modem/serial line-length
// limits (spec.md §6: "commonly 56-60 armor characters").
const MaxArmorCharsPerSentence = 60

// PayloadChunk is one sentence's worth of armored payload plus the fill
// bits that apply to it.
type PayloadChunk struct {
	Payload  string
	FillBits int
}

// SplitPayload divides an armored payload into chunks of at most
// MaxArmorCharsPerSentence characters, for emitting a message as multiple
// sentences. Only the final chunk can carry fill bits; earlier chunks
// always end on a 6-bit boundary and so always have zero fill.
func SplitPayload(payload string, fillBits int) []PayloadChunk {
	if len(payload) <= MaxArmorCharsPerSentence {
		return []PayloadChunk{{Payload: payload, FillBits: fillBits}}
	}
	var chunks []PayloadChunk
	for len(payload) > MaxArmorCharsPerSentence {
		chunks = append(chunks, PayloadChunk{Payload: payload[:MaxArmorCharsPerSentence], FillBits: 0})
		payload = payload[MaxArmorCharsPerSentence:]
	}
	chunks = append(chunks, PayloadChunk{Payload: payload, FillBits: fillBits})
	return chunks
}
