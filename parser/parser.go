// Package parser provides the single entry point (C7) the rest of this
// library exists to support: feed it raw NMEA text, one line at a time,
// and get back decoded AIS messages as they complete. It drives the
// framer (nmea), the multipart reassembler (reassemble) and the message
// registry (aismsg) in sequence, and remembers why the last call that
// didn't produce a message failed.
package parser

import (
	"errors"
	"time"

	"github.com/tormol/aislib/aismsg"
	"github.com/tormol/aislib/nmea"
	"github.com/tormol/aislib/reassemble"
)

// ErrorKind classifies why the most recent Parse/AddFragment call failed
// to produce a message. KindNone means the last call either succeeded or
// is the initial state.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidChecksum
	KindInvalidFormat
	KindBadFragmentInfo
	KindUnsupportedType
	KindInvalidPayload
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidChecksum:
		return "invalid checksum"
	case KindInvalidFormat:
		return "invalid format"
	case KindBadFragmentInfo:
		return "bad fragment info"
	case KindUnsupportedType:
		return "unsupported type"
	case KindInvalidPayload:
		return "invalid payload"
	default:
		return "other"
	}
}

// Config holds the parser's reassembly tunables, passed straight through
// to the underlying reassemble.Reassembler.
type Config struct {
	MessageTimeout        time.Duration
	MaxIncompleteMessages int
}

// Parser is a single-owner facade: callers must serialize their own
// access to one instance (spec.md §5 concurrency note), same as the
// reassembler it wraps.
type Parser struct {
	reassembler *reassemble.Reassembler
	lastKind    ErrorKind
	lastErr     error
}

// New creates a Parser with the given configuration. Zero-valued fields
// fall back to reassemble's documented defaults.
func New(cfg Config) *Parser {
	return &Parser{
		reassembler: reassemble.New(reassemble.Config{
			Timeout:   cfg.MessageTimeout,
			MaxGroups: cfg.MaxIncompleteMessages,
		}),
	}
}

// Parse processes one raw NMEA line. It returns the decoded message if
// the line completed one (either because it was a single-fragment
// sentence or the final fragment of a multipart group), or (nil, false)
// if nothing completed yet. Use LastError to distinguish "still waiting
// on more fragments" (KindNone) from an actual failure.
func (p *Parser) Parse(line string) (aismsg.Message, bool) {
	fields, err := nmea.ParseFields(line)
	if err != nil {
		p.fail(classifyFieldsError(err), err)
		return nil, false
	}

	bits, err := p.reassembler.AddFragment(fields.FragmentNumber, fields.FragmentCount, fields.GroupID, fields.Channel, fields.Payload, fields.FillBits)
	if err != nil {
		p.fail(classifyFragmentError(err), err)
		return nil, false
	}
	if bits == nil {
		p.clear()
		return nil, false
	}

	msg, err := aismsg.Decode(bits)
	if err != nil {
		p.fail(classifyDecodeError(err), err)
		return nil, false
	}
	p.clear()
	return msg, true
}

// AddFragment is semantically identical to Parse; the name exists only
// to let a caller's code read as "I am feeding in one sentence of a
// multipart message" (spec.md §4.5).
func (p *Parser) AddFragment(line string) (aismsg.Message, bool) {
	return p.Parse(line)
}

// LastError returns the kind and message of the most recent failed call.
// A successful call, or a call that merely completed nothing yet, clears
// this to (KindNone, nil).
func (p *Parser) LastError() (ErrorKind, error) {
	return p.lastKind, p.lastErr
}

func (p *Parser) fail(kind ErrorKind, err error) {
	p.lastKind = kind
	p.lastErr = err
}

func (p *Parser) clear() {
	p.lastKind = KindNone
	p.lastErr = nil
}

func classifyFieldsError(err error) ErrorKind {
	switch {
	case errors.Is(err, nmea.ErrInvalidChecksum):
		return KindInvalidChecksum
	case errors.Is(err, nmea.ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, nmea.ErrBadFragmentInfo):
		return KindBadFragmentInfo
	default:
		return KindOther
	}
}

// classifyFragmentError distinguishes AddFragment's own input-validation
// failures, which it wraps in reassemble.ErrBadFragmentInfo, from a
// single-fragment sentence's armor-decode failure: fragmentCount == 1
// bypasses group bookkeeping entirely and returns bitvector.FromNMEAPayload's
// error unwrapped, which is a payload problem, not a fragment-info one.
func classifyFragmentError(err error) ErrorKind {
	if errors.Is(err, reassemble.ErrBadFragmentInfo) {
		return KindBadFragmentInfo
	}
	return KindInvalidPayload
}

func classifyDecodeError(err error) ErrorKind {
	switch {
	case errors.Is(err, aismsg.ErrUnsupportedType):
		return KindUnsupportedType
	case errors.Is(err, aismsg.ErrMalformedBits), errors.Is(err, aismsg.ErrWrongType):
		return KindInvalidPayload
	default:
		return KindOther
	}
}
