// Package frame implements the outer envelope layer: type(u8) +
// length(u16 BE) + body + crc(u16 BE), with a buffer-oriented decode
// contract rather than an io.Reader-blocking one — the transports this
// protocol runs over (USB HID reports, BLE notifications, UART) deliver
// arbitrary, possibly partial chunks, so the caller owns the buffer and
// the decoder reports how many bytes it consumed or still needs instead
// of blocking on a read.
package frame

import (
	"errors"
	"fmt"

	"github.com/danmuck/edgectl/internal/embodycodec/crc"
	"github.com/danmuck/edgectl/internal/embodycodec/message"
)

// headerLen is type(1) + length(2); crcLen is the trailing crc(2).
const (
	headerLen = 3
	crcLen    = 2
	// minFrameLen is the smallest legal frame: header + crc, empty body.
	minFrameLen = headerLen + crcLen
	// MaxFrameLen bounds a single frame to 4 KiB by policy, well under
	// the u16 length field's 65535 ceiling.
	MaxFrameLen = 4096
)

// Kind discriminates a Decode call's outcome.
type Kind uint8

const (
	KindNeed Kind = iota
	KindFrame
	KindErr
)

// ErrorKind classifies a KindErr result.
type ErrorKind uint8

const (
	ErrKindInvalidLength ErrorKind = iota
	ErrKindCRCMismatch
	ErrKindUnknownType
	ErrKindBodyDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalidLength:
		return "invalid_length"
	case ErrKindCRCMismatch:
		return "crc_mismatch"
	case ErrKindUnknownType:
		return "unknown_type"
	case ErrKindBodyDecode:
		return "body_decode"
	default:
		return "unknown"
	}
}

// ErrFraming wraps a framing failure with its classification and the
// underlying cause, if any.
type ErrFraming struct {
	Kind ErrorKind
	Err  error
}

func (e *ErrFraming) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("embodycodec: frame error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("embodycodec: frame error (%s)", e.Kind)
}

func (e *ErrFraming) Unwrap() error { return e.Err }

// Result is the outcome of one Decode call: exactly one of Need, a
// decoded Message, or an error is populated, selected by Kind.
type Result struct {
	Kind Kind

	// Populated when Kind == KindNeed: at least this many more bytes
	// are required before the next frame can be completed.
	NeedMore int

	// Populated when Kind == KindFrame.
	Message  message.Message
	Consumed int

	// Populated when Kind == KindErr. Consumed bytes should still be
	// dropped by the caller to resynchronize past the bad frame.
	Error *ErrFraming
}

var errTruncatedLengthField = errors.New("length field not yet available")

// Decode inspects the start of data for one complete frame. It never
// retains data; any bytes it needs survive in the caller's buffer.
func Decode(data []byte) Result {
	if len(data) < headerLen {
		need := headerLen - len(data)
		return Result{Kind: KindNeed, NeedMore: need}
	}

	length := int(data[1])<<8 | int(data[2])
	if length < minFrameLen || length > MaxFrameLen {
		return Result{
			Kind:     KindErr,
			Consumed: headerLen,
			Error:    &ErrFraming{Kind: ErrKindInvalidLength, Err: fmt.Errorf("length %d out of range [%d, %d]", length, minFrameLen, MaxFrameLen)},
		}
	}

	if len(data) < length {
		return Result{Kind: KindNeed, NeedMore: length - len(data)}
	}

	frame := data[:length]
	want := crc.XModem(frame[:length-crcLen])
	got := uint16(frame[length-2])<<8 | uint16(frame[length-1])
	if want != got {
		return Result{
			Kind:     KindErr,
			Consumed: length,
			Error:    &ErrFraming{Kind: ErrKindCRCMismatch, Err: fmt.Errorf("want 0x%04x, got 0x%04x", want, got)},
		}
	}

	typ := message.Type(frame[0])
	body := frame[headerLen : length-crcLen]
	msg, err := message.Decode(typ, body)
	if err != nil {
		var unknown message.UnknownMessageTypeError
		kind := ErrKindBodyDecode
		if errors.As(err, &unknown) {
			kind = ErrKindUnknownType
		}
		return Result{
			Kind:     KindErr,
			Consumed: length,
			Error:    &ErrFraming{Kind: kind, Err: err},
		}
	}

	return Result{Kind: KindFrame, Message: msg, Consumed: length}
}

// EncodeMessage serializes msg into a complete frame: header, body, and
// a trailing CRC-16/XMODEM, computed and written in one allocation.
func EncodeMessage(msg message.Message) ([]byte, error) {
	body, err := message.EncodeBody(msg)
	if err != nil {
		return nil, err
	}
	length := headerLen + len(body) + crcLen
	if length > MaxFrameLen {
		return nil, &ErrFraming{Kind: ErrKindInvalidLength, Err: fmt.Errorf("encoded frame length %d exceeds %d", length, MaxFrameLen)}
	}
	out := make([]byte, length)
	out[0] = byte(msg.Type())
	out[1] = byte(length >> 8)
	out[2] = byte(length)
	copy(out[headerLen:], body)
	sum := crc.XModem(out[:length-crcLen])
	out[length-2] = byte(sum >> 8)
	out[length-1] = byte(sum)
	return out, nil
}
