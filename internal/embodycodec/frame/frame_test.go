package frame

import (
	"bytes"
	"testing"

	"github.com/danmuck/edgectl/internal/embodycodec/crc"
	"github.com/danmuck/edgectl/internal/embodycodec/message"
)

func TestDecodeHeartbeat(t *testing.T) {
	b := []byte{0x01, 0x00, 0x05, 0xab, 0x09}
	r := Decode(b)
	if r.Kind != KindFrame {
		t.Fatalf("kind = %v, want KindFrame (err=%v)", r.Kind, r.Error)
	}
	if r.Consumed != 5 {
		t.Fatalf("consumed = %d, want 5", r.Consumed)
	}
	if _, ok := r.Message.(message.Heartbeat); !ok {
		t.Fatalf("message = %#v, want Heartbeat", r.Message)
	}
}

func TestEncodeDecodeHeartbeatRoundTrip(t *testing.T) {
	encoded, err := EncodeMessage(message.Heartbeat{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, []byte{0x01, 0x00, 0x05, 0xab, 0x09}) {
		t.Fatalf("encoded = % x", encoded)
	}
	r := Decode(encoded)
	if r.Kind != KindFrame {
		t.Fatalf("kind = %v, err=%v", r.Kind, r.Error)
	}
}

func TestDecodeNeedsMoreForHeader(t *testing.T) {
	r := Decode([]byte{0x01, 0x00})
	if r.Kind != KindNeed {
		t.Fatalf("kind = %v, want KindNeed", r.Kind)
	}
	if r.NeedMore != 1 {
		t.Fatalf("needMore = %d, want 1", r.NeedMore)
	}
}

func TestDecodeNeedsMoreForBody(t *testing.T) {
	full := []byte{0x01, 0x00, 0x05, 0xab, 0x09}
	r := Decode(full[:3])
	if r.Kind != KindNeed {
		t.Fatalf("kind = %v, want KindNeed", r.Kind)
	}
	if r.NeedMore != 2 {
		t.Fatalf("needMore = %d, want 2", r.NeedMore)
	}
}

func TestDecodeInvalidLength(t *testing.T) {
	r := Decode([]byte{0x01, 0x00, 0x02, 0xff, 0xff})
	if r.Kind != KindErr || r.Error.Kind != ErrKindInvalidLength {
		t.Fatalf("result = %#v", r)
	}
	if r.Consumed != 3 {
		t.Fatalf("consumed = %d, want 3 (resync past header)", r.Consumed)
	}
}

func TestDecodeCRCMismatch(t *testing.T) {
	r := Decode([]byte{0x01, 0x00, 0x05, 0x00, 0x00})
	if r.Kind != KindErr || r.Error.Kind != ErrKindCRCMismatch {
		t.Fatalf("result = %#v", r)
	}
	if r.Consumed != 5 {
		t.Fatalf("consumed = %d, want 5", r.Consumed)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	header := []byte{0xfe, 0x00, 0x05}
	sum := crc.XModem(header)
	frameBytes := append(append([]byte{}, header...), byte(sum>>8), byte(sum))
	r := Decode(frameBytes)
	if r.Kind != KindErr || r.Error.Kind != ErrKindUnknownType {
		t.Fatalf("result = %#v, err=%v", r, r.Error)
	}
}

func TestDecodeNackResponse(t *testing.T) {
	full := []byte{0x82, 0x00, 0x06, 0x02, 0x3e, 0x74}
	r := Decode(full)
	if r.Kind != KindFrame {
		t.Fatalf("kind = %v, want KindFrame (err=%v)", r.Kind, r.Error)
	}
	if r.Consumed != len(full) {
		t.Fatalf("consumed = %d, want %d", r.Consumed, len(full))
	}
	nack, ok := r.Message.(message.NackResponse)
	if !ok || nack.ErrorCode != 2 {
		t.Fatalf("message = %#v, want NackResponse{ErrorCode: 2}", r.Message)
	}
}

func TestEncodeDecodeNackResponseRoundTrip(t *testing.T) {
	full := []byte{0x82, 0x00, 0x06, 0x02, 0x3e, 0x74}
	encoded, err := EncodeMessage(message.NackResponse{ErrorCode: 2})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, full) {
		t.Fatalf("encoded = % x, want % x", encoded, full)
	}
}

func TestDecodeMultipleFramesInOneBuffer(t *testing.T) {
	one, _ := EncodeMessage(message.Heartbeat{})
	two, _ := EncodeMessage(message.HeartbeatResponse{})
	buf := append(append([]byte{}, one...), two...)

	r1 := Decode(buf)
	if r1.Kind != KindFrame {
		t.Fatalf("first decode: %#v", r1)
	}
	buf = buf[r1.Consumed:]
	r2 := Decode(buf)
	if r2.Kind != KindFrame {
		t.Fatalf("second decode: %#v", r2)
	}
	if _, ok := r2.Message.(message.HeartbeatResponse); !ok {
		t.Fatalf("second message = %#v", r2.Message)
	}
}
