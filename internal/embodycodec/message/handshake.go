package message

import "github.com/danmuck/edgectl/internal/embodycodec/cursor"

// Heartbeat is an empty-body keepalive.
type Heartbeat struct{}

func (Heartbeat) Type() Type { return TypeHeartbeat }

func decodeHeartbeat(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return Heartbeat{}, nil
}

func encodeHeartbeat(Message) ([]byte, error) { return nil, nil }

// HeartbeatResponse acknowledges a Heartbeat.
type HeartbeatResponse struct{}

func (HeartbeatResponse) Type() Type { return TypeHeartbeatResponse }

func decodeHeartbeatResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return HeartbeatResponse{}, nil
}

func encodeHeartbeatResponse(Message) ([]byte, error) { return nil, nil }

// NackResponse reports a negative acknowledgement with a one-byte error
// code.
type NackResponse struct {
	ErrorCode uint8
}

func (NackResponse) Type() Type { return TypeNackResponse }

func decodeNackResponse(body []byte) (Message, error) {
	r := cursor.New(body)
	code, err := r.U8()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return NackResponse{ErrorCode: code}, nil
}

func encodeNackResponse(msg Message) ([]byte, error) {
	m := msg.(NackResponse)
	w := cursor.NewWriter(1)
	w.U8(m.ErrorCode)
	return w.Bytes(), nil
}
