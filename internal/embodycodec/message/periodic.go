package message

import "github.com/danmuck/edgectl/internal/embodycodec/cursor"

// Recording configures the device's daily recording window and sampling
// intervals: a day/night split with independent reporting intervals, and
// start/stop markers for the recording itself. All six fields are single
// bytes on the wire.
type Recording struct {
	DayStart        uint8
	DayEnd          uint8
	DayInterval     uint8
	NightInterval   uint8
	RecordingStart  uint8
	RecordingStop   uint8
}

// PeriodicRecording pushes a new recording schedule to the device.
type PeriodicRecording struct {
	Recording Recording
}

func (PeriodicRecording) Type() Type { return TypePeriodicRecording }

func decodePeriodicRecording(body []byte) (Message, error) {
	r := cursor.New(body)
	var rec Recording
	var err error
	if rec.DayStart, err = r.U8(); err != nil {
		return nil, err
	}
	if rec.DayEnd, err = r.U8(); err != nil {
		return nil, err
	}
	if rec.DayInterval, err = r.U8(); err != nil {
		return nil, err
	}
	if rec.NightInterval, err = r.U8(); err != nil {
		return nil, err
	}
	if rec.RecordingStart, err = r.U8(); err != nil {
		return nil, err
	}
	if rec.RecordingStop, err = r.U8(); err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return PeriodicRecording{Recording: rec}, nil
}

func encodePeriodicRecording(msg Message) ([]byte, error) {
	m := msg.(PeriodicRecording)
	w := cursor.NewWriter(6)
	w.U8(m.Recording.DayStart)
	w.U8(m.Recording.DayEnd)
	w.U8(m.Recording.DayInterval)
	w.U8(m.Recording.NightInterval)
	w.U8(m.Recording.RecordingStart)
	w.U8(m.Recording.RecordingStop)
	return w.Bytes(), nil
}

// PeriodicRecordingResponse is an empty acknowledgement.
type PeriodicRecordingResponse struct{}

func (PeriodicRecordingResponse) Type() Type { return TypePeriodicRecordingResponse }

func decodePeriodicRecordingResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return PeriodicRecordingResponse{}, nil
}

func encodePeriodicRecordingResponse(Message) ([]byte, error) { return nil, nil }
