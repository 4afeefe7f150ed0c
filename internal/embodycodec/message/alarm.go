package message

import "github.com/danmuck/edgectl/internal/embodycodec/cursor"

// Alarm is a device-initiated alarm notification.
type Alarm struct {
	ChangedAt uint64
	AlarmType uint8
}

func (Alarm) Type() Type { return TypeAlarm }

func decodeAlarm(body []byte) (Message, error) {
	r := cursor.New(body)
	changedAt, err := r.U64()
	if err != nil {
		return nil, err
	}
	alarmType, err := r.U8()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return Alarm{ChangedAt: changedAt, AlarmType: alarmType}, nil
}

func encodeAlarm(msg Message) ([]byte, error) {
	m := msg.(Alarm)
	w := cursor.NewWriter(9)
	w.U64(m.ChangedAt)
	w.U8(m.AlarmType)
	return w.Bytes(), nil
}

// AlarmResponse is an empty acknowledgement.
type AlarmResponse struct{}

func (AlarmResponse) Type() Type { return TypeAlarmResponse }

func decodeAlarmResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return AlarmResponse{}, nil
}

func encodeAlarmResponse(Message) ([]byte, error) { return nil, nil }
