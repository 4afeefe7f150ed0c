package message

import (
	"fmt"

	"github.com/danmuck/edgectl/internal/embodycodec/attribute"
	"github.com/danmuck/edgectl/internal/embodycodec/cursor"
	"github.com/danmuck/edgectl/internal/embodycodec/enums"
)

// SetAttribute requests the device adopt a new value for an attribute.
type SetAttribute struct {
	ID    uint8
	Value attribute.Value
}

func (SetAttribute) Type() Type { return TypeSetAttribute }

func decodeSetAttribute(body []byte) (Message, error) {
	r := cursor.New(body)
	id, err := r.U8()
	if err != nil {
		return nil, err
	}
	v, err := readAttributeValue(r, id)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return SetAttribute{ID: id, Value: v}, nil
}

func encodeSetAttribute(msg Message) ([]byte, error) {
	m := msg.(SetAttribute)
	w := cursor.NewWriter(2)
	w.U8(m.ID)
	if err := writeAttributeValue(w, m.ID, m.Value); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// SetAttributeResponse is an empty acknowledgement.
type SetAttributeResponse struct{}

func (SetAttributeResponse) Type() Type { return TypeSetAttributeResponse }

func decodeSetAttributeResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return SetAttributeResponse{}, nil
}

func encodeSetAttributeResponse(Message) ([]byte, error) { return nil, nil }

// GetAttribute requests the current value of an attribute.
type GetAttribute struct {
	ID uint8
}

func (GetAttribute) Type() Type { return TypeGetAttribute }

func decodeGetAttribute(body []byte) (Message, error) {
	r := cursor.New(body)
	id, err := r.U8()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return GetAttribute{ID: id}, nil
}

func encodeGetAttribute(msg Message) ([]byte, error) {
	m := msg.(GetAttribute)
	w := cursor.NewWriter(1)
	w.U8(m.ID)
	return w.Bytes(), nil
}

// GetAttributeResponse carries an attribute's current value plus its
// reporting configuration and last-change timestamp. Field order —
// id, changed_at, interval, on_change, length, value — and the explicit
// length byte are confirmed by golden fixtures (see DESIGN.md).
type GetAttributeResponse struct {
	ID        uint8
	ChangedAt uint64
	Interval  uint16
	OnChange  bool
	Value     attribute.Value
}

func (GetAttributeResponse) Type() Type { return TypeGetAttributeResponse }

func decodeGetAttributeResponse(body []byte) (Message, error) {
	r := cursor.New(body)
	id, err := r.U8()
	if err != nil {
		return nil, err
	}
	changedAt, err := r.U64()
	if err != nil {
		return nil, err
	}
	interval, err := r.U16()
	if err != nil {
		return nil, err
	}
	onChangeRaw, err := r.U8()
	if err != nil {
		return nil, err
	}
	v, err := readAttributeValue(r, id)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return GetAttributeResponse{
		ID:        id,
		ChangedAt: changedAt,
		Interval:  interval,
		OnChange:  onChangeRaw != 0,
		Value:     v,
	}, nil
}

func encodeGetAttributeResponse(msg Message) ([]byte, error) {
	m := msg.(GetAttributeResponse)
	w := cursor.NewWriter(12)
	w.U8(m.ID)
	w.U64(m.ChangedAt)
	w.U16(m.Interval)
	if m.OnChange {
		w.U8(1)
	} else {
		w.U8(0)
	}
	if err := writeAttributeValue(w, m.ID, m.Value); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ResetAttribute requests the device restore an attribute's default.
type ResetAttribute struct {
	ID uint8
}

func (ResetAttribute) Type() Type { return TypeResetAttribute }

func decodeResetAttribute(body []byte) (Message, error) {
	r := cursor.New(body)
	id, err := r.U8()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return ResetAttribute{ID: id}, nil
}

func encodeResetAttribute(msg Message) ([]byte, error) {
	m := msg.(ResetAttribute)
	w := cursor.NewWriter(1)
	w.U8(m.ID)
	return w.Bytes(), nil
}

// ResetAttributeResponse is an empty acknowledgement.
type ResetAttributeResponse struct{}

func (ResetAttributeResponse) Type() Type { return TypeResetAttributeResponse }

func decodeResetAttributeResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return ResetAttributeResponse{}, nil
}

func encodeResetAttributeResponse(Message) ([]byte, error) { return nil, nil }

// ConfigureReporting arms periodic or on-change reporting for an
// attribute. Wire order (interval, on_change) mirrors the reference's
// Reporting struct (">HB").
type ConfigureReporting struct {
	ID       uint8
	Interval uint16
	OnChange bool
}

func (ConfigureReporting) Type() Type { return TypeConfigureReporting }

// Trigger reports which of the two ConfigureReporting modes this request
// selects, as an enums.ReportingTrigger rather than a bare bool.
func (m ConfigureReporting) Trigger() enums.ReportingTrigger {
	if m.OnChange {
		return enums.ReportingOnChange
	}
	return enums.ReportingPeriodic
}

func decodeConfigureReporting(body []byte) (Message, error) {
	r := cursor.New(body)
	id, err := r.U8()
	if err != nil {
		return nil, err
	}
	interval, err := r.U16()
	if err != nil {
		return nil, err
	}
	onChangeRaw, err := r.U8()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return ConfigureReporting{ID: id, Interval: interval, OnChange: onChangeRaw != 0}, nil
}

func encodeConfigureReporting(msg Message) ([]byte, error) {
	m := msg.(ConfigureReporting)
	w := cursor.NewWriter(4)
	w.U8(m.ID)
	w.U16(m.Interval)
	if m.OnChange {
		w.U8(1)
	} else {
		w.U8(0)
	}
	return w.Bytes(), nil
}

// ConfigureReportingResponse is an empty acknowledgement.
type ConfigureReportingResponse struct{}

func (ConfigureReportingResponse) Type() Type { return TypeConfigureReportingResponse }

func decodeConfigureReportingResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return ConfigureReportingResponse{}, nil
}

func encodeConfigureReportingResponse(Message) ([]byte, error) { return nil, nil }

// ResetReporting disarms reporting for one attribute.
type ResetReporting struct {
	ID uint8
}

func (ResetReporting) Type() Type { return TypeResetReporting }

func decodeResetReporting(body []byte) (Message, error) {
	r := cursor.New(body)
	id, err := r.U8()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return ResetReporting{ID: id}, nil
}

func encodeResetReporting(msg Message) ([]byte, error) {
	m := msg.(ResetReporting)
	w := cursor.NewWriter(1)
	w.U8(m.ID)
	return w.Bytes(), nil
}

// ResetReportingResponse is an empty acknowledgement.
type ResetReportingResponse struct{}

func (ResetReportingResponse) Type() Type { return TypeResetReportingResponse }

func decodeResetReportingResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return ResetReportingResponse{}, nil
}

func encodeResetReportingResponse(Message) ([]byte, error) { return nil, nil }

// AttributeChanged is the device-initiated notification produced by
// either periodic or on-change reporting ("PeriodicAttribute" in some
// reference documentation is this same variant). Wire order is
// changed_at, then attribute_id, then the length-prefixed value.
type AttributeChanged struct {
	ChangedAt uint64
	ID        uint8
	Value     attribute.Value
}

func (AttributeChanged) Type() Type { return TypeAttributeChanged }

func decodeAttributeChanged(body []byte) (Message, error) {
	r := cursor.New(body)
	changedAt, err := r.U64()
	if err != nil {
		return nil, err
	}
	id, err := r.U8()
	if err != nil {
		return nil, err
	}
	v, err := readAttributeValue(r, id)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, ErrTrailingGarbage
	}
	return AttributeChanged{ChangedAt: changedAt, ID: id, Value: v}, nil
}

func encodeAttributeChanged(msg Message) ([]byte, error) {
	m := msg.(AttributeChanged)
	w := cursor.NewWriter(10)
	w.U64(m.ChangedAt)
	w.U8(m.ID)
	if err := writeAttributeValue(w, m.ID, m.Value); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// AttributeChangedResponse is an empty acknowledgement.
type AttributeChangedResponse struct{}

func (AttributeChangedResponse) Type() Type { return TypeAttributeChangedResponse }

func decodeAttributeChangedResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return AttributeChangedResponse{}, nil
}

func encodeAttributeChangedResponse(Message) ([]byte, error) { return nil, nil }

// RawPulseChanged reuses one type code for two value shapes, selected by
// the remaining body length after the 16-bit changed_at tick: 8 bytes
// decodes as a single-PPG PulseRaw, 16 bytes as a three-PPG PulseRawAll.
// This polymorphism and the 16-bit (not 48/64-bit) changed_at width are
// both confirmed by golden fixtures; see DESIGN.md.
type RawPulseChanged struct {
	ChangedAt uint16
	Value     attribute.Value // attribute.PulseRaw or attribute.PulseRawAll
}

func (RawPulseChanged) Type() Type { return TypeRawPulseChanged }

func decodeRawPulseChanged(body []byte) (Message, error) {
	r := cursor.New(body)
	changedAt, err := r.U16()
	if err != nil {
		return nil, err
	}
	rest := r.Rest()
	var v attribute.Value
	switch len(rest) {
	case 8:
		value, _, derr := attribute.Decode(attribute.IDPulseRaw, rest)
		if derr != nil {
			return nil, derr
		}
		v = value
	case 16:
		value, _, derr := attribute.Decode(attribute.IDPulseRawAll, rest)
		if derr != nil {
			return nil, derr
		}
		v = value
	default:
		return nil, fmt.Errorf("%w: raw_pulse_changed body length %d unsupported", ErrTrailingGarbage, len(rest))
	}
	return RawPulseChanged{ChangedAt: changedAt, Value: v}, nil
}

func encodeRawPulseChanged(msg Message) ([]byte, error) {
	m := msg.(RawPulseChanged)
	var id uint8
	switch m.Value.(type) {
	case attribute.PulseRaw:
		id = attribute.IDPulseRaw
	case attribute.PulseRawAll:
		id = attribute.IDPulseRawAll
	default:
		return nil, fmt.Errorf("%w: raw_pulse_changed value must be PulseRaw or PulseRawAll", ErrRangeError)
	}
	raw, err := attribute.Encode(id, m.Value)
	if err != nil {
		return nil, err
	}
	w := cursor.NewWriter(2 + len(raw))
	w.U16(m.ChangedAt)
	w.Raw(raw)
	return w.Bytes(), nil
}

// RawPulseChangedResponse is an empty acknowledgement.
type RawPulseChangedResponse struct{}

func (RawPulseChangedResponse) Type() Type { return TypeRawPulseChangedResponse }

func decodeRawPulseChangedResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return RawPulseChangedResponse{}, nil
}

func encodeRawPulseChangedResponse(Message) ([]byte, error) { return nil, nil }

// RawPulseListChanged carries a PulseRawList sample batch with the same
// 16-bit changed_at tick as RawPulseChanged.
type RawPulseListChanged struct {
	ChangedAt uint16
	Value     attribute.PulseRawList
}

func (RawPulseListChanged) Type() Type { return TypeRawPulseListChanged }

func decodeRawPulseListChanged(body []byte) (Message, error) {
	r := cursor.New(body)
	changedAt, err := r.U16()
	if err != nil {
		return nil, err
	}
	rest := r.Rest()
	v, consumed, err := attribute.Decode(attribute.IDPulseRawList, rest)
	if err != nil {
		return nil, err
	}
	if consumed != len(rest) {
		return nil, ErrTrailingGarbage
	}
	return RawPulseListChanged{ChangedAt: changedAt, Value: v.(attribute.PulseRawList)}, nil
}

func encodeRawPulseListChanged(msg Message) ([]byte, error) {
	m := msg.(RawPulseListChanged)
	raw, err := attribute.Encode(attribute.IDPulseRawList, m.Value)
	if err != nil {
		return nil, err
	}
	w := cursor.NewWriter(2 + len(raw))
	w.U16(m.ChangedAt)
	w.Raw(raw)
	return w.Bytes(), nil
}

// RawPulseListChangedResponse is an empty acknowledgement.
type RawPulseListChangedResponse struct{}

func (RawPulseListChangedResponse) Type() Type { return TypeRawPulseListChangedResponse }

func decodeRawPulseListChangedResponse(body []byte) (Message, error) {
	if err := requireEmpty(body); err != nil {
		return nil, err
	}
	return RawPulseListChangedResponse{}, nil
}

func encodeRawPulseListChangedResponse(Message) ([]byte, error) { return nil, nil }
