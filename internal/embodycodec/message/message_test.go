package message

import (
	"bytes"
	"testing"

	"github.com/danmuck/edgectl/internal/embodycodec/attribute"
)

// body strips a full frame fixture (type + length + body + crc) down to
// just its body, so tests can exercise Decode/EncodeBody directly
// without going through the frame package.
func body(t *testing.T, full []byte) []byte {
	t.Helper()
	if len(full) < 5 {
		t.Fatalf("fixture too short: % x", full)
	}
	return full[3 : len(full)-2]
}

func TestDecodeHeartbeat(t *testing.T) {
	msg, err := Decode(TypeHeartbeat, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := msg.(Heartbeat); !ok {
		t.Fatalf("got %#v", msg)
	}
	encoded, err := EncodeBody(Heartbeat{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(encoded) != 0 {
		t.Fatalf("heartbeat body should be empty, got % x", encoded)
	}
}

func TestNackResponse(t *testing.T) {
	full := []byte{0x82, 0x00, 0x06, 0x02, 0x3e, 0x74}
	msg, err := Decode(TypeNackResponse, body(t, full))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	nack, ok := msg.(NackResponse)
	if !ok || nack.ErrorCode != 2 {
		t.Fatalf("got %#v", msg)
	}
	encoded, err := EncodeBody(nack)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, full)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, full))
	}
}

func TestAlarm(t *testing.T) {
	fixture := []byte{0x31, 0x00, 0x0e, 0x00, 0x00, 0x01, 0x80, 0x44, 0x49, 0xb6, 0xd3, 0x01, 0x92, 0x46}
	msg, err := Decode(TypeAlarm, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	alarm, ok := msg.(Alarm)
	if !ok {
		t.Fatalf("got %#v", msg)
	}
	if alarm.ChangedAt != 0x0000018044_49b6d3 {
		t.Fatalf("changed_at = %#x", alarm.ChangedAt)
	}
	if alarm.AlarmType != 1 {
		t.Fatalf("alarm_type = %d", alarm.AlarmType)
	}
	encoded, err := EncodeBody(alarm)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, fixture)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, fixture))
	}
}

func TestAlarmResponseEmpty(t *testing.T) {
	fixture := []byte{0xb1, 0x00, 0x05, 0x55, 0xf6}
	msg, err := Decode(TypeAlarmResponse, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := msg.(AlarmResponse); !ok {
		t.Fatalf("got %#v", msg)
	}
}

func TestListFilesRoundTrip(t *testing.T) {
	fixture := []byte{0x41, 0x00, 0x05, 0xb6, 0xa4}
	msg, err := Decode(TypeListFiles, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := msg.(ListFiles); !ok {
		t.Fatalf("got %#v", msg)
	}
	encoded, err := EncodeBody(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, fixture)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, fixture))
	}
}

func TestListFilesResponseEmpty(t *testing.T) {
	fixture := []byte{0xc1, 0x00, 0x05, 0x8d, 0xfe}
	msg, err := Decode(TypeListFilesResponse, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp, ok := msg.(ListFilesResponse)
	if !ok || len(resp.Entries) != 0 {
		t.Fatalf("got %#v", msg)
	}
}

func TestListFilesResponseOneFile(t *testing.T) {
	raw := []byte{
		0xc1, 0x00, 0x23,
		0x74, 0x65, 0x73, 0x74, 0x31, 0x2e, 0x62, 0x69, 0x6e, // "test1.bin"
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // pad to 26
		0x00, 0x00, 0x00, 0x00, // size = 0
		0xe5, 0xc4,
	}
	msg, err := Decode(TypeListFilesResponse, body(t, raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp, ok := msg.(ListFilesResponse)
	if !ok || len(resp.Entries) != 1 {
		t.Fatalf("got %#v", msg)
	}
	if resp.Entries[0].Name != "test1.bin" || resp.Entries[0].Size != 0 {
		t.Fatalf("entry = %#v", resp.Entries[0])
	}
	encoded, err := EncodeBody(resp)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, raw)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, raw))
	}
}

func TestListFilesResponseSizeIsBigEndian(t *testing.T) {
	// 615523 == 0x00096463
	name := make([]byte, 26)
	copy(name, "220406_1238_000067.log")
	raw := append([]byte{}, name...)
	raw = append(raw, 0x00, 0x09, 0x64, 0x63)

	msg, err := Decode(TypeListFilesResponse, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp := msg.(ListFilesResponse)
	if len(resp.Entries) != 1 || resp.Entries[0].Size != 615523 {
		t.Fatalf("entries = %#v", resp.Entries)
	}
}

func TestGetFile(t *testing.T) {
	name := make([]byte, 26)
	copy(name, "test1.bin")
	msg, err := Decode(TypeGetFile, name)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	gf, ok := msg.(GetFile)
	if !ok || gf.Name != "test1.bin" {
		t.Fatalf("got %#v", msg)
	}
	encoded, err := EncodeBody(gf)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, name) {
		t.Fatalf("encoded = % x, want % x", encoded, name)
	}
}

func TestSendFile(t *testing.T) {
	name := make([]byte, 26)
	copy(name, "test1.bin")
	raw := append([]byte{}, name...)
	raw = append(raw, 0x00, 0x01, 0x00, 0x02, 0x01)

	msg, err := Decode(TypeSendFile, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	sf, ok := msg.(SendFile)
	if !ok {
		t.Fatalf("got %#v", msg)
	}
	if sf.Name != "test1.bin" || sf.Index != 1 || sf.Total != 2 || !bytes.Equal(sf.Payload, []byte{0x01}) {
		t.Fatalf("sf = %#v", sf)
	}
	encoded, err := EncodeBody(sf)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, raw) {
		t.Fatalf("encoded = % x, want % x", encoded, raw)
	}
}

func TestSendFileResponse(t *testing.T) {
	msg, err := Decode(TypeSendFileResponse, []byte{0x00, 0x09})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	sfr, ok := msg.(SendFileResponse)
	if !ok || sfr.Index != 9 {
		t.Fatalf("got %#v", msg)
	}
}

func TestExecuteCommandNoPayload(t *testing.T) {
	msg, err := Decode(TypeExecuteCommand, []byte{0x01})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ec, ok := msg.(ExecuteCommand)
	if !ok || uint8(ec.Cmd) != 1 || len(ec.Payload) != 0 {
		t.Fatalf("got %#v", msg)
	}
}

func TestExecutePressButtonCommand(t *testing.T) {
	raw := []byte{0x03, 0x01, 0x03, 0xe8}
	msg, err := Decode(TypeExecuteCommand, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ec := msg.(ExecuteCommand)
	if uint8(ec.Cmd) != 0x03 || !bytes.Equal(ec.Payload, []byte{0x01, 0x03, 0xe8}) {
		t.Fatalf("ec = %#v", ec)
	}
	encoded, err := EncodeBody(ec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, raw) {
		t.Fatalf("encoded = % x, want % x", encoded, raw)
	}
}

func TestExecuteCommandResponse(t *testing.T) {
	msg, err := Decode(TypeExecuteCommandResponse, []byte{0x01})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp, ok := msg.(ExecuteCommandResponse)
	if !ok || resp.ResponseCode != 1 {
		t.Fatalf("got %#v", msg)
	}
}

func TestPeriodicRecording(t *testing.T) {
	raw := []byte{0x00, 0x17, 0x0f, 0x14, 0x01, 0x02}
	msg, err := Decode(TypePeriodicRecording, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	pr, ok := msg.(PeriodicRecording)
	if !ok {
		t.Fatalf("got %#v", msg)
	}
	want := Recording{DayStart: 0x00, DayEnd: 0x17, DayInterval: 0x0f, NightInterval: 0x14, RecordingStart: 0x01, RecordingStop: 0x02}
	if pr.Recording != want {
		t.Fatalf("recording = %#v, want %#v", pr.Recording, want)
	}
	encoded, err := EncodeBody(pr)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, raw) {
		t.Fatalf("encoded = % x, want % x", encoded, raw)
	}
}

func TestSetAttribute(t *testing.T) {
	fixture := []byte{0x11, 0x00, 0x09, 0xb4, 0x02, 0x0c, 0x80, 0x57, 0x0d}
	msg, err := Decode(TypeSetAttribute, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	sa, ok := msg.(SetAttribute)
	if !ok || sa.ID != attribute.IDTemperature {
		t.Fatalf("got %#v", msg)
	}
	sc, ok := sa.Value.(attribute.Scalar)
	if !ok || sc.Physical != 25 {
		t.Fatalf("value = %#v", sa.Value)
	}
	encoded, err := EncodeBody(sa)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, fixture)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, fixture))
	}
}

func TestConfigureReporting(t *testing.T) {
	fixture := []byte{0x14, 0x00, 0x09, 0x71, 0x00, 0x32, 0x01, 0xe8, 0x18}
	msg, err := Decode(TypeConfigureReporting, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cr, ok := msg.(ConfigureReporting)
	if !ok || cr.ID != 0x71 || cr.Interval != 50 || !cr.OnChange {
		t.Fatalf("got %#v", msg)
	}
	encoded, err := EncodeBody(cr)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, fixture)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, fixture))
	}
}

func TestResetReporting(t *testing.T) {
	fixture := []byte{0x15, 0x00, 0x06, 0xa1, 0x2c, 0x4f}
	msg, err := Decode(TypeResetReporting, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rr, ok := msg.(ResetReporting)
	if !ok || rr.ID != attribute.IDBatteryLevel {
		t.Fatalf("got %#v", msg)
	}
	encoded, err := EncodeBody(rr)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, fixture)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, fixture))
	}
}

func TestAttributeChanged(t *testing.T) {
	fixture := []byte{
		0x21, 0x00, 0x10,
		0x00, 0x00, 0x01, 0x80, 0x44, 0x49, 0xb6, 0xd3, // changed_at
		0xa1,       // attribute id: battery level
		0x01, 0x32, // length, value
		0x2f, 0x06, // crc
	}
	msg, err := Decode(TypeAttributeChanged, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ac, ok := msg.(AttributeChanged)
	if !ok {
		t.Fatalf("got %#v", msg)
	}
	if ac.ChangedAt != 0x0000018044_49b6d3 {
		t.Fatalf("changed_at = %#x", ac.ChangedAt)
	}
	if ac.ID != attribute.IDBatteryLevel {
		t.Fatalf("id = %#x", ac.ID)
	}
	sc, ok := ac.Value.(attribute.Scalar)
	if !ok || sc.Physical != 50 {
		t.Fatalf("value = %#v", ac.Value)
	}
	encoded, err := EncodeBody(ac)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, fixture)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, fixture))
	}
}

func TestGetAttributeResponseModel(t *testing.T) {
	fixture := []byte{
		0x92, 0x00, 0x1c,
		0x04, // attribute id: model
		0x00, 0x00, 0x00, 0xde, 0xf8, 0xb0, 0xc8, 0x49, // changed_at
		0x00, 0x00, // interval
		0x00,       // on_change
		0x0a,       // length
		0x49, 0x73, 0x65, 0x6e, 0x73, 0x65, 0x55, 0x20, 0x47, 0x33, // "IsenseU G3"
		0x47, 0x5f, // crc
	}
	msg, err := Decode(TypeGetAttributeResponse, body(t, fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	gar, ok := msg.(GetAttributeResponse)
	if !ok || gar.ID != attribute.IDModel {
		t.Fatalf("got %#v", msg)
	}
	if gar.ChangedAt != 0x000000def8b0c849 || gar.Interval != 0 || gar.OnChange {
		t.Fatalf("gar = %#v", gar)
	}
	if gar.Value != attribute.Value(attribute.Str("IsenseU G3")) {
		t.Fatalf("value = %#v", gar.Value)
	}
	encoded, err := EncodeBody(gar)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, body(t, fixture)) {
		t.Fatalf("encoded = % x, want % x", encoded, body(t, fixture))
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode(Type(0xfe), nil)
	if _, ok := err.(UnknownMessageTypeError); !ok {
		t.Fatalf("err = %v, want UnknownMessageTypeError", err)
	}
}

func TestEncodeUnknownType(t *testing.T) {
	_, err := EncodeBody(fakeMessage{})
	if _, ok := err.(UnknownMessageTypeError); !ok {
		t.Fatalf("err = %v, want UnknownMessageTypeError", err)
	}
}

type fakeMessage struct{}

func (fakeMessage) Type() Type { return Type(0xfe) }
