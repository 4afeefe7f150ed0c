package attribute

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/edgectl/internal/embodycodec/enums"
	"github.com/danmuck/edgectl/internal/embodycodec/units"
)

func TestDecodeBatteryLevel(t *testing.T) {
	v, n, err := Decode(IDBatteryLevel, []byte{0x55})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 1 {
		t.Fatalf("consumed = %d, want 1", n)
	}
	sc, ok := v.(Scalar)
	if !ok || sc.Physical != 0x55 {
		t.Fatalf("value = %#v", v)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		id uint8
		v  Value
	}{
		{IDBatteryLevel, Scalar{Physical: 85, Unit: units.Percent}},
		{IDHeartRate, Scalar{Physical: 62, Unit: units.BPM}},
		{IDTemperature, Scalar{Physical: 36.5, Unit: units.Celsius}},
		{IDMeasurementDeactivated, Bool(true)},
		{IDSerialNo, Int64(1234567890)},
		{IDFirmwareVersion, FirmwareVersion{Major: 4, Minor: 0, Patch: 1}},
		{IDPulseRaw, PulseRaw{ECG: 43214321, PPG: 123456789}},
		{IDPulseRawAll, PulseRawAll{ECG: 1, PPGGreen: 2, PPGRed: 3, PPGIR: 4}},
		{IDImu, Imu{OrientationAndActivity: 7}},
		{IDBloodPressure, BloodPressure{Systolic: 120, Diastolic: 80, Map: 93, PAT: 210, Pulse: 70}},
		{IDDiagnostics, Diagnostics{ReportedSOC: 90, AverageCurrent: -5, ReportedCap: 3000, FullCap: 3200, TimeToEmpty: 1000, TimeToFull: 0, Voltage: 4100, AverageVoltage: 4090}},
		{IDAccRaw, AccRaw{X: 271, Y: -5141, Z: 4991}},
		{IDGyroRaw, GyroRaw{X: 46, Y: -9, Z: -36}},
		{IDImuRaw, ImuRaw{Acc: AccRaw{X: 1, Y: 2, Z: 3}, Gyro: GyroRaw{X: -1, Y: -2, Z: -3}}},
		{IDChargeState, Bool(true)},
		{IDBeltOnBodyState, Bool(false)},
		{IDBluetoothMac, Int64(0xbc614e)},
		{IDCurrentTime, Int64(0x018044_49bea3)},
		{IDAfeSettings, AfeSettings{RFGain: 2, CFValue: 2, ECGGain: 4, IOffDACRange: 0, LED1: 0x1849, LED4: 0x1849, OffDAC: -4369, RelativeGain: 50.125}},
		{IDAfeSettingsAll, AfeSettingsAll{RFGain: 2, CFValue: 2, ECGGain: 4, IOffDACRange: 0, LED1: 100, LED2: 200, LED3: 300, LED4: 400, OffDAC1: -1, OffDAC2: -2, OffDAC3: -3, RelativeGain: 50.125}},
		{IDBatteryDiagnostics, BatteryDiagnostics{Flags: 0x0102, CycleA: 10, CycleB: 20, Counters: [8]uint16{1, 2, 3, 4, 5, 6, 7, 8}}},
	}
	for _, c := range cases {
		encoded, err := Encode(c.id, c.v)
		if err != nil {
			t.Fatalf("encode 0x%02x: %v", c.id, err)
		}
		decoded, n, err := Decode(c.id, encoded)
		if err != nil {
			t.Fatalf("decode 0x%02x: %v", c.id, err)
		}
		if n != len(encoded) {
			t.Fatalf("0x%02x: consumed %d, want %d", c.id, n, len(encoded))
		}
		if decoded != c.v {
			t.Fatalf("0x%02x round-trip mismatch: got %#v want %#v", c.id, decoded, c.v)
		}
	}
}

func TestPulseRawListFormatByte(t *testing.T) {
	v := PulseRawList{SampleWidth: 2, ECG: []int64{100, -100}, PPG: []int64{5000}}
	b, err := Encode(IDPulseRawList, v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if b[0] != 0x19 { // format=1 (width-1), ecgCount=2, ppgCount=1 -> 0001 10 01
		t.Fatalf("format byte = %#02x, want 0x19", b[0])
	}
	decoded, n, err := Decode(IDPulseRawList, b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(b) {
		t.Fatalf("consumed %d, want %d", n, len(b))
	}
	got := decoded.(PulseRawList)
	if got.SampleWidth != 2 || len(got.ECG) != 2 || len(got.PPG) != 1 {
		t.Fatalf("shape mismatch: %#v", got)
	}
	if got.ECG[0] != 100 || got.ECG[1] != -100 || got.PPG[0] != 5000 {
		t.Fatalf("values mismatch: %#v", got)
	}
}

func TestModelAttributeContextWidth(t *testing.T) {
	want := "IsenseU G3"
	encoded, err := Encode(IDModel, Str(want))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, []byte(want)) {
		t.Fatalf("encoded = %q, want no terminator, got %q", encoded, want)
	}
	decoded, n, err := Decode(IDModel, encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(encoded) {
		t.Fatalf("consumed %d, want %d", n, len(encoded))
	}
	if decoded != Value(Str(want)) {
		t.Fatalf("decoded = %#v", decoded)
	}
}

func TestSystemStatusNamesCommaList(t *testing.T) {
	encoded, err := Encode(IDSystemStatusNames, CommaList{"usb", "belt_on_body"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(encoded) != "usb,belt_on_body" {
		t.Fatalf("encoded = %q", encoded)
	}
}

func TestUnknownAttribute(t *testing.T) {
	_, _, err := Decode(0xFE, []byte{1, 2, 3})
	if !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("err = %v, want ErrUnknownAttribute", err)
	}
}

func TestTruncatedFixedWidthAttribute(t *testing.T) {
	_, _, err := Decode(IDHeartRate, []byte{0x01})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestSleepModeAttributeRoundTrip(t *testing.T) {
	encoded, err := Encode(IDSleepMode, SleepModeValue(enums.SleepModeLight))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(encoded) != 1 || encoded[0] != byte(enums.SleepModeLight) {
		t.Fatalf("encoded = % x", encoded)
	}
	decoded, n, err := Decode(IDSleepMode, encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 1 || decoded != Value(SleepModeValue(enums.SleepModeLight)) {
		t.Fatalf("decoded = %#v", decoded)
	}
}

func TestSleepModeAttributeUnknownCode(t *testing.T) {
	_, _, err := Decode(IDSleepMode, []byte{0xff})
	if _, ok := err.(enums.UnknownValueError); !ok {
		t.Fatalf("err = %v, want enums.UnknownValueError", err)
	}
}
