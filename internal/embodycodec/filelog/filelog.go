// Package filelog decodes the device's on-disk record stream: a
// separate, CRC-less, unframed format written by the device itself
// while logging locally, distinct from the wire protocol in
// internal/embodycodec/message (no frame header, no CRC, and most
// records carry only the low 16 bits of a timestamp tick rather than a
// full changed_at). Grounded on
// original_source/src/embodycodec/file_codec.py, built in the same
// declarative-dispatch style as the message package.
package filelog

import (
	"errors"
	"fmt"
	"math"

	"github.com/danmuck/edgectl/internal/embodycodec/cursor"
)

// ErrTruncated is returned when a record's body ends before its
// declared layout is fully consumed.
var ErrTruncated = cursor.ErrTruncated

// UnknownRecordTypeError is returned by Decode for a type byte the
// catalog does not recognize.
type UnknownRecordTypeError struct{ Code uint8 }

func (e UnknownRecordTypeError) Error() string {
	return fmt.Sprintf("filelog: unknown record type 0x%02x", e.Code)
}

// Version is the device firmware version gating the one record whose
// layout changed across releases (AfeSettings, type 0x06).
type Version struct {
	Major, Minor, Patch uint8
}

func (v Version) atLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor > other.Minor
	}
	return v.Patch >= other.Patch
}

var afeSettingsSplitVersion = Version{Major: 4, Minor: 0, Patch: 1}

// Record is implemented by every decoded file-log entry.
type Record interface{ isRecord() }

// Ticked is implemented by every record that carries a tick — the low
// 16 bits of the device's timestamp counter at the moment it was
// written, not a full changed_at.
type Ticked interface {
	Record
	Tick() uint16
}

type tick uint16

func (t tick) Tick() uint16 { return uint16(t) }

// Header opens a file-log stream: device identity, firmware version,
// and the absolute time the device's clock held when the file started.
type Header struct {
	Serial                 uint64
	FirmwareAttributeID    uint8
	FirmwareVersion        [3]byte
	TimeAttributeID        uint8
	CurrentTime            uint64
}

func (Header) isRecord() {}

// Timestamp re-anchors the stream to an absolute time; subsequent
// records' ticks are relative to the most recently seen Timestamp (or
// Header).
type Timestamp struct {
	tick
	CurrentTime uint64
}

func (Timestamp) isRecord() {}

type AfeSettingsOld struct {
	tick
	RFGain, CFValues, ECGGain                     int8
	LED1, LED4, IOffDACLED1, IOffDACAmbient float64
}

func (AfeSettingsOld) isRecord() {}

type AfeSettings struct {
	tick
	RFGain, CFValue, ECGGain, IOffDACRange uint8
	LED1, LED4                             uint32
	OffDAC                                 int32
	RelativeGain                           float32
}

func (AfeSettings) isRecord() {}

type AfeSettingsAll struct {
	tick
	RFGain, CFValue, ECGGain, IOffDACRange uint8
	LED1, LED2, LED3, LED4                 uint32
	OffDAC1, OffDAC2, OffDAC3              int32
	RelativeGain                           float32
}

func (AfeSettingsAll) isRecord() {}

// PpgRaw is the single-channel raw sample, hand-decoded because its
// ECG/PPG fields are 3-byte (not 4-byte) signed big-endian integers.
type PpgRaw struct {
	tick
	ECG, PPG int32
}

func (PpgRaw) isRecord() {}

type PpgRawAll struct {
	tick
	ECG, PPG, PPGRed, PPGIR int32
}

func (PpgRawAll) isRecord() {}

type ImuRaw struct {
	tick
	AccX, AccY, AccZ, GyroX, GyroY, GyroZ int16
}

func (ImuRaw) isRecord() {}

type Imu struct {
	tick
	OrientationAndActivity uint8
}

func (Imu) isRecord() {}

type AccRaw struct {
	tick
	X, Y, Z int16
}

func (AccRaw) isRecord() {}

type GyroRaw struct {
	tick
	X, Y, Z int16
}

func (GyroRaw) isRecord() {}

type BatteryLevel struct {
	tick
	Level uint8
}

func (BatteryLevel) isRecord() {}

type HeartRate struct {
	tick
	Rate uint16
}

func (HeartRate) isRecord() {}

type HeartRateInterval struct {
	tick
	Interval uint16
}

func (HeartRateInterval) isRecord() {}

type NoOfPpgValues struct {
	tick
	PpgValues uint8
}

func (NoOfPpgValues) isRecord() {}

// ChargeState carries the file log's raw charge-state code; unlike the
// live wire attribute (attribute.IDChargeState, a bool), the on-device
// log records it as a plain byte.
type ChargeState struct {
	tick
	State uint8
}

func (ChargeState) isRecord() {}

// BeltOnBody carries the file log's raw on-body code, same note as
// ChargeState above.
type BeltOnBody struct {
	tick
	OnBody uint8
}

func (BeltOnBody) isRecord() {}

// Temperature is a scaled int16 reading; Celsius applies the same
// 0.0078125 factor the live wire Temperature attribute uses.
type Temperature struct {
	tick
	Raw int16
}

func (Temperature) isRecord() {}

// Celsius converts Raw to degrees Celsius.
func (t Temperature) Celsius() float64 { return float64(t.Raw) * 0.0078125 }

const (
	typeHeader            uint8 = 0x01
	typeTimestamp         uint8 = 0x71
	typeImuRaw            uint8 = 0xAC
	typeImu               uint8 = 0xA4
	typePpgRaw            uint8 = 0xB1
	typePpgRawAll         uint8 = 0xA2
	typeBatteryLevel      uint8 = 0xA1
	typeHeartRate         uint8 = 0xA5
	typeHeartRateInterval uint8 = 0xAD
	typeNoOfPpgValues     uint8 = 0x74
	typeChargeState       uint8 = 0xA9
	typeBeltOnBody        uint8 = 0xAA
	typeAfeSettings       uint8 = 0x06
	typeAfeSettingsAll    uint8 = 0x07
	typeAccRaw            uint8 = 0xB2
	typeGyroRaw           uint8 = 0xB3
	typeTemperature       uint8 = 0xB4
)

// Decode parses one record: data[0] selects the type, the remainder is
// that record's body. version gates the one type (AfeSettings, 0x06)
// whose layout changed across firmware releases. It returns the record
// and the number of bytes consumed from data, including the leading
// type byte.
func Decode(data []byte, version Version) (Record, int, error) {
	if len(data) < 1 {
		return nil, 0, ErrTruncated
	}
	typ := data[0]
	body := data[1:]

	switch typ {
	case typeHeader:
		return decodeHeader(body)
	case typeTimestamp:
		return decodeTimestamp(body)
	case typeAfeSettings:
		if version.atLeast(afeSettingsSplitVersion) {
			return decodeAfeSettings(body)
		}
		return decodeAfeSettingsOld(body)
	case typeAfeSettingsAll:
		return decodeAfeSettingsAll(body)
	case typePpgRaw:
		return decodePpgRaw(body)
	case typePpgRawAll:
		return decodePpgRawAll(body)
	case typeImuRaw:
		return decodeImuRaw(body)
	case typeImu:
		return decodeImu(body)
	case typeAccRaw:
		return decodeAccRaw(body)
	case typeGyroRaw:
		return decodeGyroRaw(body)
	case typeBatteryLevel:
		return decodeBatteryLevel(body)
	case typeHeartRate:
		return decodeHeartRate(body)
	case typeHeartRateInterval:
		return decodeHeartRateInterval(body)
	case typeNoOfPpgValues:
		return decodeNoOfPpgValues(body)
	case typeChargeState:
		return decodeChargeState(body)
	case typeBeltOnBody:
		return decodeBeltOnBody(body)
	case typeTemperature:
		return decodeTemperature(body)
	default:
		return nil, 0, UnknownRecordTypeError{Code: typ}
	}
}

func decodeHeader(b []byte) (Record, int, error) {
	r := cursor.New(b)
	serial, err := r.U64()
	if err != nil {
		return nil, 0, err
	}
	fwAtt, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	fwVersion, err := r.Bytes(3)
	if err != nil {
		return nil, 0, err
	}
	timeAtt, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	currentTime, err := r.U64()
	if err != nil {
		return nil, 0, err
	}
	h := Header{Serial: serial, FirmwareAttributeID: fwAtt, TimeAttributeID: timeAtt, CurrentTime: currentTime}
	copy(h.FirmwareVersion[:], fwVersion)
	return h, 1 + r.Pos(), nil
}

func decodeTimestamp(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	ct, err := r.U64()
	if err != nil {
		return nil, 0, err
	}
	return Timestamp{tick: tick(t), CurrentTime: ct}, 1 + r.Pos(), nil
}

func decodeAfeSettingsOld(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	rf, err := r.I8()
	if err != nil {
		return nil, 0, err
	}
	cf, err := r.I8()
	if err != nil {
		return nil, 0, err
	}
	ecg, err := r.I8()
	if err != nil {
		return nil, 0, err
	}
	var f64s [4]float64
	for i := range f64s {
		bits, ferr := r.U64()
		if ferr != nil {
			return nil, 0, ferr
		}
		f64s[i] = math.Float64frombits(bits)
	}
	return AfeSettingsOld{
		tick: tick(t), RFGain: rf, CFValues: cf, ECGGain: ecg,
		LED1: f64s[0], LED4: f64s[1], IOffDACLED1: f64s[2], IOffDACAmbient: f64s[3],
	}, 1 + r.Pos(), nil
}

func decodeAfeSettings(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	rf, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	cf, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	ecg, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	ioff, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	led1, err := r.U32()
	if err != nil {
		return nil, 0, err
	}
	led4, err := r.U32()
	if err != nil {
		return nil, 0, err
	}
	offDac, err := r.I32()
	if err != nil {
		return nil, 0, err
	}
	gain, err := r.F32()
	if err != nil {
		return nil, 0, err
	}
	return AfeSettings{
		tick: tick(t), RFGain: rf, CFValue: cf, ECGGain: ecg, IOffDACRange: ioff,
		LED1: led1, LED4: led4, OffDAC: offDac, RelativeGain: gain,
	}, 1 + r.Pos(), nil
}

func decodeAfeSettingsAll(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	rf, _ := r.U8()
	cf, _ := r.U8()
	ecg, _ := r.U8()
	ioff, _ := r.U8()
	led1, _ := r.U32()
	led2, _ := r.U32()
	led3, _ := r.U32()
	led4, _ := r.U32()
	od1, _ := r.I32()
	od2, _ := r.I32()
	od3, _ := r.I32()
	gain, err := r.F32()
	if err != nil {
		return nil, 0, err
	}
	return AfeSettingsAll{
		tick: tick(t), RFGain: rf, CFValue: cf, ECGGain: ecg, IOffDACRange: ioff,
		LED1: led1, LED2: led2, LED3: led3, LED4: led4,
		OffDAC1: od1, OffDAC2: od2, OffDAC3: od3, RelativeGain: gain,
	}, 1 + r.Pos(), nil
}

func decode3ByteSigned(r *cursor.Reader) (int32, error) {
	b, err := r.Bytes(3)
	if err != nil {
		return 0, err
	}
	v := int32(b[0])<<16 | int32(b[1])<<8 | int32(b[2])
	if b[0]&0x80 != 0 {
		v -= 1 << 24
	}
	return v, nil
}

func decodePpgRaw(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	ecg, err := decode3ByteSigned(r)
	if err != nil {
		return nil, 0, err
	}
	ppg, err := decode3ByteSigned(r)
	if err != nil {
		return nil, 0, err
	}
	return PpgRaw{tick: tick(t), ECG: ecg, PPG: ppg}, 1 + r.Pos(), nil
}

func decodePpgRawAll(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	ecg, err := decode3ByteSigned(r)
	if err != nil {
		return nil, 0, err
	}
	ppg, err := decode3ByteSigned(r)
	if err != nil {
		return nil, 0, err
	}
	ppgRed, err := decode3ByteSigned(r)
	if err != nil {
		return nil, 0, err
	}
	ppgIR, err := decode3ByteSigned(r)
	if err != nil {
		return nil, 0, err
	}
	return PpgRawAll{tick: tick(t), ECG: ecg, PPG: ppg, PPGRed: ppgRed, PPGIR: ppgIR}, 1 + r.Pos(), nil
}

func decodeImuRaw(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	var v [6]int16
	for i := range v {
		vv, ierr := r.I16()
		if ierr != nil {
			return nil, 0, ierr
		}
		v[i] = vv
	}
	return ImuRaw{tick: tick(t), AccX: v[0], AccY: v[1], AccZ: v[2], GyroX: v[3], GyroY: v[4], GyroZ: v[5]}, 1 + r.Pos(), nil
}

func decodeImu(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	o, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	return Imu{tick: tick(t), OrientationAndActivity: o}, 1 + r.Pos(), nil
}

func decodeAccRaw(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	x, _ := r.I16()
	y, _ := r.I16()
	z, err := r.I16()
	if err != nil {
		return nil, 0, err
	}
	return AccRaw{tick: tick(t), X: x, Y: y, Z: z}, 1 + r.Pos(), nil
}

func decodeGyroRaw(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	x, _ := r.I16()
	y, _ := r.I16()
	z, err := r.I16()
	if err != nil {
		return nil, 0, err
	}
	return GyroRaw{tick: tick(t), X: x, Y: y, Z: z}, 1 + r.Pos(), nil
}

func decodeBatteryLevel(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	level, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	return BatteryLevel{tick: tick(t), Level: level}, 1 + r.Pos(), nil
}

func decodeHeartRate(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	rate, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	return HeartRate{tick: tick(t), Rate: rate}, 1 + r.Pos(), nil
}

func decodeHeartRateInterval(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	interval, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	return HeartRateInterval{tick: tick(t), Interval: interval}, 1 + r.Pos(), nil
}

func decodeNoOfPpgValues(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	n, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	return NoOfPpgValues{tick: tick(t), PpgValues: n}, 1 + r.Pos(), nil
}

func decodeChargeState(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	state, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	return ChargeState{tick: tick(t), State: state}, 1 + r.Pos(), nil
}

func decodeBeltOnBody(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	onBody, err := r.U8()
	if err != nil {
		return nil, 0, err
	}
	return BeltOnBody{tick: tick(t), OnBody: onBody}, 1 + r.Pos(), nil
}

func decodeTemperature(b []byte) (Record, int, error) {
	r := cursor.New(b)
	t, err := r.U16()
	if err != nil {
		return nil, 0, err
	}
	raw, err := r.I16()
	if err != nil {
		return nil, 0, err
	}
	return Temperature{tick: tick(t), Raw: raw}, 1 + r.Pos(), nil
}

// DecodeStream decodes every record in data back to back, stopping at
// the first error (including running out of bytes for a full record).
// Partial trailing bytes are reported as ErrTruncated rather than
// silently dropped.
func DecodeStream(data []byte, version Version) ([]Record, error) {
	var records []Record
	for len(data) > 0 {
		rec, consumed, err := Decode(data, version)
		if err != nil {
			if errors.Is(err, ErrTruncated) {
				return records, err
			}
			return records, err
		}
		records = append(records, rec)
		data = data[consumed:]
	}
	return records, nil
}
