package attribute

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/danmuck/edgectl/internal/embodycodec/cursor"
	"github.com/danmuck/edgectl/internal/embodycodec/enums"
	"github.com/danmuck/edgectl/internal/embodycodec/units"
)

// Attribute ids, imported verbatim from the reference protocol's
// attributes.py rather than renumbered or paraphrased. 0x08 and 0xBB
// are not present in that file (an older snapshot) but are confirmed by
// tests/test_codec.py's golden fixtures, which post-date it; see
// DESIGN.md.
const (
	IDSerialNo               uint8 = 0x01
	IDFirmwareVersion        uint8 = 0x02
	IDBluetoothMac           uint8 = 0x03
	IDModel                  uint8 = 0x04
	IDVendor                 uint8 = 0x05
	IDAfeSettings            uint8 = 0x06
	IDAfeSettingsAll         uint8 = 0x07
	IDSystemStatusNames      uint8 = 0x08
	IDCurrentTime            uint8 = 0x71
	IDMeasurementDeactivated uint8 = 0x72
	IDTraceLevel             uint8 = 0x73
	IDNoOfPpgValues          uint8 = 0x74
	IDBatteryLevel           uint8 = 0xA1
	IDPulseRawAll            uint8 = 0xA2
	IDBloodPressure          uint8 = 0xA3
	IDImu                    uint8 = 0xA4
	IDHeartRate              uint8 = 0xA5
	IDSleepMode              uint8 = 0xA6
	IDBreathRate             uint8 = 0xA7
	IDHeartRateVariability   uint8 = 0xA8
	IDChargeState            uint8 = 0xA9
	IDBeltOnBodyState        uint8 = 0xAA
	IDFirmwareUpdateProgress uint8 = 0xAB
	IDImuRaw                 uint8 = 0xAC
	IDHeartRateInterval      uint8 = 0xAD
	IDPulseRaw               uint8 = 0xB1
	IDAccRaw                 uint8 = 0xB2
	IDGyroRaw                uint8 = 0xB3
	IDTemperature            uint8 = 0xB4
	IDDiagnostics            uint8 = 0xB5
	IDPulseRawList           uint8 = 0xB6
	IDBatteryDiagnostics     uint8 = 0xBB
)

// contextWidth marks a descriptor whose wire width is determined by the
// enclosing message, not the registry (the protocol's single documented
// exception to "every attribute has a fixed width").
const contextWidth = -1

// ErrUnknownAttribute is returned by Decode/Encode for an id not present
// in the registry.
var ErrUnknownAttribute = errors.New("embodycodec: unknown attribute")

// ErrTruncated mirrors cursor.ErrTruncated for callers that only import
// this package.
var ErrTruncated = cursor.ErrTruncated

// Descriptor is the registry's per-id entry: wire width, physical unit,
// and the decode/encode pair that realizes the concrete Value shape.
type Descriptor struct {
	ID     uint8
	Name   string
	Width  int // bytes, or contextWidth
	Unit   units.Unit
	Decode func([]byte) (Value, error)
	Encode func(Value) ([]byte, error)
}

var registry = buildRegistry()

func buildRegistry() map[uint8]Descriptor {
	m := map[uint8]Descriptor{}
	reg := func(d Descriptor) { m[d.ID] = d }

	reg(int64Descriptor(IDSerialNo, "serial_no", 8))
	reg(firmwareVersionDescriptor())
	reg(int64Descriptor(IDBluetoothMac, "bluetooth_mac", 8))
	reg(stringDescriptor(IDModel, "model"))
	reg(stringDescriptor(IDVendor, "vendor"))
	reg(afeSettingsDescriptor())
	reg(afeSettingsAllDescriptor())
	reg(commaListDescriptor(IDSystemStatusNames, "system_status_names"))
	reg(int64Descriptor(IDCurrentTime, "current_time", 8))
	reg(boolDescriptor(IDMeasurementDeactivated, "measurement_deactivated"))
	reg(scalarDescriptor(IDTraceLevel, "trace_level", 1, false, units.None, 1, 0))
	reg(scalarDescriptor(IDNoOfPpgValues, "no_of_ppg_values", 1, false, units.None, 1, 0))
	reg(scalarDescriptor(IDBatteryLevel, "battery_level", 1, false, units.Percent, 1, 0))
	reg(pulseRawAllDescriptor())
	reg(bloodPressureDescriptor())
	reg(imuDescriptor())
	reg(scalarDescriptor(IDHeartRate, "heart_rate", 2, false, units.BPM, 1, 0))
	reg(sleepModeDescriptor(IDSleepMode, "sleep_mode"))
	reg(scalarDescriptor(IDBreathRate, "breath_rate", 1, true, units.BreathsPerMinute, 1, 0))
	reg(scalarDescriptor(IDHeartRateVariability, "heart_rate_variability", 2, false, units.Millisecond, 1, 0))
	reg(boolDescriptor(IDChargeState, "charge_state"))
	reg(boolDescriptor(IDBeltOnBodyState, "belt_on_body_state"))
	reg(scalarDescriptor(IDFirmwareUpdateProgress, "firmware_update_progress", 1, false, units.Percent, 1, 0))
	reg(imuRawDescriptor())
	reg(scalarDescriptor(IDHeartRateInterval, "heart_rate_interval", 2, false, units.Millisecond, 1, 0))
	reg(pulseRawDescriptor())
	reg(accRawDescriptor())
	reg(gyroRawDescriptor())
	reg(scalarDescriptor(IDTemperature, "temperature", 2, true, units.Celsius, 0.0078125, 0))
	reg(diagnosticsDescriptor())
	reg(pulseRawListDescriptor())
	reg(batteryDiagnosticsDescriptor())

	return m
}

// Lookup returns the descriptor for id, if registered.
func Lookup(id uint8) (Descriptor, bool) {
	d, ok := registry[id]
	return d, ok
}

// Decode consumes this attribute's value out of data, returning the
// decoded Value and the number of bytes consumed. For fixed-width
// attributes that is always the descriptor's Width; for context-width
// attributes (Model, Vendor, SystemStatusNames, PulseRawList) it is
// len(data), since the caller has already sliced exactly the bytes that
// belong to this attribute.
func Decode(id uint8, data []byte) (Value, int, error) {
	d, ok := registry[id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: 0x%02x", ErrUnknownAttribute, id)
	}
	if d.Width == contextWidth {
		v, err := d.Decode(data)
		if err != nil {
			return nil, 0, err
		}
		return v, len(data), nil
	}
	if len(data) < d.Width {
		return nil, 0, ErrTruncated
	}
	v, err := d.Decode(data[:d.Width])
	if err != nil {
		return nil, 0, err
	}
	return v, d.Width, nil
}

// Encode mirrors Decode: it emits exactly the declared width for
// fixed-width attributes, or len(value) for context-width ones.
func Encode(id uint8, v Value) ([]byte, error) {
	d, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownAttribute, id)
	}
	return d.Encode(v)
}

// --- descriptor constructors ---

func sleepModeDescriptor(id uint8, name string) Descriptor {
	return Descriptor{
		ID: id, Name: name, Width: 1, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			mode, err := enums.DecodeSleepMode(b[0])
			if err != nil {
				return nil, err
			}
			return SleepModeValue(mode), nil
		},
		Encode: func(v Value) ([]byte, error) {
			mv, ok := v.(SleepModeValue)
			if !ok {
				return nil, fmt.Errorf("embodycodec: attribute 0x%02x wants SleepModeValue", id)
			}
			return []byte{uint8(mv)}, nil
		},
	}
}

func boolDescriptor(id uint8, name string) Descriptor {
	return Descriptor{
		ID: id, Name: name, Width: 1, Unit: units.None,
		Decode: func(b []byte) (Value, error) { return Bool(b[0] != 0), nil },
		Encode: func(v Value) ([]byte, error) {
			bv, ok := v.(Bool)
			if !ok {
				return nil, fmt.Errorf("embodycodec: attribute 0x%02x wants Bool", id)
			}
			if bv {
				return []byte{1}, nil
			}
			return []byte{0}, nil
		},
	}
}

// scalarDescriptor builds a generic unit-tagged integer scalar: width
// bytes, big-endian, optionally signed, converted to/from a physical
// value via physical = offset + raw*factor.
func scalarDescriptor(id uint8, name string, width int, signed bool, u units.Unit, factor, offset float64) Descriptor {
	return Descriptor{
		ID: id, Name: name, Width: width, Unit: u,
		Decode: func(b []byte) (Value, error) {
			raw, err := readInt(b, signed)
			if err != nil {
				return nil, err
			}
			return Scalar{Physical: offset + float64(raw)*factor, Unit: u}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			sv, ok := v.(Scalar)
			if !ok {
				return nil, fmt.Errorf("embodycodec: attribute 0x%02x wants Scalar", id)
			}
			raw := roundHalfEven((sv.Physical - offset) / factor)
			return writeInt(raw, width, signed)
		},
	}
}

func stringDescriptor(id uint8, name string) Descriptor {
	return Descriptor{
		ID: id, Name: name, Width: contextWidth, Unit: units.None,
		Decode: func(b []byte) (Value, error) { return Str(string(b)), nil },
		Encode: func(v Value) ([]byte, error) {
			sv, ok := v.(Str)
			if !ok {
				return nil, fmt.Errorf("embodycodec: attribute 0x%02x wants Str", id)
			}
			return []byte(sv), nil
		},
	}
}

func commaListDescriptor(id uint8, name string) Descriptor {
	return Descriptor{
		ID: id, Name: name, Width: contextWidth, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			if len(b) == 0 {
				return CommaList(nil), nil
			}
			return CommaList(strings.Split(string(b), ",")), nil
		},
		Encode: func(v Value) ([]byte, error) {
			cv, ok := v.(CommaList)
			if !ok {
				return nil, fmt.Errorf("embodycodec: attribute 0x%02x wants CommaList", id)
			}
			return []byte(strings.Join(cv, ",")), nil
		},
	}
}

func int64Descriptor(id uint8, name string, width int) Descriptor {
	return Descriptor{
		ID: id, Name: name, Width: width, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			var v int64
			for _, c := range b {
				v = v<<8 | int64(c)
			}
			return Int64(v), nil
		},
		Encode: func(v Value) ([]byte, error) {
			iv, ok := v.(Int64)
			if !ok {
				return nil, fmt.Errorf("embodycodec: attribute 0x%02x wants Int64", id)
			}
			out := make([]byte, width)
			raw := uint64(iv)
			for i := width - 1; i >= 0; i-- {
				out[i] = byte(raw)
				raw >>= 8
			}
			return out, nil
		},
	}
}

// firmwareVersionDescriptor decodes the three-byte major.minor.patch
// value; see DESIGN.md for why this is 3 bytes rather than the 8-byte
// struct_format attributes.py declares for this field.
func firmwareVersionDescriptor() Descriptor {
	return Descriptor{
		ID: IDFirmwareVersion, Name: "firmware_version", Width: 3, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			return FirmwareVersion{Major: b[0], Minor: b[1], Patch: b[2]}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			fv, ok := v.(FirmwareVersion)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0x02 wants FirmwareVersion")
			}
			return []byte{fv.Major, fv.Minor, fv.Patch}, nil
		},
	}
}

func pulseRawDescriptor() Descriptor {
	return Descriptor{
		ID: IDPulseRaw, Name: "pulse_raw", Width: 8, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			ecg, _ := r.I32()
			ppg, _ := r.I32()
			return PulseRaw{ECG: ecg, PPG: ppg}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			pv, ok := v.(PulseRaw)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xB1 wants PulseRaw")
			}
			w := cursor.NewWriter(8)
			w.I32(pv.ECG)
			w.I32(pv.PPG)
			return w.Bytes(), nil
		},
	}
}

func pulseRawAllDescriptor() Descriptor {
	return Descriptor{
		ID: IDPulseRawAll, Name: "pulse_raw_all", Width: 16, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			ecg, _ := r.I32()
			green, _ := r.I32()
			red, _ := r.I32()
			ir, _ := r.I32()
			return PulseRawAll{ECG: ecg, PPGGreen: green, PPGRed: red, PPGIR: ir}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			pv, ok := v.(PulseRawAll)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xA2 wants PulseRawAll")
			}
			w := cursor.NewWriter(16)
			w.I32(pv.ECG)
			w.I32(pv.PPGGreen)
			w.I32(pv.PPGRed)
			w.I32(pv.PPGIR)
			return w.Bytes(), nil
		},
	}
}

func bloodPressureDescriptor() Descriptor {
	return Descriptor{
		ID: IDBloodPressure, Name: "blood_pressure", Width: 12, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			sys, _ := r.U16()
			dia, _ := r.U16()
			bpMap, _ := r.U16()
			pat, _ := r.U32()
			pulse, _ := r.U16()
			return BloodPressure{Systolic: sys, Diastolic: dia, Map: bpMap, PAT: pat, Pulse: pulse}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			bp, ok := v.(BloodPressure)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xA3 wants BloodPressure")
			}
			w := cursor.NewWriter(12)
			w.U16(bp.Systolic)
			w.U16(bp.Diastolic)
			w.U16(bp.Map)
			w.U32(bp.PAT)
			w.U16(bp.Pulse)
			return w.Bytes(), nil
		},
	}
}

func imuDescriptor() Descriptor {
	return Descriptor{
		ID: IDImu, Name: "imu", Width: 1, Unit: units.None,
		Decode: func(b []byte) (Value, error) { return Imu{OrientationAndActivity: b[0]}, nil },
		Encode: func(v Value) ([]byte, error) {
			iv, ok := v.(Imu)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xA4 wants Imu")
			}
			return []byte{iv.OrientationAndActivity}, nil
		},
	}
}

func accRawDescriptor() Descriptor {
	return Descriptor{
		ID: IDAccRaw, Name: "acc_raw", Width: 6, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			x, _ := r.I16()
			y, _ := r.I16()
			z, _ := r.I16()
			return AccRaw{X: x, Y: y, Z: z}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			av, ok := v.(AccRaw)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xB2 wants AccRaw")
			}
			w := cursor.NewWriter(6)
			w.I16(av.X)
			w.I16(av.Y)
			w.I16(av.Z)
			return w.Bytes(), nil
		},
	}
}

func gyroRawDescriptor() Descriptor {
	return Descriptor{
		ID: IDGyroRaw, Name: "gyro_raw", Width: 6, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			x, _ := r.I16()
			y, _ := r.I16()
			z, _ := r.I16()
			return GyroRaw{X: x, Y: y, Z: z}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			gv, ok := v.(GyroRaw)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xB3 wants GyroRaw")
			}
			w := cursor.NewWriter(6)
			w.I16(gv.X)
			w.I16(gv.Y)
			w.I16(gv.Z)
			return w.Bytes(), nil
		},
	}
}

func imuRawDescriptor() Descriptor {
	return Descriptor{
		ID: IDImuRaw, Name: "imu_raw", Width: 12, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			ax, _ := r.I16()
			ay, _ := r.I16()
			az, _ := r.I16()
			gx, _ := r.I16()
			gy, _ := r.I16()
			gz, _ := r.I16()
			return ImuRaw{Acc: AccRaw{X: ax, Y: ay, Z: az}, Gyro: GyroRaw{X: gx, Y: gy, Z: gz}}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			iv, ok := v.(ImuRaw)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xAC wants ImuRaw")
			}
			w := cursor.NewWriter(12)
			w.I16(iv.Acc.X)
			w.I16(iv.Acc.Y)
			w.I16(iv.Acc.Z)
			w.I16(iv.Gyro.X)
			w.I16(iv.Gyro.Y)
			w.I16(iv.Gyro.Z)
			return w.Bytes(), nil
		},
	}
}

func afeSettingsDescriptor() Descriptor {
	return Descriptor{
		ID: IDAfeSettings, Name: "afe_settings", Width: 20, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			rf, _ := r.U8()
			cf, _ := r.U8()
			ecg, _ := r.U8()
			ioff, _ := r.U8()
			led1, _ := r.U32()
			led4, _ := r.U32()
			offDac, _ := r.I32()
			gain, _ := r.F32()
			return AfeSettings{RFGain: rf, CFValue: cf, ECGGain: ecg, IOffDACRange: ioff, LED1: led1, LED4: led4, OffDAC: offDac, RelativeGain: gain}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			a, ok := v.(AfeSettings)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0x06 wants AfeSettings")
			}
			w := cursor.NewWriter(20)
			w.U8(a.RFGain)
			w.U8(a.CFValue)
			w.U8(a.ECGGain)
			w.U8(a.IOffDACRange)
			w.U32(a.LED1)
			w.U32(a.LED4)
			w.I32(a.OffDAC)
			w.F32(a.RelativeGain)
			return w.Bytes(), nil
		},
	}
}

func afeSettingsAllDescriptor() Descriptor {
	return Descriptor{
		ID: IDAfeSettingsAll, Name: "afe_settings_all", Width: 36, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
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
			gain, _ := r.F32()
			return AfeSettingsAll{
				RFGain: rf, CFValue: cf, ECGGain: ecg, IOffDACRange: ioff,
				LED1: led1, LED2: led2, LED3: led3, LED4: led4,
				OffDAC1: od1, OffDAC2: od2, OffDAC3: od3, RelativeGain: gain,
			}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			a, ok := v.(AfeSettingsAll)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0x07 wants AfeSettingsAll")
			}
			w := cursor.NewWriter(36)
			w.U8(a.RFGain)
			w.U8(a.CFValue)
			w.U8(a.ECGGain)
			w.U8(a.IOffDACRange)
			w.U32(a.LED1)
			w.U32(a.LED2)
			w.U32(a.LED3)
			w.U32(a.LED4)
			w.I32(a.OffDAC1)
			w.I32(a.OffDAC2)
			w.I32(a.OffDAC3)
			w.F32(a.RelativeGain)
			return w.Bytes(), nil
		},
	}
}

func diagnosticsDescriptor() Descriptor {
	return Descriptor{
		ID: IDDiagnostics, Name: "diagnostics", Width: 24, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			soc, _ := r.U16()
			avgCurrent, _ := r.I16()
			cap_, _ := r.U16()
			full, _ := r.U16()
			tte, _ := r.U32()
			ttf, _ := r.U32()
			voltage, _ := r.U32()
			avgVoltage, _ := r.U32()
			return Diagnostics{
				ReportedSOC: soc, AverageCurrent: avgCurrent, ReportedCap: cap_, FullCap: full,
				TimeToEmpty: tte, TimeToFull: ttf, Voltage: voltage, AverageVoltage: avgVoltage,
			}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			d, ok := v.(Diagnostics)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xB5 wants Diagnostics")
			}
			w := cursor.NewWriter(24)
			w.U16(d.ReportedSOC)
			w.I16(d.AverageCurrent)
			w.U16(d.ReportedCap)
			w.U16(d.FullCap)
			w.U32(d.TimeToEmpty)
			w.U32(d.TimeToFull)
			w.U32(d.Voltage)
			w.U32(d.AverageVoltage)
			return w.Bytes(), nil
		},
	}
}

func batteryDiagnosticsDescriptor() Descriptor {
	return Descriptor{
		ID: IDBatteryDiagnostics, Name: "battery_diagnostics", Width: 26, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			r := cursor.New(b)
			flags, _ := r.U16()
			a, _ := r.U32()
			c, _ := r.U32()
			var counters [8]uint16
			for i := range counters {
				counters[i], _ = r.U16()
			}
			return BatteryDiagnostics{Flags: flags, CycleA: a, CycleB: c, Counters: counters}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			bd, ok := v.(BatteryDiagnostics)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xBB wants BatteryDiagnostics")
			}
			w := cursor.NewWriter(26)
			w.U16(bd.Flags)
			w.U32(bd.CycleA)
			w.U32(bd.CycleB)
			for _, c := range bd.Counters {
				w.U16(c)
			}
			return w.Bytes(), nil
		},
	}
}

// pulseRawListDescriptor implements the one little-endian, bit-packed
// attribute in the protocol: a leading format byte
// (format<<4)|(ecgCount<<2)|ppgCount selects a per-sample byte width of
// format+1, followed by ecgCount signed little-endian ECG samples and
// then ppgCount signed little-endian PPG samples of that width.
func pulseRawListDescriptor() Descriptor {
	return Descriptor{
		ID: IDPulseRawList, Name: "pulse_raw_list", Width: contextWidth, Unit: units.None,
		Decode: func(b []byte) (Value, error) {
			if len(b) < 1 {
				return nil, ErrTruncated
			}
			formatByte := b[0]
			format := int(formatByte >> 4)
			ecgCount := int((formatByte >> 2) & 0x3)
			ppgCount := int(formatByte & 0x3)
			width := format + 1
			r := cursor.New(b[1:])
			ecg := make([]int64, ecgCount)
			for i := range ecg {
				v, err := r.LEInt(width)
				if err != nil {
					return nil, err
				}
				ecg[i] = v
			}
			ppg := make([]int64, ppgCount)
			for i := range ppg {
				v, err := r.LEInt(width)
				if err != nil {
					return nil, err
				}
				ppg[i] = v
			}
			return PulseRawList{SampleWidth: width, ECG: ecg, PPG: ppg}, nil
		},
		Encode: func(v Value) ([]byte, error) {
			pv, ok := v.(PulseRawList)
			if !ok {
				return nil, errors.New("embodycodec: attribute 0xB6 wants PulseRawList")
			}
			if pv.SampleWidth < 1 || pv.SampleWidth > 4 {
				return nil, fmt.Errorf("embodycodec: pulse_raw_list sample width %d out of range", pv.SampleWidth)
			}
			if len(pv.ECG) > 3 || len(pv.PPG) > 3 {
				return nil, errors.New("embodycodec: pulse_raw_list channel count out of range")
			}
			format := pv.SampleWidth - 1
			formatByte := byte(format<<4) | byte(len(pv.ECG)<<2) | byte(len(pv.PPG))
			w := cursor.NewWriter(1 + (len(pv.ECG)+len(pv.PPG))*pv.SampleWidth)
			w.U8(formatByte)
			for _, v := range pv.ECG {
				w.LEInt(v, pv.SampleWidth)
			}
			for _, v := range pv.PPG {
				w.LEInt(v, pv.SampleWidth)
			}
			return w.Bytes(), nil
		},
	}
}

func readInt(b []byte, signed bool) (int64, error) {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	if !signed {
		return int64(v), nil
	}
	shift := 64 - uint(len(b))*8
	return int64(v<<shift) >> shift, nil
}

func writeInt(v int64, width int, signed bool) ([]byte, error) {
	if !signed {
		if v < 0 || (width < 8 && v >= int64(1)<<(8*uint(width))) {
			return nil, fmt.Errorf("embodycodec: value %d out of range for %d-byte unsigned field", v, width)
		}
	} else {
		lo := -(int64(1) << (8*uint(width) - 1))
		hi := int64(1)<<(8*uint(width)-1) - 1
		if v < lo || v > hi {
			return nil, fmt.Errorf("embodycodec: value %d out of range for %d-byte signed field", v, width)
		}
	}
	out := make([]byte, width)
	uv := uint64(v)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(uv)
		uv >>= 8
	}
	return out, nil
}

// roundHalfEven rounds v to the nearest integer, breaking exact ties
// toward the even neighbor, as required for scaled-integer
// encoding.
func roundHalfEven(v float64) int64 {
	floor := int64(math.Floor(v))
	frac := v - math.Floor(v)
	switch {
	case frac < 0.5:
		return floor
	case frac > 0.5:
		return floor + 1
	default:
		if floor%2 == 0 {
			return floor
		}
		return floor + 1
	}
}
