package attribute

// The complex attribute shapes below are packed structs decoded directly
// off the wire, grounded field-for-field on the reference device's
// struct_format declarations (types.py) and, where a shape is absent
// from that file, on the byte layout of its golden test fixture (see
// DESIGN.md for the Diagnostics and BatteryDiagnostics reconstructions).

// PulseRaw is a single-channel ECG/PPG sample pair.
type PulseRaw struct {
	ECG int32
	PPG int32
}

func (PulseRaw) isAttributeValue() {}

// PulseRawAll is the three-PPG-channel sample variant of PulseRaw.
type PulseRawAll struct {
	ECG      int32
	PPGGreen int32
	PPGRed   int32
	PPGIR    int32
}

func (PulseRawAll) isAttributeValue() {}

// BloodPressure mirrors types.py's BloodPressure (struct_format ">HHHIH").
type BloodPressure struct {
	Systolic  uint16
	Diastolic uint16
	Map       uint16
	PAT       uint32
	Pulse     uint16
}

func (BloodPressure) isAttributeValue() {}

// Imu is the single-byte packed orientation/activity attribute
// (types.py's Imu, struct_format ">B").
type Imu struct {
	OrientationAndActivity uint8
}

func (Imu) isAttributeValue() {}

// AccRaw is a three-axis accelerometer sample.
type AccRaw struct {
	X, Y, Z int16
}

func (AccRaw) isAttributeValue() {}

// GyroRaw is a three-axis gyroscope sample.
type GyroRaw struct {
	X, Y, Z int16
}

func (GyroRaw) isAttributeValue() {}

// ImuRaw is the combined six-axis raw sample (types.py's ImuRaw).
type ImuRaw struct {
	Acc  AccRaw
	Gyro GyroRaw
}

func (ImuRaw) isAttributeValue() {}

// AfeSettings mirrors types.py's AfeSettings (struct_format ">BBBBIIif").
type AfeSettings struct {
	RFGain       uint8
	CFValue      uint8
	ECGGain      uint8
	IOffDACRange uint8
	LED1         uint32
	LED4         uint32
	OffDAC       int32
	RelativeGain float32
}

func (AfeSettings) isAttributeValue() {}

// AfeSettingsAll mirrors types.py's AfeSettingsAll (struct_format
// ">BBBBIIIIiiif").
type AfeSettingsAll struct {
	RFGain       uint8
	CFValue      uint8
	ECGGain      uint8
	IOffDACRange uint8
	LED1         uint32
	LED2         uint32
	LED3         uint32
	LED4         uint32
	OffDAC1      int32
	OffDAC2      int32
	OffDAC3      int32
	RelativeGain float32
}

func (AfeSettingsAll) isAttributeValue() {}

// Diagnostics is the 24-byte battery-gauge diagnostics attribute (0xB5),
// laid out field by field against its golden fixture; see DESIGN.md.
type Diagnostics struct {
	ReportedSOC     uint16
	AverageCurrent  int16
	ReportedCap     uint16
	FullCap         uint16
	TimeToEmpty     uint32
	TimeToFull      uint32
	Voltage         uint32
	AverageVoltage  uint32
}

func (Diagnostics) isAttributeValue() {}

// BatteryDiagnostics is a heuristic reconstruction; see DESIGN.md for why
// its single available fixture is not reproduced byte-for-byte.
type BatteryDiagnostics struct {
	Flags    uint16
	CycleA   uint32
	CycleB   uint32
	Counters [8]uint16
}

func (BatteryDiagnostics) isAttributeValue() {}

// FirmwareVersion is the three-byte major.minor.patch version attribute;
// see DESIGN.md for why this is three bytes wide rather than the 8-byte
// struct_format attributes.py declares.
type FirmwareVersion struct {
	Major, Minor, Patch uint8
}

func (FirmwareVersion) isAttributeValue() {}

// PulseRawList is the one little-endian, bit-packed-width attribute in
// the protocol; see DESIGN.md for the format-byte reconstruction.
type PulseRawList struct {
	SampleWidth int // bytes per sample, 1-4
	ECG         []int64
	PPG         []int64
}

func (PulseRawList) isAttributeValue() {}
